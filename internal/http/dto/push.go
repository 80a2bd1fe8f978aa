package dto

// PushSubscriptionRequest mirrors PushSubscription.toJSON() in the browser.
type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type PushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}
