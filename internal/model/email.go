package model

import (
	"encoding/json"
	"time"
)

type EmailStatus string

const (
	EmailStatusSent            EmailStatus = "sent"
	EmailStatusDelivered       EmailStatus = "delivered"
	EmailStatusBounced         EmailStatus = "bounced"
	EmailStatusComplained      EmailStatus = "complained"
	EmailStatusDeliveryDelayed EmailStatus = "delivery_delayed"
	EmailStatusFailed          EmailStatus = "failed"
)

// Email is an outbound message we handed to the SMTP relay.
type Email struct {
	ID        int64       `json:"id"`
	OrgID     *int64      `json:"org_id,omitempty"`
	UserID    *int64      `json:"user_id,omitempty"`
	JobKey    *string     `json:"job_key,omitempty"`
	MessageID string      `json:"message_id"`
	ToAddress string      `json:"to_address"`
	Subject   string      `json:"subject"`
	Status    EmailStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// EmailEvent is a delivery event received from the email provider webhook.
type EmailEvent struct {
	ID         int64           `json:"id"`
	EmailID    *int64          `json:"email_id,omitempty"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}
