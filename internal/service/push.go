package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

type PushService interface {
	// Subscribe stores a browser subscription. An endpoint already registered
	// to anyone is moved to user.
	Subscribe(ctx context.Context, user *model.User, endpoint, p256dh, auth string) (*model.PushSubscription, error)
	Unsubscribe(ctx context.Context, user *model.User, endpoint string) error
	VAPIDPublicKey() string
}

type pushService struct {
	subscriptionStore store.PushSubscriptionStore
	vapidPublicKey    string
}

func NewPushService(subscriptionStore store.PushSubscriptionStore, vapidPublicKey string) PushService {
	return &pushService{
		subscriptionStore: subscriptionStore,
		vapidPublicKey:    vapidPublicKey,
	}
}

func (s *pushService) Subscribe(ctx context.Context, user *model.User, endpoint, p256dh, auth string) (*model.PushSubscription, error) {
	endpoint = strings.TrimSpace(endpoint)

	var fields []validation.FieldError
	if !strings.HasPrefix(endpoint, "https://") {
		fields = append(fields, validation.FieldError{Field: "endpoint", Message: "Endpoint must be an https URL"})
	}
	if strings.TrimSpace(p256dh) == "" {
		fields = append(fields, validation.FieldError{Field: "p256dh", Message: "p256dh key is required"})
	}
	if strings.TrimSpace(auth) == "" {
		fields = append(fields, validation.FieldError{Field: "auth", Message: "auth secret is required"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	sub := &model.PushSubscription{
		ID:       id.New(),
		UserID:   user.ID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	}
	if err := s.subscriptionStore.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("saving push subscription: %w", err)
	}

	slog.InfoContext(ctx, "push subscription saved", "user_id", user.ID)
	return sub, nil
}

func (s *pushService) Unsubscribe(ctx context.Context, user *model.User, endpoint string) error {
	if err := s.subscriptionStore.DeleteForUser(ctx, user.ID, strings.TrimSpace(endpoint)); err != nil {
		return fmt.Errorf("deleting push subscription: %w", err)
	}
	return nil
}

func (s *pushService) VAPIDPublicKey() string {
	return s.vapidPublicKey
}
