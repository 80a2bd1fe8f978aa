package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
	"github.com/tidwall/gjson"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

var eventStatuses = map[string]model.EmailStatus{
	"email.delivered":        model.EmailStatusDelivered,
	"email.bounced":          model.EmailStatusBounced,
	"email.complained":       model.EmailStatusComplained,
	"email.delivery_delayed": model.EmailStatusDeliveryDelayed,
	"email.failed":           model.EmailStatusFailed,
}

type EmailEventService interface {
	// Handle verifies and records one delivery webhook.
	Handle(ctx context.Context, headers http.Header, body []byte) error
}

type emailEventService struct {
	emailStore store.EmailStore
	webhook    *svix.Webhook
}

// NewEmailEventService takes the signing secret in its "whsec_<base64>" form.
// An empty secret disables signature checks.
func NewEmailEventService(emailStore store.EmailStore, secret string) (EmailEventService, error) {
	s := &emailEventService{emailStore: emailStore}
	if secret != "" {
		wh, err := svix.NewWebhook(secret)
		if err != nil {
			return nil, fmt.Errorf("decoding webhook secret: %w", err)
		}
		s.webhook = wh
	}
	return s, nil
}

func (s *emailEventService) Handle(ctx context.Context, headers http.Header, body []byte) error {
	if err := s.verify(headers, body); err != nil {
		slog.WarnContext(ctx, "rejected email webhook", "error", err, "svix_id", headers.Get("svix-id"))
		return err
	}

	if !gjson.ValidBytes(body) {
		return &ValidationError{Fields: []validation.FieldError{{Field: "body", Message: "Body must be JSON"}}}
	}
	parsed := gjson.ParseBytes(body)
	eventType := parsed.Get("type").String()
	messageID := parsed.Get("data.email_id").String()

	event := &model.EmailEvent{
		ID:        id.New(),
		EventType: eventType,
		Payload:   body,
	}

	var email *model.Email
	if messageID != "" {
		found, err := s.emailStore.GetByMessageID(ctx, messageID)
		switch {
		case err == nil:
			email = found
			event.EmailID = &found.ID
		case errors.Is(err, store.ErrNotFound):
			slog.InfoContext(ctx, "webhook for unknown email", "type", eventType, "email_message_id", messageID)
		default:
			return fmt.Errorf("getting email: %w", err)
		}
	}

	if err := s.emailStore.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("recording email event: %w", err)
	}

	status, ok := eventStatuses[eventType]
	if !ok || email == nil {
		return nil
	}
	if _, err := s.emailStore.UpdateStatus(ctx, email.ID, status); err != nil {
		return fmt.Errorf("updating email status: %w", err)
	}

	slog.InfoContext(ctx, "email status updated",
		"email_id", email.ID,
		"status", status,
	)
	return nil
}

// verify checks the svix-id, svix-timestamp and svix-signature headers.
func (s *emailEventService) verify(headers http.Header, body []byte) error {
	if s.webhook == nil {
		return nil
	}
	if err := s.webhook.Verify(body, headers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}
