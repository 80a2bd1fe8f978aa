package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/push"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/store"
)

// Processor delivers notification tasks over email and web push.
type Processor struct {
	stores   StoreProvider
	mailer   mail.Sender
	renderer *mail.Renderer
	pusher   push.Sender
}

func NewProcessor(stores StoreProvider, mailer mail.Sender, renderer *mail.Renderer, pusher push.Sender) *Processor {
	return &Processor{
		stores:   stores,
		mailer:   mailer,
		renderer: renderer,
		pusher:   pusher,
	}
}

func (p *Processor) Process(ctx context.Context, msg queue.Message) error {
	var data model.NotificationData
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			// Retrying cannot fix a bad payload.
			slog.ErrorContext(ctx, "dropping task with undecodable data", "error", err)
			return nil
		}
	}

	org, err := p.stores.Organizations().GetByID(ctx, msg.OrgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "organization gone, dropping task")
			return nil
		}
		return fmt.Errorf("loading organization: %w", err)
	}

	recipients, err := p.stores.Users().ListByIDs(ctx, msg.RecipientIDs)
	if err != nil {
		return fmt.Errorf("loading recipients: %w", err)
	}

	notificationType := model.NotificationType(msg.NotificationType)
	switch msg.TaskType {
	case queue.TaskTypeEmailNotification:
		return p.sendEmails(ctx, msg.JobKey, org, notificationType, data, recipients)
	case queue.TaskTypePushNotification:
		return p.sendPushes(ctx, org, notificationType, data, recipients)
	default:
		return fmt.Errorf("unknown task type %q", msg.TaskType)
	}
}

// sendEmails mails every recipient that still wants email and has not been
// mailed for this job yet. Failed recipients make the task retry; recipients
// already mailed are skipped on the retry.
func (p *Processor) sendEmails(ctx context.Context, jobKey string, org *model.Organization, t model.NotificationType, data model.NotificationData, recipients []model.User) error {
	rendered, err := p.renderer.Notification(mail.NotificationEmail{
		OrgName: org.Name,
		OrgHost: org.Host,
		Type:    t,
		Data:    data,
	})
	if err != nil {
		slog.ErrorContext(ctx, "dropping email task without template", "error", err)
		return nil
	}

	var errs []error
	sent := 0
	for i := range recipients {
		user := &recipients[i]
		userCtx := logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})

		if user.OrgID != org.ID || !user.Wants(model.ChannelEmail) {
			slog.DebugContext(userCtx, "recipient opted out of email")
			continue
		}

		if _, err := p.stores.Emails().GetByJobAndUser(userCtx, jobKey, user.ID); err == nil {
			slog.InfoContext(userCtx, "email already sent for job, skipping")
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			errs = append(errs, fmt.Errorf("checking sent email for user %d: %w", user.ID, err))
			continue
		}

		messageID, err := p.mailer.Send(userCtx, mail.Message{
			To:      user.Email,
			ToName:  user.Name,
			Subject: rendered.Subject,
			HTML:    rendered.HTML,
			Text:    rendered.Text,
		})
		metrics.RecordEmail(string(t), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("sending email to user %d: %w", user.ID, err))
			continue
		}
		sent++

		record := &model.Email{
			ID:        id.New(),
			OrgID:     &org.ID,
			UserID:    &user.ID,
			JobKey:    &jobKey,
			MessageID: messageID,
			ToAddress: user.Email,
			Subject:   rendered.Subject,
			Status:    model.EmailStatusSent,
		}
		if err := p.stores.Emails().Create(userCtx, record); err != nil {
			// The email went out; a retry would send it twice.
			slog.ErrorContext(userCtx, "failed to record sent email", "error", err, "email_message_id", messageID)
		}
	}

	slog.InfoContext(ctx, "notification emails processed",
		"sent", sent,
		"failed", len(errs),
		"recipients", len(recipients))

	return errors.Join(errs...)
}

// sendPushes is best effort: a failed push is logged, never retried, so a
// retry cannot notify the same device twice.
func (p *Processor) sendPushes(ctx context.Context, org *model.Organization, t model.NotificationType, data model.NotificationData, recipients []model.User) error {
	if p.pusher == nil {
		slog.DebugContext(ctx, "web push not configured, skipping task")
		return nil
	}

	userIDs := make([]int64, 0, len(recipients))
	for _, user := range recipients {
		if user.OrgID == org.ID && user.Wants(model.ChannelPush) {
			userIDs = append(userIDs, user.ID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	subs, err := p.stores.PushSubscriptions().ListByUsers(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("loading push subscriptions: %w", err)
	}

	payload, err := json.Marshal(push.NewPayload(org.Host, t, data))
	if err != nil {
		return fmt.Errorf("encoding push payload: %w", err)
	}

	delivered := 0
	for _, sub := range subs {
		err := p.pusher.Send(ctx, sub, payload)
		switch {
		case err == nil:
			delivered++
			metrics.RecordPush("sent")
		case errors.Is(err, push.ErrSubscriptionGone):
			metrics.RecordPush("gone")
			slog.InfoContext(ctx, "removing expired push subscription", "user_id", sub.UserID)
			if delErr := p.stores.PushSubscriptions().DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil {
				slog.WarnContext(ctx, "failed to delete push subscription", "error", delErr)
			}
		default:
			metrics.RecordPush("error")
			slog.WarnContext(ctx, "push delivery failed", "error", err, "user_id", sub.UserID)
		}
	}

	slog.InfoContext(ctx, "push notifications processed",
		"delivered", delivered,
		"subscriptions", len(subs))
	return nil
}
