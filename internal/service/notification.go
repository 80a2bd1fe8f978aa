package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/notify"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/store"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

// Recipient is a user to notify and the channels they opted into.
type Recipient struct {
	UserID   int64
	Channels []model.NotificationChannel
}

func (r Recipient) wants(c model.NotificationChannel) bool {
	return slices.Contains(r.Channels, c)
}

type NotificationService interface {
	// Send resolves who should hear about the event and schedules delivery.
	// The actor in data is never notified about their own action.
	Send(ctx context.Context, orgID int64, t model.NotificationType, data model.NotificationData) error
	// Schedule records in-app notifications, pushes immediately and schedules
	// exactly one email dispatch for the event.
	Schedule(ctx context.Context, orgID int64, t model.NotificationType, data model.NotificationData, recipients []Recipient) error
	ListForUser(ctx context.Context, user *model.User, unreadOnly bool, limit int32) ([]model.Notification, error)
	MarkAsRead(ctx context.Context, user *model.User, notificationID int64) (*model.Notification, error)
	MarkAllAsRead(ctx context.Context, user *model.User) (int64, error)
}

type NotificationConfig struct {
	// MessageDelay holds new-message emails so a burst of replies in one
	// thread becomes a single email.
	MessageDelay time.Duration
}

type notificationService struct {
	notificationStore store.NotificationStore
	userStore         store.UserStore
	membershipStore   store.MembershipStore
	messageStore      store.MessageStore
	scheduler         notify.Scheduler
	producer          queue.Producer
	cfg               NotificationConfig
}

func NewNotificationService(
	notificationStore store.NotificationStore,
	userStore store.UserStore,
	membershipStore store.MembershipStore,
	messageStore store.MessageStore,
	scheduler notify.Scheduler,
	producer queue.Producer,
	cfg NotificationConfig,
) NotificationService {
	return &notificationService{
		notificationStore: notificationStore,
		userStore:         userStore,
		membershipStore:   membershipStore,
		messageStore:      messageStore,
		scheduler:         scheduler,
		producer:          producer,
		cfg:               cfg,
	}
}

func (s *notificationService) Send(ctx context.Context, orgID int64, t model.NotificationType, data model.NotificationData) error {
	userIDs, err := s.recipientIDs(ctx, orgID, t, data)
	if err != nil {
		return err
	}

	if data.ActorID != nil {
		userIDs = slices.DeleteFunc(userIDs, func(id int64) bool { return id == *data.ActorID })
	}
	if len(userIDs) == 0 {
		slog.DebugContext(ctx, "no recipients for notification", "type", t)
		return nil
	}

	users, err := s.userStore.ListByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("loading recipients: %w", err)
	}

	recipients := make([]Recipient, 0, len(users))
	for _, u := range users {
		if u.OrgID != orgID {
			continue
		}
		recipients = append(recipients, Recipient{UserID: u.ID, Channels: u.NotificationChannels})
	}

	return s.Schedule(ctx, orgID, t, data, recipients)
}

func (s *notificationService) recipientIDs(ctx context.Context, orgID int64, t model.NotificationType, data model.NotificationData) ([]int64, error) {
	switch t {
	case model.NotificationNewThread:
		if data.FeedID == nil {
			return nil, fmt.Errorf("%s requires feed_id", t)
		}
		ids, err := s.membershipStore.ListMemberIDs(ctx, *data.FeedID)
		if err != nil {
			return nil, fmt.Errorf("listing feed members: %w", err)
		}
		return ids, nil
	case model.NotificationNewMessage:
		if data.ThreadID == nil {
			return nil, fmt.Errorf("%s requires thread_id", t)
		}
		ids, err := s.messageStore.ListParticipantIDs(ctx, *data.ThreadID)
		if err != nil {
			return nil, fmt.Errorf("listing thread participants: %w", err)
		}
		return ids, nil
	case model.NotificationNewFeedMember:
		if data.FeedID == nil {
			return nil, fmt.Errorf("%s requires feed_id", t)
		}
		ids, err := s.membershipStore.ListOwnerIDs(ctx, *data.FeedID)
		if err != nil {
			return nil, fmt.Errorf("listing feed owners: %w", err)
		}
		return ids, nil
	case model.NotificationUserRegistration:
		admins, err := s.userStore.ListAdmins(ctx, orgID)
		if err != nil {
			return nil, fmt.Errorf("listing admins: %w", err)
		}
		ids := make([]int64, len(admins))
		for i, a := range admins {
			ids[i] = a.ID
		}
		return ids, nil
	}
	return nil, fmt.Errorf("unknown notification type %q", t)
}

func (s *notificationService) Schedule(ctx context.Context, orgID int64, t model.NotificationType, data model.NotificationData, recipients []Recipient) error {
	if !model.ValidNotificationType(t) {
		return fmt.Errorf("unknown notification type %q", t)
	}
	if len(recipients) == 0 {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding notification data: %w", err)
	}

	var pushIDs, emailIDs []int64
	for _, r := range recipients {
		n := &model.Notification{
			ID:     id.New(),
			OrgID:  orgID,
			UserID: r.UserID,
			Type:   t,
			Data:   payload,
		}
		if err := s.notificationStore.Create(ctx, n); err != nil {
			return fmt.Errorf("creating notification for user %d: %w", r.UserID, err)
		}
		if r.wants(model.ChannelPush) {
			pushIDs = append(pushIDs, r.UserID)
		}
		if r.wants(model.ChannelEmail) {
			emailIDs = append(emailIDs, r.UserID)
		}
	}

	traceID := logger.TraceID(ctx)
	var errs []error

	if len(pushIDs) > 0 {
		task := queue.Task{
			TaskType:         queue.TaskTypePushNotification,
			OrgID:            orgID,
			NotificationType: string(t),
			RecipientIDs:     pushIDs,
			Data:             payload,
		}
		if traceID != "" {
			task.TraceID = &traceID
		}
		if err := s.producer.Enqueue(ctx, task); err != nil {
			errs = append(errs, fmt.Errorf("enqueueing push: %w", err))
		}
	}

	if len(emailIDs) > 0 {
		var delay time.Duration
		if t == model.NotificationNewMessage {
			delay = s.cfg.MessageDelay
		}
		job, err := s.scheduler.Schedule(ctx, notify.Job{
			Key:          notify.JobKey(t, data),
			OrgID:        orgID,
			Type:         t,
			RecipientIDs: emailIDs,
			Data:         payload,
			TraceID:      traceID,
		}, delay)
		if err != nil {
			errs = append(errs, fmt.Errorf("scheduling email: %w", err))
		} else {
			metrics.RecordNotificationScheduled(string(t))
			slog.InfoContext(ctx, "email notification scheduled",
				"type", t,
				"job_key", job.Key,
				"due_at", job.DueAt,
				"recipients", len(emailIDs))
		}
	}

	return errors.Join(errs...)
}

func (s *notificationService) ListForUser(ctx context.Context, user *model.User, unreadOnly bool, limit int32) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	limit = min(limit, MaxNotificationLimit)

	notifications, err := s.notificationStore.ListByUser(ctx, user.ID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, user *model.User, notificationID int64) (*model.Notification, error) {
	n, err := s.notificationStore.MarkRead(ctx, notificationID, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("marking notification read: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, user *model.User) (int64, error) {
	n, err := s.notificationStore.MarkAllRead(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("marking all notifications read: %w", err)
	}
	return n, nil
}
