package service

import (
	"churchthreads.app/api/core/config"
	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/notify"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/service/identity"
	"churchthreads.app/api/internal/storage"
	"churchthreads.app/api/internal/store"
)

// Deps are the outside collaborators services talk to.
type Deps struct {
	Identity  identity.Provider
	Scheduler notify.Scheduler
	Producer  queue.Producer
	Mailer    mail.Sender
	Renderer  *mail.Renderer
	Blobs     storage.BlobStore
}

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	deps     Deps
	cfg      config.Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, deps Deps, cfg config.Config) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		deps:     deps,
		cfg:      cfg,
	}
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.cfg.Host)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.deps.Identity)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(
		s.stores.Notifications(),
		s.stores.Users(),
		s.stores.Memberships(),
		s.stores.Messages(),
		s.deps.Scheduler,
		s.deps.Producer,
		NotificationConfig{MessageDelay: s.cfg.Notifications.MessageDelay},
	)
}

func (s *Services) Feeds() FeedService {
	return NewFeedService(s.stores.Feeds(), s.stores.Memberships(), s.txRunner, s.Notifications())
}

func (s *Services) Threads() ThreadService {
	return NewThreadService(s.stores.Threads(), s.stores.Messages(), s.Feeds(), s.Notifications())
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.stores.Invites(),
		s.stores.Users(),
		s.stores.Feeds(),
		s.stores.Memberships(),
		s.stores.Organizations(),
		s.stores.Emails(),
		s.deps.Mailer,
		s.deps.Renderer,
		InvitationConfig{
			EmailTTL: s.cfg.Invites.EmailTTL,
			LinkTTL:  s.cfg.Invites.LinkTTL,
		},
	)
}

func (s *Services) Registration() RegistrationService {
	return NewRegistrationService(
		s.stores.Users(),
		s.txRunner,
		s.Invitations(),
		s.Notifications(),
		s.deps.Identity,
	)
}

func (s *Services) Uploads() UploadService {
	return NewUploadService(s.stores.Uploads(), s.txRunner, s.Feeds(), s.deps.Blobs)
}

func (s *Services) EmailEvents() (EmailEventService, error) {
	return NewEmailEventService(s.stores.Emails(), s.cfg.Email.WebhookSecret)
}

func (s *Services) Push() PushService {
	return NewPushService(s.stores.PushSubscriptions(), s.cfg.Push.VAPIDPublicKey)
}
