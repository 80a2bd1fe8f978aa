package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service/identity"
	"churchthreads.app/api/internal/store"
)

type RegisterParams struct {
	OrgID int64
	Token string
	Name  string
	Email string
}

type RegisterResult struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

type RegistrationService interface {
	// Register creates an account from an invite. The local user, and the
	// provider user once created, are removed again when a later step fails
	// so the invitee can retry.
	Register(ctx context.Context, params RegisterParams) (*RegisterResult, error)
}

type registrationService struct {
	userStore     store.UserStore
	txRunner      TxRunner
	invitations   InvitationService
	notifications NotificationService
	provider      identity.Provider
}

func NewRegistrationService(
	userStore store.UserStore,
	txRunner TxRunner,
	invitations InvitationService,
	notifications NotificationService,
	provider identity.Provider,
) RegistrationService {
	return &registrationService{
		userStore:     userStore,
		txRunner:      txRunner,
		invitations:   invitations,
		notifications: notifications,
		provider:      provider,
	}
}

func (s *registrationService) Register(ctx context.Context, params RegisterParams) (result *RegisterResult, err error) {
	defer func() { metrics.RecordRegistration(err) }()

	if err := checkValid(
		validation.ValidateTextField(params.Name, validation.NameRules, "Name"),
		validation.ValidateEmailField(params.Email, validation.EmailRules{Required: true}, "Email"),
	); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	email := validation.NormalizeEmail(params.Email)

	invite, err := s.invitations.Validate(ctx, params.OrgID, params.Token, email)
	if err != nil {
		return nil, err
	}

	user, err := s.createLocalUser(ctx, params.OrgID, name, email)
	if err != nil {
		return nil, err
	}

	first, last := identity.SplitName(name)
	idUser, err := s.provider.CreateUser(ctx, identity.CreateUserParams{
		Email:     email,
		FirstName: first,
		LastName:  last,
	})
	if err != nil {
		slog.ErrorContext(ctx, "identity provider rejected registration", "error", err, "user_id", user.ID)
		s.rollback(ctx, user)
		return nil, fmt.Errorf("%w: %w", ErrIdentityProvider, err)
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		linked, err := stores.Users().SetWorkOSID(ctx, user.ID, idUser.ID)
		if err != nil {
			return fmt.Errorf("linking identity: %w", err)
		}
		user = linked

		for _, feedID := range invite.FeedIDs {
			err := stores.Memberships().Upsert(ctx, &model.UserFeed{
				UserID: user.ID,
				FeedID: feedID,
				OrgID:  user.OrgID,
			})
			if err != nil {
				return fmt.Errorf("joining feed %d: %w", feedID, err)
			}
		}

		_, err = consumeInvite(ctx, stores.Invites(), invite.ID)
		return err
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to finish registration",
			"error", err,
			"user_id", user.ID,
			"workos_id", idUser.ID,
		)
		s.rollbackIdentity(ctx, idUser.ID)
		s.rollback(ctx, user)
		return nil, err
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"invite_id", invite.ID,
		"feed_count", len(invite.FeedIDs),
	)

	err = s.notifications.Send(ctx, user.OrgID, model.NotificationUserRegistration, model.NotificationData{
		ActorID:   &user.ID,
		ActorName: user.Name,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to notify admins of registration", "error", err, "user_id", user.ID)
	}

	return &RegisterResult{Success: true, Email: email}, nil
}

func (s *registrationService) createLocalUser(ctx context.Context, orgID int64, name, email string) (*model.User, error) {
	if _, err := s.userStore.GetByOrgAndEmail(ctx, orgID, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	user := &model.User{
		ID:                   id.New(),
		OrgID:                orgID,
		Email:                email,
		Name:                 name,
		Role:                 model.RoleUser,
		NotificationChannels: model.DefaultNotificationChannels,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *registrationService) rollbackIdentity(ctx context.Context, workosID string) {
	if err := s.provider.DeleteUser(ctx, workosID); err != nil {
		slog.ErrorContext(ctx, "failed to roll back identity provider user", "error", err, "workos_id", workosID)
		return
	}
	slog.InfoContext(ctx, "rolled back identity provider user", "workos_id", workosID)
}

func (s *registrationService) rollback(ctx context.Context, user *model.User) {
	if err := s.userStore.Delete(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to roll back local user", "error", err, "user_id", user.ID)
		return
	}
	slog.InfoContext(ctx, "rolled back local user", "user_id", user.ID)
}
