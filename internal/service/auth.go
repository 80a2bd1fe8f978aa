package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service/identity"
	"churchthreads.app/api/internal/store"
)

const (
	SessionTTL = 7 * 24 * time.Hour
	// SessionTokenLength is the number of random bytes in a session token.
	SessionTokenLength = 32
)

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	// HandleCallback signs a provider user into orgID. Accounts are created
	// by registration only; an unknown user gets ErrUserNotRegistered.
	HandleCallback(ctx context.Context, orgID int64, code string) (*model.User, *model.Session, error)
	// ValidateSession resolves the user behind a session cookie token.
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	provider     identity.Provider
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	provider identity.Provider,
) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		provider:     provider,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	return s.provider.AuthorizationURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, orgID int64, code string) (*model.User, *model.Session, error) {
	idUser, err := s.provider.AuthenticateWithCode(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	user, err := s.resolveUser(ctx, orgID, idUser)
	if err != nil {
		return nil, nil, err
	}

	token, err := generateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, nil, fmt.Errorf("generating session token: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     token,
		TokenHash: hashSessionToken(token),
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"org_id", user.OrgID,
		"session_id", session.ID,
	)

	return user, session, nil
}

// resolveUser finds the local account for a provider user, linking it by
// email the first time a user created before the provider account signs in.
func (s *authService) resolveUser(ctx context.Context, orgID int64, idUser *identity.User) (*model.User, error) {
	user, err := s.userStore.GetByWorkOSID(ctx, idUser.ID)
	switch {
	case err == nil:
		if user.OrgID != orgID {
			slog.WarnContext(ctx, "user signed in to an organization they do not belong to",
				"user_id", user.ID,
				"org_id", orgID)
			return nil, ErrUserNotRegistered
		}
		return user, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("getting user by workos id: %w", err)
	}

	user, err = s.userStore.GetByOrgAndEmail(ctx, orgID, validation.NormalizeEmail(idUser.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	if user.WorkOSID != nil {
		// Linked to a different provider account.
		return nil, ErrUserNotRegistered
	}

	linked, err := s.userStore.SetWorkOSID(ctx, user.ID, idUser.ID)
	if err != nil {
		return nil, fmt.Errorf("linking workos user: %w", err)
	}
	slog.InfoContext(ctx, "linked local user to identity provider", "user_id", linked.ID)
	return linked, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}
	session, err := s.sessionStore.GetValidByTokenHash(ctx, hashSessionToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionStore.DeleteByTokenHash(ctx, hashSessionToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// hashSessionToken is what the database stores, so a leaked sessions table
// does not hand out live cookies.
func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
