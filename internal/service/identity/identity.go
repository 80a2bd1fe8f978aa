// Package identity wraps the hosted identity provider (WorkOS AuthKit) that
// owns credentials. Local users link to provider users by id.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"churchthreads.app/api/core/config"
)

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Name joins first and last name, falling back to the email.
func (u User) Name() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

type CreateUserParams struct {
	Email     string
	FirstName string
	LastName  string
}

type Provider interface {
	AuthorizationURL(state string) (string, error)
	AuthenticateWithCode(ctx context.Context, code string) (*User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// SplitName splits a display name into first name (first word) and last
// name (the rest).
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

type workOSProvider struct {
	cfg config.WorkOSConfig
}

func NewWorkOSProvider(cfg config.WorkOSConfig) Provider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) AuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *workOSProvider) AuthenticateWithCode(ctx context.Context, code string) (*User, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating with code: %w", err)
	}
	return fromWorkOS(resp.User), nil
}

func (p *workOSProvider) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	user, err := usermanagement.CreateUser(ctx, usermanagement.CreateUserOpts{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		// The invite link proved control of the address.
		EmailVerified: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating workos user: %w", err)
	}
	return fromWorkOS(user), nil
}

func (p *workOSProvider) DeleteUser(ctx context.Context, userID string) error {
	if err := usermanagement.DeleteUser(ctx, usermanagement.DeleteUserOpts{User: userID}); err != nil {
		return fmt.Errorf("deleting workos user %s: %w", userID, err)
	}
	return nil
}

func fromWorkOS(u usermanagement.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
