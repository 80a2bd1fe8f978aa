package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

const InviteTokenLength = 32

type CreateInviteParams struct {
	OrgID   int64
	Type    model.InviteType
	Name    *string
	Email   *string
	FeedIDs []int64
}

type InviteRecipient struct {
	Email string
	Name  *string
}

// InviteResult is the outcome for one recipient of a bulk email invitation.
type InviteResult struct {
	Email    string `json:"email"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	InviteID *int64 `json:"invite_id,omitempty,string"`
}

// InviteLookup is what the registration page may learn about an invite.
type InviteLookup struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

type InvitationConfig struct {
	EmailTTL time.Duration
	LinkTTL  time.Duration
}

type InvitationService interface {
	// Create returns the invite and the registration URL carrying its token.
	Create(ctx context.Context, actor *model.User, params CreateInviteParams) (*model.Invite, string, error)
	// CreateAndSendEmailInvitations invites each recipient independently.
	// A failed recipient is reported in its result and does not stop the batch.
	CreateAndSendEmailInvitations(ctx context.Context, actor *model.User, orgID int64, feedIDs []int64, recipients []InviteRecipient) ([]InviteResult, error)
	Lookup(ctx context.Context, orgID int64, token string) (*InviteLookup, error)
	Validate(ctx context.Context, orgID int64, token, email string) (*model.Invite, error)
	Revoke(ctx context.Context, actor *model.User, inviteID int64) error
	ListForOrg(ctx context.Context, actor *model.User) ([]model.Invite, error)
	// ConsumeUse records one use. It fails with ErrInviteExpired when the
	// invite expired or every use is taken.
	ConsumeUse(ctx context.Context, inviteID int64) (*model.Invite, error)
}

type invitationService struct {
	inviteStore     store.InviteStore
	userStore       store.UserStore
	feedStore       store.FeedStore
	membershipStore store.MembershipStore
	orgStore        store.OrganizationStore
	emailStore      store.EmailStore
	mailer          mail.Sender
	renderer        *mail.Renderer
	cfg             InvitationConfig
	now             func() time.Time
}

func NewInvitationService(
	inviteStore store.InviteStore,
	userStore store.UserStore,
	feedStore store.FeedStore,
	membershipStore store.MembershipStore,
	orgStore store.OrganizationStore,
	emailStore store.EmailStore,
	mailer mail.Sender,
	renderer *mail.Renderer,
	cfg InvitationConfig,
) InvitationService {
	if cfg.EmailTTL <= 0 {
		cfg.EmailTTL = 3 * 24 * time.Hour
	}
	if cfg.LinkTTL <= 0 {
		cfg.LinkTTL = 24 * time.Hour
	}
	return &invitationService{
		inviteStore:     inviteStore,
		userStore:       userStore,
		feedStore:       feedStore,
		membershipStore: membershipStore,
		orgStore:        orgStore,
		emailStore:      emailStore,
		mailer:          mailer,
		renderer:        renderer,
		cfg:             cfg,
		now:             time.Now,
	}
}

func (s *invitationService) Create(ctx context.Context, actor *model.User, params CreateInviteParams) (*model.Invite, string, error) {
	if actor.OrgID != params.OrgID {
		return nil, "", ErrForbidden
	}

	var email *string
	if params.Email != nil {
		normalized := validation.NormalizeEmail(*params.Email)
		if normalized != "" {
			email = &normalized
		}
	}

	results := []validation.Result{}
	switch params.Type {
	case model.InviteTypeEmail:
		results = append(results, validation.ValidateEmailField(deref(email), validation.EmailRules{Required: true}, "Email"))
	case model.InviteTypeLink:
		if email != nil {
			results = append(results, validation.ValidateEmailField(*email, validation.EmailRules{}, "Email"))
		}
	default:
		results = append(results, validation.Result{Errors: []validation.FieldError{{
			Field:   "type",
			Message: fmt.Sprintf("Unknown invite type %q", params.Type),
		}}})
	}
	if params.Name != nil {
		results = append(results, validation.ValidateTextField(*params.Name, validation.InviteeNameRules, "Name"))
	}
	if err := checkValid(results...); err != nil {
		return nil, "", err
	}

	if email != nil {
		if err := s.checkEmailAvailable(ctx, params.OrgID, *email); err != nil {
			return nil, "", err
		}
	}

	feedIDs, err := s.authorizeFeeds(ctx, actor, params.FeedIDs)
	if err != nil {
		return nil, "", err
	}

	org, err := s.orgStore.GetByID(ctx, params.OrgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrOrgNotFound
		}
		return nil, "", fmt.Errorf("getting organization: %w", err)
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	invite := &model.Invite{
		ID:        id.New(),
		OrgID:     params.OrgID,
		Type:      params.Type,
		Name:      trimmedOrNil(params.Name),
		Email:     email,
		FeedIDs:   feedIDs,
		Token:     token,
		CreatedBy: actor.ID,
	}
	if params.Type == model.InviteTypeEmail {
		single := int32(1)
		invite.MaxUses = &single
		invite.ExpiresAt = s.now().Add(s.cfg.EmailTTL)
	} else {
		invite.ExpiresAt = s.now().Add(s.cfg.LinkTTL)
	}

	if err := s.inviteStore.Create(ctx, invite); err != nil {
		slog.ErrorContext(ctx, "failed to create invite", "error", err, "type", params.Type)
		return nil, "", fmt.Errorf("creating invite: %w", err)
	}

	slog.InfoContext(ctx, "invite created",
		"invite_id", invite.ID,
		"type", invite.Type,
		"feed_count", len(invite.FeedIDs),
		"expires_at", invite.ExpiresAt,
	)

	return invite, mail.RegisterURL(org.Host, token), nil
}

func (s *invitationService) checkEmailAvailable(ctx context.Context, orgID int64, email string) error {
	if _, err := s.userStore.GetByOrgAndEmail(ctx, orgID, email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking existing user: %w", err)
	}

	if _, err := s.inviteStore.GetActiveByEmail(ctx, orgID, email); err == nil {
		return ErrInvitePendingExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("checking pending invites: %w", err)
	}
	return nil
}

// authorizeFeeds checks that every feed is in the actor's organization and
// that the actor may invite into it. Admins may invite into any feed; everyone
// else must own each feed they name. Any member may invite with no feeds.
func (s *invitationService) authorizeFeeds(ctx context.Context, actor *model.User, feedIDs []int64) ([]int64, error) {
	unique := make([]int64, 0, len(feedIDs))
	for _, feedID := range feedIDs {
		if !slices.Contains(unique, feedID) {
			unique = append(unique, feedID)
		}
	}

	for _, feedID := range unique {
		feed, err := s.feedStore.GetByID(ctx, feedID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrFeedNotFound
			}
			return nil, fmt.Errorf("getting feed %d: %w", feedID, err)
		}
		if feed.OrgID != actor.OrgID {
			return nil, ErrFeedNotFound
		}
		if actor.IsAdmin() {
			continue
		}

		membership, err := s.membershipStore.Get(ctx, actor.ID, feedID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting membership: %w", err)
		}
		if membership == nil || !membership.Owner {
			return nil, ErrForbidden
		}
	}
	return unique, nil
}

func (s *invitationService) CreateAndSendEmailInvitations(ctx context.Context, actor *model.User, orgID int64, feedIDs []int64, recipients []InviteRecipient) ([]InviteResult, error) {
	if actor.OrgID != orgID {
		return nil, ErrForbidden
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	results := make([]InviteResult, 0, len(recipients))
	for _, r := range recipients {
		result := InviteResult{Email: validation.NormalizeEmail(r.Email)}

		inviteID, err := s.inviteByEmail(ctx, actor, org, feedIDs, r)
		if err != nil {
			slog.WarnContext(ctx, "email invitation failed", "error", err, "email", result.Email)
			result.Error = err.Error()
		} else {
			result.Success = true
			result.InviteID = &inviteID
		}
		results = append(results, result)
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	slog.InfoContext(ctx, "email invitations processed",
		"total", len(results),
		"succeeded", succeeded,
	)
	return results, nil
}

func (s *invitationService) inviteByEmail(ctx context.Context, actor *model.User, org *model.Organization, feedIDs []int64, r InviteRecipient) (int64, error) {
	email := r.Email
	invite, _, err := s.Create(ctx, actor, CreateInviteParams{
		OrgID:   org.ID,
		Type:    model.InviteTypeEmail,
		Name:    r.Name,
		Email:   &email,
		FeedIDs: feedIDs,
	})
	if err != nil {
		return 0, err
	}

	rendered, err := s.renderer.Invitation(mail.InvitationEmail{
		OrgName:     org.Name,
		OrgHost:     org.Host,
		InviterName: actor.Name,
		InviteeName: deref(invite.Name),
		Token:       invite.Token,
		ExpiresAt:   invite.ExpiresAt,
	})
	if err == nil {
		err = s.sendInvitation(ctx, org, invite, rendered)
	}
	if err != nil {
		// Without the email nobody can use the invite, and it would block a
		// second attempt for the same address.
		if delErr := s.inviteStore.Delete(ctx, invite.ID); delErr != nil {
			slog.ErrorContext(ctx, "failed to delete unsent invite", "error", delErr, "invite_id", invite.ID)
		}
		return 0, fmt.Errorf("sending invitation: %w", err)
	}
	return invite.ID, nil
}

func (s *invitationService) sendInvitation(ctx context.Context, org *model.Organization, invite *model.Invite, rendered mail.Rendered) error {
	to := deref(invite.Email)
	messageID, err := s.mailer.Send(ctx, mail.Message{
		To:      to,
		ToName:  deref(invite.Name),
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
	if err != nil {
		return err
	}

	record := &model.Email{
		ID:        id.New(),
		OrgID:     &org.ID,
		MessageID: messageID,
		ToAddress: to,
		Subject:   rendered.Subject,
		Status:    model.EmailStatusSent,
	}
	if err := s.emailStore.Create(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record invitation email", "error", err, "email_message_id", messageID)
	}
	return nil
}

func (s *invitationService) Lookup(ctx context.Context, orgID int64, token string) (*InviteLookup, error) {
	invite, err := s.usable(ctx, orgID, token)
	if err != nil {
		return nil, err
	}
	return &InviteLookup{Email: invite.Email, Name: invite.Name}, nil
}

func (s *invitationService) Validate(ctx context.Context, orgID int64, token, email string) (*model.Invite, error) {
	invite, err := s.usable(ctx, orgID, token)
	if err != nil {
		return nil, err
	}
	if invite.Email != nil && *invite.Email != validation.NormalizeEmail(email) {
		return nil, ErrInviteEmailMismatch
	}
	return invite, nil
}

// usable returns the invite for token when it belongs to orgID and can still
// be used.
func (s *invitationService) usable(ctx context.Context, orgID int64, token string) (*model.Invite, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInviteInvalid
	}

	invite, err := s.inviteStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, fmt.Errorf("getting invite: %w", err)
	}
	if invite.OrgID != orgID {
		return nil, ErrInviteInvalid
	}
	if invite.IsExpired(s.now()) {
		return nil, ErrInviteExpired
	}
	return invite, nil
}

func (s *invitationService) Revoke(ctx context.Context, actor *model.User, inviteID int64) error {
	invite, err := s.inviteStore.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("getting invite: %w", err)
	}
	if invite.OrgID != actor.OrgID {
		return ErrInviteNotFound
	}
	if invite.CreatedBy != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}

	if err := s.inviteStore.Delete(ctx, inviteID); err != nil {
		return fmt.Errorf("deleting invite: %w", err)
	}

	slog.InfoContext(ctx, "invite revoked", "invite_id", inviteID)
	return nil
}

func (s *invitationService) ListForOrg(ctx context.Context, actor *model.User) ([]model.Invite, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	invites, err := s.inviteStore.ListByOrg(ctx, actor.OrgID)
	if err != nil {
		return nil, fmt.Errorf("listing invites: %w", err)
	}
	return invites, nil
}

func (s *invitationService) ConsumeUse(ctx context.Context, inviteID int64) (*model.Invite, error) {
	return consumeInvite(ctx, s.inviteStore, inviteID)
}

func consumeInvite(ctx context.Context, inviteStore store.InviteStore, inviteID int64) (*model.Invite, error) {
	invite, err := inviteStore.ConsumeUse(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteExpired
		}
		return nil, fmt.Errorf("consuming invite: %w", err)
	}
	return invite, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
