package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

type CreateFeedParams struct {
	Name              string
	Description       *string
	Privacy           model.FeedPrivacy
	MemberPermissions []model.MemberPermission
}

type FeedService interface {
	// Create makes a feed in the user's organization with the user as owner.
	Create(ctx context.Context, user *model.User, params CreateFeedParams) (*model.Feed, error)
	NameExists(ctx context.Context, orgID int64, name string) (bool, error)
	// Get returns a feed the user may see. Private feeds are hidden from
	// non-members unless the user is an admin.
	Get(ctx context.Context, user *model.User, feedID int64) (*model.Feed, error)
	ListForUser(ctx context.Context, user *model.User) ([]model.FeedWithMembership, error)
	ListOpen(ctx context.Context, orgID int64) ([]model.Feed, error)
	// ListInvitable returns the feeds the user may invite people into.
	ListInvitable(ctx context.Context, user *model.User) ([]model.Feed, error)
	Join(ctx context.Context, user *model.User, feedID int64) (*model.UserFeed, error)
	RemoveMember(ctx context.Context, actor *model.User, feedID, userID int64) error
	Permissions(ctx context.Context, user *model.User, feedID int64) (model.FeedPermissions, error)
}

type feedService struct {
	feedStore       store.FeedStore
	membershipStore store.MembershipStore
	txRunner        TxRunner
	notifications   NotificationService
}

func NewFeedService(
	feedStore store.FeedStore,
	membershipStore store.MembershipStore,
	txRunner TxRunner,
	notifications NotificationService,
) FeedService {
	return &feedService{
		feedStore:       feedStore,
		membershipStore: membershipStore,
		txRunner:        txRunner,
		notifications:   notifications,
	}
}

func (s *feedService) Create(ctx context.Context, user *model.User, params CreateFeedParams) (*model.Feed, error) {
	results := []validation.Result{
		validation.ValidateTextField(params.Name, validation.FeedNameRules, "Name"),
	}
	if params.Description != nil {
		results = append(results, validation.ValidateTextField(*params.Description, validation.FeedDescriptionRules, "Description"))
	}
	if params.Privacy == "" {
		params.Privacy = model.FeedPrivate
	}
	if !model.ValidFeedPrivacy(params.Privacy) {
		results = append(results, validation.Result{Errors: []validation.FieldError{{
			Field:   "privacy",
			Message: fmt.Sprintf("Unknown privacy %q", params.Privacy),
		}}})
	}
	permissions := make([]model.MemberPermission, 0, len(params.MemberPermissions))
	for _, p := range params.MemberPermissions {
		if !model.ValidMemberPermission(p) {
			results = append(results, validation.Result{Errors: []validation.FieldError{{
				Field:   "member_permissions",
				Message: fmt.Sprintf("Unknown member permission %q", p),
			}}})
			continue
		}
		if !slices.Contains(permissions, p) {
			permissions = append(permissions, p)
		}
	}
	if err := checkValid(results...); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	exists, err := s.NameExists(ctx, user.OrgID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFeedNameTaken
	}

	feed := &model.Feed{
		ID:                id.New(),
		OrgID:             user.OrgID,
		Name:              name,
		Description:       trimmedOrNil(params.Description),
		Privacy:           params.Privacy,
		MemberPermissions: permissions,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Feeds().Create(ctx, feed); err != nil {
			return err
		}
		return stores.Memberships().Upsert(ctx, &model.UserFeed{
			UserID: user.ID,
			FeedID: feed.ID,
			OrgID:  user.OrgID,
			Owner:  true,
		})
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrFeedNameTaken
		}
		slog.ErrorContext(ctx, "failed to create feed",
			"error", err,
			"name", name,
		)
		return nil, fmt.Errorf("creating feed: %w", err)
	}

	slog.InfoContext(ctx, "feed created",
		"feed_id", feed.ID,
		"privacy", feed.Privacy,
	)
	return feed, nil
}

func (s *feedService) NameExists(ctx context.Context, orgID int64, name string) (bool, error) {
	_, err := s.feedStore.GetByOrgAndName(ctx, orgID, strings.TrimSpace(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("checking feed name: %w", err)
}

func (s *feedService) Get(ctx context.Context, user *model.User, feedID int64) (*model.Feed, error) {
	feed, membership, err := s.load(ctx, user, feedID)
	if err != nil {
		return nil, err
	}
	if feed.Privacy == model.FeedPrivate && membership == nil && !user.IsAdmin() {
		return nil, ErrFeedNotFound
	}
	return feed, nil
}

// load returns the feed and the user's membership in it, nil when not a member.
func (s *feedService) load(ctx context.Context, user *model.User, feedID int64) (*model.Feed, *model.UserFeed, error) {
	feed, err := s.feedStore.GetByID(ctx, feedID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrFeedNotFound
		}
		return nil, nil, fmt.Errorf("getting feed: %w", err)
	}
	if feed.OrgID != user.OrgID {
		return nil, nil, ErrFeedNotFound
	}

	membership, err := s.membershipStore.Get(ctx, user.ID, feedID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("getting membership: %w", err)
		}
		membership = nil
	}
	return feed, membership, nil
}

func (s *feedService) ListForUser(ctx context.Context, user *model.User) ([]model.FeedWithMembership, error) {
	feeds, err := s.feedStore.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing feeds: %w", err)
	}
	return feeds, nil
}

func (s *feedService) ListOpen(ctx context.Context, orgID int64) ([]model.Feed, error) {
	feeds, err := s.feedStore.ListOpen(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing open feeds: %w", err)
	}
	return feeds, nil
}

func (s *feedService) ListInvitable(ctx context.Context, user *model.User) ([]model.Feed, error) {
	var (
		feeds []model.Feed
		err   error
	)
	if user.IsAdmin() {
		feeds, err = s.feedStore.ListByOrg(ctx, user.OrgID)
	} else {
		feeds, err = s.feedStore.ListOwned(ctx, user.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing invitable feeds: %w", err)
	}
	return feeds, nil
}

func (s *feedService) Join(ctx context.Context, user *model.User, feedID int64) (*model.UserFeed, error) {
	feed, membership, err := s.load(ctx, user, feedID)
	if err != nil {
		return nil, err
	}
	if membership != nil {
		return membership, nil
	}
	if feed.Privacy != model.FeedOpen {
		return nil, ErrFeedNotJoinable
	}

	membership = &model.UserFeed{
		UserID: user.ID,
		FeedID: feed.ID,
		OrgID:  feed.OrgID,
	}
	if err := s.membershipStore.Upsert(ctx, membership); err != nil {
		return nil, fmt.Errorf("joining feed: %w", err)
	}

	slog.InfoContext(ctx, "user joined feed", "feed_id", feed.ID, "user_id", user.ID)

	err = s.notifications.Send(ctx, feed.OrgID, model.NotificationNewFeedMember, model.NotificationData{
		FeedID:    &feed.ID,
		ActorID:   &user.ID,
		ActorName: user.Name,
		FeedName:  feed.Name,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to notify feed owners", "error", err, "feed_id", feed.ID)
	}
	return membership, nil
}

func (s *feedService) RemoveMember(ctx context.Context, actor *model.User, feedID, userID int64) error {
	_, membership, err := s.load(ctx, actor, feedID)
	if err != nil {
		return err
	}

	selfLeave := actor.ID == userID
	isOwner := membership != nil && membership.Owner
	if !selfLeave && !isOwner && !actor.IsAdmin() {
		return ErrForbidden
	}

	removed, err := s.membershipStore.Delete(ctx, userID, feedID)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	if !removed {
		return ErrMemberNotFound
	}

	slog.InfoContext(ctx, "feed member removed",
		"feed_id", feedID,
		"user_id", userID,
		"self_leave", selfLeave)
	return nil
}

func (s *feedService) Permissions(ctx context.Context, user *model.User, feedID int64) (model.FeedPermissions, error) {
	feed, membership, err := s.load(ctx, user, feedID)
	if err != nil {
		return model.FeedPermissions{}, err
	}
	return permissionsFor(user, feed, membership), nil
}

func permissionsFor(user *model.User, feed *model.Feed, membership *model.UserFeed) model.FeedPermissions {
	perms := model.FeedPermissions{
		IsMember: membership != nil,
		IsOwner:  membership != nil && membership.Owner,
	}
	if perms.IsOwner || user.IsAdmin() {
		perms.CanPost = true
		perms.CanMessage = true
		return perms
	}
	if perms.IsMember {
		perms.CanPost = feed.Allows(model.PermissionPost)
		perms.CanMessage = feed.Allows(model.PermissionMessage)
	}
	return perms
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
