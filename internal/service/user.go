package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/store"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, name string, channels []model.NotificationChannel) (*model.User, error)
	ListAdmins(ctx context.Context, orgID int64) ([]model.User, error)
}

type userService struct {
	userStore store.UserStore
}

func NewUserService(userStore store.UserStore) UserService {
	return &userService{userStore: userStore}
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, user *model.User, name string, channels []model.NotificationChannel) (*model.User, error) {
	if err := checkValid(validation.ValidateTextField(name, validation.NameRules, "Name")); err != nil {
		return nil, err
	}

	deduped := make([]model.NotificationChannel, 0, len(channels))
	for _, c := range channels {
		if !model.ValidNotificationChannel(c) {
			return nil, &ValidationError{Fields: []validation.FieldError{{
				Field:   "notification_channels",
				Message: fmt.Sprintf("Unknown notification channel %q", c),
			}}}
		}
		if !slices.Contains(deduped, c) {
			deduped = append(deduped, c)
		}
	}

	updated, err := s.userStore.UpdateProfile(ctx, user.ID, strings.TrimSpace(name), deduped)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update profile",
			"error", err,
			"user_id", user.ID,
		)
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	slog.InfoContext(ctx, "profile updated", "user_id", user.ID, "channels", deduped)
	return updated, nil
}

func (s *userService) ListAdmins(ctx context.Context, orgID int64) ([]model.User, error) {
	admins, err := s.userStore.ListAdmins(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing admins: %w", err)
	}
	return admins, nil
}
