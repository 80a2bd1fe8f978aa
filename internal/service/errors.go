package service

import (
	"errors"

	"churchthreads.app/api/common/validation"
)

var (
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrOrgNotFound  = errors.New("organization not found")
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCode          = errors.New("invalid authorization code")
	ErrSessionExpired       = errors.New("session expired")
	ErrUserNotRegistered    = errors.New("no account for this email; ask your church for an invite")
	ErrUserAlreadyExists    = errors.New("a user with this email already exists")
	ErrIdentityProvider     = errors.New("identity provider error")
	ErrFeedNotFound         = errors.New("feed not found")
	ErrFeedNameTaken        = errors.New("a feed with this name already exists")
	ErrFeedNotJoinable      = errors.New("only open feeds can be joined")
	ErrMemberNotFound       = errors.New("membership not found")
	ErrThreadNotFound       = errors.New("thread not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Shown to invitees verbatim.
	ErrInviteInvalid       = errors.New("Invalid invite link")
	ErrInviteExpired       = errors.New("This invite has expired. Please reach out to your church.")
	ErrInviteEmailMismatch = errors.New("This invite was sent to a different email address")
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInvitePendingExists = errors.New("an active invite already exists for this email")

	ErrFeedIDRequired   = errors.New("feedId is required for thread and message uploads")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// ValidationError carries every failing field. errors.Is(err, ErrValidation)
// holds for it.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return e.Fields[0].Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// checkValid turns a failed validation result into a *ValidationError.
func checkValid(results ...validation.Result) error {
	merged := validation.Merge(results...)
	if merged.Valid {
		return nil
	}
	return &ValidationError{Fields: merged.Errors}
}
