package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/service"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters only where one sentinel wraps another.
var errorMappings = []errorMapping{
	{err: service.ErrForbidden, status: http.StatusForbidden},
	{err: service.ErrSessionExpired, status: http.StatusUnauthorized},
	{err: service.ErrInvalidSignature, status: http.StatusUnauthorized},

	{err: service.ErrOrgNotFound, status: http.StatusNotFound},
	{err: service.ErrUserNotFound, status: http.StatusNotFound},
	{err: service.ErrFeedNotFound, status: http.StatusNotFound},
	{err: service.ErrThreadNotFound, status: http.StatusNotFound},
	{err: service.ErrMemberNotFound, status: http.StatusNotFound},
	{err: service.ErrNotificationNotFound, status: http.StatusNotFound},
	{err: service.ErrInviteNotFound, status: http.StatusNotFound},

	{err: service.ErrFeedNameTaken, status: http.StatusConflict},
	{err: service.ErrFeedNotJoinable, status: http.StatusForbidden},
	{err: service.ErrFeedIDRequired, status: http.StatusBadRequest},

	{err: service.ErrUserAlreadyExists, status: http.StatusConflict, code: "user_exists"},
	{err: service.ErrInvitePendingExists, status: http.StatusConflict, code: "invite_pending"},
	{err: service.ErrInviteInvalid, status: http.StatusNotFound, code: "invite_invalid"},
	{err: service.ErrInviteExpired, status: http.StatusGone, code: "invite_expired"},
	{err: service.ErrInviteEmailMismatch, status: http.StatusBadRequest, code: "email_mismatch"},

	{err: service.ErrIdentityProvider, status: http.StatusBadGateway},
}

// respondError writes the JSON error for a service error. Errors without a
// mapping are logged and reported as fallback with status 500.
func respondError(c *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  vErr.Error(),
			"fields": vErr.Fields,
		})
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		body := gin.H{"error": m.err.Error()}
		if m.code != "" {
			body["code"] = m.code
		}
		c.JSON(m.status, body)
		return
	}

	slog.ErrorContext(c.Request.Context(), fallback, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// paramID parses a snowflake id path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
