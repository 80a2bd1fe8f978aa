package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

type contextKey string

const (
	SessionCookieName = "ct_session"

	userContextKey         contextKey = "user"
	sessionTokenContextKey contextKey = "session_token"
)

func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := SessionToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				ClearSessionCookie(c)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		ctx = context.WithValue(ctx, sessionTokenContextKey, token)
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			UserID: logger.Ptr(user.ID),
			OrgID:  logger.Ptr(user.OrgID),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireOrgMember rejects requests whose :orgId is not the signed-in user's
// organization. It must run after RequireAuth.
func RequireOrgMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c.Request.Context())
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		orgID, err := strconv.ParseInt(c.Param("orgId"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
			return
		}
		if orgID != user.OrgID {
			slog.WarnContext(c.Request.Context(), "cross-organization request refused", "requested_org_id", orgID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenContextKey).(string)
	return token
}

// WithUser returns ctx carrying user as the signed-in user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// SessionToken reads the session cookie.
func SessionToken(c *gin.Context) (string, error) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", http.ErrNoCookie
	}
	return token, nil
}

func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		maxAge,
		"/",
		"",
		secure,
		true,
	)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}
