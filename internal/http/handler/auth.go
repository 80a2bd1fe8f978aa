package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"churchthreads.app/api/internal/http/middleware"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

const (
	stateCookieName = "ct_oauth_state"
	stateMaxAge     = 600
	sessionMaxAge   = int(service.SessionTTL / time.Second)
)

type AuthHandler struct {
	authService  service.AuthService
	orgService   service.OrganizationService
	appURL       string
	isProduction bool
}

func NewAuthHandler(
	authService service.AuthService,
	orgService service.OrganizationService,
	appURL string,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		orgService:   orgService,
		appURL:       appURL,
		isProduction: isProduction,
	}
}

// Login starts the AuthKit flow for the organization named by ?org=<subdomain>.
// The organization rides along in the state cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	org, err := h.orgService.GetBySubdomain(ctx, c.Query("org"))
	if err != nil {
		respondError(c, err, "failed to initiate login")
		return
	}

	state, err := generateState()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		stateCookieName,
		strconv.FormatInt(org.ID, 10)+"."+state,
		stateMaxAge,
		"/",
		"",
		h.isProduction,
		true,
	)

	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		h.redirectError(c, nil, errorParam)
		return
	}

	orgID, storedState, ok := h.readState(c)
	h.clearStateCookie(c)
	if !ok || c.Query("state") != storedState {
		slog.WarnContext(ctx, "state mismatch")
		h.redirectError(c, nil, "invalid_state")
		return
	}

	org, err := h.orgService.Get(ctx, orgID)
	if err != nil {
		slog.ErrorContext(ctx, "organization from login state not found", "error", err, "org_id", orgID)
		h.redirectError(c, nil, "callback_failed")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.redirectError(c, org, "no_code")
		return
	}

	user, session, err := h.authService.HandleCallback(ctx, org.ID, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			h.redirectError(c, org, "invalid_code")
		case errors.Is(err, service.ErrUserNotRegistered):
			h.redirectError(c, org, "not_registered")
		default:
			slog.ErrorContext(ctx, "failed to handle callback", "error", err)
			h.redirectError(c, org, "callback_failed")
		}
		return
	}

	middleware.SetSessionCookie(c, session.Token, sessionMaxAge, h.isProduction)

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "org_id", org.ID)

	c.Redirect(http.StatusTemporaryRedirect, h.orgURL(org, "/"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token, err := middleware.SessionToken(c); err == nil {
		if err := h.authService.Logout(ctx, token); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err)
		}
	}

	middleware.ClearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) readState(c *gin.Context) (int64, string, bool) {
	cookie, err := c.Cookie(stateCookieName)
	if err != nil {
		return 0, "", false
	}
	rawOrgID, state, ok := strings.Cut(cookie, ".")
	if !ok || state == "" {
		return 0, "", false
	}
	orgID, err := strconv.ParseInt(rawOrgID, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return orgID, state, true
}

func (h *AuthHandler) clearStateCookie(c *gin.Context) {
	c.SetCookie(
		stateCookieName,
		"",
		-1,
		"/",
		"",
		h.isProduction,
		true,
	)
}

// redirectError sends the browser back to the organization's login page, or
// to the app when the organization is unknown.
func (h *AuthHandler) redirectError(c *gin.Context, org *model.Organization, reason string) {
	query := "?auth_error=" + url.QueryEscape(reason)
	if org == nil {
		c.Redirect(http.StatusTemporaryRedirect, h.appURL+query)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, h.orgURL(org, "/login")+query)
}

func (h *AuthHandler) orgURL(org *model.Organization, path string) string {
	scheme := "http"
	if h.isProduction {
		scheme = "https"
	}
	return scheme + "://" + org.Host + path
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
