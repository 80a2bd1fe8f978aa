package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/core/config"
	"churchthreads.app/api/internal/http/router"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/storage"
	"churchthreads.app/api/internal/store"
)

var _ = Describe("SetupRoutes", func() {
	var (
		engine *gin.Engine
		cfg    config.Config
	)

	newServices := func() *service.Services {
		return service.NewServices(store.NewStores(nil), nil, service.Deps{}, cfg)
	}

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		cfg = config.Config{}
		engine = gin.New()
	})

	When("routes are mounted", func() {
		BeforeEach(func() {
			err := router.SetupRoutes(engine, newServices(), router.RouterConfig{
				AppURL:    "https://app.example.com",
				RateLimit: config.RateLimitConfig{RequestsPerMinute: 60, Burst: 10},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("answers health checks", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"ok"`))
		})

		It("exposes prometheus metrics", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("reports push as unavailable without a VAPID key", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/api/v1/push/vapid-public-key", nil))
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("requires a session for the current user", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("requires a session for organization routes", func() {
			for _, path := range []string{
				"/api/v1/orgs/100/feeds",
				"/api/v1/orgs/100/feeds/open",
				"/api/v1/orgs/100/invites",
				"/api/v1/orgs/100/notifications",
			} {
				w := serve(httptest.NewRequest(http.MethodGet, path, nil))
				Expect(w.Code).To(Equal(http.StatusUnauthorized), path)
			}
		})

		It("requires a session for uploads", func() {
			w := serve(httptest.NewRequest(http.MethodPost, "/upload", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("answers upload preflight requests", func() {
			req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
			req.Header.Set("Origin", "https://grace.churchthreads.app")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			w := serve(req)
			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})

		It("does not serve files when no file system is given", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/files/avatar.png", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	It("restricts upload origins when a list is configured", func() {
		err := router.SetupRoutes(engine, newServices(), router.RouterConfig{
			CORSOrigins: []string{"https://grace.churchthreads.app"},
			RateLimit:   config.RateLimitConfig{RequestsPerMinute: 60, Burst: 10},
		})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
		req.Header.Set("Origin", "https://grace.churchthreads.app")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := serve(req)
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://grace.churchthreads.app"))
		Expect(w.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))

		req = httptest.NewRequest(http.MethodOptions, "/upload", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w = serve(req)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("serves stored uploads with their content type and no sniffing", func() {
		blobs := storage.New(storage.Config{})
		_, err := blobs.Put(context.Background(), "10/thread/abc-photo.png", strings.NewReader("\x89PNG\r\n\x1a\n"))
		Expect(err).NotTo(HaveOccurred())

		err = router.SetupRoutes(engine, newServices(), router.RouterConfig{
			RateLimit: config.RateLimitConfig{RequestsPerMinute: 60, Burst: 10},
			Files:     blobs.HTTPFileSystem(),
		})
		Expect(err).NotTo(HaveOccurred())

		w := serve(httptest.NewRequest(http.MethodGet, "/files/10/thread/abc-photo.png", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("image/png"))
		Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))

		w = serve(httptest.NewRequest(http.MethodGet, "/files/10/thread/", nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("fails on a malformed webhook secret", func() {
		cfg.Email.WebhookSecret = "whsec_not*base64"
		err := router.SetupRoutes(engine, newServices(), router.RouterConfig{})
		Expect(err).To(MatchError(ContainSubstring("email event service")))
	})
})
