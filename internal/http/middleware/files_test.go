package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"churchthreads.app/api/internal/http/middleware"
)

var _ = Describe("FileHeaders", func() {
	var router *gin.Engine

	BeforeEach(func() {
		fs := afero.NewMemMapFs()
		Expect(afero.WriteFile(fs, "1/thread/a-photo.png", []byte("\x89PNG\r\n\x1a\n"), 0o644)).To(Succeed())
		Expect(afero.WriteFile(fs, "1/thread/b-evil.html", []byte("<script>alert(1)</script>"), 0o644)).To(Succeed())

		router = gin.New()
		files := router.Group("/files", middleware.FileHeaders())
		files.StaticFS("/", afero.NewHttpFs(fs).Dir(""))
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("serves images inline without sniffing", func() {
		w := get("/files/1/thread/a-photo.png")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("image/png"))
		Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal("inline"))
	})

	It("forces anything else to download in a sandbox", func() {
		w := get("/files/1/thread/b-evil.html")
		Expect(w.Header().Get("Content-Disposition")).To(Equal("attachment"))
		Expect(w.Header().Get("Content-Security-Policy")).To(ContainSubstring("sandbox"))
		Expect(w.Header().Get("X-Content-Type-Options")).To(Equal("nosniff"))
	})
})
