package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/http/handler"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

var _ = Describe("ThreadHandler", func() {
	var (
		router *gin.Engine
		svc    *mockThreadService
	)

	BeforeEach(func() {
		svc = &mockThreadService{}
		h := handler.NewThreadHandler(svc)

		router = newRouter(&model.User{ID: 1, OrgID: 100})
		router.GET("/orgs/:orgId/feeds/:feedId/threads", h.List)
		router.POST("/orgs/:orgId/feeds/:feedId/threads", h.Create)
		router.GET("/orgs/:orgId/threads/:threadId", h.Get)
		router.GET("/orgs/:orgId/threads/:threadId/messages", h.ListMessages)
		router.POST("/orgs/:orgId/threads/:threadId/messages", h.CreateMessage)
	})

	Describe("List", func() {
		It("returns a cursor when the page is full", func() {
			svc.listThreadsFn = func(_ context.Context, _ *model.User, feedID, cursor int64, limit int32) ([]model.Thread, error) {
				Expect(feedID).To(Equal(int64(55)))
				Expect(cursor).To(Equal(int64(900)))
				Expect(limit).To(Equal(int32(2)))
				return []model.Thread{
					{ID: 800, FeedID: feedID, PostedAt: time.Now()},
					{ID: 700, FeedID: feedID, PostedAt: time.Now()},
				}, nil
			}

			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/55/threads?cursor=900&limit=2", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["threads"]).To(HaveLen(2))
			Expect(resp["next_cursor"]).To(Equal("700"))
		})

		It("omits the cursor on the last page", func() {
			svc.listThreadsFn = func(_ context.Context, _ *model.User, _, _ int64, limit int32) ([]model.Thread, error) {
				Expect(limit).To(Equal(int32(service.DefaultThreadPageSize)))
				return []model.Thread{{ID: 1}}, nil
			}

			resp := decode(doJSON(router, http.MethodGet, "/orgs/100/feeds/55/threads", nil))
			Expect(resp).NotTo(HaveKey("next_cursor"))
		})

		It("caps the page size", func() {
			svc.listThreadsFn = func(_ context.Context, _ *model.User, _, _ int64, limit int32) ([]model.Thread, error) {
				Expect(limit).To(Equal(int32(service.MaxThreadPageSize)))
				return nil, nil
			}
			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/55/threads?limit=5000", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects a bad cursor", func() {
			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/55/threads?cursor=abc", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("answers 403 when the user may not post", func() {
		svc.createThreadFn = func(context.Context, *model.User, int64, string) (*model.Thread, error) {
			return nil, service.ErrForbidden
		}
		w := doJSON(router, http.MethodPost, "/orgs/100/feeds/55/threads", map[string]string{"content": `{"type":"doc"}`})
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("requires content", func() {
		w := doJSON(router, http.MethodPost, "/orgs/100/feeds/55/threads", map[string]string{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("creates a message in the thread", func() {
		svc.createMessageFn = func(_ context.Context, user *model.User, threadID int64, body string) (*model.Message, error) {
			return &model.Message{ID: 3, ThreadID: threadID, SenderID: user.ID, Content: body}, nil
		}

		w := doJSON(router, http.MethodPost, "/orgs/100/threads/77/messages", map[string]string{"content": `{"type":"doc"}`})

		Expect(w.Code).To(Equal(http.StatusCreated))
		resp := decode(w)
		Expect(resp["thread_id"]).To(Equal("77"))
		Expect(resp["sender_id"]).To(Equal("1"))
	})

	It("answers 404 for a missing thread", func() {
		w := doJSON(router, http.MethodGet, "/orgs/100/threads/77", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
