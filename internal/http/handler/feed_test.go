package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/common/validation"
	"churchthreads.app/api/internal/http/handler"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

var _ = Describe("FeedHandler", func() {
	var (
		router *gin.Engine
		svc    *mockFeedService
		user   *model.User
	)

	BeforeEach(func() {
		user = &model.User{ID: 1, OrgID: 100, Role: model.RoleUser}
		svc = &mockFeedService{}
		h := handler.NewFeedHandler(svc)

		router = newRouter(user)
		feeds := router.Group("/orgs/:orgId/feeds")
		feeds.GET("", h.List)
		feeds.POST("", h.Create)
		feeds.GET("/name-exists", h.NameExists)
		feeds.GET("/:feedId", h.Get)
		feeds.POST("/:feedId/join", h.Join)
		feeds.DELETE("/:feedId/members/:userId", h.RemoveMember)
	})

	Describe("Create", func() {
		It("returns the new feed with string ids", func() {
			svc.createFn = func(_ context.Context, _ *model.User, params service.CreateFeedParams) (*model.Feed, error) {
				Expect(params.Name).To(Equal("Youth Group"))
				Expect(params.Privacy).To(Equal(model.FeedOpen))
				Expect(params.MemberPermissions).To(ConsistOf(model.PermissionPost))
				return &model.Feed{
					ID:                1234567890123,
					OrgID:             100,
					Name:              params.Name,
					Privacy:           params.Privacy,
					MemberPermissions: params.MemberPermissions,
				}, nil
			}

			w := doJSON(router, http.MethodPost, "/orgs/100/feeds", map[string]any{
				"name":               "Youth Group",
				"privacy":            "open",
				"member_permissions": []string{"post"},
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decode(w)
			Expect(resp["id"]).To(Equal("1234567890123"))
			Expect(resp["owner"]).To(BeTrue())
		})

		It("reports field errors", func() {
			svc.createFn = func(context.Context, *model.User, service.CreateFeedParams) (*model.Feed, error) {
				return nil, &service.ValidationError{Fields: []validation.FieldError{
					{Field: "name", Message: "Feed name must be at least 4 characters"},
				}}
			}

			w := doJSON(router, http.MethodPost, "/orgs/100/feeds", map[string]any{"name": "Yo"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			resp := decode(w)
			Expect(resp["error"]).To(Equal("Feed name must be at least 4 characters"))
			Expect(resp["fields"]).To(HaveLen(1))
		})

		It("answers 409 for a taken name", func() {
			svc.createFn = func(context.Context, *model.User, service.CreateFeedParams) (*model.Feed, error) {
				return nil, service.ErrFeedNameTaken
			}
			w := doJSON(router, http.MethodPost, "/orgs/100/feeds", map[string]any{"name": "Youth Group"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Get", func() {
		It("includes the caller's permissions", func() {
			svc.getFn = func(_ context.Context, _ *model.User, feedID int64) (*model.Feed, error) {
				return &model.Feed{ID: feedID, OrgID: 100, Name: "Choir", Privacy: model.FeedPrivate}, nil
			}
			svc.permissionsFn = func(context.Context, *model.User, int64) (model.FeedPermissions, error) {
				return model.FeedPermissions{IsMember: true, CanMessage: true}, nil
			}

			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/55", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["feed"]).To(HaveKeyWithValue("id", "55"))
			Expect(resp["feed"]).To(HaveKeyWithValue("owner", false))
			Expect(resp["permissions"]).To(HaveKeyWithValue("can_message", true))
			Expect(resp["permissions"]).To(HaveKeyWithValue("can_post", false))
		})

		It("answers 404 for hidden feeds", func() {
			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/55", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a malformed feed id", func() {
			w := doJSON(router, http.MethodGet, "/orgs/100/feeds/choir", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("lists the user's feeds with ownership", func() {
		svc.listForUserFn = func(context.Context, *model.User) ([]model.FeedWithMembership, error) {
			return []model.FeedWithMembership{
				{Feed: model.Feed{ID: 1, Name: "Choir"}, Owner: true},
				{Feed: model.Feed{ID: 2, Name: "Elders"}},
			}, nil
		}

		w := doJSON(router, http.MethodGet, "/orgs/100/feeds", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		feeds := decode(w)["feeds"].([]any)
		Expect(feeds).To(HaveLen(2))
		Expect(feeds[0]).To(HaveKeyWithValue("owner", true))
		Expect(feeds[1]).To(HaveKeyWithValue("owner", false))
	})

	It("checks name availability in the user's organization", func() {
		svc.nameExistsFn = func(_ context.Context, orgID int64, name string) (bool, error) {
			Expect(orgID).To(Equal(int64(100)))
			return name == "Choir", nil
		}

		w := doJSON(router, http.MethodGet, "/orgs/100/feeds/name-exists?name=Choir", nil)
		Expect(decode(w)).To(HaveKeyWithValue("exists", true))
	})

	It("refuses to join a feed that is not open", func() {
		svc.joinFn = func(context.Context, *model.User, int64) (*model.UserFeed, error) {
			return nil, service.ErrFeedNotJoinable
		}
		w := doJSON(router, http.MethodPost, "/orgs/100/feeds/55/join", nil)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("removes a member", func() {
		var gotFeed, gotUser int64
		svc.removeMemberFn = func(_ context.Context, _ *model.User, feedID, userID int64) error {
			gotFeed, gotUser = feedID, userID
			return nil
		}

		w := doJSON(router, http.MethodDelete, "/orgs/100/feeds/55/members/9", nil)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(gotFeed).To(Equal(int64(55)))
		Expect(gotUser).To(Equal(int64(9)))
	})
})
