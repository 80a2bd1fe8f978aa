package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/store"
)

var _ = Describe("FeedService", func() {
	var (
		ctx           context.Context
		stores        *mockStoreProvider
		notifications *mockNotificationService
		svc           service.FeedService
		member        *model.User
		admin         *model.User
		outsider      *model.User
		feeds         map[int64]*model.Feed
		memberships   map[[2]int64]*model.UserFeed
	)

	const orgID = int64(10)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		notifications = &mockNotificationService{}

		member = &model.User{ID: 1, OrgID: orgID, Name: "Martha", Role: model.RoleUser}
		admin = &model.User{ID: 2, OrgID: orgID, Name: "Aaron", Role: model.RoleAdmin}
		outsider = &model.User{ID: 3, OrgID: orgID, Name: "Silas", Role: model.RoleUser}

		feeds = map[int64]*model.Feed{
			100: {ID: 100, OrgID: orgID, Name: "Prayer", Privacy: model.FeedPrivate, MemberPermissions: []model.MemberPermission{model.PermissionMessage}},
			101: {ID: 101, OrgID: orgID, Name: "Announcements", Privacy: model.FeedPublic},
			102: {ID: 102, OrgID: orgID, Name: "Potluck", Privacy: model.FeedOpen, MemberPermissions: []model.MemberPermission{model.PermissionPost, model.PermissionMessage}},
			200: {ID: 200, OrgID: 99, Name: "Other church", Privacy: model.FeedOpen},
		}
		memberships = map[[2]int64]*model.UserFeed{
			{1, 100}: {UserID: 1, FeedID: 100, OrgID: orgID},
			{1, 101}: {UserID: 1, FeedID: 101, OrgID: orgID, Owner: true},
		}

		stores.feeds.getByIDFn = func(_ context.Context, id int64) (*model.Feed, error) {
			if f, ok := feeds[id]; ok {
				return f, nil
			}
			return nil, store.ErrNotFound
		}
		stores.memberships.getFn = func(_ context.Context, userID, feedID int64) (*model.UserFeed, error) {
			if m, ok := memberships[[2]int64{userID, feedID}]; ok {
				return m, nil
			}
			return nil, store.ErrNotFound
		}
		stores.memberships.upsertFn = func(_ context.Context, m *model.UserFeed) error {
			memberships[[2]int64{m.UserID, m.FeedID}] = m
			return nil
		}

		svc = service.NewFeedService(stores.feeds, stores.memberships, &mockTxRunner{stores: stores}, notifications)
	})

	Describe("Create", func() {
		It("makes the creator the owner", func() {
			var createdFeed *model.Feed
			stores.feeds.createFn = func(_ context.Context, f *model.Feed) error {
				createdFeed = f
				return nil
			}
			desc := "  Weekly prayer requests  "

			feed, err := svc.Create(ctx, member, service.CreateFeedParams{
				Name:              " Prayer Team ",
				Description:       &desc,
				Privacy:           model.FeedPrivate,
				MemberPermissions: []model.MemberPermission{model.PermissionPost, model.PermissionPost},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(feed).To(Equal(createdFeed))
			Expect(feed.ID).NotTo(BeZero())
			Expect(feed.Name).To(Equal("Prayer Team"))
			Expect(*feed.Description).To(Equal("Weekly prayer requests"))
			Expect(feed.MemberPermissions).To(Equal([]model.MemberPermission{model.PermissionPost}))

			m := memberships[[2]int64{member.ID, feed.ID}]
			Expect(m).NotTo(BeNil())
			Expect(m.Owner).To(BeTrue())
		})

		It("returns every failing field", func() {
			long := "This description goes on for far longer than anyone would ever want to read in a feed header, really."
			_, err := svc.Create(ctx, member, service.CreateFeedParams{
				Name:        "abc",
				Description: &long,
				Privacy:     "secret",
			})

			var vErr *service.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
			Expect(err).To(MatchError(service.ErrValidation))
			Expect(vErr.Fields).To(HaveLen(3))
			Expect(vErr.Error()).To(Equal("Name must be at least 4 characters"))
		})

		It("rejects a name already used in the organization", func() {
			stores.feeds.getByOrgAndNameFn = func(_ context.Context, id int64, name string) (*model.Feed, error) {
				Expect(id).To(Equal(orgID))
				Expect(name).To(Equal("Prayer"))
				return feeds[100], nil
			}

			_, err := svc.Create(ctx, member, service.CreateFeedParams{Name: "Prayer"})
			Expect(err).To(MatchError(service.ErrFeedNameTaken))
		})
	})

	Describe("Get", func() {
		It("hides private feeds from non-members", func() {
			_, err := svc.Get(ctx, outsider, 100)
			Expect(err).To(MatchError(service.ErrFeedNotFound))
		})

		It("shows private feeds to members and admins", func() {
			Expect(svc.Get(ctx, member, 100)).To(HaveField("Name", "Prayer"))
			Expect(svc.Get(ctx, admin, 100)).To(HaveField("Name", "Prayer"))
		})

		It("shows public feeds to everyone in the organization", func() {
			Expect(svc.Get(ctx, outsider, 101)).To(HaveField("Name", "Announcements"))
		})

		It("never shows feeds of another organization", func() {
			_, err := svc.Get(ctx, admin, 200)
			Expect(err).To(MatchError(service.ErrFeedNotFound))
		})
	})

	Describe("Permissions", func() {
		It("lets members do what the feed allows", func() {
			perms, err := svc.Permissions(ctx, member, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(Equal(model.FeedPermissions{IsMember: true, CanMessage: true}))
		})

		It("lets owners do everything", func() {
			perms, err := svc.Permissions(ctx, member, 101)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(Equal(model.FeedPermissions{IsMember: true, IsOwner: true, CanPost: true, CanMessage: true}))
		})

		It("lets admins do everything without membership", func() {
			perms, err := svc.Permissions(ctx, admin, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms.CanPost).To(BeTrue())
			Expect(perms.CanMessage).To(BeTrue())
			Expect(perms.IsMember).To(BeFalse())
		})

		It("gives non-members nothing", func() {
			perms, err := svc.Permissions(ctx, outsider, 102)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(BeZero())
		})
	})

	Describe("Join", func() {
		It("joins open feeds and tells the owners", func() {
			m, err := svc.Join(ctx, outsider, 102)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Owner).To(BeFalse())
			Expect(memberships).To(HaveKey([2]int64{outsider.ID, 102}))

			Expect(notifications.sent).To(HaveLen(1))
			Expect(notifications.sent[0].Type).To(Equal(model.NotificationNewFeedMember))
			Expect(*notifications.sent[0].Data.ActorID).To(Equal(outsider.ID))
			Expect(notifications.sent[0].Data.FeedName).To(Equal("Potluck"))
		})

		It("is a no-op for existing members", func() {
			m, err := svc.Join(ctx, member, 101)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Owner).To(BeTrue())
			Expect(notifications.sent).To(BeEmpty())
		})

		It("refuses feeds that are not open", func() {
			_, err := svc.Join(ctx, outsider, 101)
			Expect(err).To(MatchError(service.ErrFeedNotJoinable))
		})

		It("succeeds even when the notification fails", func() {
			notifications.sendFn = func(context.Context, int64, model.NotificationType, model.NotificationData) error {
				return errors.New("queue unavailable")
			}
			_, err := svc.Join(ctx, outsider, 102)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("RemoveMember", func() {
		BeforeEach(func() {
			stores.memberships.deleteFn = func(_ context.Context, userID, feedID int64) (bool, error) {
				_, ok := memberships[[2]int64{userID, feedID}]
				delete(memberships, [2]int64{userID, feedID})
				return ok, nil
			}
		})

		It("lets members leave", func() {
			Expect(svc.RemoveMember(ctx, member, 100, member.ID)).To(Succeed())
			Expect(memberships).NotTo(HaveKey([2]int64{member.ID, int64(100)}))
		})

		It("lets owners remove others", func() {
			memberships[[2]int64{3, 101}] = &model.UserFeed{UserID: 3, FeedID: 101}
			Expect(svc.RemoveMember(ctx, member, 101, 3)).To(Succeed())
		})

		It("forbids plain members removing others", func() {
			memberships[[2]int64{3, 100}] = &model.UserFeed{UserID: 3, FeedID: 100}
			Expect(svc.RemoveMember(ctx, member, 100, 3)).To(MatchError(service.ErrForbidden))
		})

		It("reports missing memberships", func() {
			Expect(svc.RemoveMember(ctx, admin, 102, 3)).To(MatchError(service.ErrMemberNotFound))
		})
	})

	Describe("ListInvitable", func() {
		It("returns owned feeds for members and every feed for admins", func() {
			stores.feeds.listOwnedFn = func(_ context.Context, userID int64) ([]model.Feed, error) {
				return []model.Feed{*feeds[101]}, nil
			}
			stores.feeds.listByOrgFn = func(_ context.Context, _ int64) ([]model.Feed, error) {
				return []model.Feed{*feeds[100], *feeds[101], *feeds[102]}, nil
			}

			Expect(svc.ListInvitable(ctx, member)).To(HaveLen(1))
			Expect(svc.ListInvitable(ctx, admin)).To(HaveLen(3))
		})
	})
})
