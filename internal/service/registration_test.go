package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/service/identity"
	"churchthreads.app/api/internal/store"
)

type invitationStub struct {
	service.InvitationService
	validateFn func(ctx context.Context, orgID int64, token, email string) (*model.Invite, error)
}

func (s *invitationStub) Validate(ctx context.Context, orgID int64, token, email string) (*model.Invite, error) {
	return s.validateFn(ctx, orgID, token, email)
}

var _ = Describe("RegistrationService", func() {
	var (
		ctx           context.Context
		stores        *mockStoreProvider
		tx            *mockTxRunner
		invitations   *invitationStub
		notifications *mockNotificationService
		provider      *mockIdentityProvider
		svc           service.RegistrationService
		invite        *model.Invite
		users         map[int64]*model.User
		joined        []int64
		consumed      []int64
	)

	const orgID = int64(10)

	params := service.RegisterParams{
		OrgID: orgID,
		Token: "token",
		Name:  " Dorcas Tabitha ",
		Email: "Dorcas@Example.com",
	}

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		tx = &mockTxRunner{stores: stores}
		notifications = &mockNotificationService{}
		provider = &mockIdentityProvider{}
		users = map[int64]*model.User{}
		joined, consumed = nil, nil

		invite = &model.Invite{ID: 70, OrgID: orgID, FeedIDs: []int64{50, 51}, ExpiresAt: time.Now().Add(time.Hour)}
		invitations = &invitationStub{
			validateFn: func(_ context.Context, _ int64, _ string, _ string) (*model.Invite, error) {
				return invite, nil
			},
		}

		stores.users.createFn = func(_ context.Context, u *model.User) error {
			users[u.ID] = u
			return nil
		}
		stores.users.deleteFn = func(_ context.Context, id int64) error {
			delete(users, id)
			return nil
		}
		stores.users.setWorkOSIDFn = func(_ context.Context, id int64, workosID string) (*model.User, error) {
			u := users[id]
			u.WorkOSID = &workosID
			return u, nil
		}
		stores.memberships.upsertFn = func(_ context.Context, m *model.UserFeed) error {
			Expect(m.Owner).To(BeFalse())
			joined = append(joined, m.FeedID)
			return nil
		}
		stores.invites.consumeUseFn = func(_ context.Context, id int64) (*model.Invite, error) {
			consumed = append(consumed, id)
			return invite, nil
		}

		svc = service.NewRegistrationService(stores.users, tx, invitations, notifications, provider)
	})

	It("creates the user, links the identity and joins the invite's feeds", func() {
		var idParams identity.CreateUserParams
		provider.createUserFn = func(_ context.Context, p identity.CreateUserParams) (*identity.User, error) {
			idParams = p
			return &identity.User{ID: "user_01", Email: p.Email}, nil
		}

		result, err := svc.Register(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(&service.RegisterResult{Success: true, Email: "dorcas@example.com"}))

		Expect(idParams).To(Equal(identity.CreateUserParams{Email: "dorcas@example.com", FirstName: "Dorcas", LastName: "Tabitha"}))

		Expect(users).To(HaveLen(1))
		for _, u := range users {
			Expect(u.Name).To(Equal("Dorcas Tabitha"))
			Expect(u.Role).To(Equal(model.RoleUser))
			Expect(u.NotificationChannels).To(ConsistOf(model.ChannelPush, model.ChannelEmail))
			Expect(*u.WorkOSID).To(Equal("user_01"))
		}
		Expect(joined).To(Equal([]int64{50, 51}))
		Expect(consumed).To(Equal([]int64{70}))

		Expect(notifications.sent).To(HaveLen(1))
		Expect(notifications.sent[0].Type).To(Equal(model.NotificationUserRegistration))
		Expect(notifications.sent[0].Data.ActorName).To(Equal("Dorcas Tabitha"))
	})

	It("validates before touching anything", func() {
		bad := params
		bad.Name = "Al"
		bad.Email = "nope"

		_, err := svc.Register(ctx, bad)
		var vErr *service.ValidationError
		Expect(errors.As(err, &vErr)).To(BeTrue())
		Expect(vErr.Fields).To(HaveLen(2))
		Expect(err.Error()).To(Equal("Name must be at least 4 characters"))
		Expect(users).To(BeEmpty())
	})

	It("stops on an invalid invite", func() {
		invitations.validateFn = func(context.Context, int64, string, string) (*model.Invite, error) {
			return nil, service.ErrInviteExpired
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(MatchError(service.ErrInviteExpired))
		Expect(users).To(BeEmpty())
	})

	It("refuses an address that already has an account", func() {
		stores.users.getByOrgAndEmailFn = func(context.Context, int64, string) (*model.User, error) {
			return &model.User{ID: 5}, nil
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(MatchError(service.ErrUserAlreadyExists))
	})

	It("deletes the local user when the identity provider fails", func() {
		provider.createUserFn = func(context.Context, identity.CreateUserParams) (*identity.User, error) {
			return nil, errors.New("email already registered with provider")
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(MatchError(service.ErrIdentityProvider))
		Expect(err).To(MatchError(ContainSubstring("email already registered with provider")))
		Expect(users).To(BeEmpty())
		Expect(consumed).To(BeEmpty())
		Expect(notifications.sent).To(BeEmpty())
	})

	It("deletes the local user when the invite was used up meanwhile", func() {
		stores.invites.consumeUseFn = func(context.Context, int64) (*model.Invite, error) {
			return nil, store.ErrNotFound
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(MatchError(service.ErrInviteExpired))
		Expect(users).To(BeEmpty())
		Expect(notifications.sent).To(BeEmpty())
	})

	It("removes the provider user too so a retry can register again", func() {
		providerUsers := map[string]string{}
		provider.createUserFn = func(_ context.Context, p identity.CreateUserParams) (*identity.User, error) {
			if _, taken := providerUsers[p.Email]; taken {
				return nil, errors.New("email already registered with provider")
			}
			providerUsers[p.Email] = "user_01"
			return &identity.User{ID: "user_01", Email: p.Email}, nil
		}
		provider.deleteUserFn = func(_ context.Context, userID string) error {
			for email, id := range providerUsers {
				if id == userID {
					delete(providerUsers, email)
				}
			}
			return nil
		}
		stores.invites.consumeUseFn = func(context.Context, int64) (*model.Invite, error) {
			return nil, errors.New("connection reset")
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(HaveOccurred())
		Expect(providerUsers).To(BeEmpty())
		Expect(users).To(BeEmpty())

		stores.invites.consumeUseFn = func(_ context.Context, id int64) (*model.Invite, error) {
			return invite, nil
		}
		result, err := svc.Register(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Success).To(BeTrue())
		Expect(providerUsers).To(HaveKey("dorcas@example.com"))
	})

	It("keeps the provider user when the provider call failed", func() {
		provider.createUserFn = func(context.Context, identity.CreateUserParams) (*identity.User, error) {
			return nil, errors.New("provider unavailable")
		}
		provider.deleteUserFn = func(context.Context, string) error {
			Fail("nothing to delete at the provider")
			return nil
		}

		_, err := svc.Register(ctx, params)
		Expect(err).To(MatchError(service.ErrIdentityProvider))
	})
})
