package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
)

var _ = Describe("PushService", func() {
	var (
		ctx  context.Context
		subs *mockPushSubscriptionStore
		svc  service.PushService
		user *model.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		subs = &mockPushSubscriptionStore{}
		user = &model.User{ID: 1, OrgID: 10}
		svc = service.NewPushService(subs, "BPublicKey")
	})

	It("upserts subscriptions for the user", func() {
		var saved *model.PushSubscription
		subs.upsertFn = func(_ context.Context, s *model.PushSubscription) error {
			saved = s
			return nil
		}

		sub, err := svc.Subscribe(ctx, user, " https://push.example.com/abc ", "p256", "auth")
		Expect(err).NotTo(HaveOccurred())
		Expect(sub).To(Equal(saved))
		Expect(sub.UserID).To(Equal(user.ID))
		Expect(sub.Endpoint).To(Equal("https://push.example.com/abc"))
	})

	It("validates the subscription", func() {
		_, err := svc.Subscribe(ctx, user, "http://insecure", "", "")
		var vErr *service.ValidationError
		Expect(err).To(BeAssignableToTypeOf(vErr))
		Expect(err.(*service.ValidationError).Fields).To(HaveLen(3))
	})

	It("exposes the VAPID public key", func() {
		Expect(svc.VAPIDPublicKey()).To(Equal("BPublicKey"))
	})
})
