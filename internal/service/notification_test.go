package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/store"
)

var _ = Describe("NotificationService", func() {
	var (
		ctx       context.Context
		stores    *mockStoreProvider
		scheduler *mockScheduler
		producer  *mockProducer
		svc       service.NotificationService
		created   []*model.Notification
		users     map[int64]model.User
		feedID    int64
		threadID  int64
		actorID   int64
	)

	bothChannels := []model.NotificationChannel{model.ChannelPush, model.ChannelEmail}
	emailOnly := []model.NotificationChannel{model.ChannelEmail}
	noChannels := []model.NotificationChannel{}

	const messageDelay = 15 * time.Minute
	const orgID = int64(10)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		scheduler = &mockScheduler{}
		producer = &mockProducer{}
		created = nil
		feedID, threadID, actorID = 20, 30, 1

		users = map[int64]model.User{
			1: {ID: 1, OrgID: orgID, Name: "Actor", NotificationChannels: bothChannels},
			2: {ID: 2, OrgID: orgID, Name: "Both", NotificationChannels: bothChannels},
			3: {ID: 3, OrgID: orgID, Name: "Email", NotificationChannels: emailOnly},
			4: {ID: 4, OrgID: orgID, Name: "Quiet", NotificationChannels: noChannels},
			5: {ID: 5, OrgID: 99, Name: "Elsewhere", NotificationChannels: bothChannels},
		}

		stores.users.listByIDsFn = func(_ context.Context, ids []int64) ([]model.User, error) {
			var out []model.User
			for _, id := range ids {
				if u, ok := users[id]; ok {
					out = append(out, u)
				}
			}
			return out, nil
		}
		stores.notifications.createFn = func(_ context.Context, n *model.Notification) error {
			created = append(created, n)
			return nil
		}

		svc = service.NewNotificationService(
			stores.notifications,
			stores.users,
			stores.memberships,
			stores.messages,
			scheduler,
			producer,
			service.NotificationConfig{MessageDelay: messageDelay},
		)
	})

	recipientIDs := func() []int64 {
		ids := make([]int64, len(created))
		for i, n := range created {
			ids[i] = n.UserID
		}
		return ids
	}

	Describe("Send", func() {
		It("notifies feed members of a new thread except the poster", func() {
			stores.memberships.listMemberIDsFn = func(_ context.Context, id int64) ([]int64, error) {
				Expect(id).To(Equal(feedID))
				return []int64{1, 2, 3, 4}, nil
			}

			err := svc.Send(ctx, orgID, model.NotificationNewThread, model.NotificationData{
				FeedID:    &feedID,
				ThreadID:  &threadID,
				ActorID:   &actorID,
				ActorName: "Actor",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(recipientIDs()).To(ConsistOf(int64(2), int64(3), int64(4)))

			Expect(producer.tasks).To(HaveLen(1))
			Expect(producer.tasks[0].TaskType).To(Equal(queue.TaskTypePushNotification))
			Expect(producer.tasks[0].RecipientIDs).To(ConsistOf(int64(2)))

			Expect(scheduler.scheduled).To(HaveLen(1))
			job := scheduler.scheduled[0]
			Expect(job.Delay).To(BeZero())
			Expect(job.Job.RecipientIDs).To(ConsistOf(int64(2), int64(3)))
			Expect(job.Job.Key).To(HavePrefix("new_thread_in_member_feed:"))
		})

		It("delays new message emails and keys them by thread", func() {
			stores.messages.listParticipantIDsFn = func(_ context.Context, id int64) ([]int64, error) {
				Expect(id).To(Equal(threadID))
				return []int64{1, 3}, nil
			}

			err := svc.Send(ctx, orgID, model.NotificationNewMessage, model.NotificationData{
				FeedID:   &feedID,
				ThreadID: &threadID,
				ActorID:  &actorID,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(producer.tasks).To(BeEmpty())
			Expect(scheduler.scheduled).To(HaveLen(1))
			Expect(scheduler.scheduled[0].Delay).To(Equal(messageDelay))
			Expect(scheduler.scheduled[0].Job.Key).To(Equal("new_message_in_thread:30"))
		})

		It("notifies feed owners when someone joins", func() {
			stores.memberships.listOwnerIDsFn = func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{2}, nil
			}

			Expect(svc.Send(ctx, orgID, model.NotificationNewFeedMember, model.NotificationData{
				FeedID:  &feedID,
				ActorID: &actorID,
			})).To(Succeed())
			Expect(recipientIDs()).To(ConsistOf(int64(2)))
		})

		It("notifies admins of a registration", func() {
			stores.users.listAdminsFn = func(_ context.Context, id int64) ([]model.User, error) {
				Expect(id).To(Equal(orgID))
				return []model.User{users[2], users[3]}, nil
			}

			Expect(svc.Send(ctx, orgID, model.NotificationUserRegistration, model.NotificationData{
				ActorID: &actorID,
			})).To(Succeed())
			Expect(recipientIDs()).To(ConsistOf(int64(2), int64(3)))
		})

		It("skips users of other organizations", func() {
			stores.memberships.listMemberIDsFn = func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{5}, nil
			}

			Expect(svc.Send(ctx, orgID, model.NotificationNewThread, model.NotificationData{FeedID: &feedID})).To(Succeed())
			Expect(created).To(BeEmpty())
			Expect(scheduler.scheduled).To(BeEmpty())
		})

		It("does nothing when the actor is the only recipient", func() {
			stores.messages.listParticipantIDsFn = func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{actorID}, nil
			}

			Expect(svc.Send(ctx, orgID, model.NotificationNewMessage, model.NotificationData{
				ThreadID: &threadID,
				ActorID:  &actorID,
			})).To(Succeed())
			Expect(created).To(BeEmpty())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("requires the ids the type resolves from", func() {
			err := svc.Send(ctx, orgID, model.NotificationNewThread, model.NotificationData{})
			Expect(err).To(MatchError(ContainSubstring("requires feed_id")))
		})
	})

	Describe("Schedule", func() {
		It("stores the payload on every in-app notification", func() {
			err := svc.Schedule(ctx, orgID, model.NotificationNewThread, model.NotificationData{
				FeedID:   &feedID,
				FeedName: "Youth",
			}, []service.Recipient{{UserID: 4, Channels: noChannels}})
			Expect(err).NotTo(HaveOccurred())

			Expect(created).To(HaveLen(1))
			Expect(created[0].OrgID).To(Equal(orgID))
			var data model.NotificationData
			Expect(json.Unmarshal(created[0].Data, &data)).To(Succeed())
			Expect(data.FeedName).To(Equal("Youth"))

			Expect(producer.tasks).To(BeEmpty())
			Expect(scheduler.scheduled).To(BeEmpty())
		})

		It("still schedules email when the push enqueue fails", func() {
			producer.enqueueFn = func(context.Context, queue.Task) error {
				return errors.New("redis down")
			}

			err := svc.Schedule(ctx, orgID, model.NotificationNewThread, model.NotificationData{FeedID: &feedID},
				[]service.Recipient{{UserID: 2, Channels: bothChannels}})
			Expect(err).To(MatchError(ContainSubstring("redis down")))
			Expect(scheduler.scheduled).To(HaveLen(1))
		})

		It("rejects unknown types", func() {
			err := svc.Schedule(ctx, orgID, model.NotificationType("mystery"), model.NotificationData{},
				[]service.Recipient{{UserID: 2}})
			Expect(err).To(HaveOccurred())
			Expect(created).To(BeEmpty())
		})
	})

	Describe("reading", func() {
		user := &model.User{ID: 2, OrgID: orgID}

		It("caps the page size", func() {
			var gotLimit int32
			stores.notifications.listByUserFn = func(_ context.Context, _ int64, _ bool, limit int32) ([]model.Notification, error) {
				gotLimit = limit
				return nil, nil
			}

			_, err := svc.ListForUser(ctx, user, true, 10_000)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotLimit).To(Equal(int32(service.MaxNotificationLimit)))

			_, err = svc.ListForUser(ctx, user, false, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotLimit).To(Equal(int32(service.DefaultNotificationLimit)))
		})

		It("only marks the user's own notifications", func() {
			stores.notifications.markReadFn = func(_ context.Context, _ int64, userID int64) (*model.Notification, error) {
				Expect(userID).To(Equal(user.ID))
				return nil, store.ErrNotFound
			}

			_, err := svc.MarkAsRead(ctx, user, 77)
			Expect(err).To(MatchError(service.ErrNotificationNotFound))
		})
	})
})
