package notify_test

import (
	"context"
	"errors"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/notify"
	"churchthreads.app/api/internal/queue"
)

type fakeProducer struct {
	tasks     []queue.Task
	enqueueFn func(task queue.Task) error
}

func (p *fakeProducer) Enqueue(_ context.Context, task queue.Task) error {
	if p.enqueueFn != nil {
		if err := p.enqueueFn(task); err != nil {
			return err
		}
	}
	p.tasks = append(p.tasks, task)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

var _ = Describe("Dispatcher", func() {
	var (
		ctx        context.Context
		mr         *miniredis.Miniredis
		client     *redis.Client
		scheduler  notify.Scheduler
		producer   *fakeProducer
		dispatcher *notify.Dispatcher
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		scheduler = notify.NewRedisScheduler(client, notify.SchedulerConfig{})
		producer = &fakeProducer{}
		dispatcher = notify.NewDispatcher(scheduler, producer, notify.DispatcherConfig{BatchSize: 2})
	})

	AfterEach(func() {
		_ = client.Close()
		mr.Close()
	})

	It("enqueues one email task per due job", func() {
		_, err := scheduler.Schedule(ctx, notify.Job{
			Key:          "new_feed_member:1",
			OrgID:        9,
			Type:         model.NotificationNewFeedMember,
			RecipientIDs: []int64{3, 4},
			TraceID:      "abc",
		}, 0)
		Expect(err).NotTo(HaveOccurred())

		n, err := dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(producer.tasks).To(HaveLen(1))

		task := producer.tasks[0]
		Expect(task.TaskType).To(Equal(queue.TaskTypeEmailNotification))
		Expect(task.OrgID).To(Equal(int64(9)))
		Expect(task.JobKey).To(HavePrefix("new_feed_member:1:"))
		Expect(task.NotificationType).To(Equal("new_feed_member"))
		Expect(task.RecipientIDs).To(Equal([]int64{3, 4}))
		Expect(task.TraceID).NotTo(BeNil())
		Expect(*task.TraceID).To(Equal("abc"))
	})

	It("gives each burst on a thread its own job key", func() {
		job := notify.Job{Key: "new_message_in_thread:6", OrgID: 1, Type: model.NotificationNewMessage, RecipientIDs: []int64{3}}

		_, err := scheduler.Schedule(ctx, job, 0)
		Expect(err).NotTo(HaveOccurred())
		_, err = dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())

		_, err = scheduler.Schedule(ctx, job, 0)
		Expect(err).NotTo(HaveOccurred())
		_, err = dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(producer.tasks).To(HaveLen(2))
		Expect(producer.tasks[0].JobKey).To(HavePrefix("new_message_in_thread:6:"))
		Expect(producer.tasks[1].JobKey).To(HavePrefix("new_message_in_thread:6:"))
		Expect(producer.tasks[0].JobKey).NotTo(Equal(producer.tasks[1].JobKey))
	})

	It("keeps the job key when a restored job is dispatched again", func() {
		scheduled, err := scheduler.Schedule(ctx, notify.Job{Key: "a", OrgID: 1, Type: model.NotificationNewThread}, 0)
		Expect(err).NotTo(HaveOccurred())
		producer.enqueueFn = func(queue.Task) error { return errors.New("redis down") }
		_, err = dispatcher.DispatchDue(ctx)
		Expect(err).To(HaveOccurred())

		producer.enqueueFn = nil
		_, err = dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(producer.tasks).To(HaveLen(1))
		Expect(producer.tasks[0].JobKey).To(Equal(scheduled.DispatchKey()))
	})

	It("leaves delayed jobs alone", func() {
		_, err := scheduler.Schedule(ctx, notify.Job{Key: "new_message_in_thread:1", OrgID: 1, Type: model.NotificationNewMessage}, 15*time.Minute)
		Expect(err).NotTo(HaveOccurred())

		n, err := dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(producer.tasks).To(BeEmpty())
	})

	It("drains more than one batch in a cycle", func() {
		for _, key := range []string{"a", "b", "c", "d", "e"} {
			_, err := scheduler.Schedule(ctx, notify.Job{Key: key, OrgID: 1, Type: model.NotificationNewThread}, 0)
			Expect(err).NotTo(HaveOccurred())
		}

		n, err := dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(producer.tasks).To(HaveLen(5))
	})

	It("puts jobs back when the stream is unavailable", func() {
		_, err := scheduler.Schedule(ctx, notify.Job{Key: "a", OrgID: 1, Type: model.NotificationNewThread}, 0)
		Expect(err).NotTo(HaveOccurred())
		producer.enqueueFn = func(queue.Task) error { return errors.New("redis down") }

		_, err = dispatcher.DispatchDue(ctx)
		Expect(err).To(HaveOccurred())

		pending, err := scheduler.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(1))
		Expect(pending[0].Key).To(Equal("a"))

		producer.enqueueFn = nil
		n, err := dispatcher.DispatchDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
	})
})
