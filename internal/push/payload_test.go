package push_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/push"
)

var _ = Describe("NewPayload", func() {
	It("tags message notifications by thread", func() {
		feedID, threadID := int64(3), int64(9)
		p := push.NewPayload("grace.example.com", model.NotificationNewMessage, model.NotificationData{
			FeedID:    &feedID,
			ThreadID:  &threadID,
			ActorName: "Ruth",
			FeedName:  "Choir",
			Preview:   "See you Sunday",
		})
		Expect(p.Title).To(Equal("Ruth replied in Choir"))
		Expect(p.Body).To(Equal("See you Sunday"))
		Expect(p.Tag).To(Equal("thread-9"))
		Expect(p.URL).To(Equal("https://grace.example.com/feeds/3/threads/9"))
	})

	It("links registrations to the admin page", func() {
		p := push.NewPayload("grace.example.com", model.NotificationUserRegistration, model.NotificationData{ActorName: "Boaz"})
		Expect(p.Body).To(Equal("Boaz just joined your organization"))
		Expect(p.URL).To(Equal("https://grace.example.com/admin/users"))
	})

	It("shortens long previews", func() {
		p := push.NewPayload("h", model.NotificationNewThread, model.NotificationData{Preview: strings.Repeat("a", 500)})
		Expect([]rune(p.Body)).To(HaveLen(120))
		Expect(p.Body).To(HaveSuffix("..."))
	})
})
