package push_test

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"

	webpush "github.com/SherClockHolmes/webpush-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/push"
)

func browserSubscription(endpoint string) model.PushSubscription {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	Expect(err).NotTo(HaveOccurred())
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	Expect(err).NotTo(HaveOccurred())

	return model.PushSubscription{
		ID:       1,
		UserID:   2,
		Endpoint: endpoint,
		P256dh:   base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
		Auth:     base64.RawURLEncoding.EncodeToString(auth),
	}
}

var _ = Describe("WebPushSender", func() {
	var (
		status   int
		hits     int
		auth     string
		encoding string
		server *httptest.Server
		sender *push.WebPushSender
	)

	BeforeEach(func() {
		hits = 0
		status = http.StatusCreated
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			auth = r.Header.Get("Authorization")
			encoding = r.Header.Get("Content-Encoding")
			w.WriteHeader(status)
		}))

		privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
		Expect(err).NotTo(HaveOccurred())
		sender = push.NewWebPushSender(push.Config{
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			Subscriber:      "mailto:test@example.com",
		}, server.Client())
	})

	AfterEach(func() {
		server.Close()
	})

	It("delivers an encrypted payload", func() {
		err := sender.Send(context.Background(), browserSubscription(server.URL+"/push/1"), []byte(`{"title":"hi"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(hits).To(Equal(1))
		Expect(auth).To(HavePrefix("vapid "))
		Expect(encoding).To(Equal("aes128gcm"))
	})

	It("reports a gone subscription on 410", func() {
		status = http.StatusGone
		err := sender.Send(context.Background(), browserSubscription(server.URL+"/push/1"), []byte(`{}`))
		Expect(errors.Is(err, push.ErrSubscriptionGone)).To(BeTrue())
	})

	It("reports a gone subscription on 404", func() {
		status = http.StatusNotFound
		err := sender.Send(context.Background(), browserSubscription(server.URL+"/push/1"), []byte(`{}`))
		Expect(errors.Is(err, push.ErrSubscriptionGone)).To(BeTrue())
	})

	It("returns other failures as plain errors", func() {
		status = http.StatusTooManyRequests
		err := sender.Send(context.Background(), browserSubscription(server.URL+"/push/1"), []byte(`{}`))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, push.ErrSubscriptionGone)).To(BeFalse())
	})
})
