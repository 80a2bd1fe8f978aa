package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/storage"
	"churchthreads.app/api/internal/store"
)

const filesBaseURL = "https://files.example.com/"

func pngBytes(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("UploadService", func() {
	var (
		ctx     context.Context
		stores  *mockStoreProvider
		blobs   storage.BlobStore
		svc     service.UploadService
		user    *model.User
		uploads map[int64]*model.Upload
		feedID  int64
	)

	const orgID = int64(10)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		blobs = storage.NewFromFs(afero.NewMemMapFs(), filesBaseURL)
		uploads = map[int64]*model.Upload{}
		feedID = 50
		user = &model.User{ID: 1, OrgID: orgID}

		stores.feeds.getByIDFn = func(_ context.Context, id int64) (*model.Feed, error) {
			if id == feedID {
				return &model.Feed{ID: id, OrgID: orgID, Privacy: model.FeedOpen, MemberPermissions: []model.MemberPermission{model.PermissionMessage}}, nil
			}
			return nil, store.ErrNotFound
		}
		stores.memberships.getFn = func(_ context.Context, userID, id int64) (*model.UserFeed, error) {
			if userID == user.ID && id == feedID {
				return &model.UserFeed{UserID: userID, FeedID: id}, nil
			}
			return nil, store.ErrNotFound
		}
		stores.uploads.createFn = func(_ context.Context, u *model.Upload) error {
			uploads[u.ID] = u
			return nil
		}
		stores.uploads.deleteFn = func(_ context.Context, id int64) error {
			delete(uploads, id)
			return nil
		}
		stores.uploads.getAvatarByUserFn = func(_ context.Context, userID int64) (*model.Upload, error) {
			for _, u := range uploads {
				if u.Source == model.UploadSourceAvatar && u.UserID == userID {
					return u, nil
				}
			}
			return nil, store.ErrNotFound
		}
		stores.users.setImageFn = func(_ context.Context, _ int64, imageID *int64) (*model.User, error) {
			user.ImageID = imageID
			return user, nil
		}

		tx := &mockTxRunner{stores: stores}
		feeds := service.NewFeedService(stores.feeds, stores.memberships, tx, &mockNotificationService{})
		svc = service.NewUploadService(stores.uploads, tx, feeds, blobs)
	})

	keyOf := func(url string) string {
		Expect(url).To(HavePrefix(filesBaseURL))
		return strings.TrimPrefix(url, filesBaseURL)
	}

	It("stores message images under the org and source", func() {
		data := pngBytes(20, 20)
		result, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceMessage,
			FeedID:   &feedID,
			FileName: "Sunday Lunch.PNG",
			Reader:   bytes.NewReader(data),
		})
		Expect(err).NotTo(HaveOccurred())

		key := keyOf(result.URL)
		Expect(key).To(HavePrefix("10/message/"))
		Expect(key).To(HaveSuffix("-sunday-lunch.png"))

		upload := uploads[result.UploadID]
		Expect(upload).NotTo(BeNil())
		Expect(upload.MimeType).To(Equal("image/png"))
		Expect(upload.SizeBytes).To(Equal(int64(len(data))))
		Expect(upload.FileExtension).To(Equal("png"))
	})

	It("names stored files after their content, not the client's extension", func() {
		data := append(pngBytes(4, 4), []byte("<script>alert(1)</script>")...)
		result, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceMessage,
			FeedID:   &feedID,
			FileName: "evil.html",
			Reader:   bytes.NewReader(data),
		})
		Expect(err).NotTo(HaveOccurred())

		key := keyOf(result.URL)
		Expect(key).To(HaveSuffix("-evil.png"))
		Expect(key).NotTo(ContainSubstring(".html"))
		Expect(uploads[result.UploadID].FileExtension).To(Equal("png"))
	})

	It("rejects files that are not images whatever their name", func() {
		_, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceMessage,
			FeedID:   &feedID,
			FileName: "notes.png",
			Reader:   strings.NewReader("just some text"),
		})
		Expect(err).To(MatchError(service.ErrValidation))
		Expect(err.Error()).To(ContainSubstring("is not allowed"))
		Expect(uploads).To(BeEmpty())
	})

	It("rejects empty files", func() {
		_, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceAvatar,
			FileName: "me.png",
			Reader:   bytes.NewReader(nil),
		})
		Expect(err).To(MatchError(service.ErrValidation))
	})

	It("needs a feed for thread and message uploads", func() {
		_, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceThread,
			FileName: "a.png",
			Reader:   bytes.NewReader(pngBytes(2, 2)),
		})
		Expect(err).To(MatchError(service.ErrFeedIDRequired))
	})

	It("checks the feed permission for the source", func() {
		_, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceThread,
			FeedID:   &feedID,
			FileName: "a.png",
			Reader:   bytes.NewReader(pngBytes(2, 2)),
		})
		Expect(err).To(MatchError(service.ErrForbidden))
	})

	It("refuses uploads into another organization", func() {
		_, err := svc.Upload(ctx, user, service.UploadParams{OrgID: 99, Source: model.UploadSourceAvatar})
		Expect(err).To(MatchError(service.ErrForbidden))
	})

	It("resizes avatars and replaces the previous one", func() {
		first, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceAvatar,
			FileName: "me.png",
			Reader:   bytes.NewReader(pngBytes(400, 300)),
		})
		Expect(err).NotTo(HaveOccurred())

		second, err := svc.Upload(ctx, user, service.UploadParams{
			OrgID:    orgID,
			Source:   model.UploadSourceAvatar,
			FileName: "me-again.png",
			Reader:   bytes.NewReader(pngBytes(300, 300)),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(uploads).To(HaveLen(1))
		Expect(uploads).To(HaveKey(second.UploadID))
		Expect(*uploads[second.UploadID].SourceID).To(Equal(user.ID))
		Expect(*user.ImageID).To(Equal(second.UploadID))

		_, err = blobs.Open(ctx, keyOf(first.URL))
		Expect(err).To(MatchError(storage.ErrNotFound))

		rc, err := blobs.Open(ctx, keyOf(second.URL))
		Expect(err).NotTo(HaveOccurred())
		defer rc.Close()
		img, _, err := image.Decode(rc)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(Equal(service.AvatarSize))
		Expect(img.Bounds().Dy()).To(Equal(service.AvatarSize))
	})
})
