package worker_test

import (
	"context"
	"time"

	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/model"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/store"
)

type mockStoreProvider struct {
	orgs     *mockOrganizationStore
	users    *mockUserStore
	emails   *mockEmailStore
	pushSubs *mockPushSubscriptionStore
	sessions *mockSessionStore
	invites  *mockInviteStore
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore { return m.orgs }
func (m *mockStoreProvider) Users() store.UserStore { return m.users }
func (m *mockStoreProvider) Emails() store.EmailStore { return m.emails }
func (m *mockStoreProvider) PushSubscriptions() store.PushSubscriptionStore { return m.pushSubs }
func (m *mockStoreProvider) Sessions() store.SessionStore { return m.sessions }
func (m *mockStoreProvider) Invites() store.InviteStore { return m.invites }

type mockMailer struct {
	sent   []mail.Message
	sendFn func(ctx context.Context, msg mail.Message) (string, error)
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) (string, error) {
	if m.sendFn != nil {
		if _, err := m.sendFn(ctx, msg); err != nil {
			return "", err
		}
	}
	m.sent = append(m.sent, msg)
	return "msg-" + msg.To, nil
}

type mockPusher struct {
	sent   []model.PushSubscription
	sendFn func(ctx context.Context, sub model.PushSubscription, payload []byte) error
}

func (m *mockPusher) Send(ctx context.Context, sub model.PushSubscription, payload []byte) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, sub, payload); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sub)
	return nil
}

type mockConsumer struct {
	readFn   func(ctx context.Context) ([]queue.Message, error)
	acked    []string
	requeued []string
	dlq      []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.dlq = append(m.dlq, msg.ID)
	return nil
}

type mockOrganizationStore struct {
	getByIDFn   func(ctx context.Context, id int64) (*model.Organization, error)
	getByHostFn func(ctx context.Context, host string) (*model.Organization, error)
	createFn    func(ctx context.Context, org *model.Organization) error
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetByHost(ctx context.Context, host string) (*model.Organization, error) {
	if m.getByHostFn != nil {
		return m.getByHostFn(ctx, host)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

type mockUserStore struct {
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByWorkOSIDFn    func(ctx context.Context, workosID string) (*model.User, error)
	getByOrgAndEmailFn func(ctx context.Context, orgID int64, email string) (*model.User, error)
	createFn           func(ctx context.Context, user *model.User) error
	updateProfileFn    func(ctx context.Context, id int64, name string, channels []model.NotificationChannel) (*model.User, error)
	setWorkOSIDFn      func(ctx context.Context, id int64, workosID string) (*model.User, error)
	setImageFn         func(ctx context.Context, id int64, imageID *int64) (*model.User, error)
	deleteFn           func(ctx context.Context, id int64) error
	listAdminsFn       func(ctx context.Context, orgID int64) ([]model.User, error)
	listByIDsFn        func(ctx context.Context, ids []int64) ([]model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByWorkOSID(ctx context.Context, workosID string) (*model.User, error) {
	if m.getByWorkOSIDFn != nil {
		return m.getByWorkOSIDFn(ctx, workosID)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByOrgAndEmail(ctx context.Context, orgID int64, email string) (*model.User, error) {
	if m.getByOrgAndEmailFn != nil {
		return m.getByOrgAndEmailFn(ctx, orgID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, name string, channels []model.NotificationChannel) (*model.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, name, channels)
	}
	return nil, nil
}

func (m *mockUserStore) SetWorkOSID(ctx context.Context, id int64, workosID string) (*model.User, error) {
	if m.setWorkOSIDFn != nil {
		return m.setWorkOSIDFn(ctx, id, workosID)
	}
	return nil, nil
}

func (m *mockUserStore) SetImage(ctx context.Context, id int64, imageID *int64) (*model.User, error) {
	if m.setImageFn != nil {
		return m.setImageFn(ctx, id, imageID)
	}
	return nil, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserStore) ListAdmins(ctx context.Context, orgID int64) ([]model.User, error) {
	if m.listAdminsFn != nil {
		return m.listAdminsFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockUserStore) ListByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	if m.listByIDsFn != nil {
		return m.listByIDsFn(ctx, ids)
	}
	return nil, nil
}

type mockEmailStore struct {
	createFn          func(ctx context.Context, email *model.Email) error
	getByMessageIDFn  func(ctx context.Context, messageID string) (*model.Email, error)
	getByJobAndUserFn func(ctx context.Context, jobKey string, userID int64) (*model.Email, error)
	updateStatusFn    func(ctx context.Context, id int64, status model.EmailStatus) (*model.Email, error)
	createEventFn     func(ctx context.Context, event *model.EmailEvent) error
}

func (m *mockEmailStore) Create(ctx context.Context, email *model.Email) error {
	if m.createFn != nil {
		return m.createFn(ctx, email)
	}
	return nil
}

func (m *mockEmailStore) GetByMessageID(ctx context.Context, messageID string) (*model.Email, error) {
	if m.getByMessageIDFn != nil {
		return m.getByMessageIDFn(ctx, messageID)
	}
	return nil, store.ErrNotFound
}

func (m *mockEmailStore) GetByJobAndUser(ctx context.Context, jobKey string, userID int64) (*model.Email, error) {
	if m.getByJobAndUserFn != nil {
		return m.getByJobAndUserFn(ctx, jobKey, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockEmailStore) UpdateStatus(ctx context.Context, id int64, status model.EmailStatus) (*model.Email, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (m *mockEmailStore) CreateEvent(ctx context.Context, event *model.EmailEvent) error {
	if m.createEventFn != nil {
		return m.createEventFn(ctx, event)
	}
	return nil
}

type mockPushSubscriptionStore struct {
	upsertFn           func(ctx context.Context, sub *model.PushSubscription) error
	deleteForUserFn    func(ctx context.Context, userID int64, endpoint string) error
	deleteByEndpointFn func(ctx context.Context, endpoint string) error
	listByUsersFn      func(ctx context.Context, userIDs []int64) ([]model.PushSubscription, error)
}

func (m *mockPushSubscriptionStore) Upsert(ctx context.Context, sub *model.PushSubscription) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, sub)
	}
	return nil
}

func (m *mockPushSubscriptionStore) DeleteForUser(ctx context.Context, userID int64, endpoint string) error {
	if m.deleteForUserFn != nil {
		return m.deleteForUserFn(ctx, userID, endpoint)
	}
	return nil
}

func (m *mockPushSubscriptionStore) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if m.deleteByEndpointFn != nil {
		return m.deleteByEndpointFn(ctx, endpoint)
	}
	return nil
}

func (m *mockPushSubscriptionStore) ListByUsers(ctx context.Context, userIDs []int64) ([]model.PushSubscription, error) {
	if m.listByUsersFn != nil {
		return m.listByUsersFn(ctx, userIDs)
	}
	return nil, nil
}

type mockSessionStore struct {
	getValidFn      func(ctx context.Context, tokenHash string) (*model.Session, error)
	createFn        func(ctx context.Context, session *model.Session) error
	deleteFn        func(ctx context.Context, tokenHash string) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionStore) GetValidByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, tokenHash)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tokenHash)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockInviteStore struct {
	getByIDFn             func(ctx context.Context, id int64) (*model.Invite, error)
	getByTokenFn          func(ctx context.Context, token string) (*model.Invite, error)
	getActiveByEmailFn    func(ctx context.Context, orgID int64, email string) (*model.Invite, error)
	createFn              func(ctx context.Context, invite *model.Invite) error
	consumeUseFn          func(ctx context.Context, id int64) (*model.Invite, error)
	deleteFn              func(ctx context.Context, id int64) error
	listByOrgFn           func(ctx context.Context, orgID int64) ([]model.Invite, error)
	deleteExpiredBeforeFn func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockInviteStore) GetByID(ctx context.Context, id int64) (*model.Invite, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockInviteStore) GetByToken(ctx context.Context, token string) (*model.Invite, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}

func (m *mockInviteStore) GetActiveByEmail(ctx context.Context, orgID int64, email string) (*model.Invite, error) {
	if m.getActiveByEmailFn != nil {
		return m.getActiveByEmailFn(ctx, orgID, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockInviteStore) Create(ctx context.Context, invite *model.Invite) error {
	if m.createFn != nil {
		return m.createFn(ctx, invite)
	}
	return nil
}

func (m *mockInviteStore) ConsumeUse(ctx context.Context, id int64) (*model.Invite, error) {
	if m.consumeUseFn != nil {
		return m.consumeUseFn(ctx, id)
	}
	return nil, nil
}

func (m *mockInviteStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockInviteStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Invite, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockInviteStore) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredBeforeFn != nil {
		return m.deleteExpiredBeforeFn(ctx, before)
	}
	return 0, nil
}

