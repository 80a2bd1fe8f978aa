package service

import (
	"context"

	"churchthreads.app/api/core/db"
	"churchthreads.app/api/core/db/sqlc"
	"churchthreads.app/api/internal/store"
)

// StoreProvider exposes the stores a transactional operation may touch.
type StoreProvider interface {
	Organizations() store.OrganizationStore
	Users() store.UserStore
	Feeds() store.FeedStore
	Memberships() store.MembershipStore
	Threads() store.ThreadStore
	Messages() store.MessageStore
	Invites() store.InviteStore
	Uploads() store.UploadStore
	Notifications() store.NotificationStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
