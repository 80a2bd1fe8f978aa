package worker

import (
	"context"

	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/store"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// TaskProcessor handles one decoded task.
type TaskProcessor interface {
	Process(ctx context.Context, msg queue.Message) error
}

// StoreProvider mirrors the subset of store.Stores the worker reads and
// writes. Defined here to avoid import cycles with service.
type StoreProvider interface {
	Organizations() store.OrganizationStore
	Users() store.UserStore
	Emails() store.EmailStore
	PushSubscriptions() store.PushSubscriptionStore
	Sessions() store.SessionStore
	Invites() store.InviteStore
}
