package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/internal/model"
)

const (
	DefaultScheduleKey = "notify:scheduled"
	DefaultJobsKey     = "notify:jobs"
)

// Job is one pending email dispatch. Recipients are resolved when the job is
// scheduled; channel preferences are re-checked when the email is sent.
type Job struct {
	Key          string                 `json:"key"`
	OrgID        int64                  `json:"org_id,string"`
	Type         model.NotificationType `json:"type"`
	RecipientIDs []int64                `json:"recipient_ids"`
	Data         json.RawMessage        `json:"data,omitempty"`
	DueAt        time.Time              `json:"due_at"`
	TraceID      string                 `json:"trace_id,omitempty"`
	// DispatchID is minted on every Schedule call, so each burst on a shared
	// key is delivered under its own idempotency key.
	DispatchID int64 `json:"dispatch_id,string"`
}

// DispatchKey identifies this dispatch for send de-duplication. Retries of the
// same dispatch keep it; a later burst on the same Key gets a new one.
func (j Job) DispatchKey() string {
	return fmt.Sprintf("%s:%d", j.Key, j.DispatchID)
}

// JobKey returns the dispatch key for a notification. New messages in the
// same thread share a key so a burst of replies yields one email.
func JobKey(t model.NotificationType, data model.NotificationData) string {
	if t == model.NotificationNewMessage && data.ThreadID != nil {
		return fmt.Sprintf("%s:%d", t, *data.ThreadID)
	}
	return fmt.Sprintf("%s:%d", t, id.New())
}

type Scheduler interface {
	// Schedule stores job due after delay. A pending job with the same key
	// is replaced and its due time reset.
	Schedule(ctx context.Context, job Job, delay time.Duration) (Job, error)
	// Restore puts a claimed job back unless a newer job took its key.
	Restore(ctx context.Context, job Job) error
	Pending(ctx context.Context) ([]Job, error)
	// ClaimDue atomically removes and returns up to limit jobs due at now.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
}

type SchedulerConfig struct {
	ScheduleKey string
	JobsKey     string
}

type redisScheduler struct {
	client redis.UniversalClient
	cfg    SchedulerConfig
	now    func() time.Time
}

func NewRedisScheduler(client redis.UniversalClient, cfg SchedulerConfig) Scheduler {
	if cfg.ScheduleKey == "" {
		cfg.ScheduleKey = DefaultScheduleKey
	}
	if cfg.JobsKey == "" {
		cfg.JobsKey = DefaultJobsKey
	}
	return &redisScheduler{client: client, cfg: cfg, now: time.Now}
}

// claimScript pops due members from the schedule together with their payloads.
var claimScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[2]))
local out = {}
for _, key in ipairs(due) do
	redis.call('ZREM', KEYS[1], key)
	local payload = redis.call('HGET', KEYS[2], key)
	redis.call('HDEL', KEYS[2], key)
	if payload then
		table.insert(out, payload)
	end
end
return out
`)

func (s *redisScheduler) Schedule(ctx context.Context, job Job, delay time.Duration) (Job, error) {
	if job.Key == "" {
		return Job{}, fmt.Errorf("job key is required")
	}
	if delay < 0 {
		delay = 0
	}
	job.DueAt = s.now().Add(delay).UTC()
	job.DispatchID = id.New()

	payload, err := json.Marshal(job)
	if err != nil {
		return Job{}, fmt.Errorf("marshaling job: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, s.cfg.ScheduleKey, redis.Z{Score: score(job.DueAt), Member: job.Key})
		pipe.HSet(ctx, s.cfg.JobsKey, job.Key, payload)
		return nil
	})
	if err != nil {
		return Job{}, fmt.Errorf("scheduling job %s: %w", job.Key, err)
	}
	return job, nil
}

func (s *redisScheduler) Restore(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAddNX(ctx, s.cfg.ScheduleKey, redis.Z{Score: score(job.DueAt), Member: job.Key})
		pipe.HSetNX(ctx, s.cfg.JobsKey, job.Key, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("restoring job %s: %w", job.Key, err)
	}
	return nil
}

func (s *redisScheduler) Pending(ctx context.Context) ([]Job, error) {
	keys, err := s.client.ZRange(ctx, s.cfg.ScheduleKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing scheduled jobs: %w", err)
	}
	if len(keys) == 0 {
		return []Job{}, nil
	}

	payloads, err := s.client.HMGet(ctx, s.cfg.JobsKey, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading scheduled jobs: %w", err)
	}

	jobs := make([]Job, 0, len(payloads))
	for _, raw := range payloads {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var job Job
		if err := json.Unmarshal([]byte(str), &job); err != nil {
			return nil, fmt.Errorf("decoding job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s *redisScheduler) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}

	res, err := claimScript.Run(ctx, s.client,
		[]string{s.cfg.ScheduleKey, s.cfg.JobsKey},
		strconv.FormatInt(now.UnixMilli(), 10), limit,
	).StringSlice()
	if err != nil {
		if err == redis.Nil {
			return []Job{}, nil
		}
		return nil, fmt.Errorf("claiming due jobs: %w", err)
	}

	jobs := make([]Job, 0, len(res))
	for _, payload := range res {
		var job Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			// The job is already removed; drop it rather than loop on it.
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}
