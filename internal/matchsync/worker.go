package matchsync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/riot"
	"gorm.io/gorm"
)

var (
	ErrCooldownActive  = errors.New("sync cooldown active")
	ErrQueueFull       = errors.New("sync queue is full")
	ErrNoLinkedAccount = errors.New("no linked riot account")
	ErrJobNotFound     = errors.New("sync job not found")
)

// matchStore is the persistence surface the worker needs. MatchService
// implements it.
type matchStore interface {
	InsertIfAbsent(userID uuid.UUID, m *riot.Match) (bool, error)
}

// Worker processes match-sync jobs one at a time off an in-memory queue.
// Job state lives in the sync_jobs table so status survives restarts and the
// per-user cooldown can be enforced against durable history.
type Worker struct {
	db       *gorm.DB
	client   riot.Client
	matches  matchStore
	cooldown time.Duration

	queue  chan uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewWorker(db *gorm.DB, client riot.Client, matches matchStore, cooldown time.Duration, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Worker{
		db:       db,
		client:   client,
		matches:  matches,
		cooldown: cooldown,
		queue:    make(chan uuid.UUID, queueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the processing loop. Jobs left pending or running from a
// previous run are marked failed so status queries do not hang forever.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	stale := "interrupted by restart"
	w.db.Model(&models.SyncJob{}).
		Where("status IN ?", []string{models.SyncJobPending, models.SyncJobRunning}).
		Updates(map[string]interface{}{
			"status":       models.SyncJobFailed,
			"error":        stale,
			"completed_at": time.Now(),
		})

	go w.run(ctx)
}

// Stop drains nothing: queued jobs stay pending in the table and are failed
// on the next Start.
func (w *Worker) Stop() {
	w.once.Do(func() {
		if w.cancel == nil {
			return
		}
		w.cancel()
		<-w.done
	})
}

// Submit enqueues a sync job for the user unless a job ran within the
// cooldown window. On cooldown it returns ErrCooldownActive together with the
// seconds remaining until the next allowed sync.
func (w *Worker) Submit(userID uuid.UUID, count int) (*models.SyncJob, int, error) {
	var last models.SyncJob
	err := w.db.Where("user_id = ?", userID).Order("created_at DESC").First(&last).Error
	if err == nil {
		if retryAfter, active := retryAfterSeconds(last.CreatedAt, time.Now(), w.cooldown); active {
			return nil, retryAfter, ErrCooldownActive
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	job := models.SyncJob{
		UserID:         userID,
		Status:         models.SyncJobPending,
		RequestedCount: count,
	}
	if err := w.db.Create(&job).Error; err != nil {
		return nil, 0, err
	}

	select {
	case w.queue <- job.ID:
		return &job, 0, nil
	default:
		w.db.Delete(&job)
		return nil, 0, ErrQueueFull
	}
}

// Status returns a sync job scoped to its owner.
func (w *Worker) Status(jobID, userID uuid.UUID) (*models.SyncJob, error) {
	var job models.SyncJob
	err := w.db.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	slog.Info("Match sync worker started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Match sync worker stopped")
			return
		case jobID := <-w.queue:
			w.process(ctx, jobID)
		}
	}
}

func (w *Worker) process(ctx context.Context, jobID uuid.UUID) {
	var job models.SyncJob
	if err := w.db.First(&job, "id = ?", jobID).Error; err != nil {
		slog.Error("Sync job vanished before processing", slog.String("job_id", jobID.String()))
		return
	}

	now := time.Now()
	w.db.Model(&job).Updates(map[string]interface{}{
		"status":     models.SyncJobRunning,
		"started_at": now,
	})

	synced, skipped, failed, err := w.syncMatches(ctx, &job)

	updates := map[string]interface{}{
		"status":        models.SyncJobCompleted,
		"synced_count":  synced,
		"skipped_count": skipped,
		"failed_count":  failed,
		"completed_at":  time.Now(),
	}
	if err != nil {
		msg := err.Error()
		updates["status"] = models.SyncJobFailed
		updates["error"] = msg
		slog.Error("Match sync failed",
			slog.String("job_id", job.ID.String()),
			slog.String("user_id", job.UserID.String()),
			slog.String("error", msg))
	} else {
		slog.Info("Match sync completed",
			slog.String("job_id", job.ID.String()),
			slog.String("user_id", job.UserID.String()),
			slog.Int("synced", synced),
			slog.Int("skipped", skipped),
			slog.Int("failed", failed))
	}
	w.db.Model(&job).Updates(updates)
}

// retryAfterSeconds reports the whole seconds left in the cooldown window,
// rounded up, and whether that window is still open.
func retryAfterSeconds(lastCreated, now time.Time, cooldown time.Duration) (int, bool) {
	elapsed := now.Sub(lastCreated)
	if elapsed >= cooldown {
		return 0, false
	}
	return int((cooldown - elapsed).Seconds()) + 1, true
}

func (w *Worker) syncMatches(ctx context.Context, job *models.SyncJob) (synced, skipped, failed int, err error) {
	var user models.User
	if err := w.db.First(&user, "id = ?", job.UserID).Error; err != nil {
		return 0, 0, 0, err
	}
	if user.RiotPuuid == nil {
		return 0, 0, 0, ErrNoLinkedAccount
	}
	return w.pullMatches(ctx, job.UserID, *user.RiotPuuid, job.RequestedCount)
}

// pullMatches fetches the latest match ids for puuid and stores each match
// that is not already recorded. Per-match failures are counted, not fatal.
// Running it again over the same ids adds nothing; repeats land in skipped.
func (w *Worker) pullMatches(ctx context.Context, userID uuid.UUID, puuid string, count int) (synced, skipped, failed int, err error) {
	matchIDs, err := w.client.MatchIDs(ctx, puuid, 0, count)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, matchID := range matchIDs {
		payload, err := w.client.MatchDetails(ctx, matchID)
		if err != nil {
			failed++
			slog.Warn("Failed to fetch match details",
				slog.String("match_id", matchID),
				slog.String("error", err.Error()))
			continue
		}

		match, err := riot.TransformMatch(payload, puuid)
		if err != nil {
			failed++
			slog.Warn("Failed to transform match",
				slog.String("match_id", matchID),
				slog.String("error", err.Error()))
			continue
		}

		inserted, err := w.matches.InsertIfAbsent(userID, match)
		if err != nil {
			failed++
			slog.Warn("Failed to store match",
				slog.String("match_id", matchID),
				slog.String("error", err.Error()))
			continue
		}
		if inserted {
			synced++
		} else {
			skipped++
		}
	}

	return synced, skipped, failed, nil
}
