package localdoc

import (
	"context"
	"sync"
	"time"

	"github.com/ben-ryder/headbase/internal/logger"
)

// Syncer is the contract the background job drives. *Store satisfies it.
type Syncer interface {
	Sync(ctx context.Context) error
}

// SyncJob runs Syncer.Sync on a ticker. The job is idle until Start is
// called.
type SyncJob struct {
	syncer Syncer
	log    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob over syncer.
func NewSyncJob(syncer Syncer, log *logger.Logger) *SyncJob {
	if log == nil {
		log = logger.Nop()
	}
	return &SyncJob{syncer: syncer, log: log}
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. If interval is zero or negative it
// defaults to 5 minutes. The goroutine exits when ctx is cancelled or Stop
// is called. Sync errors are logged and the next tick retries.
func (j *SyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncer.Sync(jobCtx); err != nil {
					j.log.Warn().Err(err).Msg("background sync failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
