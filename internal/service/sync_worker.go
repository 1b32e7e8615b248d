package service

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SyncWorker pulls every sync-enabled profile once at start and, when a schedule is set,
// on that cron schedule. Pull overwrites the local journal, so periodic pulls are opt-in.
type SyncWorker struct {
	reconciler  *ReconcileService
	logger      zerolog.Logger
	schedule    string
	pullOnStart bool
	cron        *cron.Cron
	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	startWG     sync.WaitGroup
}

// SyncWorkerConfig holds configuration for the sync worker
type SyncWorkerConfig struct {
	Schedule    string // cron spec or descriptor such as "@every 5m"; empty disables periodic pulls
	PullOnStart bool
}

// DefaultSyncWorkerConfig returns sensible defaults
func DefaultSyncWorkerConfig() SyncWorkerConfig {
	return SyncWorkerConfig{
		PullOnStart: true,
	}
}

// NewSyncWorker creates a new sync worker. The schedule is validated here.
func NewSyncWorker(reconciler *ReconcileService, logger zerolog.Logger, config SyncWorkerConfig) (*SyncWorker, error) {
	if config.Schedule != "" {
		if _, err := cron.ParseStandard(config.Schedule); err != nil {
			return nil, err
		}
	}

	return &SyncWorker{
		reconciler:  reconciler,
		logger:      logger.With().Str("component", "sync_worker").Logger(),
		schedule:    config.Schedule,
		pullOnStart: config.PullOnStart,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}, nil
}

// Start runs the initial pull in the background and schedules the periodic pull if one is set
func (w *SyncWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	if w.schedule != "" {
		if _, err := w.cron.AddFunc(w.schedule, func() { w.pullAll(runCtx) }); err != nil {
			cancel()
			return err
		}
	}

	w.cancel = cancel
	w.running = true

	if w.schedule == "" {
		w.logger.Info().Msg("Starting sync worker without periodic pulls")
	} else {
		w.logger.Info().Str("schedule", w.schedule).Msg("Starting sync worker")
	}

	if w.pullOnStart {
		w.startWG.Add(1)
		go func() {
			defer w.startWG.Done()
			w.pullAll(runCtx)
		}()
	}
	w.cron.Start()
	return nil
}

// Stop waits for running pulls to finish and stops the schedule
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel := w.cancel
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping sync worker")
	cancel()
	stopped := w.cron.Stop()
	<-stopped.Done()
	w.startWG.Wait()
	w.logger.Info().Msg("Sync worker stopped")
}

// IsRunning returns whether the worker is currently running
func (w *SyncWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *SyncWorker) pullAll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := w.reconciler.PullAll(ctx); err != nil {
		w.logger.Warn().Err(err).Msg("Scheduled pull finished with errors")
	}
}
