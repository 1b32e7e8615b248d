package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
	"github.com/rs/zerolog"
)

// Sync operations reported in status and failure events
const (
	SyncOperationPull = "pull"
	SyncOperationPush = "push"
)

// SyncStatus describes the last reconciliation activity of one profile
type SyncStatus struct {
	ProfileID  string     `json:"profileId"`
	IsSyncing  bool       `json:"isSyncing"`
	LastPullAt *time.Time `json:"lastPullAt,omitempty"`
	LastPushAt *time.Time `json:"lastPushAt,omitempty"`
	LastError  string     `json:"lastError,omitempty"`
}

// SyncFailure is the payload of a sync.failed event
type SyncFailure struct {
	ProfileID string `json:"profileId"`
	Operation string `json:"operation"`
	Message   string `json:"message"`
}

// PullResult summarizes what a pull changed
type PullResult struct {
	JournalReplaced bool `json:"journalReplaced"`
	Entries         int  `json:"entries"`
	ProfileUpdated  bool `json:"profileUpdated"`
}

// PullAllResult summarizes a pull across every sync-enabled profile
type PullAllResult struct {
	Profiles int
	Pulled   int
	Errors   int
}

// ReconcileService pulls remote snapshots into the store and pushes local state to the remote endpoint.
// The in-flight flag is advisory: automatic triggers run even while another sync is in progress.
type ReconcileService struct {
	store          *Store
	client         domain.RemoteSyncClient
	mapper         domain.SnapshotMapper
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
	now            func() time.Time

	mu       sync.Mutex
	inFlight map[string]int
	status   map[string]*SyncStatus
	wg       sync.WaitGroup
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(
	store *Store,
	client domain.RemoteSyncClient,
	mapper domain.SnapshotMapper,
	logger zerolog.Logger,
) *ReconcileService {
	return &ReconcileService{
		store:    store,
		client:   client,
		mapper:   mapper,
		logger:   logger.With().Str("component", "reconciler").Logger(),
		now:      time.Now,
		inFlight: make(map[string]int),
		status:   make(map[string]*SyncStatus),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReconcileService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ReconcileService) publishEvent(profileID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(profileID, event)
	}
}

// IsSyncing reports whether a pull or push for the profile is in flight
func (s *ReconcileService) IsSyncing(profileID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[profileID] > 0
}

// SyncStatus returns the last known sync activity of a profile
func (s *ReconcileService) SyncStatus(profileID string) SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := SyncStatus{ProfileID: profileID, IsSyncing: s.inFlight[profileID] > 0}
	if st, ok := s.status[profileID]; ok {
		out.LastPullAt = st.LastPullAt
		out.LastPushAt = st.LastPushAt
		out.LastError = st.LastError
	}
	return out
}

// Pull reads the remote snapshot and merges it into the store. A non-empty remote journal
// replaces the profile's local journal; defined profile fields are written over local ones.
// On failure the store is left untouched.
func (s *ReconcileService) Pull(ctx context.Context, profileID string) (*PullResult, error) {
	profile, err := s.store.Profile(profileID)
	if err != nil {
		return nil, err
	}
	if !profile.Sync.CanSync() {
		return nil, domain.ErrSyncDisabled
	}

	s.begin(profileID)
	defer s.end(profileID)

	raw, err := s.client.Read(ctx, profile.Sync)
	if err != nil {
		return nil, s.fail(profileID, SyncOperationPull, err)
	}

	patch, rows, err := s.mapper.Map(raw, profile)
	if err != nil {
		return nil, s.fail(profileID, SyncOperationPull, err)
	}

	if _, err := s.store.ApplyRemote(ctx, profileID, rows, patch); err != nil {
		return nil, s.fail(profileID, SyncOperationPull, err)
	}
	result := &PullResult{
		Entries:         len(rows),
		JournalReplaced: len(rows) > 0,
		ProfileUpdated:  !patch.IsEmpty(),
	}

	s.succeed(profileID, SyncOperationPull)

	synced, err := s.store.Profile(profileID)
	if err == nil {
		s.publishEvent(profileID, websocket.ProfileSynced(synced))
	}

	s.logger.Info().
		Str("profile_id", profileID).
		Int("entries", result.Entries).
		Bool("journal_replaced", result.JournalReplaced).
		Bool("profile_updated", result.ProfileUpdated).
		Msg("Pulled remote snapshot")
	return result, nil
}

// Push sends the profile and its journal to the remote endpoint. A failure leaves the store as is.
func (s *ReconcileService) Push(ctx context.Context, profileID string) error {
	profile, err := s.store.Profile(profileID)
	if err != nil {
		return err
	}
	if !profile.Sync.CanSync() {
		return domain.ErrSyncDisabled
	}

	s.begin(profileID)
	defer s.end(profileID)

	payload := domain.SyncPayload{Profile: profile, Journal: s.store.Journal(profileID)}
	if err := s.client.Write(ctx, profile.Sync, payload); err != nil {
		return s.fail(profileID, SyncOperationPush, err)
	}

	s.succeed(profileID, SyncOperationPush)
	s.logger.Debug().
		Str("profile_id", profileID).
		Int("entries", len(payload.Journal)).
		Msg("Pushed local state")
	return nil
}

// PushInBackground runs Push on its own goroutine. Errors are logged and published.
func (s *ReconcileService) PushInBackground(profileID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.Push(context.Background(), profileID)
		if err != nil && !errors.Is(err, domain.ErrSyncDisabled) {
			s.logger.Debug().Err(err).Str("profile_id", profileID).Msg("Background push failed")
		}
	}()
}

// Wait blocks until every background push has finished
func (s *ReconcileService) Wait() {
	s.wg.Wait()
}

// ManualPull is the user-triggered pull; it is rejected while a sync for the profile is in flight
func (s *ReconcileService) ManualPull(ctx context.Context, profileID string) (*PullResult, error) {
	if s.IsSyncing(profileID) {
		return nil, domain.ErrSyncInProgress
	}
	return s.Pull(ctx, profileID)
}

// ManualPush is the user-triggered push; it is rejected while a sync for the profile is in flight
func (s *ReconcileService) ManualPush(ctx context.Context, profileID string) error {
	if s.IsSyncing(profileID) {
		return domain.ErrSyncInProgress
	}
	return s.Push(ctx, profileID)
}

// PullAll pulls every profile whose sync is enabled and configured
func (s *ReconcileService) PullAll(ctx context.Context) (PullAllResult, error) {
	start := time.Now()
	var result PullAllResult

	for _, profile := range s.store.Profiles() {
		if !profile.Sync.CanSync() {
			continue
		}
		result.Profiles++

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if _, err := s.Pull(ctx, profile.ID); err != nil {
			result.Errors++
			continue
		}
		result.Pulled++
	}

	s.logger.Info().
		Int("profiles", result.Profiles).
		Int("pulled", result.Pulled).
		Int("errors", result.Errors).
		Dur("duration", time.Since(start)).
		Msg("Pull for all profiles completed")

	if result.Errors > 0 {
		return result, fmt.Errorf("pull completed with %d errors out of %d profiles", result.Errors, result.Profiles)
	}
	return result, nil
}

func (s *ReconcileService) begin(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[profileID]++
}

func (s *ReconcileService) end(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[profileID] <= 1 {
		delete(s.inFlight, profileID)
		return
	}
	s.inFlight[profileID]--
}

func (s *ReconcileService) statusFor(profileID string) *SyncStatus {
	st, ok := s.status[profileID]
	if !ok {
		st = &SyncStatus{ProfileID: profileID}
		s.status[profileID] = st
	}
	return st
}

func (s *ReconcileService) succeed(profileID, operation string) {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.statusFor(profileID)
	st.LastError = ""
	if operation == SyncOperationPull {
		st.LastPullAt = &now
	} else {
		st.LastPushAt = &now
	}
}

// fail records and publishes a sync failure, returning err wrapped with the operation
func (s *ReconcileService) fail(profileID, operation string, err error) error {
	s.mu.Lock()
	s.statusFor(profileID).LastError = err.Error()
	s.mu.Unlock()

	s.logger.Warn().
		Err(err).
		Str("profile_id", profileID).
		Str("operation", operation).
		Msg("Sync failed")

	s.publishEvent(profileID, websocket.SyncFailed(SyncFailure{
		ProfileID: profileID,
		Operation: operation,
		Message:   err.Error(),
	}))
	return fmt.Errorf("%s failed: %w", operation, err)
}
