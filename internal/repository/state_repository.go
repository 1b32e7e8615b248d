package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
)

// StateRepository stores the profile list and the journal as two independent JSON blobs
type StateRepository struct {
	blobs domain.BlobStore
}

// Ensure StateRepository implements domain.StateRepository
var _ domain.StateRepository = (*StateRepository)(nil)

// NewStateRepository creates a StateRepository on top of any blob backend
func NewStateRepository(blobs domain.BlobStore) *StateRepository {
	return &StateRepository{blobs: blobs}
}

// LoadProfiles returns the stored profiles, or nil when nothing was saved yet
func (r *StateRepository) LoadProfiles(ctx context.Context) ([]domain.RiskProfile, error) {
	var profiles []domain.RiskProfile
	if err := r.load(ctx, domain.BlobKeyProfiles, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SaveProfiles replaces the stored profiles
func (r *StateRepository) SaveProfiles(ctx context.Context, profiles []domain.RiskProfile) error {
	if profiles == nil {
		profiles = []domain.RiskProfile{}
	}
	return r.save(ctx, domain.BlobKeyProfiles, profiles)
}

// LoadJournal returns the stored journal, or nil when nothing was saved yet
func (r *StateRepository) LoadJournal(ctx context.Context) ([]domain.DailyStat, error) {
	var journal []domain.DailyStat
	if err := r.load(ctx, domain.BlobKeyJournal, &journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// SaveJournal replaces the stored journal
func (r *StateRepository) SaveJournal(ctx context.Context, journal []domain.DailyStat) error {
	if journal == nil {
		journal = []domain.DailyStat{}
	}
	return r.save(ctx, domain.BlobKeyJournal, journal)
}

func (r *StateRepository) load(ctx context.Context, key string, out interface{}) error {
	data, ok, err := r.blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
