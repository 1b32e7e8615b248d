package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/rs/zerolog/log"
)

// State is a point-in-time copy of everything the store holds
type State struct {
	Profiles []domain.RiskProfile
	Journal  []domain.DailyStat
}

// ActiveProfileID returns the id of the active profile, or the first profile if none is flagged
func (s State) ActiveProfileID() string {
	for _, p := range s.Profiles {
		if p.IsActive {
			return p.ID
		}
	}
	if len(s.Profiles) > 0 {
		return s.Profiles[0].ID
	}
	return ""
}

func (s State) profileIndex(id string) int {
	for i, p := range s.Profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	out := State{
		Profiles: make([]domain.RiskProfile, len(s.Profiles)),
		Journal:  make([]domain.DailyStat, len(s.Journal)),
	}
	for i, p := range s.Profiles {
		out.Profiles[i] = p.Clone()
	}
	copy(out.Journal, s.Journal)
	return out
}

// Store is the single writer of profiles and journal entries.
// Every mutation persists both lists before it becomes visible, then notifies listeners.
type Store struct {
	repo      domain.StateRepository
	mu        sync.RWMutex
	state     State
	listeners []domain.StateListener
}

// NewStore creates an empty Store backed by repo. Call Load before use.
func NewStore(repo domain.StateRepository) *Store {
	return &Store{repo: repo}
}

// Subscribe registers a listener for committed mutations
func (s *Store) Subscribe(listener domain.StateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Load reads both lists from the repository. When no profile is stored the
// seed profiles are written, falling back to the built-in default profile.
func (s *Store) Load(ctx context.Context, seed []domain.RiskProfile) error {
	profiles, err := s.repo.LoadProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	journal, err := s.repo.LoadJournal(ctx)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	seeded := false
	if len(profiles) == 0 {
		if len(seed) == 0 {
			seed = []domain.RiskProfile{domain.DefaultProfile()}
		}
		profiles = make([]domain.RiskProfile, len(seed))
		for i, p := range seed {
			profiles[i] = p.Clone()
		}
		seeded = true
	}

	next := State{Profiles: profiles, Journal: journal}
	ensureActive(&next)
	sortJournal(next.Journal)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seeded {
		if err := s.repo.SaveProfiles(ctx, next.Profiles); err != nil {
			return fmt.Errorf("failed to save seed profiles: %w", err)
		}
		log.Info().Int("profiles", len(next.Profiles)).Msg("Seeded risk profiles")
	}
	s.state = next

	log.Info().
		Int("profiles", len(next.Profiles)).
		Int("journal_entries", len(next.Journal)).
		Msg("Store loaded")
	return nil
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Profiles returns a copy of all profiles
func (s *Store) Profiles() []domain.RiskProfile {
	return s.Snapshot().Profiles
}

// Profile returns a copy of the profile with the given id
func (s *Store) Profile(id string) (domain.RiskProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.state.profileIndex(id)
	if idx < 0 {
		return domain.RiskProfile{}, domain.ErrProfileNotFound
	}
	return s.state.Profiles[idx].Clone(), nil
}

// ActiveProfile returns a copy of the active profile
func (s *Store) ActiveProfile() (domain.RiskProfile, error) {
	s.mu.RLock()
	id := s.state.ActiveProfileID()
	s.mu.RUnlock()
	return s.Profile(id)
}

// Journal returns the entries of one profile in ascending date order
func (s *Store) Journal(profileID string) []domain.DailyStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterJournal(s.state.Journal, profileID)
}

// AppendRecord adds an entry and applies its P&L to the owning profile's balance
func (s *Store) AppendRecord(ctx context.Context, record domain.DailyStat) (State, error) {
	return s.AppendRecordWith(ctx, record.ProfileID, func(domain.RiskProfile, []domain.DailyStat) (domain.DailyStat, error) {
		return record, nil
	})
}

// AppendRecordWith builds the entry from the profile and journal as they stand under the
// write lock, then appends it like AppendRecord. Concurrent appends each see the previous one.
func (s *Store) AppendRecordWith(ctx context.Context, profileID string, build func(profile domain.RiskProfile, journal []domain.DailyStat) (domain.DailyStat, error)) (State, error) {
	return s.mutate(ctx, profileID, func(next *State) error {
		idx := next.profileIndex(profileID)
		if idx < 0 {
			return domain.ErrProfileNotFound
		}
		record, err := build(next.Profiles[idx].Clone(), filterJournal(next.Journal, profileID))
		if err != nil {
			return err
		}
		record.ProfileID = profileID
		next.Journal = append(next.Journal, record)
		sortJournal(next.Journal)
		next.Profiles[idx].CurrentBalance = next.Profiles[idx].CurrentBalance.Add(record.PnlAmount)
		return nil
	})
}

// DeleteRecord removes an entry and reverses its P&L. A missing entry is a no-op
// and reports false.
func (s *Store) DeleteRecord(ctx context.Context, profileID, id string) (State, bool, error) {
	found := false
	state, err := s.mutate(ctx, profileID, func(next *State) error {
		pos := -1
		for i, entry := range next.Journal {
			if entry.ID == id && entry.ProfileID == profileID {
				pos = i
				break
			}
		}
		if pos < 0 {
			return errNoChange
		}
		removed := next.Journal[pos]
		next.Journal = append(next.Journal[:pos], next.Journal[pos+1:]...)
		if idx := next.profileIndex(removed.ProfileID); idx >= 0 {
			next.Profiles[idx].CurrentBalance = next.Profiles[idx].CurrentBalance.Sub(removed.PnlAmount)
		}
		found = true
		return nil
	})
	return state, found, err
}

// ApplyRemote commits a pulled snapshot in one mutation. Non-empty rows replace the profile's
// journal while other profiles' entries are kept; balances come from the patch, not the rows.
// Either both land or neither does.
func (s *Store) ApplyRemote(ctx context.Context, profileID string, rows []domain.DailyStat, patch *domain.ProfilePatch) (State, error) {
	return s.mutate(ctx, profileID, func(next *State) error {
		idx := next.profileIndex(profileID)
		if idx < 0 {
			return domain.ErrProfileNotFound
		}
		if len(rows) == 0 && patch.IsEmpty() {
			return errNoChange
		}
		if len(rows) > 0 {
			replaceJournal(next, profileID, rows)
		}
		if !patch.IsEmpty() {
			updated := patch.Apply(next.Profiles[idx].Clone())
			updated.ID = profileID
			next.Profiles[idx] = updated
		}
		return nil
	})
}

// UpdateProfile applies fn to a copy of the profile and commits the result
func (s *Store) UpdateProfile(ctx context.Context, profileID string, fn func(p *domain.RiskProfile) error) (State, error) {
	return s.mutate(ctx, profileID, func(next *State) error {
		idx := next.profileIndex(profileID)
		if idx < 0 {
			return domain.ErrProfileNotFound
		}
		updated := next.Profiles[idx].Clone()
		if err := fn(&updated); err != nil {
			return err
		}
		updated.ID = profileID
		next.Profiles[idx] = updated
		return nil
	})
}

// CreateProfile adds a new profile. Its id must be unique.
func (s *Store) CreateProfile(ctx context.Context, profile domain.RiskProfile) (State, error) {
	return s.mutate(ctx, profile.ID, func(next *State) error {
		if next.profileIndex(profile.ID) >= 0 {
			return domain.ErrAlreadyExists
		}
		if profile.IsActive {
			for i := range next.Profiles {
				next.Profiles[i].IsActive = false
			}
		}
		next.Profiles = append(next.Profiles, profile.Clone())
		ensureActive(next)
		return nil
	})
}

// SetActiveProfile flags exactly one profile as active
func (s *Store) SetActiveProfile(ctx context.Context, profileID string) (State, error) {
	return s.mutate(ctx, profileID, func(next *State) error {
		if next.profileIndex(profileID) < 0 {
			return domain.ErrProfileNotFound
		}
		for i := range next.Profiles {
			next.Profiles[i].IsActive = next.Profiles[i].ID == profileID
		}
		return nil
	})
}

// errNoChange lets a mutation bail out without persisting or notifying
var errNoChange = errors.New("no change")

// mutate runs fn on a copy of the state, persists the copy and only then makes it current
func (s *Store) mutate(ctx context.Context, profileID string, fn func(next *State) error) (State, error) {
	s.mu.Lock()

	next := s.state.clone()
	if err := fn(&next); err != nil {
		current := s.state.clone()
		s.mu.Unlock()
		if errors.Is(err, errNoChange) {
			return current, nil
		}
		return current, err
	}

	if err := s.persist(ctx, s.state, next); err != nil {
		current := s.state.clone()
		s.mu.Unlock()
		return current, err
	}

	s.state = next
	out := next.clone()
	listeners := append([]domain.StateListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(profileID)
	}
	return out, nil
}

// persist writes the journal then the profiles. When the profiles fail the previous
// journal is written back so a reload never sees entries without their balance.
func (s *Store) persist(ctx context.Context, prev, next State) error {
	if err := s.repo.SaveJournal(ctx, next.Journal); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	if err := s.repo.SaveProfiles(ctx, next.Profiles); err != nil {
		if rerr := s.repo.SaveJournal(ctx, prev.Journal); rerr != nil {
			log.Error().Err(rerr).Msg("Failed to restore journal after profile save failure")
			return fmt.Errorf("failed to save profiles: %w (journal restore failed: %v)", err, rerr)
		}
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}

// replaceJournal swaps every entry of one profile for rows, keeping other profiles' entries
func replaceJournal(state *State, profileID string, rows []domain.DailyStat) {
	kept := make([]domain.DailyStat, 0, len(state.Journal)+len(rows))
	for _, entry := range state.Journal {
		if entry.ProfileID != profileID {
			kept = append(kept, entry)
		}
	}
	for _, row := range rows {
		row.ProfileID = profileID
		kept = append(kept, row)
	}
	sortJournal(kept)
	state.Journal = kept
}

func ensureActive(state *State) {
	active := -1
	for i, p := range state.Profiles {
		if p.IsActive {
			if active >= 0 {
				state.Profiles[i].IsActive = false
				continue
			}
			active = i
		}
	}
	if active < 0 && len(state.Profiles) > 0 {
		state.Profiles[0].IsActive = true
	}
}

// sortJournal orders entries ascending by calendar day, keeping insertion order within a day
func sortJournal(journal []domain.DailyStat) {
	sort.SliceStable(journal, func(i, j int) bool {
		return journal[i].Date < journal[j].Date
	})
}

func filterJournal(journal []domain.DailyStat, profileID string) []domain.DailyStat {
	out := make([]domain.DailyStat, 0)
	for _, entry := range journal {
		if entry.ProfileID == profileID {
			out = append(out, entry)
		}
	}
	return out
}
