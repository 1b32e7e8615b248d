package service

import (
	"context"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProfileInput holds the values of a new risk profile
type CreateProfileInput struct {
	Name                  string
	InitialCapital        decimal.Decimal
	CurrentBalance        *decimal.Decimal
	RiskPerTradePct       decimal.Decimal
	TargetAnnualReturnPct decimal.Decimal
	TotalEffectiveDays    decimal.Decimal
	MaxMissedDaysPct      decimal.Decimal
	Sync                  *domain.SyncConfig
	Activate              bool
}

// SyncConfigPatch is a partial update of a profile's sync settings
type SyncConfigPatch struct {
	SheetID   *string
	ScriptURL *string
	IsEnabled *bool
}

// ProfileService handles risk profile business logic
type ProfileService struct {
	store          *Store
	eventPublisher websocket.EventPublisher
}

// NewProfileService creates a new ProfileService
func NewProfileService(store *Store) *ProfileService {
	return &ProfileService{store: store}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProfileService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProfileService) publishEvent(profileID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(profileID, event)
	}
}

// ListProfiles returns every profile
func (s *ProfileService) ListProfiles() []domain.RiskProfile {
	return s.store.Profiles()
}

// GetProfile retrieves a profile by id
func (s *ProfileService) GetProfile(id string) (*domain.RiskProfile, error) {
	profile, err := s.store.Profile(id)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetActiveProfile retrieves the active profile
func (s *ProfileService) GetActiveProfile() (*domain.RiskProfile, error) {
	profile, err := s.store.ActiveProfile()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile validates and stores a new profile. The balance starts at the initial capital
// unless a current balance is given.
func (s *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.RiskProfile, error) {
	profile := domain.RiskProfile{
		ID:                    uuid.New().String(),
		Name:                  strings.TrimSpace(input.Name),
		InitialCapital:        input.InitialCapital,
		CurrentBalance:        input.InitialCapital,
		RiskPerTradePct:       input.RiskPerTradePct,
		TargetAnnualReturnPct: input.TargetAnnualReturnPct,
		TotalEffectiveDays:    input.TotalEffectiveDays,
		MaxMissedDaysPct:      input.MaxMissedDaysPct,
		IsActive:              input.Activate,
	}
	if input.CurrentBalance != nil {
		profile.CurrentBalance = *input.CurrentBalance
	}
	if input.Sync != nil {
		profile.Sync = normalizeSyncConfig(*input.Sync)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	created, err := s.store.Profile(profile.ID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(created.ID, websocket.ProfileUpdated(created))
	return &created, nil
}

// UpdateProfile applies the editable fields of patch. Remote override values cannot be set here.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.RiskProfile, error) {
	patch.SheetStats = nil
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}

	var updated domain.RiskProfile
	_, err := s.store.UpdateProfile(ctx, id, func(p *domain.RiskProfile) error {
		next := patch.Apply(*p)
		if err := next.Validate(); err != nil {
			return err
		}
		*p = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(id, websocket.ProfileUpdated(updated))
	return &updated, nil
}

// UpdateSyncConfig merges the defined fields of patch into the profile's sync settings
func (s *ProfileService) UpdateSyncConfig(ctx context.Context, id string, patch SyncConfigPatch) (*domain.RiskProfile, error) {
	var updated domain.RiskProfile
	_, err := s.store.UpdateProfile(ctx, id, func(p *domain.RiskProfile) error {
		cfg := p.Sync
		if patch.SheetID != nil {
			cfg.SheetID = *patch.SheetID
		}
		if patch.ScriptURL != nil {
			cfg.ScriptURL = *patch.ScriptURL
		}
		if patch.IsEnabled != nil {
			cfg.IsEnabled = *patch.IsEnabled
		}
		p.Sync = normalizeSyncConfig(cfg)
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(id, websocket.ProfileUpdated(updated))
	return &updated, nil
}

// SetActiveProfile makes id the active profile
func (s *ProfileService) SetActiveProfile(ctx context.Context, id string) (*domain.RiskProfile, error) {
	previous := s.store.Snapshot().ActiveProfileID()
	if _, err := s.store.SetActiveProfile(ctx, id); err != nil {
		return nil, err
	}
	profile, err := s.store.Profile(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent(id, websocket.ProfileUpdated(profile))
	if previous != "" && previous != id {
		s.deactivated(previous, id)
	}
	return &profile, nil
}

// deactivated tells the previous profile's clients which profile took over. A publisher that
// can drop clients disconnects them so dashboards reconnect to the active profile.
func (s *ProfileService) deactivated(previous, active string) {
	farewell := websocket.ProfileDeactivated(map[string]string{
		"profileId":       previous,
		"activeProfileId": active,
	})
	if d, ok := s.eventPublisher.(websocket.ProfileDisconnector); ok {
		d.DisconnectProfile(previous, farewell)
		return
	}
	s.publishEvent(previous, farewell)
}

func normalizeSyncConfig(cfg domain.SyncConfig) domain.SyncConfig {
	cfg.SheetID = strings.TrimSpace(cfg.SheetID)
	cfg.ScriptURL = strings.TrimSpace(cfg.ScriptURL)
	return cfg
}
