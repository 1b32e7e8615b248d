package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Pusher sends the current state of a profile to the remote endpoint without blocking the caller
type Pusher interface {
	PushInBackground(profileID string)
}

// LogRecordInput is the user-supplied part of a journal entry
type LogRecordInput struct {
	Date        string
	PnlAmount   decimal.Decimal
	Status      domain.DayStatus
	Category    domain.TradeCategory
	SubCategory domain.TradeSubCategory
	Strategy    domain.OptionStrategy
	Ticker      string
}

// LogRecordResult is the stored entry, whether it breached the limit, and the refreshed dashboard
type LogRecordResult struct {
	Record          domain.DailyStat
	Breach          bool
	Alert           *domain.Alert
	Stats           domain.DashboardStats
	DisciplineAlert bool
}

// JournalService logs and deletes journal entries
type JournalService struct {
	store          *Store
	pusher         Pusher
	eventPublisher websocket.EventPublisher
	now            func() time.Time
	newID          func() string
}

// NewJournalService creates a new JournalService
func NewJournalService(store *Store, pusher Pusher) *JournalService {
	return &JournalService{
		store:  store,
		pusher: pusher,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *JournalService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *JournalService) publishEvent(profileID string, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(profileID, event)
	}
}

// List returns a profile's journal in ascending date order
func (s *JournalService) List(profileID string) ([]domain.DailyStat, error) {
	if _, err := s.store.Profile(profileID); err != nil {
		return nil, err
	}
	return s.store.Journal(profileID), nil
}

// LogRecord appends a new entry to a profile's journal.
// The start-of-day balance and risk limit are captured before the entry is applied.
func (s *JournalService) LogRecord(ctx context.Context, profileID string, input LogRecordInput) (*LogRecordResult, error) {
	profile, err := s.store.Profile(profileID)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}
	status := input.Status
	if status == "" {
		status = domain.DayStatusTraded
	}

	record := domain.DailyStat{
		ID:          s.newID(),
		ProfileID:   profileID,
		Date:        date,
		PnlAmount:   input.PnlAmount,
		Status:      status,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Strategy:    input.Strategy,
		Ticker:      input.Ticker,
	}
	record.Normalize()
	if err := record.Validate(); err != nil {
		return nil, err
	}

	// Snapshots are taken from the state the entry is appended to
	state, err := s.store.AppendRecordWith(ctx, profileID, func(current domain.RiskProfile, journal []domain.DailyStat) (domain.DailyStat, error) {
		before := CalculateDashboardStats(current, journal)
		record.StartOfDayBalance = current.CurrentBalance
		record.RiskLimitSnapshot = before.DailyRiskLimit
		return record, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append record: %w", err)
	}

	updated := profile
	if idx := state.profileIndex(profileID); idx >= 0 {
		updated = state.Profiles[idx]
	}
	stats := CalculateDashboardStats(updated, filterJournal(state.Journal, profileID))
	result := &LogRecordResult{
		Record:          record,
		Stats:           stats,
		DisciplineAlert: stats.ExceedsMissedDays(updated.MaxMissedDaysPct),
	}

	s.publishEvent(profileID, websocket.JournalCreated(record))

	if domain.IsRiskBreach(record.PnlAmount, record.RiskLimitSnapshot) {
		result.Breach = true
		result.Alert = s.breachAlert(record)
		log.Warn().
			Str("profile_id", profileID).
			Str("record_id", record.ID).
			Str("pnl", record.PnlAmount.String()).
			Str("limit", record.RiskLimitSnapshot.String()).
			Msg("Risk limit breached")
		s.publishEvent(profileID, websocket.RiskBreached(result.Alert))
	}

	if profile.Sync.IsEnabled && s.pusher != nil {
		s.pusher.PushInBackground(profileID)
	}

	return result, nil
}

// DeleteRecord removes an entry and reverses its effect on the balance.
// Deleting an unknown entry is not an error and reports false.
func (s *JournalService) DeleteRecord(ctx context.Context, profileID, recordID string) (bool, error) {
	profile, err := s.store.Profile(profileID)
	if err != nil {
		return false, err
	}

	_, found, err := s.store.DeleteRecord(ctx, profileID, recordID)
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	if !found {
		log.Debug().Str("profile_id", profileID).Str("record_id", recordID).Msg("Delete of unknown record ignored")
		return false, nil
	}

	s.publishEvent(profileID, websocket.JournalDeleted(map[string]string{"id": recordID, "profileId": profileID}))

	if profile.Sync.IsEnabled && s.pusher != nil {
		s.pusher.PushInBackground(profileID)
	}
	return true, nil
}

func (s *JournalService) breachAlert(record domain.DailyStat) *domain.Alert {
	loss := record.PnlAmount.Abs().StringFixed(2)
	limit := record.RiskLimitSnapshot.StringFixed(2)
	return &domain.Alert{
		ID:        s.newID(),
		ProfileID: record.ProfileID,
		Type:      domain.AlertTypeRisk,
		Message: domain.AlertMessage{
			En: fmt.Sprintf("RISK BREACH: Loss $%s > limit $%s", loss, limit),
			Ru: fmt.Sprintf("НАРУШЕНИЕ: Убыток $%s > лимита $%s", loss, limit),
		},
	}
}
