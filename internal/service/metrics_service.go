package service

import (
	"sort"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// overrideOr returns the remote value when it is defined, otherwise the local one
func overrideOr(remote *decimal.Decimal, local decimal.Decimal) decimal.Decimal {
	if remote != nil {
		return *remote
	}
	return local
}

// CalculateDashboardStats derives the dashboard figures for one profile and its journal.
// It has no side effects and never fails. Every field backed by SheetStats takes the
// remote value when present and the local formula otherwise.
func CalculateDashboardStats(profile domain.RiskProfile, journal []domain.DailyStat) domain.DashboardStats {
	var remote domain.SheetStats
	if profile.SheetStats != nil {
		remote = *profile.SheetStats
	}

	// The remote total replaces the configured one for the days-traded and days-left derivation only
	totalDays := overrideOr(remote.TotalDays, profile.TotalEffectiveDays)

	annualGoal := overrideOr(remote.TargetAmountDollar,
		profile.InitialCapital.Mul(profile.TargetAnnualReturnPct).Div(hundred))

	tradedCount := 0
	skippedCount := 0
	progress := decimal.Zero
	for _, entry := range journal {
		switch entry.Status {
		case domain.DayStatusTraded:
			tradedCount++
		case domain.DayStatusSkipped:
			skippedCount++
		}
		progress = progress.Add(entry.PnlAmount)
	}

	var daysTraded decimal.Decimal
	switch {
	case remote.DaysTraded != nil:
		daysTraded = *remote.DaysTraded
	case remote.DaysRemaining != nil:
		daysTraded = decimal.Max(decimal.Zero, totalDays.Sub(*remote.DaysRemaining))
	default:
		daysTraded = decimal.NewFromInt(int64(tradedCount))
	}

	daysLeft := overrideOr(remote.DaysRemaining, decimal.Max(decimal.Zero, totalDays.Sub(daysTraded)))

	remainingGoal := overrideOr(remote.RemainingGoal, decimal.Max(decimal.Zero, annualGoal.Sub(progress)))

	riskLimit := overrideOr(remote.RiskLimit, profile.CurrentBalance.Mul(profile.RiskPerTradePct).Div(hundred))

	localDailyAvg := decimal.Zero
	if daysLeft.IsPositive() {
		localDailyAvg = remainingGoal.Div(daysLeft)
	}
	requiredDailyAvg := overrideOr(remote.DailyTarget, localDailyAvg)

	missedPct := decimal.Zero
	if profile.TotalEffectiveDays.IsPositive() {
		missedPct = decimal.NewFromInt(int64(skippedCount)).Div(profile.TotalEffectiveDays).Mul(hundred)
	}

	return domain.DashboardStats{
		ProfileID:             profile.ID,
		CurrentCapital:        profile.CurrentBalance,
		AnnualGoalAmount:      annualGoal,
		CurrentProgressAmount: progress,
		RemainingGoal:         remainingGoal,
		DaysLeft:              daysLeft,
		DailyRiskLimit:        riskLimit,
		RequiredDailyAvg:      requiredDailyAvg,
		MissedDaysPercent:     missedPct,
		DaysTraded:            daysTraded,
		DaysSkipped:           skippedCount,
		CategoryBreakdown:     categoryBreakdown(journal),
		StrategyBreakdown:     strategyBreakdown(journal),
		TickerPerformance:     tickerPerformance(journal),
		Allocation:            allocation(journal),
	}
}

// breakdown accumulates values per key in first-seen order
type breakdown struct {
	index   map[string]int
	entries []domain.BreakdownEntry
}

func newBreakdown() *breakdown {
	return &breakdown{index: make(map[string]int), entries: make([]domain.BreakdownEntry, 0)}
}

func (b *breakdown) add(key string, value decimal.Decimal) {
	if i, ok := b.index[key]; ok {
		b.entries[i].Value = b.entries[i].Value.Add(value)
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, domain.BreakdownEntry{Key: key, Value: value})
}

func categoryBreakdown(journal []domain.DailyStat) []domain.BreakdownEntry {
	b := newBreakdown()
	for _, entry := range journal {
		if !entry.IsTraded() {
			continue
		}
		b.add(string(entry.Category)+":"+string(entry.SubCategory), entry.PnlAmount)
	}
	return b.entries
}

func strategyBreakdown(journal []domain.DailyStat) []domain.BreakdownEntry {
	b := newBreakdown()
	for _, entry := range journal {
		if !entry.IsTraded() || entry.Strategy == domain.StrategyNone || entry.Strategy == "" {
			continue
		}
		b.add(string(entry.Strategy), entry.PnlAmount)
	}
	return b.entries
}

func tickerPerformance(journal []domain.DailyStat) []domain.TickerStat {
	index := make(map[string]int)
	stats := make([]domain.TickerStat, 0)
	for _, entry := range journal {
		if !entry.IsTraded() {
			continue
		}
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		if ticker == "" {
			continue
		}
		if i, ok := index[ticker]; ok {
			stats[i].Pnl = stats[i].Pnl.Add(entry.PnlAmount)
			stats[i].Count++
			continue
		}
		index[ticker] = len(stats)
		stats = append(stats, domain.TickerStat{Ticker: ticker, Pnl: entry.PnlAmount, Count: 1})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Pnl.GreaterThan(stats[j].Pnl)
	})
	return stats
}

func allocation(journal []domain.DailyStat) []domain.AllocationSlice {
	stocks := decimal.Zero
	options := decimal.Zero
	for _, entry := range journal {
		if !entry.IsTraded() {
			continue
		}
		switch entry.Category {
		case domain.CategoryStocks:
			stocks = stocks.Add(entry.PnlAmount.Abs())
		case domain.CategoryOptions:
			options = options.Add(entry.PnlAmount.Abs())
		}
	}

	slices := make([]domain.AllocationSlice, 0, 2)
	if stocks.IsPositive() {
		slices = append(slices, domain.AllocationSlice{Name: domain.AllocationStocks, Value: stocks})
	}
	if options.IsPositive() {
		slices = append(slices, domain.AllocationSlice{Name: domain.AllocationOptions, Value: options})
	}
	return slices
}

// DashboardView is a dashboard plus the alert flags derived from it
type DashboardView struct {
	Stats           domain.DashboardStats
	Profile         domain.RiskProfile
	DisciplineAlert bool
}

// MetricsService serves dashboards computed from the current store contents
type MetricsService struct {
	store *Store
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(store *Store) *MetricsService {
	return &MetricsService{store: store}
}

// GetDashboard computes the dashboard for a profile
func (s *MetricsService) GetDashboard(profileID string) (*DashboardView, error) {
	profile, err := s.store.Profile(profileID)
	if err != nil {
		return nil, err
	}
	stats := CalculateDashboardStats(profile, s.store.Journal(profileID))
	return &DashboardView{
		Stats:           stats,
		Profile:         profile,
		DisciplineAlert: stats.ExceedsMissedDays(profile.MaxMissedDaysPct),
	}, nil
}
