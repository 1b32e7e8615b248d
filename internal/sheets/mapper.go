package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/rs/zerolog/log"
)

// Mapper turns a remote READ snapshot into a profile patch and journal rows.
// It accepts both the full-record shape and the spreadsheet cell-snapshot shape,
// where journal rows may arrive pre-built or as raw tables under "sheets".
type Mapper struct {
	now func() time.Time
}

// Ensure Mapper implements domain.SnapshotMapper
var _ domain.SnapshotMapper = (*Mapper)(nil)

// NewMapper creates a new Mapper
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// Map decodes raw without touching any stored state. Absent or unreadable fields are left
// out of the patch so the local value stays. Only a payload that is not a JSON object fails.
func (m *Mapper) Map(raw json.RawMessage, current domain.RiskProfile) (*domain.ProfilePatch, []domain.DailyStat, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, nil, domain.ErrMalformedSnapshot
	}

	tables := decodeTables(top["sheets"])

	patch := decodeProfile(top["profile"])
	if patch == nil {
		if t, ok := tables[SheetProfile]; ok {
			patch = profileFromTable(t)
		}
	}
	if patch == nil {
		patch = &domain.ProfilePatch{}
	}

	rows := decodeJournal(top["journal"])
	if len(rows) == 0 && len(tables) > 0 {
		for _, stat := range synthesizeJournal(tables, m.now()) {
			rows = append(rows, journalRow{stat: stat, hasPnl: true})
		}
	}

	// Cell snapshots carry trades only; an empty P&L cell is not a trade
	cellSnapshot := patch.SheetStats != nil || len(tables) > 0

	journal := make([]domain.DailyStat, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		r := row.stat
		if r.ID == "" {
			r.ID = fmt.Sprintf("remote_%d", i)
		}
		r.ProfileID = current.ID
		r.Date = domain.NormalizeDate(r.Date)
		if r.Status == "" {
			r.Status = domain.DayStatusTraded
		}
		if cellSnapshot && r.Status == domain.DayStatusTraded && (!row.hasPnl || r.PnlAmount.IsZero()) {
			dropped++
			continue
		}
		r.Normalize()
		if err := r.Validate(); err != nil {
			dropped++
			continue
		}
		journal = append(journal, r)
	}

	if dropped > 0 {
		log.Debug().
			Str("profile_id", current.ID).
			Int("dropped", dropped).
			Int("kept", len(journal)).
			Msg("Dropped unreadable remote journal rows")
	}
	return patch, journal, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeProfile returns nil when the payload carries no usable profile object
func decodeProfile(raw json.RawMessage) *domain.ProfilePatch {
	if !isObject(raw) {
		return nil
	}
	var p remoteProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}

	patch := &domain.ProfilePatch{
		Name:                  p.Name.ptr(),
		InitialCapital:        p.InitialCapital.ptr(),
		CurrentBalance:        p.CurrentBalance.ptr(),
		RiskPerTradePct:       p.RiskPerTradePct.ptr(),
		TargetAnnualReturnPct: p.TargetAnnualReturnPct.ptr(),
		TotalEffectiveDays:    p.TotalEffectiveDays.ptr(),
		MaxMissedDaysPct:      p.MaxMissedDaysPct.ptr(),
	}

	if isObject(p.SheetStats) {
		var s remoteSheetStats
		if err := json.Unmarshal(p.SheetStats, &s); err == nil {
			stats := &domain.SheetStats{
				TargetAmountDollar: s.TargetAmountDollar.ptr(),
				RemainingGoal:      s.RemainingGoal.ptr(),
				DailyTarget:        s.DailyTarget.ptr(),
				RiskLimit:          s.RiskLimit.ptr(),
				DaysTraded:         s.DaysTraded.ptr(),
				DaysRemaining:      s.DaysRemaining.ptr(),
				TotalDays:          s.TotalDays.ptr(),
			}
			if !stats.IsEmpty() {
				patch.SheetStats = stats
			}
		}
	}
	return patch
}

// journalRow is a decoded remote row. hasPnl is false when the P&L cell was absent or unreadable.
type journalRow struct {
	stat   domain.DailyStat
	hasPnl bool
}

// decodeJournal reads pre-built journal rows, skipping any element that is not an object
func decodeJournal(raw json.RawMessage) []journalRow {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := make([]journalRow, 0, len(items))
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var r remoteStat
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		out = append(out, journalRow{
			hasPnl: r.PnlAmount.ok,
			stat: domain.DailyStat{
				ID:                r.ID.value,
				Date:              r.Date.value,
				PnlAmount:         r.PnlAmount.value,
				Status:            domain.DayStatus(upper(r.Status)),
				Category:          domain.TradeCategory(upper(r.Category)),
				SubCategory:       domain.TradeSubCategory(upper(r.SubCategory)),
				Strategy:          domain.OptionStrategy(upper(r.Strategy)),
				Ticker:            r.Ticker.value,
				StartOfDayBalance: r.StartOfDayBalance.value,
				RiskLimitSnapshot: r.RiskLimitSnapshot.value,
			},
		})
	}
	return out
}

func upper(s flexString) string {
	return strings.ToUpper(s.value)
}
