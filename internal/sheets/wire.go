package sheets

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
)

// The remote script reads plain JSON numbers, so outbound money fields are float64.

type pushEnvelope struct {
	Profile pushProfile `json:"profile"`
	Journal []pushStat  `json:"journal"`
}

type pushProfile struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	InitialCapital        float64         `json:"initialCapital"`
	CurrentBalance        float64         `json:"currentBalance"`
	RiskPerTradePct       float64         `json:"riskPerTradePct"`
	TargetAnnualReturnPct float64         `json:"targetAnnualReturnPct"`
	TotalEffectiveDays    float64         `json:"totalEffectiveDays"`
	MaxMissedDaysPct      float64         `json:"maxMissedDaysPct"`
	IsActive              bool            `json:"isActive"`
	SheetStats            *pushSheetStats `json:"sheetStats,omitempty"`
}

type pushSheetStats struct {
	TargetAmountDollar *float64 `json:"targetAmountDollar,omitempty"`
	RemainingGoal      *float64 `json:"remainingGoal,omitempty"`
	DailyTarget        *float64 `json:"dailyTarget,omitempty"`
	RiskLimit          *float64 `json:"riskLimit,omitempty"`
	DaysTraded         *float64 `json:"daysTraded,omitempty"`
	DaysRemaining      *float64 `json:"daysRemaining,omitempty"`
	TotalDays          *float64 `json:"totalDays,omitempty"`
}

type pushStat struct {
	ID                string  `json:"id"`
	ProfileID         string  `json:"profileId"`
	Date              string  `json:"date"`
	PnlAmount         float64 `json:"pnlAmount"`
	Status            string  `json:"status"`
	Category          string  `json:"category"`
	SubCategory       string  `json:"subCategory"`
	Strategy          string  `json:"strategy"`
	Ticker            string  `json:"ticker"`
	StartOfDayBalance float64 `json:"startOfDayBalance"`
	RiskLimitSnapshot float64 `json:"riskLimitSnapshot"`
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func newPushEnvelope(payload domain.SyncPayload) pushEnvelope {
	p := payload.Profile
	out := pushEnvelope{
		Profile: pushProfile{
			ID:                    p.ID,
			Name:                  p.Name,
			InitialCapital:        p.InitialCapital.InexactFloat64(),
			CurrentBalance:        p.CurrentBalance.InexactFloat64(),
			RiskPerTradePct:       p.RiskPerTradePct.InexactFloat64(),
			TargetAnnualReturnPct: p.TargetAnnualReturnPct.InexactFloat64(),
			TotalEffectiveDays:    p.TotalEffectiveDays.InexactFloat64(),
			MaxMissedDaysPct:      p.MaxMissedDaysPct.InexactFloat64(),
			IsActive:              p.IsActive,
		},
		Journal: make([]pushStat, 0, len(payload.Journal)),
	}
	if s := p.SheetStats; s != nil {
		out.Profile.SheetStats = &pushSheetStats{
			TargetAmountDollar: floatPtr(s.TargetAmountDollar),
			RemainingGoal:      floatPtr(s.RemainingGoal),
			DailyTarget:        floatPtr(s.DailyTarget),
			RiskLimit:          floatPtr(s.RiskLimit),
			DaysTraded:         floatPtr(s.DaysTraded),
			DaysRemaining:      floatPtr(s.DaysRemaining),
			TotalDays:          floatPtr(s.TotalDays),
		}
	}
	for _, e := range payload.Journal {
		out.Journal = append(out.Journal, pushStat{
			ID:                e.ID,
			ProfileID:         e.ProfileID,
			Date:              e.Date,
			PnlAmount:         e.PnlAmount.InexactFloat64(),
			Status:            string(e.Status),
			Category:          string(e.Category),
			SubCategory:       string(e.SubCategory),
			Strategy:          string(e.Strategy),
			Ticker:            e.Ticker,
			StartOfDayBalance: e.StartOfDayBalance.InexactFloat64(),
			RiskLimitSnapshot: e.RiskLimitSnapshot.InexactFloat64(),
		})
	}
	return out
}

// flexNumber accepts a JSON number or a numeric string such as "$1,234.50" or "12%".
// null, empty strings and anything unparseable decode as absent rather than failing.
type flexNumber struct {
	value decimal.Decimal
	ok    bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		n.value, n.ok = parseNumber(s)
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return nil
	}
	n.value, n.ok = d, true
	return nil
}

func (n flexNumber) ptr() *decimal.Decimal {
	if !n.ok {
		return nil
	}
	v := n.value
	return &v
}

var numberReplacer = strings.NewReplacer("$", "", ",", "", "%", "", " ", "", "\u00a0", "")

// parseNumber reads a spreadsheet-formatted number
func parseNumber(s string) (decimal.Decimal, bool) {
	s = numberReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// flexString accepts a JSON string or number; other values decode as absent
type flexString struct {
	value string
	ok    bool
}

func (s *flexString) UnmarshalJSON(b []byte) error {
	*s = flexString{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return nil
		}
		s.value = strings.TrimSpace(v)
		s.ok = s.value != ""
		return nil
	}
	if d, err := decimal.NewFromString(string(b)); err == nil {
		s.value, s.ok = d.String(), true
	}
	return nil
}

func (s flexString) ptr() *string {
	if !s.ok {
		return nil
	}
	v := s.value
	return &v
}

type remoteSheetStats struct {
	TargetAmountDollar flexNumber `json:"targetAmountDollar"`
	RemainingGoal      flexNumber `json:"remainingGoal"`
	DailyTarget        flexNumber `json:"dailyTarget"`
	RiskLimit          flexNumber `json:"riskLimit"`
	DaysTraded         flexNumber `json:"daysTraded"`
	DaysRemaining      flexNumber `json:"daysRemaining"`
	TotalDays          flexNumber `json:"totalDays"`
}

type remoteProfile struct {
	Name                  flexString      `json:"name"`
	InitialCapital        flexNumber      `json:"initialCapital"`
	CurrentBalance        flexNumber      `json:"currentBalance"`
	RiskPerTradePct       flexNumber      `json:"riskPerTradePct"`
	TargetAnnualReturnPct flexNumber      `json:"targetAnnualReturnPct"`
	TotalEffectiveDays    flexNumber      `json:"totalEffectiveDays"`
	MaxMissedDaysPct      flexNumber      `json:"maxMissedDaysPct"`
	SheetStats            json.RawMessage `json:"sheetStats"`
}

type remoteStat struct {
	ID                flexString `json:"id"`
	Date              flexString `json:"date"`
	PnlAmount         flexNumber `json:"pnlAmount"`
	Status            flexString `json:"status"`
	Category          flexString `json:"category"`
	SubCategory       flexString `json:"subCategory"`
	Strategy          flexString `json:"strategy"`
	Ticker            flexString `json:"ticker"`
	StartOfDayBalance flexNumber `json:"startOfDayBalance"`
	RiskLimitSnapshot flexNumber `json:"riskLimitSnapshot"`
}
