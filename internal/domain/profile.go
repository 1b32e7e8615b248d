package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SyncConfig holds the remote spreadsheet endpoint settings for a profile
type SyncConfig struct {
	SheetID   string `json:"sheetId"`
	ScriptURL string `json:"scriptUrl"`
	IsEnabled bool   `json:"isEnabled"`
}

// CanSync reports whether the config is complete enough to reach the remote endpoint
func (c SyncConfig) CanSync() bool {
	return c.IsEnabled && strings.TrimSpace(c.ScriptURL) != "" && strings.TrimSpace(c.SheetID) != ""
}

// SheetStats holds remote-authoritative override values.
// A nil field means the value is derived locally.
type SheetStats struct {
	TargetAmountDollar *decimal.Decimal `json:"targetAmountDollar,omitempty"`
	RemainingGoal      *decimal.Decimal `json:"remainingGoal,omitempty"`
	DailyTarget        *decimal.Decimal `json:"dailyTarget,omitempty"`
	RiskLimit          *decimal.Decimal `json:"riskLimit,omitempty"`
	DaysTraded         *decimal.Decimal `json:"daysTraded,omitempty"`
	DaysRemaining      *decimal.Decimal `json:"daysRemaining,omitempty"`
	TotalDays          *decimal.Decimal `json:"totalDays,omitempty"`
}

// IsEmpty reports whether no override value is set
func (s *SheetStats) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.TargetAmountDollar == nil && s.RemainingGoal == nil && s.DailyTarget == nil &&
		s.RiskLimit == nil && s.DaysTraded == nil && s.DaysRemaining == nil && s.TotalDays == nil
}

// RiskProfile is a named risk configuration plus its running balance
type RiskProfile struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	InitialCapital        decimal.Decimal `json:"initialCapital"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
	RiskPerTradePct       decimal.Decimal `json:"riskPerTradePct"`
	TargetAnnualReturnPct decimal.Decimal `json:"targetAnnualReturnPct"`
	TotalEffectiveDays    decimal.Decimal `json:"totalEffectiveDays"`
	MaxMissedDaysPct      decimal.Decimal `json:"maxMissedDaysPct"`
	IsActive              bool            `json:"isActive"`
	Sync                  SyncConfig      `json:"sync"`
	SheetStats            *SheetStats     `json:"sheetStats,omitempty"`
}

// Validate checks the configured values of a profile
func (p *RiskProfile) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxProfileNameLength {
		return ErrNameTooLong
	}
	if p.InitialCapital.IsNegative() {
		return ErrInvalidCapital
	}
	if p.RiskPerTradePct.IsNegative() || p.RiskPerTradePct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}
	if p.TargetAnnualReturnPct.IsNegative() {
		return ErrInvalidPercentage
	}
	if p.MaxMissedDaysPct.IsNegative() || p.MaxMissedDaysPct.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}
	if p.TotalEffectiveDays.IsNegative() {
		return ErrInvalidEffectiveDays
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared override values
func (p RiskProfile) Clone() RiskProfile {
	if p.SheetStats != nil {
		stats := *p.SheetStats
		p.SheetStats = &stats
	}
	return p
}

// ProfilePatch is a field-level update. Nil fields are left untouched.
type ProfilePatch struct {
	Name                  *string
	InitialCapital        *decimal.Decimal
	CurrentBalance        *decimal.Decimal
	RiskPerTradePct       *decimal.Decimal
	TargetAnnualReturnPct *decimal.Decimal
	TotalEffectiveDays    *decimal.Decimal
	MaxMissedDaysPct      *decimal.Decimal
	SheetStats            *SheetStats
}

// IsEmpty reports whether the patch changes nothing
func (p *ProfilePatch) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == nil && p.InitialCapital == nil && p.CurrentBalance == nil &&
		p.RiskPerTradePct == nil && p.TargetAnnualReturnPct == nil &&
		p.TotalEffectiveDays == nil && p.MaxMissedDaysPct == nil && p.SheetStats == nil
}

// Apply returns a copy of profile with every defined patch field written over it.
// A present SheetStats bundle replaces the previous bundle as a whole.
func (p *ProfilePatch) Apply(profile RiskProfile) RiskProfile {
	out := profile.Clone()
	if p == nil {
		return out
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.InitialCapital != nil {
		out.InitialCapital = *p.InitialCapital
	}
	if p.CurrentBalance != nil {
		out.CurrentBalance = *p.CurrentBalance
	}
	if p.RiskPerTradePct != nil {
		out.RiskPerTradePct = *p.RiskPerTradePct
	}
	if p.TargetAnnualReturnPct != nil {
		out.TargetAnnualReturnPct = *p.TargetAnnualReturnPct
	}
	if p.TotalEffectiveDays != nil {
		out.TotalEffectiveDays = *p.TotalEffectiveDays
	}
	if p.MaxMissedDaysPct != nil {
		out.MaxMissedDaysPct = *p.MaxMissedDaysPct
	}
	if p.SheetStats != nil {
		stats := *p.SheetStats
		out.SheetStats = &stats
	}
	return out
}

// DefaultProfile returns the profile created on first start when nothing is stored
func DefaultProfile() RiskProfile {
	return RiskProfile{
		ID:                    "1",
		Name:                  "Scalping Acc",
		InitialCapital:        decimal.NewFromInt(45763),
		CurrentBalance:        decimal.NewFromInt(45763),
		RiskPerTradePct:       decimal.NewFromInt(1),
		TargetAnnualReturnPct: decimal.NewFromInt(15),
		TotalEffectiveDays:    decimal.RequireFromString("225.9"),
		MaxMissedDaysPct:      decimal.NewFromInt(10),
		IsActive:              true,
	}
}
