package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used for journal dates
const DateLayout = "2006-01-02"

type DayStatus string

const (
	DayStatusTraded  DayStatus = "TRADED"
	DayStatusSkipped DayStatus = "SKIPPED"
	DayStatusWeekend DayStatus = "WEEKEND"
)

type TradeCategory string

const (
	CategoryStocks  TradeCategory = "STOCKS"
	CategoryOptions TradeCategory = "OPTIONS"
	CategoryNone    TradeCategory = "NONE"
)

type TradeSubCategory string

const (
	SubCategorySelfWork    TradeSubCategory = "SELF_WORK"
	SubCategoryFullTime    TradeSubCategory = "FULL_TIME"
	SubCategoryZeroDTE     TradeSubCategory = "ZERO_DTE"
	SubCategoryLongOptions TradeSubCategory = "LONG_OPTIONS"
	SubCategoryNone        TradeSubCategory = "NONE"
)

type OptionStrategy string

const (
	StrategyCreditSpread     OptionStrategy = "CREDIT_SPREAD"
	StrategyIronCondor       OptionStrategy = "IRON_CONDOR"
	StrategyButterfly        OptionStrategy = "BUTTERFLY"
	StrategySingleCallPut    OptionStrategy = "SINGLE_CALL_PUT"
	StrategyStraddleStrangle OptionStrategy = "STRADDLE_STRANGLE"
	StrategyNone             OptionStrategy = "NONE"
)

var validStatuses = map[DayStatus]bool{
	DayStatusTraded:  true,
	DayStatusSkipped: true,
	DayStatusWeekend: true,
}

var validCategories = map[TradeCategory]bool{
	CategoryStocks:  true,
	CategoryOptions: true,
	CategoryNone:    true,
}

var validSubCategories = map[TradeSubCategory]bool{
	SubCategorySelfWork:    true,
	SubCategoryFullTime:    true,
	SubCategoryZeroDTE:     true,
	SubCategoryLongOptions: true,
	SubCategoryNone:        true,
}

var validStrategies = map[OptionStrategy]bool{
	StrategyCreditSpread:     true,
	StrategyIronCondor:       true,
	StrategyButterfly:        true,
	StrategySingleCallPut:    true,
	StrategyStraddleStrangle: true,
	StrategyNone:             true,
}

// IsValidDayStatus checks if the status is one of the known values
func IsValidDayStatus(s DayStatus) bool { return validStatuses[s] }

// IsValidCategory checks if the category is one of the known values
func IsValidCategory(c TradeCategory) bool { return validCategories[c] }

// IsValidSubCategory checks if the sub category is one of the known values
func IsValidSubCategory(s TradeSubCategory) bool { return validSubCategories[s] }

// IsValidStrategy checks if the strategy is one of the known values
func IsValidStrategy(s OptionStrategy) bool { return validStrategies[s] }

// DailyStat is one journal entry. Entries are immutable once created;
// StartOfDayBalance and RiskLimitSnapshot record the values at logging time.
type DailyStat struct {
	ID                string           `json:"id"`
	ProfileID         string           `json:"profileId"`
	Date              string           `json:"date"`
	PnlAmount         decimal.Decimal  `json:"pnlAmount"`
	Status            DayStatus        `json:"status"`
	Category          TradeCategory    `json:"category"`
	SubCategory       TradeSubCategory `json:"subCategory"`
	Strategy          OptionStrategy   `json:"strategy"`
	Ticker            string           `json:"ticker,omitempty"`
	StartOfDayBalance decimal.Decimal  `json:"startOfDayBalance"`
	RiskLimitSnapshot decimal.Decimal  `json:"riskLimitSnapshot"`
}

// IsTraded reports whether the entry represents a trading day
func (d *DailyStat) IsTraded() bool {
	return d.Status == DayStatusTraded
}

// Normalize enforces the traded-only fields: non-traded entries carry the NONE
// sentinel and no ticker, traded tickers are trimmed and uppercased.
func (d *DailyStat) Normalize() {
	if d.Status != DayStatusTraded {
		d.Category = CategoryNone
		d.SubCategory = SubCategoryNone
		d.Strategy = StrategyNone
		d.Ticker = ""
		return
	}
	if d.Category == "" {
		d.Category = CategoryNone
	}
	if d.SubCategory == "" {
		d.SubCategory = SubCategoryNone
	}
	if d.Strategy == "" {
		d.Strategy = StrategyNone
	}
	d.Ticker = strings.ToUpper(strings.TrimSpace(d.Ticker))
}

// Validate checks the enum fields and the date of an entry
func (d *DailyStat) Validate() error {
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	if !IsValidDayStatus(d.Status) {
		return ErrInvalidDayStatus
	}
	if !IsValidCategory(d.Category) {
		return ErrInvalidCategory
	}
	if !IsValidSubCategory(d.SubCategory) {
		return ErrInvalidSubCategory
	}
	if !IsValidStrategy(d.Strategy) {
		return ErrInvalidStrategy
	}
	if len(d.Ticker) > MaxTickerLength {
		return ErrTickerTooLong
	}
	return nil
}

// NormalizeDate trims timestamps such as 2024-01-05T05:00:00.000Z to the calendar day
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
