package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDailyStatNormalize(t *testing.T) {
	tests := []struct {
		name         string
		stat         DailyStat
		wantCategory TradeCategory
		wantSub      TradeSubCategory
		wantStrategy OptionStrategy
		wantTicker   string
	}{
		{
			name: "skipped day drops traded-only fields",
			stat: DailyStat{
				Status:      DayStatusSkipped,
				Category:    CategoryStocks,
				SubCategory: SubCategorySelfWork,
				Strategy:    StrategyIronCondor,
				Ticker:      "aapl",
			},
			wantCategory: CategoryNone,
			wantSub:      SubCategoryNone,
			wantStrategy: StrategyNone,
			wantTicker:   "",
		},
		{
			name: "traded day uppercases ticker",
			stat: DailyStat{
				Status:      DayStatusTraded,
				Category:    CategoryOptions,
				SubCategory: SubCategoryZeroDTE,
				Strategy:    StrategyCreditSpread,
				Ticker:      "  spx ",
			},
			wantCategory: CategoryOptions,
			wantSub:      SubCategoryZeroDTE,
			wantStrategy: StrategyCreditSpread,
			wantTicker:   "SPX",
		},
		{
			name:         "traded day fills empty enums with sentinel",
			stat:         DailyStat{Status: DayStatusTraded},
			wantCategory: CategoryNone,
			wantSub:      SubCategoryNone,
			wantStrategy: StrategyNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stat := tt.stat
			stat.Normalize()
			if stat.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", stat.Category, tt.wantCategory)
			}
			if stat.SubCategory != tt.wantSub {
				t.Errorf("SubCategory = %s, want %s", stat.SubCategory, tt.wantSub)
			}
			if stat.Strategy != tt.wantStrategy {
				t.Errorf("Strategy = %s, want %s", stat.Strategy, tt.wantStrategy)
			}
			if stat.Ticker != tt.wantTicker {
				t.Errorf("Ticker = %q, want %q", stat.Ticker, tt.wantTicker)
			}
		})
	}
}

func TestDailyStatValidate(t *testing.T) {
	valid := DailyStat{
		ID:          "a",
		ProfileID:   "1",
		Date:        "2025-03-14",
		PnlAmount:   decimal.NewFromInt(10),
		Status:      DayStatusTraded,
		Category:    CategoryStocks,
		SubCategory: SubCategorySelfWork,
		Strategy:    StrategyNone,
	}

	tests := []struct {
		name    string
		mutate  func(d *DailyStat)
		wantErr error
	}{
		{"valid entry", func(d *DailyStat) {}, nil},
		{"bad date", func(d *DailyStat) { d.Date = "14/03/2025" }, ErrInvalidDate},
		{"bad status", func(d *DailyStat) { d.Status = "HOLIDAY" }, ErrInvalidDayStatus},
		{"bad category", func(d *DailyStat) { d.Category = "CRYPTO" }, ErrInvalidCategory},
		{"bad sub category", func(d *DailyStat) { d.SubCategory = "SWING" }, ErrInvalidSubCategory},
		{"bad strategy", func(d *DailyStat) { d.Strategy = "WHEEL" }, ErrInvalidStrategy},
		{"long ticker", func(d *DailyStat) { d.Ticker = "ABCDEFGHIJKLMNOPQ" }, ErrTickerTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stat := valid
			tt.mutate(&stat)
			err := stat.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-01-05", "2024-01-05"},
		{"2024-01-05T05:00:00.000Z", "2024-01-05"},
		{"  2024-02-01 ", "2024-02-01"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.raw); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
