package sheets

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapper() *Mapper {
	m := NewMapper()
	m.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	return m
}

func assertDecimal(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString(want).Equal(*got), "want %s, got %s", want, got)
}

func TestMapper_FullRecordShape(t *testing.T) {
	raw := json.RawMessage(`{
		"profile": {
			"initialCapital": 20000,
			"riskPerTradePct": "2",
			"targetAnnualReturnPct": 12,
			"totalEffectiveDays": 200,
			"currentBalance": "$21,500.25",
			"name": "Swing"
		},
		"journal": [
			{"id": "r1", "date": "2025-01-02T05:00:00.000Z", "pnlAmount": 120, "status": "TRADED",
			 "category": "STOCKS", "subCategory": "SELF_WORK", "strategy": "NONE", "ticker": "aapl"},
			{"date": "2025-01-03", "pnlAmount": 0, "status": "SKIPPED", "category": "STOCKS", "ticker": "X"}
		]
	}`)

	patch, rows, err := newTestMapper().Map(raw, domain.DefaultProfile())

	require.NoError(t, err)
	assertDecimal(t, "20000", patch.InitialCapital)
	assertDecimal(t, "2", patch.RiskPerTradePct)
	assertDecimal(t, "21500.25", patch.CurrentBalance)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Swing", *patch.Name)
	assert.Nil(t, patch.SheetStats)

	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0].ID)
	assert.Equal(t, "1", rows[0].ProfileID)
	assert.Equal(t, "2025-01-02", rows[0].Date)
	assert.Equal(t, "AAPL", rows[0].Ticker)

	assert.Equal(t, "remote_1", rows[1].ID)
	assert.Equal(t, domain.DayStatusSkipped, rows[1].Status)
	assert.Equal(t, domain.CategoryNone, rows[1].Category)
	assert.Empty(t, rows[1].Ticker)
}

func TestMapper_CellSnapshotWithSheetStats(t *testing.T) {
	raw := json.RawMessage(`{
		"profile": {
			"currentBalance": 48000,
			"targetAnnualReturnPct": "15%",
			"sheetStats": {"riskLimit": 500, "dailyTarget": "", "daysRemaining": "120", "remainingGoal": null}
		},
		"journal": []
	}`)

	patch, rows, err := newTestMapper().Map(raw, domain.DefaultProfile())

	require.NoError(t, err)
	assert.Empty(t, rows)
	assertDecimal(t, "48000", patch.CurrentBalance)
	assertDecimal(t, "15", patch.TargetAnnualReturnPct)
	assert.Nil(t, patch.InitialCapital)
	require.NotNil(t, patch.SheetStats)
	assertDecimal(t, "500", patch.SheetStats.RiskLimit)
	assertDecimal(t, "120", patch.SheetStats.DaysRemaining)
	assert.Nil(t, patch.SheetStats.DailyTarget)
	assert.Nil(t, patch.SheetStats.RemainingGoal)
}

func TestMapper_EmptyPnlRows(t *testing.T) {
	const rows = `[
		{"id": "zdte_1", "date": "2025-02-01", "pnlAmount": 0, "category": "OPTIONS", "subCategory": "ZERO_DTE", "ticker": "SPX"},
		{"id": "lopt_2", "date": "2025-02-02", "category": "OPTIONS", "subCategory": "LONG_OPTIONS", "ticker": "QQQ"},
		{"id": "stk_3", "date": "2025-02-03", "pnlAmount": "", "category": "STOCKS", "subCategory": "SELF_WORK", "ticker": "TSLA"},
		{"id": "stk_4", "date": "2025-02-04", "pnlAmount": -40, "category": "STOCKS", "subCategory": "SELF_WORK", "ticker": "NVDA"},
		{"id": "skip_5", "date": "2025-02-05", "status": "SKIPPED"},
		{"id": "wknd_6", "date": "2025-02-08", "status": "WEEKEND"}
	]`

	tests := []struct {
		name    string
		profile string
		wantIDs []string
	}{
		{
			name:    "cell snapshot drops trades without pnl",
			profile: `{"currentBalance": 1000, "sheetStats": {"riskLimit": 50}}`,
			wantIDs: []string{"stk_4", "skip_5", "wknd_6"},
		},
		{
			name:    "full record keeps every row",
			profile: `{"currentBalance": 1000, "initialCapital": 1000}`,
			wantIDs: []string{"zdte_1", "lopt_2", "stk_3", "stk_4", "skip_5", "wknd_6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := json.RawMessage(`{"profile": ` + tt.profile + `, "journal": ` + rows + `}`)

			_, got, err := newTestMapper().Map(raw, domain.DefaultProfile())

			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMapper_SynthesizesRawTables(t *testing.T) {
	raw := json.RawMessage(`{
		"profile": {"currentBalance": 1000},
		"sheets": {
			"OPTIONS_POSITIONAL": [
				["ID","Ticker","","","","","","","Realized","Close Date"],
				["Z-9","spx","","","","","","",250,"2025-02-01"],
				["","ndx","","","","","","","","2025-02-02"],
				["","","","","","","","",100,"2025-02-03"]
			],
			"TRADING_LOG": [
				["Date","Ticker","","Qty","Entry","Exit"],
				["2025-02-04","TSLA","",10,200,190],
				["2025-02-05","NVDA","",5,100,0],
				["","MSFT","",2,"$300","$310"]
			],
			"OPTIONS_DAILY": [
				["Date","Ticker","","","Contracts","","Exit","PnL"],
				["2025-02-06","QQQ","","",2,"",5.5,"-80"]
			]
		}
	}`)

	_, rows, err := newTestMapper().Map(raw, domain.DefaultProfile())

	require.NoError(t, err)
	require.Len(t, rows, 4)

	zdte := rows[0]
	assert.Equal(t, "Z-9", zdte.ID)
	assert.Equal(t, "SPX", zdte.Ticker)
	assert.Equal(t, domain.CategoryOptions, zdte.Category)
	assert.Equal(t, domain.SubCategoryZeroDTE, zdte.SubCategory)
	assert.True(t, zdte.PnlAmount.Equal(decimal.NewFromInt(250)))

	tsla := rows[1]
	assert.Equal(t, "stk_1_TSLA", tsla.ID)
	assert.Equal(t, domain.CategoryStocks, tsla.Category)
	assert.Equal(t, domain.SubCategorySelfWork, tsla.SubCategory)
	assert.True(t, tsla.PnlAmount.Equal(decimal.NewFromInt(-100)))

	msft := rows[2]
	assert.Equal(t, "stk_3_MSFT", msft.ID)
	assert.Equal(t, "2025-03-14", msft.Date, "missing stock dates default to today")
	assert.True(t, msft.PnlAmount.Equal(decimal.NewFromInt(20)))

	qqq := rows[3]
	assert.Equal(t, "lopt_1", qqq.ID)
	assert.Equal(t, domain.SubCategoryLongOptions, qqq.SubCategory)
	assert.True(t, qqq.PnlAmount.Equal(decimal.NewFromInt(-80)))
}

func TestMapper_ProfileSheetFallback(t *testing.T) {
	raw := json.RawMessage(`{
		"sheets": {
			"Profile": [
				["Capital","Risk","Target","Days","Balance","Name"],
				[30000, 1.5, 20, 210, 31000, "Main"]
			]
		}
	}`)

	patch, rows, err := newTestMapper().Map(raw, domain.DefaultProfile())

	require.NoError(t, err)
	assert.Empty(t, rows)
	assertDecimal(t, "30000", patch.InitialCapital)
	assertDecimal(t, "1.5", patch.RiskPerTradePct)
	assertDecimal(t, "31000", patch.CurrentBalance)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Main", *patch.Name)
}

func TestMapper_ToleratesGarbageFields(t *testing.T) {
	raw := json.RawMessage(`{
		"profile": {"currentBalance": "n/a", "initialCapital": {"x": 1}, "name": true},
		"journal": [42, "row", {"date": "2025-01-01", "pnlAmount": 10, "status": "HOLIDAY"},
			{"date": "2025-01-02", "pnlAmount": "abc", "status": "traded", "category": "options"}]
	}`)

	patch, rows, err := newTestMapper().Map(raw, domain.DefaultProfile())

	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
	require.Len(t, rows, 1)
	assert.Equal(t, domain.DayStatusTraded, rows[0].Status)
	assert.Equal(t, domain.CategoryOptions, rows[0].Category)
	assert.True(t, rows[0].PnlAmount.IsZero())
}

func TestMapper_MalformedPayload(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `null`, `not json`} {
		t.Run(raw, func(t *testing.T) {
			_, _, err := newTestMapper().Map(json.RawMessage(raw), domain.DefaultProfile())
			assert.ErrorIs(t, err, domain.ErrMalformedSnapshot)
		})
	}
}
