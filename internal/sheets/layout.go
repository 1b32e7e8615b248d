package sheets

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
)

// Sheet names of the remote workbook
const (
	SheetZeroDTE     = "OPTIONS_POSITIONAL"
	SheetStocks      = "TRADING_LOG"
	SheetLongOptions = "OPTIONS_DAILY"
	SheetProfile     = "Profile"
)

// Column offsets, zero based (A=0). Row 0 of every table is a header.
var (
	zeroDTECols = struct{ ID, Ticker, Pnl, Date int }{ID: 0, Ticker: 1, Pnl: 8, Date: 9}

	stocksCols = struct{ Date, Ticker, Qty, Entry, Exit int }{Date: 0, Ticker: 1, Qty: 3, Entry: 4, Exit: 5}

	longOptionCols = struct{ Date, Ticker, Contracts, Exit, Pnl int }{Date: 0, Ticker: 1, Contracts: 4, Exit: 6, Pnl: 7}

	profileCols = struct{ InitialCapital, Risk, Target, Days, Balance, Name int }{
		InitialCapital: 0, Risk: 1, Target: 2, Days: 3, Balance: 4, Name: 5,
	}
)

// table is a sheet's value grid as returned by the remote script
type table [][]interface{}

// row is one line of a table
type row []interface{}

func decodeTables(raw json.RawMessage) map[string]table {
	if len(raw) == 0 {
		return nil
	}
	var sheets map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sheets); err != nil {
		return nil
	}
	out := make(map[string]table, len(sheets))
	for name, data := range sheets {
		var t table
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		out[name] = t
	}
	return out
}

func (r row) cell(i int) interface{} {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// str renders a cell as trimmed text
func (r row) str(i int) string {
	switch v := r.cell(i).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// num reads a numeric or numeric-text cell
func (r row) num(i int) (decimal.Decimal, bool) {
	switch v := r.cell(i).(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		return parseNumber(v)
	default:
		return decimal.Zero, false
	}
}

func (r row) numOrZero(i int) decimal.Decimal {
	d, _ := r.num(i)
	return d
}

func tradedRow(id, date, ticker string, pnl decimal.Decimal, category domain.TradeCategory, sub domain.TradeSubCategory) domain.DailyStat {
	return domain.DailyStat{
		ID:          id,
		Date:        domain.NormalizeDate(date),
		PnlAmount:   pnl,
		Status:      domain.DayStatusTraded,
		Category:    category,
		SubCategory: sub,
		Strategy:    domain.StrategyNone,
		Ticker:      ticker,
	}
}

// zeroDTERows reads the 0DTE options table; P&L is a direct cell
func zeroDTERows(t table) []domain.DailyStat {
	out := make([]domain.DailyStat, 0)
	for i := 1; i < len(t); i++ {
		r := row(t[i])
		ticker := r.str(zeroDTECols.Ticker)
		if ticker == "" {
			continue
		}
		pnl := r.numOrZero(zeroDTECols.Pnl)
		if pnl.IsZero() {
			continue
		}
		id := r.str(zeroDTECols.ID)
		if id == "" {
			id = fmt.Sprintf("zdte_%d", i)
		}
		out = append(out, tradedRow(id, r.str(zeroDTECols.Date), ticker, pnl,
			domain.CategoryOptions, domain.SubCategoryZeroDTE))
	}
	return out
}

// stockRows reads the stock trading log; P&L is (exit - entry) * qty when both prices are set
func stockRows(t table, today string) []domain.DailyStat {
	out := make([]domain.DailyStat, 0)
	for i := 1; i < len(t); i++ {
		r := row(t[i])
		ticker := r.str(stocksCols.Ticker)
		if ticker == "" {
			continue
		}
		qty := r.numOrZero(stocksCols.Qty)
		entry := r.numOrZero(stocksCols.Entry)
		exit := r.numOrZero(stocksCols.Exit)
		if entry.IsZero() || exit.IsZero() {
			continue
		}
		pnl := exit.Sub(entry).Mul(qty)
		if pnl.IsZero() {
			continue
		}
		date := r.str(stocksCols.Date)
		if date == "" {
			date = today
		}
		out = append(out, tradedRow(fmt.Sprintf("stk_%d_%s", i, ticker), date, ticker, pnl,
			domain.CategoryStocks, domain.SubCategorySelfWork))
	}
	return out
}

// longOptionRows reads the long-dated options table; P&L is a direct cell
func longOptionRows(t table) []domain.DailyStat {
	out := make([]domain.DailyStat, 0)
	for i := 1; i < len(t); i++ {
		r := row(t[i])
		ticker := r.str(longOptionCols.Ticker)
		if ticker == "" {
			continue
		}
		pnl := r.numOrZero(longOptionCols.Pnl)
		if pnl.IsZero() {
			continue
		}
		out = append(out, tradedRow(fmt.Sprintf("lopt_%d", i), r.str(longOptionCols.Date), ticker, pnl,
			domain.CategoryOptions, domain.SubCategoryLongOptions))
	}
	return out
}

// synthesizeJournal builds journal rows from whichever trade tables are present
func synthesizeJournal(tables map[string]table, now time.Time) []domain.DailyStat {
	rows := make([]domain.DailyStat, 0)
	if t, ok := tables[SheetZeroDTE]; ok {
		rows = append(rows, zeroDTERows(t)...)
	}
	if t, ok := tables[SheetStocks]; ok {
		rows = append(rows, stockRows(t, now.Format(domain.DateLayout))...)
	}
	if t, ok := tables[SheetLongOptions]; ok {
		rows = append(rows, longOptionRows(t)...)
	}
	return rows
}

// profileFromTable reads the profile sheet, whose second row holds the configured values
func profileFromTable(t table) *domain.ProfilePatch {
	if len(t) < 2 {
		return nil
	}
	r := row(t[1])
	patch := &domain.ProfilePatch{}
	set := func(i int) *decimal.Decimal {
		if d, ok := r.num(i); ok {
			return &d
		}
		return nil
	}
	patch.InitialCapital = set(profileCols.InitialCapital)
	patch.RiskPerTradePct = set(profileCols.Risk)
	patch.TargetAnnualReturnPct = set(profileCols.Target)
	patch.TotalEffectiveDays = set(profileCols.Days)
	patch.CurrentBalance = set(profileCols.Balance)
	if name := r.str(profileCols.Name); name != "" {
		patch.Name = &name
	}
	return patch
}
