package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJournalService(t *testing.T, profiles ...domain.RiskProfile) (*JournalService, *Store, *testutil.MockPusher, *testutil.MockEventPublisher) {
	t.Helper()
	store, _ := setupStore(t, profiles...)
	pusher := &testutil.MockPusher{}
	publisher := testutil.NewMockEventPublisher()

	service := NewJournalService(store, pusher)
	service.SetEventPublisher(publisher)
	service.now = func() time.Time { return time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC) }
	n := 0
	service.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return service, store, pusher, publisher
}

func TestJournalService_LogRecord_Breach(t *testing.T) {
	service, store, pusher, publisher := setupJournalService(t)

	result, err := service.LogRecord(context.Background(), "p1", LogRecordInput{
		Date:        "2025-03-10",
		PnlAmount:   dec("-150"),
		Category:    domain.CategoryStocks,
		SubCategory: domain.SubCategorySelfWork,
		Strategy:    domain.StrategyNone,
		Ticker:      " aapl ",
	})
	require.NoError(t, err)

	assert.True(t, result.Breach)
	require.NotNil(t, result.Alert)
	assert.Equal(t, domain.AlertTypeRisk, result.Alert.Type)
	assert.Equal(t, "RISK BREACH: Loss $150.00 > limit $100.00", result.Alert.Message.En)
	assert.Equal(t, "НАРУШЕНИЕ: Убыток $150.00 > лимита $100.00", result.Alert.Message.Ru)

	assert.Equal(t, domain.DayStatusTraded, result.Record.Status)
	assert.Equal(t, "AAPL", result.Record.Ticker)
	assertDecimal(t, "10000", result.Record.StartOfDayBalance)
	assertDecimal(t, "100", result.Record.RiskLimitSnapshot)

	assertDecimal(t, "9850", result.Stats.CurrentCapital)
	assertDecimal(t, "-150", result.Stats.CurrentProgressAmount)
	assertDecimal(t, "1150", result.Stats.RemainingGoal)

	profile, _ := store.Profile("p1")
	assertDecimal(t, "9850", profile.CurrentBalance)

	assert.Equal(t, []string{"journal.created", "risk.breached"}, publisher.EventTypes())
	assert.Equal(t, 0, pusher.Count(), "sync is disabled")
}

func TestJournalService_LogRecord_ConcurrentSnapshotsAreDistinct(t *testing.T) {
	service, store, _, _ := setupJournalService(t)
	var ids atomic.Int64
	service.newID = func() string {
		return fmt.Sprintf("c-%d", ids.Add(1))
	}

	const logs = 5
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		balances []string
	)
	for i := 0; i < logs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.LogRecord(context.Background(), "p1", LogRecordInput{
				Date:        "2025-03-10",
				PnlAmount:   dec("-10"),
				Category:    domain.CategoryStocks,
				SubCategory: domain.SubCategorySelfWork,
				Strategy:    domain.StrategyNone,
				Ticker:      "AAPL",
			})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			balances = append(balances, result.Record.StartOfDayBalance.StringFixed(0))
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Strings(balances)
	assert.Equal(t, []string{"10000", "9960", "9970", "9980", "9990"}, balances)
	profile, _ := store.Profile("p1")
	assertDecimal(t, "9950", profile.CurrentBalance)
}

func TestJournalService_LogRecord_LossEqualToLimitIsNotABreach(t *testing.T) {
	service, _, _, publisher := setupJournalService(t)

	result, err := service.LogRecord(context.Background(), "p1", LogRecordInput{
		PnlAmount: dec("-100"),
		Category:  domain.CategoryStocks,
	})
	require.NoError(t, err)

	assert.False(t, result.Breach)
	assert.Nil(t, result.Alert)
	assert.Equal(t, "2025-03-14", result.Record.Date, "date defaults to today")
	assert.Equal(t, []string{"journal.created"}, publisher.EventTypes())
}

func TestJournalService_LogRecord_SkippedDayDropsTradeFields(t *testing.T) {
	service, _, _, _ := setupJournalService(t)

	result, err := service.LogRecord(context.Background(), "p1", LogRecordInput{
		Date:     "2025-03-11",
		Status:   domain.DayStatusSkipped,
		Category: domain.CategoryOptions,
		Strategy: domain.StrategyButterfly,
		Ticker:   "SPX",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryNone, result.Record.Category)
	assert.Equal(t, domain.SubCategoryNone, result.Record.SubCategory)
	assert.Equal(t, domain.StrategyNone, result.Record.Strategy)
	assert.Empty(t, result.Record.Ticker)
	assert.Equal(t, 1, result.Stats.DaysSkipped)
}

func TestJournalService_LogRecord_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   LogRecordInput
		wantErr error
	}{
		{"bad date", LogRecordInput{Date: "14/03/2025"}, domain.ErrInvalidDate},
		{"bad status", LogRecordInput{Status: "HOLIDAY"}, domain.ErrInvalidDayStatus},
		{"bad category", LogRecordInput{Category: "CRYPTO"}, domain.ErrInvalidCategory},
		{"bad strategy", LogRecordInput{Strategy: "WHEEL"}, domain.ErrInvalidStrategy},
		{"long ticker", LogRecordInput{Ticker: "ABCDEFGHIJKLMNOPQ"}, domain.ErrTickerTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store, _, publisher := setupJournalService(t)

			_, err := service.LogRecord(context.Background(), "p1", tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.Journal("p1"))
			assert.Empty(t, publisher.Events())
		})
	}
}

func TestJournalService_LogRecord_UnknownProfile(t *testing.T) {
	service, _, _, _ := setupJournalService(t)

	_, err := service.LogRecord(context.Background(), "ghost", LogRecordInput{})

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestJournalService_PushesWhenSyncEnabled(t *testing.T) {
	profile := testProfile("p1")
	profile.Sync = domain.SyncConfig{SheetID: "s", ScriptURL: "https://x.test/exec", IsEnabled: true}
	service, _, pusher, _ := setupJournalService(t, profile)
	ctx := context.Background()

	result, err := service.LogRecord(ctx, "p1", LogRecordInput{PnlAmount: dec("25"), Category: domain.CategoryStocks})
	require.NoError(t, err)
	deleted, err := service.DeleteRecord(ctx, "p1", result.Record.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, []string{"p1", "p1"}, pusher.Profiles)
}

func TestJournalService_DeleteRecord(t *testing.T) {
	service, store, _, publisher := setupJournalService(t)
	ctx := context.Background()

	result, err := service.LogRecord(ctx, "p1", LogRecordInput{PnlAmount: dec("-40"), Category: domain.CategoryStocks})
	require.NoError(t, err)

	deleted, err := service.DeleteRecord(ctx, "p1", result.Record.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	profile, _ := store.Profile("p1")
	assertDecimal(t, "10000", profile.CurrentBalance)
	assert.Equal(t, []string{"journal.created", "journal.deleted"}, publisher.EventTypes())

	deleted, err = service.DeleteRecord(ctx, "p1", result.Record.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, publisher.Events(), 2)
}

func TestJournalService_List(t *testing.T) {
	service, _, _, _ := setupJournalService(t, testProfile("a"), testProfile("b"))
	ctx := context.Background()

	_, err := service.LogRecord(ctx, "a", LogRecordInput{Date: "2025-01-02", PnlAmount: dec("1")})
	require.NoError(t, err)
	_, err = service.LogRecord(ctx, "a", LogRecordInput{Date: "2025-01-01", PnlAmount: dec("2")})
	require.NoError(t, err)
	_, err = service.LogRecord(ctx, "b", LogRecordInput{Date: "2025-01-01", PnlAmount: dec("3")})
	require.NoError(t, err)

	entries, err := service.List("a")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-01-01", entries[0].Date)

	_, err = service.List("ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
