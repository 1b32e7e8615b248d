package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/middleware"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/MikhailONe12/App-Risk-Manager/internal/sheets"
	"github.com/MikhailONe12/App-Risk-Manager/internal/testutil"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	e          *echo.Echo
	store      *service.Store
	client     *testutil.MockRemoteSyncClient
	publisher  *testutil.MockEventPublisher
	reconciler *service.ReconcileService
}

// testProfile is 10000 capital, 1% risk, 10% target over 100 effective days
func testProfile(id string) domain.RiskProfile {
	return domain.RiskProfile{
		ID:                    id,
		Name:                  "Test " + id,
		InitialCapital:        decimal.NewFromInt(10000),
		CurrentBalance:        decimal.NewFromInt(10000),
		RiskPerTradePct:       decimal.NewFromInt(1),
		TargetAnnualReturnPct: decimal.NewFromInt(10),
		TotalEffectiveDays:    decimal.NewFromInt(100),
		MaxMissedDaysPct:      decimal.NewFromInt(10),
	}
}

func syncedProfile(id string) domain.RiskProfile {
	p := testProfile(id)
	p.Sync = domain.SyncConfig{SheetID: "sheet-" + id, ScriptURL: "https://script.example.test/exec", IsEnabled: true}
	return p
}

func setupAPI(t *testing.T, profiles ...domain.RiskProfile) *testAPI {
	t.Helper()
	if len(profiles) == 0 {
		profiles = []domain.RiskProfile{testProfile("p1")}
	}

	store := service.NewStore(testutil.NewMockStateRepository())
	require.NoError(t, store.Load(context.Background(), profiles))

	client := testutil.NewMockRemoteSyncClient(`{}`)
	publisher := testutil.NewMockEventPublisher()

	reconciler := service.NewReconcileService(store, client, sheets.NewMapper(), zerolog.Nop())
	reconciler.SetEventPublisher(publisher)
	journalService := service.NewJournalService(store, reconciler)
	journalService.SetEventPublisher(publisher)
	profileService := service.NewProfileService(store)
	profileService.SetEventPublisher(publisher)

	limiter := middleware.NewRateLimiterWithConfig(60, 2)
	t.Cleanup(func() {
		reconciler.Wait()
		limiter.Stop()
	})

	e := echo.New()
	RegisterRoutes(e, Handlers{
		Profile:   NewProfileHandler(profileService),
		Journal:   NewJournalHandler(journalService),
		Dashboard: NewDashboardHandler(service.NewMetricsService(store)),
		Sync:      NewSyncHandler(reconciler),
		WebSocket: NewWebSocketHandler(websocket.NewHub(), profileService, testAllowedOrigins),
	}, limiter)

	return &testAPI{e: e, store: store, client: client, publisher: publisher, reconciler: reconciler}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
