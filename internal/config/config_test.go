package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SYNC_ENABLED", "")
	t.Setenv("SYNC_HTTP_TIMEOUT", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreBackendFile, cfg.StoreBackend)
	assert.Equal(t, 30*time.Second, cfg.Sync.HTTPTimeout)
	assert.Empty(t, cfg.Sync.PullSchedule, "periodic pulls are opt-in")
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "state/", cfg.S3.Prefix)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}},
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"redis without url", map[string]string{"STORE_BACKEND": "redis", "REDIS_URL": ""}},
		{"bad bool", map[string]string{"SYNC_ENABLED": "maybe"}},
		{"bad duration", map[string]string{"SYNC_HTTP_TIMEOUT": "soon"}},
		{"zero rate", map[string]string{"SYNC_RATE_LIMIT_PER_MINUTE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseProfileSeed(t *testing.T) {
	data := []byte(`
profiles:
  - id: scalp
    name: Scalping Acc
    initialCapital: 10000
    riskPerTradePct: "1"
    targetAnnualReturnPct: 10
    totalEffectiveDays: 225.9
    active: true
    sync:
      sheetId: abc
      scriptUrl: https://script.example.test/exec
      enabled: true
  - name: Swing
    initialCapital: 5000
    currentBalance: 5200.50
`)

	profiles, err := ParseProfileSeed(data)

	require.NoError(t, err)
	require.Len(t, profiles, 2)

	first := profiles[0]
	assert.Equal(t, "scalp", first.ID)
	assert.True(t, first.IsActive)
	assert.True(t, first.InitialCapital.Equal(decimal.NewFromInt(10000)))
	assert.True(t, first.CurrentBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, first.TotalEffectiveDays.Equal(decimal.RequireFromString("225.9")))
	assert.True(t, first.MaxMissedDaysPct.Equal(domain.DefaultProfile().MaxMissedDaysPct))
	assert.True(t, first.Sync.CanSync())

	second := profiles[1]
	assert.Equal(t, "2", second.ID)
	assert.False(t, second.IsActive)
	assert.True(t, second.CurrentBalance.Equal(decimal.RequireFromString("5200.50")))
}

func TestParseProfileSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "profiles: {"},
		{"bad number", "profiles:\n  - name: A\n    initialCapital: lots\n"},
		{"missing name", "profiles:\n  - initialCapital: 100\n"},
		{"risk over 100", "profiles:\n  - name: A\n    riskPerTradePct: 150\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfileSeed([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfileSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  - name: A\n"), 0o600))

	profiles, err := LoadProfileSeed(path)

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "A", profiles[0].Name)

	_, err = LoadProfileSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyDefaultSync(t *testing.T) {
	sync := SyncConfig{SheetID: "sheet", ScriptURL: "https://x.test/exec", Enabled: true}

	t.Run("fills first profile", func(t *testing.T) {
		profiles := ApplyDefaultSync([]domain.RiskProfile{domain.DefaultProfile()}, sync)
		assert.Equal(t, "sheet", profiles[0].Sync.SheetID)
		assert.True(t, profiles[0].Sync.IsEnabled)
	})

	t.Run("keeps explicit settings", func(t *testing.T) {
		p := domain.DefaultProfile()
		p.Sync.SheetID = "own"
		profiles := ApplyDefaultSync([]domain.RiskProfile{p}, sync)
		assert.Equal(t, "own", profiles[0].Sync.SheetID)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, ApplyDefaultSync(nil, sync))
	})
}

func TestSeedProfiles(t *testing.T) {
	t.Run("default profile", func(t *testing.T) {
		cfg := &Config{Sync: SyncConfig{SheetID: "sheet", ScriptURL: "https://script.example.test/exec", Enabled: true}}

		profiles, err := cfg.SeedProfiles()
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Scalping Acc", profiles[0].Name)
		assert.True(t, profiles[0].Sync.IsEnabled)
	})

	t.Run("missing seed file", func(t *testing.T) {
		cfg := &Config{ProfileSeedFile: filepath.Join(t.TempDir(), "missing.yaml")}

		_, err := cfg.SeedProfiles()
		assert.Error(t, err)
	})
}
