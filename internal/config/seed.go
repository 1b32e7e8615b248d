package config

import (
	"fmt"
	"os"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout of PROFILE_SEED_FILE
type seedFile struct {
	Profiles []seedProfile `yaml:"profiles"`
}

type seedProfile struct {
	ID                    string  `yaml:"id"`
	Name                  string  `yaml:"name"`
	InitialCapital        string  `yaml:"initialCapital"`
	CurrentBalance        string  `yaml:"currentBalance"`
	RiskPerTradePct       string  `yaml:"riskPerTradePct"`
	TargetAnnualReturnPct string  `yaml:"targetAnnualReturnPct"`
	TotalEffectiveDays    string  `yaml:"totalEffectiveDays"`
	MaxMissedDaysPct      string  `yaml:"maxMissedDaysPct"`
	Active                bool    `yaml:"active"`
	Sync                  *struct {
		SheetID   string `yaml:"sheetId"`
		ScriptURL string `yaml:"scriptUrl"`
		Enabled   bool   `yaml:"enabled"`
	} `yaml:"sync"`
}

// LoadProfileSeed reads the seed profiles from a YAML file.
// Numbers may be written plainly or quoted; an empty current balance starts at the initial capital.
func LoadProfileSeed(path string) ([]domain.RiskProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseProfileSeed(data)
}

// ParseProfileSeed decodes seed YAML into validated profiles
func ParseProfileSeed(data []byte) ([]domain.RiskProfile, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	defaults := domain.DefaultProfile()
	profiles := make([]domain.RiskProfile, 0, len(file.Profiles))
	for i, sp := range file.Profiles {
		p := domain.RiskProfile{
			ID:       sp.ID,
			Name:     sp.Name,
			IsActive: sp.Active,
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("%d", i+1)
		}

		fields := []struct {
			name  string
			raw   string
			def   decimal.Decimal
			field *decimal.Decimal
		}{
			{"initialCapital", sp.InitialCapital, defaults.InitialCapital, &p.InitialCapital},
			{"riskPerTradePct", sp.RiskPerTradePct, defaults.RiskPerTradePct, &p.RiskPerTradePct},
			{"targetAnnualReturnPct", sp.TargetAnnualReturnPct, defaults.TargetAnnualReturnPct, &p.TargetAnnualReturnPct},
			{"totalEffectiveDays", sp.TotalEffectiveDays, defaults.TotalEffectiveDays, &p.TotalEffectiveDays},
			{"maxMissedDaysPct", sp.MaxMissedDaysPct, defaults.MaxMissedDaysPct, &p.MaxMissedDaysPct},
		}
		for _, f := range fields {
			v, err := seedDecimal(f.raw, f.def)
			if err != nil {
				return nil, fmt.Errorf("profile %d: %s: %w", i+1, f.name, err)
			}
			*f.field = v
		}
		balance, err := seedDecimal(sp.CurrentBalance, p.InitialCapital)
		if err != nil {
			return nil, fmt.Errorf("profile %d: currentBalance: %w", i+1, err)
		}
		p.CurrentBalance = balance

		if sp.Sync != nil {
			p.Sync = domain.SyncConfig{
				SheetID:   sp.Sync.SheetID,
				ScriptURL: sp.Sync.ScriptURL,
				IsEnabled: sp.Sync.Enabled,
			}
		}

		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", i+1, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func seedDecimal(raw string, def decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return def, nil
	}
	return decimal.NewFromString(raw)
}

// ApplyDefaultSync fills the sync settings of the first profile from the environment
// when that profile carries none of its own.
func ApplyDefaultSync(profiles []domain.RiskProfile, sync SyncConfig) []domain.RiskProfile {
	if len(profiles) == 0 || sync.SheetID == "" || sync.ScriptURL == "" {
		return profiles
	}
	if profiles[0].Sync.SheetID != "" || profiles[0].Sync.ScriptURL != "" {
		return profiles
	}
	profiles[0].Sync = domain.SyncConfig{
		SheetID:   sync.SheetID,
		ScriptURL: sync.ScriptURL,
		IsEnabled: sync.Enabled,
	}
	return profiles
}

// SeedProfiles returns the profiles created when the store is empty: the seed file if one is
// configured, otherwise the default profile, with the configured endpoint applied.
func (c *Config) SeedProfiles() ([]domain.RiskProfile, error) {
	seed := []domain.RiskProfile{domain.DefaultProfile()}
	if c.ProfileSeedFile != "" {
		profiles, err := LoadProfileSeed(c.ProfileSeedFile)
		if err != nil {
			return nil, err
		}
		seed = profiles
	}
	return ApplyDefaultSync(seed, c.Sync), nil
}
