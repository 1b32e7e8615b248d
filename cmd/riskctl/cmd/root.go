package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/MikhailONe12/App-Risk-Manager/internal/config"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/MikhailONe12/App-Risk-Manager/internal/sheets"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	profileID string
	verbose   bool
}

// NewRootCmd builds the riskctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "riskctl",
		Short: "Inspect and edit risk profiles and the trading journal",
		Long: `riskctl works on the same state store as the API server.

It reads the server configuration from the environment (or .env):
STORE_BACKEND, STORE_DIR, DATABASE_URL, REDIS_URL, S3_* and SYNC_*.

Examples:
  riskctl profiles
  riskctl stats -p 1
  riskctl log --pnl -150 --category stocks --sub self_work --ticker AAPL
  riskctl pull --all`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.profileID, "profile", "p", "", "profile id (default: the active profile)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newProfilesCmd(opts),
		newStatsCmd(opts),
		newLogCmd(opts),
		newDeleteCmd(opts),
		newPullCmd(opts),
		newPushCmd(opts),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// app wires the services over the configured store for one command run
type app struct {
	store      *service.Store
	profiles   *service.ProfileService
	journal    *service.JournalService
	metrics    *service.MetricsService
	reconciler *service.ReconcileService
	release    func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	blobs, release, err := repository.OpenBlobStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	seed, err := cfg.SeedProfiles()
	if err != nil {
		release()
		return nil, fmt.Errorf("seed: %w", err)
	}

	store := service.NewStore(repository.NewStateRepository(blobs))
	if err := store.Load(ctx, seed); err != nil {
		release()
		return nil, fmt.Errorf("load state: %w", err)
	}

	client := sheets.NewClient(&http.Client{Timeout: cfg.Sync.HTTPTimeout})
	reconciler := service.NewReconcileService(store, client, sheets.NewMapper(), log.Logger)

	return &app{
		store:      store,
		profiles:   service.NewProfileService(store),
		journal:    service.NewJournalService(store, reconciler),
		metrics:    service.NewMetricsService(store),
		reconciler: reconciler,
		release:    release,
	}, nil
}

// Close waits for background pushes and releases the store
func (a *app) Close() {
	a.reconciler.Wait()
	a.release()
}

// profileID resolves the --profile flag, falling back to the active profile
func (a *app) profileID(opts *rootOptions) (string, error) {
	if opts.profileID != "" {
		if _, err := a.store.Profile(opts.profileID); err != nil {
			return "", err
		}
		return opts.profileID, nil
	}
	active, err := a.store.ActiveProfile()
	if err != nil {
		return "", err
	}
	return active.ID, nil
}
