package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard figures of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.profileID(opts)
			if err != nil {
				return err
			}
			view, err := a.metrics.GetDashboard(id)
			if err != nil {
				return err
			}

			s := view.Stats
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile:          %s (%s)\n", view.Profile.Name, id)
			fmt.Fprintf(out, "Capital:          $%s\n", s.CurrentCapital.StringFixed(2))
			fmt.Fprintf(out, "Annual goal:      $%s\n", s.AnnualGoalAmount.StringFixed(2))
			fmt.Fprintf(out, "Progress:         $%s\n", s.CurrentProgressAmount.StringFixed(2))
			fmt.Fprintf(out, "Remaining goal:   $%s\n", s.RemainingGoal.StringFixed(2))
			fmt.Fprintf(out, "Daily risk limit: $%s\n", s.DailyRiskLimit.StringFixed(2))
			fmt.Fprintf(out, "Required daily:   $%s\n", s.RequiredDailyAvg.StringFixed(2))
			fmt.Fprintf(out, "Days traded:      %s\n", s.DaysTraded.String())
			fmt.Fprintf(out, "Days left:        %s\n", s.DaysLeft.StringFixed(1))
			fmt.Fprintf(out, "Missed days:      %d (%s%%)\n", s.DaysSkipped, s.MissedDaysPercent.StringFixed(2))
			if view.DisciplineAlert {
				fmt.Fprintf(out, "DISCIPLINE ALERT: missed days above %s%%\n", view.Profile.MaxMissedDaysPct.String())
			}
			for _, t := range s.TickerPerformance {
				fmt.Fprintf(out, "  %-8s $%s (%d)\n", t.Ticker, t.Pnl.StringFixed(2), t.Count)
			}
			return nil
		},
	}
}
