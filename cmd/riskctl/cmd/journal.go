package cmd

import (
	"fmt"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type logOptions struct {
	date        string
	pnl         string
	status      string
	category    string
	subCategory string
	strategy    string
	ticker      string
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	lo := &logOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Add a day to the journal",
		Long: `Log adds one journal entry and reports whether the loss breached the daily risk limit.

Examples:
  riskctl log --pnl -150 --category stocks --sub self_work --ticker AAPL
  riskctl log --status skipped --date 2025-03-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pnl := decimal.Zero
			if strings.TrimSpace(lo.pnl) != "" {
				parsed, err := decimal.NewFromString(strings.TrimSpace(lo.pnl))
				if err != nil {
					return fmt.Errorf("pnl: %w", err)
				}
				pnl = parsed
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.profileID(opts)
			if err != nil {
				return err
			}

			result, err := a.journal.LogRecord(cmd.Context(), id, service.LogRecordInput{
				Date:        lo.date,
				PnlAmount:   pnl,
				Status:      domain.DayStatus(strings.ToUpper(lo.status)),
				Category:    domain.TradeCategory(strings.ToUpper(lo.category)),
				SubCategory: domain.TradeSubCategory(strings.ToUpper(lo.subCategory)),
				Strategy:    domain.OptionStrategy(strings.ToUpper(lo.strategy)),
				Ticker:      lo.ticker,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := result.Record
			fmt.Fprintf(out, "Logged %s on %s: %s $%s\n", r.ID, r.Date, r.Status, r.PnlAmount.StringFixed(2))
			if result.Breach {
				fmt.Fprintln(out, result.Alert.Message.En)
			}
			fmt.Fprintf(out, "Balance: $%s  next limit: $%s\n",
				result.Stats.CurrentCapital.StringFixed(2), result.Stats.DailyRiskLimit.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&lo.date, "date", "", "entry date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&lo.pnl, "pnl", "", "profit or loss of the day")
	cmd.Flags().StringVar(&lo.status, "status", "", "TRADED, SKIPPED or WEEKEND (default: TRADED)")
	cmd.Flags().StringVar(&lo.category, "category", "", "STOCKS or OPTIONS")
	cmd.Flags().StringVar(&lo.subCategory, "sub", "", "SELF_WORK, FULL_TIME, ZERO_DTE or LONG_OPTIONS")
	cmd.Flags().StringVar(&lo.strategy, "strategy", "", "option strategy")
	cmd.Flags().StringVar(&lo.ticker, "ticker", "", "traded symbol")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Remove a journal entry and reverse its effect on the balance",
		Args:  cobra.ExactArgs(1),
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

			deleted, err := a.journal.DeleteRecord(cmd.Context(), id, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
