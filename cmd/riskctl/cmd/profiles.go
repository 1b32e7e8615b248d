package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfilesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List risk profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for _, p := range a.profiles.ListProfiles() {
				marker := " "
				if p.IsActive {
					marker = "*"
				}
				sync := "off"
				if p.Sync.CanSync() {
					sync = "on"
				}
				fmt.Fprintf(out, "%s %-8s %-24s balance $%s  risk %s%%  sync %s\n",
					marker, p.ID, p.Name, p.CurrentBalance.StringFixed(2), p.RiskPerTradePct.String(), sync)
			}
			return nil
		},
	}
}
