package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPullCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Merge the remote snapshot into the local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if all {
				result, err := a.reconciler.PullAll(cmd.Context())
				fmt.Fprintf(out, "Pulled %d of %d profiles (%d errors)\n", result.Pulled, result.Profiles, result.Errors)
				return err
			}

			id, err := a.profileID(opts)
			if err != nil {
				return err
			}
			result, err := a.reconciler.ManualPull(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pulled %s: %d entries, journal replaced %t, profile updated %t\n",
				id, result.Entries, result.JournalReplaced, result.ProfileUpdated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "pull every sync-enabled profile")
	return cmd
}

func newPushCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Send the local profile and journal to the remote endpoint",
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
			if err := a.reconciler.ManualPush(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s (%d entries)\n", id, len(a.store.Journal(id)))
			return nil
		},
	}
}
