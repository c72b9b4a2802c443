package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newPlansCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List packages, switch plan or renew",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			plans, err := app.service.Plans(cmd.Context())
			if err != nil {
				return sessionExpired(err)
			}

			var current *domain.Subscription
			if sub, ok, err := app.service.Subscription(cmd.Context()); err == nil && ok {
				current = &sub
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Plans(plans, current))
			return nil
		},
	}

	cmd.AddCommand(newPlansChangeCmd(app), newPlansRenewCmd(app))

	return cmd
}

func newPlansChangeCmd(app *app) *cobra.Command {
	var packageID int64

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Switch your subscription to another package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			plan, err := app.service.ChangePlan(cmd.Context(), packageID)
			if err != nil {
				return sessionExpired(err)
			}

			// Re-read the subscription the action mutated.
			if sub, ok, err := app.service.Subscription(cmd.Context()); err == nil && ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s (active until %s)\n",
					sub.PackageName, sub.EndDate.Format("02 Jan 2006"))
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", plan.Name)
			return nil
		},
	}

	cmd.Flags().Int64Var(&packageID, "package", 0, "Package ID from `portal plans`")
	_ = cmd.MarkFlagRequired("package")

	return cmd
}

func newPlansRenewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renew",
		Short: "Renew your current subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			if err := app.service.Renew(cmd.Context()); err != nil {
				return sessionExpired(err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Subscription renewed")
			return nil
		},
	}
}
