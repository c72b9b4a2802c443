package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newUsageCmd(app *app) *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show current data usage, or the last days with --history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			if history {
				var samples []domain.UsageSample
				err := render.WithProgress(cmd.Context(), cmd.ErrOrStderr(), "Fetching usage history", func(ctx context.Context) error {
					var fetchErr error
					samples, fetchErr = app.service.UsageHistory(ctx)
					return fetchErr
				})
				if err != nil {
					return sessionExpired(err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.UsageHistory(samples))
				return nil
			}

			var usage domain.UsageSnapshot
			err := render.WithProgress(cmd.Context(), cmd.ErrOrStderr(), "Fetching usage", func(ctx context.Context) error {
				var fetchErr error
				usage, fetchErr = app.service.CurrentUsage(ctx)
				return fetchErr
			})
			if err != nil {
				return sessionExpired(err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Downloaded: %s\nUploaded:   %s\nTotal:      %s\n",
				domain.FormatMB(usage.DownloadMB),
				domain.FormatMB(usage.UploadMB),
				domain.FormatMB(usage.TotalMB()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Show per-day usage instead of the current totals")

	return cmd
}
