package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newTicketsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List your support tickets or open a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			var tickets []domain.Ticket
			err := render.WithProgress(cmd.Context(), cmd.ErrOrStderr(), "Fetching tickets", func(ctx context.Context) error {
				var fetchErr error
				tickets, fetchErr = app.service.Tickets(ctx)
				return fetchErr
			})
			if err != nil {
				return sessionExpired(err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Tickets(tickets))
			return nil
		},
	}

	cmd.AddCommand(newTicketsOpenCmd(app))

	return cmd
}

func newTicketsOpenCmd(app *app) *cobra.Command {
	var (
		subject  string
		category string
		message  string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new support ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			ticket, err := app.service.OpenTicket(cmd.Context(), application.TicketInput{
				Subject:     subject,
				Category:    domain.TicketCategory(strings.ToUpper(category)),
				Description: message,
			})
			if err != nil {
				var inputErr *application.InputError
				if errors.As(err, &inputErr) {
					return errors.New(inputErr.Message)
				}
				return sessionExpired(err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ticket #%d opened: %s\n", ticket.ID, ticket.Subject)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Short summary of the problem")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryInternet),
		"One of internet, billing, relocation, other")
	cmd.Flags().StringVar(&message, "message", "", "Full description of the problem")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
