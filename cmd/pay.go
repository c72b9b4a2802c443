package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newPayCmd(app *app) *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay for your current subscription via mobile money",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			receipt, err := app.service.Pay(cmd.Context(), phone)
			switch {
			case errors.Is(err, domain.ErrNoSubscription):
				return errors.New("no active plan to pay for: pick one with `portal plans change`")
			case errors.Is(err, domain.ErrInvalidPhone):
				return errors.New("phone number must be a Kenyan mobile number, e.g. 0712345678")
			case err != nil:
				return sessionExpired(err)
			}

			if receipt.CustomerMessage != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), receipt.CustomerMessage)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Payment request sent. Check your phone to approve it.")
			}
			if receipt.CheckoutRequestID != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reference: %s\n", receipt.CheckoutRequestID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Mobile money number to charge (07.. or 2547..)")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
