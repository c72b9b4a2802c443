package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyumbanet/portal-cli/internal/application"
)

func newRegisterCmd(app *app) *cobra.Command {
	var username, email, phone, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new portal account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := password
			if secret == "" {
				var err error
				secret, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			err := app.service.Register(cmd.Context(), application.RegisterInput{
				Username:    username,
				Email:       email,
				PhoneNumber: phone,
				Password:    secret,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account created. Sign in with `portal login %s`\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (07... or 2547...)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newResetCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Request or apply a password reset",
	}

	cmd.AddCommand(newResetRequestCmd(app), newResetConfirmCmd(app))

	return cmd
}

func newResetRequestCmd(app *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Email a password reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RequestPasswordReset(cmd.Context(), email); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Check your email for a reset token, then run `portal reset confirm --token <token>`")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newResetConfirmCmd(app *app) *cobra.Command {
	var token, password string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Apply a new password using a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := password
			if secret == "" {
				var err error
				secret, err = promptPassword(cmd, "New password: ")
				if err != nil {
					return err
				}
			}

			if err := app.service.ConfirmPasswordReset(cmd.Context(), token, secret); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
