package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [identifier]",
		Short: "Sign in and persist the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := ""
			if len(args) > 0 {
				identifier = strings.TrimSpace(args[0])
			}
			if identifier == "" {
				return errors.New("identifier is required: portal login <username>")
			}

			secret := password
			if secret == "" {
				var err error
				secret, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			session, err := app.service.Login(cmd.Context(), identifier, secret)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return errors.New("invalid credentials")
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.Identifier)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// requireSession restores the persisted credential and fails fast when the
// client is unauthenticated.
func requireSession(cmd *cobra.Command, app *app) error {
	session, err := app.service.RestoreSession(cmd.Context())
	if err != nil {
		return err
	}
	if !session.Authenticated() {
		return errors.New("not signed in: run `portal login <username>` first")
	}
	return nil
}

// sessionExpired rewrites a forced-logout error into actionable advice.
func sessionExpired(err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		return errors.New("session expired: run `portal login <username>` to sign in again")
	}
	return err
}

func promptPassword(cmd *cobra.Command, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; pass --password")
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), label)
	secret, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(secret), nil
}
