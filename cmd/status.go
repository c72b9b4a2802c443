package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	render "github.com/nyumbanet/portal-cli/internal/adapters/render/portal"
	"github.com/nyumbanet/portal-cli/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var showSession bool

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"dashboard"},
		Short:   "Show your plan, usage and recent payments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			snapshot := application.Snapshot{Session: app.service.Session()}

			fetch := func(ctx context.Context) error {
				sub, ok, err := app.service.Subscription(ctx)
				if err != nil {
					return err
				}
				if ok {
					snapshot.Subscription = &sub
				}

				usage, err := app.service.CurrentUsage(ctx)
				if err == nil {
					snapshot.Usage = &usage
				}

				if payments, err := app.service.Payments(ctx); err == nil {
					snapshot.Payments = payments
				}
				if plans, err := app.service.Plans(ctx); err == nil {
					snapshot.Plans = plans
				}
				return nil
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return sessionExpired(err)
				}
				// The bearer token stays out of stdout; scripts get the
				// identifier, not the credential.
				snapshot.Session.Token = ""
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			if err := render.WithProgress(cmd.Context(), cmd.ErrOrStderr(), "Loading your account...", fetch); err != nil {
				return sessionExpired(err)
			}

			rendered, err := render.Render(snapshot, render.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render dashboard: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)

			if showSession {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), sessionDetails(snapshot.Session.Token))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&showSession, "session", false, "Show token details for the stored session")

	return cmd
}

// sessionDetails peeks at the stored JWT for display only. Validity is never
// checked client-side; a stale token simply fails on its next request.
func sessionDetails(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "session: opaque token"
	}

	parts := "session:"
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		parts += " subject " + sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		parts += " · token expires " + exp.Time.Format(time.RFC822)
	}

	return parts
}
