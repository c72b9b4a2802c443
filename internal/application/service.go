// Package application holds the session lifecycle and the action dispatch
// rules. All remote state lives behind ports.PortalAPI; the only durable
// client state is the credential in ports.SessionStore.
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nyumbanet/portal-cli/internal/domain"
	"github.com/nyumbanet/portal-cli/internal/ports"
)

type Service struct {
	api    ports.PortalAPI
	store  ports.SessionStore
	clock  ports.Clock
	logger zerolog.Logger

	mu      sync.RWMutex
	session domain.Session
}

func NewService(api ports.PortalAPI, store ports.SessionStore, clock ports.Clock, logger zerolog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Service{
		api:    api,
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Session returns a copy of the in-memory credential.
func (s *Service) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Token is the supplier wired into the API client so every authenticated
// request picks up the current credential.
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// RestoreSession reads the persisted credential at startup. A missing session
// is not an error: the client simply starts unauthenticated. Token validity is
// never checked here; staleness surfaces on the first rejected request.
func (s *Service) RestoreSession(ctx context.Context) (domain.Session, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.logger.Debug().Str("identifier", session.Identifier).Msg("session restored")
	return session, nil
}

func (s *Service) Login(ctx context.Context, identifier, password string) (domain.Session, error) {
	token, err := s.api.Login(ctx, identifier, password)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		Token:      token,
		Identifier: identifier,
		ObtainedAt: s.clock.Now(),
	}

	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.logger.Info().Str("identifier", identifier).Msg("logged in")
	return session, nil
}

// Logout clears the persisted credential and the in-memory session. It is the
// only teardown path and is safe to call when already logged out.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = domain.Session{}
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info().Msg("logged out")
	return nil
}

// expireSession is the uniform 401 rule: the first authorization-rejected
// response forces a logout; later rejections from concurrent in-flight
// requests find the session already gone and do nothing.
func (s *Service) expireSession(ctx context.Context) {
	s.mu.Lock()
	if !s.session.Authenticated() {
		s.mu.Unlock()
		return
	}
	s.session = domain.Session{}
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("clear session after rejection")
	}
	s.logger.Info().Msg("session expired, forced logout")
}

// guard applies the onUnauthorized rule to any fetch or action outcome.
func (s *Service) guard(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		s.expireSession(ctx)
	}
	return err
}

func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	phone, err := domain.NormalizeMSISDN(input.PhoneNumber)
	if err != nil {
		return err
	}

	return s.api.Register(ctx, ports.RegisterRequest{
		Username:    input.Username,
		Email:       input.Email,
		PhoneNumber: phone,
		Password:    input.Password,
	})
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validateInput(resetRequestInput{Email: email}); err != nil {
		return err
	}
	return s.api.RequestPasswordReset(ctx, email)
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if err := validateInput(resetConfirmInput{Token: token, Password: password}); err != nil {
		return err
	}
	return s.api.ConfirmPasswordReset(ctx, token, password)
}

// Subscription fetches the collection and applies the first-entry rule.
func (s *Service) Subscription(ctx context.Context) (domain.Subscription, bool, error) {
	subs, err := s.api.Subscriptions(ctx)
	if err := s.guard(ctx, err); err != nil {
		return domain.Subscription{}, false, err
	}

	sub, ok := domain.CurrentSubscription(subs)
	return sub, ok, nil
}

func (s *Service) Payments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.api.Payments(ctx)
	return payments, s.guard(ctx, err)
}

func (s *Service) CurrentUsage(ctx context.Context) (domain.UsageSnapshot, error) {
	usage, err := s.api.CurrentUsage(ctx)
	return usage, s.guard(ctx, err)
}

func (s *Service) UsageHistory(ctx context.Context) ([]domain.UsageSample, error) {
	samples, err := s.api.UsageHistory(ctx)
	return samples, s.guard(ctx, err)
}

func (s *Service) Plans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.api.Plans(ctx)
	return plans, s.guard(ctx, err)
}

func (s *Service) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.api.Tickets(ctx)
	return tickets, s.guard(ctx, err)
}

// Pay dispatches one push-payment prompt for the current subscription's exact
// price. Both a valid destination number and an existing subscription are
// required before anything goes over the wire.
func (s *Service) Pay(ctx context.Context, phone string) (ports.PaymentReceipt, error) {
	normalized, err := domain.NormalizeMSISDN(phone)
	if err != nil {
		return ports.PaymentReceipt{}, err
	}

	sub, ok, err := s.Subscription(ctx)
	if err != nil {
		return ports.PaymentReceipt{}, err
	}
	if !ok {
		return ports.PaymentReceipt{}, domain.ErrNoSubscription
	}

	receipt, err := s.api.InitiatePayment(ctx, normalized, sub.Price)
	if err := s.guard(ctx, err); err != nil {
		return ports.PaymentReceipt{}, err
	}

	s.logger.Info().Str("phone", normalized).Str("amount", sub.Price.String()).Msg("payment initiated")
	return receipt, nil
}

// ChangePlan only accepts a package id present in the fetched offering list.
func (s *Service) ChangePlan(ctx context.Context, packageID int64) (domain.Plan, error) {
	plans, err := s.Plans(ctx)
	if err != nil {
		return domain.Plan{}, err
	}

	plan, ok := domain.FindPlan(plans, packageID)
	if !ok {
		return domain.Plan{}, fmt.Errorf("unknown package id %d", packageID)
	}

	if err := s.guard(ctx, s.api.ChangePlan(ctx, packageID)); err != nil {
		return domain.Plan{}, err
	}

	s.logger.Info().Int64("package_id", packageID).Str("plan", plan.Name).Msg("plan changed")
	return plan, nil
}

func (s *Service) Renew(ctx context.Context) error {
	_, ok, err := s.Subscription(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoSubscription
	}

	if err := s.guard(ctx, s.api.RenewSubscription(ctx)); err != nil {
		return err
	}

	s.logger.Info().Msg("subscription renewed")
	return nil
}

func (s *Service) OpenTicket(ctx context.Context, input TicketInput) (domain.Ticket, error) {
	if err := validateInput(input); err != nil {
		return domain.Ticket{}, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryOther
	}

	ticket, err := s.api.CreateTicket(ctx, ports.TicketRequest{
		Subject:     input.Subject,
		Category:    category,
		Description: input.Description,
	})
	if err := s.guard(ctx, err); err != nil {
		return domain.Ticket{}, err
	}

	s.logger.Info().Int64("ticket_id", ticket.ID).Msg("ticket opened")
	return ticket, nil
}
