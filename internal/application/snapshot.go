package application

import "github.com/nyumbanet/portal-cli/internal/domain"

// Snapshot is the explicit, serializable view of everything the client holds
// in memory: the credential plus the last successful fetch of each remote
// collection. Every fetch replaces its field wholesale; nothing is merged.
type Snapshot struct {
	Session      domain.Session
	Subscription *domain.Subscription
	Usage        *domain.UsageSnapshot
	UsageHistory []domain.UsageSample
	Payments     []domain.Payment
	Plans        []domain.Plan
	Tickets      []domain.Ticket
}

// Reset drops all resource state and the credential. This is the single
// teardown path used by logout and forced expiry.
func (s *Snapshot) Reset() {
	*s = Snapshot{}
}

// HasPlan reports whether a current subscription is present. The dashboard
// renders a distinct "No Plan" state and disables paying when it is not.
func (s Snapshot) HasPlan() bool {
	return s.Subscription != nil
}
