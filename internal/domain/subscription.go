package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID            int64
	PackageID     int64
	PackageName   string
	SpeedMbps     int
	Price         decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
	DaysRemaining int
}

// CurrentSubscription picks the subscription treated as current: the first
// element of the fetched collection, even when the backend returns several.
func CurrentSubscription(subs []Subscription) (Subscription, bool) {
	if len(subs) == 0 {
		return Subscription{}, false
	}
	return subs[0], true
}

// DaysLeft prefers the backend-computed value and falls back to deriving it
// from the end date.
func (s Subscription) DaysLeft(now time.Time) int {
	if s.DaysRemaining > 0 {
		return s.DaysRemaining
	}
	if s.EndDate.IsZero() || !s.EndDate.After(now) {
		return 0
	}
	return int(s.EndDate.Sub(now).Hours() / 24)
}
