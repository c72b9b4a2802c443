package domain

import "github.com/shopspring/decimal"

// Plan is one of the WiFi package offerings the customer can switch to.
type Plan struct {
	ID               int64
	Name             string
	Price            decimal.Decimal
	DurationDays     int
	MaxDownloadSpeed int
	MaxUploadSpeed   int
	DataCapMB        int64
}

func (p Plan) Unlimited() bool {
	return p.DataCapMB <= 0
}

// FindPlan resolves a plan id against the fetched offering list. Plan-change
// actions only accept ids drawn from that list.
func FindPlan(plans []Plan, id int64) (Plan, bool) {
	for _, plan := range plans {
		if plan.ID == id {
			return plan, true
		}
	}
	return Plan{}, false
}
