package domain

import "time"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

type TicketCategory string

const (
	CategoryInternet   TicketCategory = "INTERNET"
	CategoryBilling    TicketCategory = "BILLING"
	CategoryRelocation TicketCategory = "RELOCATION"
	CategoryOther      TicketCategory = "OTHER"
)

func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryInternet, CategoryBilling, CategoryRelocation, CategoryOther:
		return true
	default:
		return false
	}
}

// TicketUpdate is one progress entry on a ticket. Entries with Public false
// are internal notes and must never be rendered.
type TicketUpdate struct {
	Note      string
	Public    bool
	Author    string
	CreatedAt time.Time
}

type Ticket struct {
	ID            int64
	Subject       string
	Category      TicketCategory
	Description   string
	Priority      string
	Status        TicketStatus
	CreatedAt     time.Time
	AdminResponse string
	Updates       []TicketUpdate
}

func (t Ticket) Open() bool {
	return t.Status == TicketOpen || t.Status == TicketInProgress
}

// PublicUpdates filters out internal-only entries.
func (t Ticket) PublicUpdates() []TicketUpdate {
	updates := make([]TicketUpdate, 0, len(t.Updates))
	for _, update := range t.Updates {
		if update.Public {
			updates = append(updates, update)
		}
	}
	return updates
}
