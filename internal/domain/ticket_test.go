package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicUpdatesDropsInternalNotes(t *testing.T) {
	t.Parallel()

	ticket := Ticket{
		Updates: []TicketUpdate{
			{Note: "Checked the mast, signal fine", Public: false, Author: "field-team"},
			{Note: "We are looking into it", Public: true, Author: "support"},
			{Note: "Customer owes two invoices", Public: false, Author: "billing"},
			{Note: "Resolved, router rebooted remotely", Public: true, Author: "support"},
		},
	}

	got := ticket.PublicUpdates()
	assert.Len(t, got, 2)
	for _, update := range got {
		assert.True(t, update.Public)
	}
	assert.Equal(t, "We are looking into it", got[0].Note)
	assert.Equal(t, "Resolved, router rebooted remotely", got[1].Note)
}

func TestTicketOpen(t *testing.T) {
	t.Parallel()

	assert.True(t, Ticket{Status: TicketOpen}.Open())
	assert.True(t, Ticket{Status: TicketInProgress}.Open())
	assert.False(t, Ticket{Status: TicketResolved}.Open())
	assert.False(t, Ticket{Status: TicketClosed}.Open())
}

func TestTicketCategoryValid(t *testing.T) {
	t.Parallel()

	for _, category := range []TicketCategory{CategoryInternet, CategoryBilling, CategoryRelocation, CategoryOther} {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, TicketCategory("URGENT").Valid())
	assert.False(t, TicketCategory("").Valid())
}
