package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoapp/checkout/internal/model"
)

func TestReconcileFillsDefaults(t *testing.T) {
	s := NewSession()
	s.ToggleSeat("S1-1-5", false)
	s.ToggleSeat("S1-1-6", false)
	require.Empty(t, s.Tickets)

	Reconcile(&s)

	require.Len(t, s.Tickets, 2)
	for i, tk := range s.Tickets {
		assert.Equal(t, model.TicketStandard, tk.Type)
		assert.True(t, tk.UnitPrice.Equal(decimal.New(3000, -2)))
		assert.Equal(t, i, tk.Position)
		assert.Equal(t, s.Seats[i], tk.SeatID)
	}
}

func TestReconcileAfterDeselect(t *testing.T) {
	s := NewSession()
	s.ToggleSeat("S1-1-5", false)
	s.ToggleSeat("S1-1-6", false)
	Reconcile(&s)
	require.Len(t, s.Tickets, 2)

	// Deselecting clears every ticket before the refill runs.
	s.ToggleSeat("S1-1-6", false)
	require.Empty(t, s.Tickets)

	Reconcile(&s)
	require.Len(t, s.Tickets, 1)
	assert.Equal(t, model.SeatID("S1-1-5"), s.Tickets[0].SeatID)
	assert.Equal(t, model.TicketStandard, s.Tickets[0].Type)
}

func TestReconcileIsIdempotent(t *testing.T) {
	s := NewSession()
	s.ToggleSeat("S1-1-5", false)
	Reconcile(&s)
	before := make([]model.Ticket, len(s.Tickets))
	copy(before, s.Tickets)

	Reconcile(&s)
	assert.Equal(t, before, s.Tickets)
}

func TestReconcileKeepsExplicitAssignments(t *testing.T) {
	s := NewSession()
	s.ToggleSeat("S1-1-5", false)
	Reconcile(&s)
	reduced, _ := PriceOf(model.TicketReduced)
	s.AssignTicket(model.TicketReduced, "S1-1-5", 0, reduced)

	snapshot := make([]model.Ticket, len(s.Tickets))
	copy(snapshot, s.Tickets)

	Reconcile(&s)
	assert.Equal(t, snapshot, s.Tickets, "an assigned seat must not be overwritten")
}

func TestReconcileEmptySelectionIsNoOp(t *testing.T) {
	s := NewSession()
	Reconcile(&s)
	assert.Empty(t, s.Tickets)
}

// After any sequence of toggles and assignments, reconciliation must
// leave the ticket seat set equal to the selected seat set.
func TestSeatTicketInvariant(t *testing.T) {
	s := NewSession()
	reduced, _ := PriceOf(model.TicketReduced)

	steps := []func(){
		func() { s.ToggleSeat("S1-1-5", false) },
		func() { s.ToggleSeat("S1-1-6", false) },
		func() { s.AssignTicket(model.TicketReduced, "S1-1-5", 0, reduced) },
		func() { s.ToggleSeat("S1-2-3", false) },
		func() { s.ToggleSeat("S1-1-6", false) }, // deselect
		func() { s.AssignTicket("", "S1-2-3", 0, decimal.Zero) },
		func() { s.ToggleSeat("S1-3-1", true) }, // reserved, no-op
	}
	for _, step := range steps {
		step()
		Reconcile(&s)

		seats := map[model.SeatID]bool{}
		for _, seat := range s.Seats {
			seats[seat] = true
		}
		ticketSeats := map[model.SeatID]bool{}
		for _, tk := range s.Tickets {
			ticketSeats[tk.SeatID] = true
		}
		assert.Equal(t, seats, ticketSeats)
		assert.Len(t, s.Tickets, len(s.Seats), "exactly one ticket per seat")
	}
}
