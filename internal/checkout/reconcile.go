package checkout

import "github.com/kinoapp/checkout/internal/model"

// Reconcile brings the ticket list back in sync with the seat
// selection: every seat without a ticket gets the standard category at
// its catalog price, positioned by the seat's index in the selection.
// It runs after every seat or ticket mutation and is idempotent: once
// every seat has a ticket it performs no further writes.
func Reconcile(s *Session) {
    if len(s.Seats) == 0 {
        return
    }
    price, _ := PriceOf(model.TicketStandard)
    for i, seat := range s.Seats {
        if s.HasTicketFor(seat) {
            continue
        }
        s.AssignTicket(model.TicketStandard, seat, i, price)
    }
}
