// Package checkout implements the booking session state machine: seat
// selection, ticket assignment and the data collected on the way to a
// purchase.  The session is a plain value; persistence lives in the
// store package and network calls in the upstream package.
package checkout

import (
    "time"

    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/model"
)

// Step is the current stage of the checkout flow.  Navigation is
// normally forward but a step can be re-entered by direct assignment;
// gating is advisory and enforced by the caller (see CanProceed*).
type Step int

const (
    StepSeatSelection   Step = 1
    StepTicketSelection Step = 2
    StepSummary         Step = 3
)

// Valid reports whether s is one of the three checkout stages.
func (s Step) Valid() bool {
    return s >= StepSeatSelection && s <= StepSummary
}

// SessionTTL is how long a booking session stays valid after
// startCheckout.  Expiry is advisory except at purchase submission,
// which rejects expired sessions.
const SessionTTL = 15 * time.Minute

// Session is the in-progress booking: the screening it was started
// from, the selected seats, their ticket assignments, the customer's
// contact details and the chosen payment method.  It is persisted on
// every mutation and rehydrated on load, so a reload resumes the flow
// at the same step with the same selections.
type Session struct {
    Step          Step                     `json:"step"`
    Showtime      model.ShowtimeContext    `json:"showtime"`
    Seats         []model.SeatID           `json:"seats"`
    Tickets       []model.Ticket           `json:"tickets"`
    Customer      model.Customer           `json:"customer"`
    PaymentMethod model.PaymentMethod      `json:"payment_method,omitempty"`
    ExpiresAt     time.Time                `json:"expires_at"`
    Promotion     *model.PromotionPreview  `json:"promotion_preview,omitempty"`
    Confirmation  *model.OrderConfirmation `json:"order_confirmation,omitempty"`
}

// NewSession returns an empty session at the seat-selection step.
func NewSession() Session {
    return Session{Step: StepSeatSelection}
}

// Start begins a fresh checkout for the given screening.  All prior
// selections are discarded, the step returns to seat selection and the
// expiry clock starts.  When a profile is available its contact
// details seed the customer form.
func (s *Session) Start(show model.ShowtimeContext, profile *model.Customer, now time.Time) {
    *s = NewSession()
    s.Showtime = show
    s.ExpiresAt = now.Add(SessionTTL)
    if profile != nil {
        s.Customer = *profile
    }
}

// SetStep moves the flow to the given stage unconditionally.  The
// caller is responsible for not offering the move while its
// prerequisites are unmet.
func (s *Session) SetStep(step Step) {
    s.Step = step
}

// ToggleSeat flips membership of the seat in the selection.  Reserved
// seats are a no-op.  Any change to the seat set clears every ticket
// assignment: rather than patching assignments incrementally, the
// whole list is re-derived by Reconcile afterwards.
func (s *Session) ToggleSeat(id model.SeatID, reserved bool) {
    if reserved {
        return
    }
    before := len(s.Seats)
    kept := make([]model.SeatID, 0, before+1)
    found := false
    for _, seat := range s.Seats {
        if seat == id {
            found = true
            continue
        }
        kept = append(kept, seat)
    }
    if !found {
        kept = append(kept, id)
    }
    s.Seats = kept
    if len(s.Seats) != before {
        s.Tickets = nil
    }
}

// AssignTicket sets the price category for one seat.  An empty
// category removes the seat's ticket.  An existing ticket is replaced
// in place, keeping its position in the sequence; otherwise a new
// ticket is appended.
func (s *Session) AssignTicket(t model.TicketType, seat model.SeatID, position int, unitPrice decimal.Decimal) {
    if t == "" {
        kept := s.Tickets[:0]
        for _, tk := range s.Tickets {
            if tk.SeatID != seat {
                kept = append(kept, tk)
            }
        }
        s.Tickets = kept
        return
    }
    next := model.Ticket{Position: position, SeatID: seat, Type: t, UnitPrice: unitPrice}
    for i, tk := range s.Tickets {
        if tk.SeatID == seat {
            next.Position = tk.Position
            s.Tickets[i] = next
            return
        }
    }
    s.Tickets = append(s.Tickets, next)
}

// SetCustomer shallow-merges the update into the customer details.
func (s *Session) SetCustomer(upd model.CustomerUpdate) {
    s.Customer = s.Customer.Merge(upd)
}

// SetPaymentMethod records the chosen payment option.
func (s *Session) SetPaymentMethod(m model.PaymentMethod) {
    s.PaymentMethod = m
}

// SetPromotionPreview caches the latest backend discount preview (nil
// clears it).  The cached preview is attached to the confirmation when
// the purchase succeeds.
func (s *Session) SetPromotionPreview(p *model.PromotionPreview) {
    s.Promotion = p
}

// SetOrderConfirmation freezes the session into a receipt.  This is
// the only mutation permitted after a successful purchase.
func (s *Session) SetOrderConfirmation(oc *model.OrderConfirmation) {
    s.Confirmation = oc
}

// Reset restores the initial empty session.
func (s *Session) Reset() {
    *s = NewSession()
}

// Expired reports whether the session's advisory expiry has passed.
// Sessions that never started a checkout (zero ExpiresAt) never
// expire.
func (s *Session) Expired(now time.Time) bool {
    return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// HasTicketFor reports whether a ticket is assigned to the seat.
func (s *Session) HasTicketFor(seat model.SeatID) bool {
    for _, tk := range s.Tickets {
        if tk.SeatID == seat {
            return true
        }
    }
    return false
}

// CanProceedToTickets gates leaving the seat-selection step.
func (s *Session) CanProceedToTickets() bool {
    return len(s.Seats) > 0
}

// CanProceedToSummary gates leaving the ticket-selection step: every
// selected seat must carry exactly one ticket.
func (s *Session) CanProceedToSummary() bool {
    return len(s.Tickets) == len(s.Seats)
}
