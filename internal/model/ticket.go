package model

import "github.com/shopspring/decimal"

// TicketType is the price category of a ticket.  The catalog is a
// fixed pair of categories mirrored from the ticketing backend.
type TicketType string

const (
    // TicketReduced is the discounted category ("ulgowy").
    TicketReduced TicketType = "ulgowy"
    // TicketStandard is the full-price category ("normalny") and the
    // default assigned to newly selected seats.
    TicketStandard TicketType = "normalny"
)

// Valid reports whether t is one of the catalog categories.
func (t TicketType) Valid() bool {
    return t == TicketReduced || t == TicketStandard
}

// WireID returns the numeric identifier the backend uses for the
// category: 1 for "normalny", 2 for "ulgowy", 0 for anything else.
func (t TicketType) WireID() int {
    switch t {
    case TicketStandard:
        return 1
    case TicketReduced:
        return 2
    default:
        return 0
    }
}

// Ticket assigns a price category to one selected seat.  Tickets form
// an ordered sequence; Position records where the ticket sits in that
// sequence and is preserved when the category is reassigned.
//
// Fields:
//  Position  – index of the ticket in the booking sequence.
//  SeatID    – identifier of the seat this ticket covers.
//  Type      – price category.
//  UnitPrice – catalog price at assignment time.
type Ticket struct {
    Position  int             `json:"id"`
    SeatID    SeatID          `json:"seat"`
    Type      TicketType      `json:"ticket_type"`
    UnitPrice decimal.Decimal `json:"price"`
}

// PaymentMethod is the closed set of payment options offered at the
// summary step.
type PaymentMethod string

const (
    PaymentBlik         PaymentMethod = "blik"
    PaymentCard         PaymentMethod = "card"
    PaymentBankTransfer PaymentMethod = "bank-transfer"
)

// Valid reports whether m is one of the offered payment methods.
func (m PaymentMethod) Valid() bool {
    switch m {
    case PaymentBlik, PaymentCard, PaymentBankTransfer:
        return true
    }
    return false
}
