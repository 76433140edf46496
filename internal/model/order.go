package model

import "github.com/shopspring/decimal"

// ScreeningInfo is the screening summary echoed back by the purchase
// endpoint on a confirmed order.
type ScreeningInfo struct {
    ID           uint64 `json:"id"`
    MovieTitle   string `json:"movie_title"`
    StartTime    string `json:"movie_start_time"`
    AuditoriumID uint64 `json:"auditorium"`
}

// ConfirmedTicket is one purchased ticket as confirmed by the backend.
// Unlike the working Ticket it carries the authoritative price and the
// seat by position rather than by identifier.
type ConfirmedTicket struct {
    Type  string          `json:"ticket_type"`
    Seat  SeatRef         `json:"seat"`
    Price decimal.Decimal `json:"price"`
}

// OrderConfirmation is the server-authoritative receipt stored after a
// successful purchase.  Everything else in the booking session is
// working state; this is the durable record.
//
// Fields:
//  OrderNumber – backend order number, the lookup key for receipts.
//  TotalPrice  – authoritative total charged.
//  Customer    – contact details as accepted by the backend.
//  Screening   – screening the tickets are for.
//  Tickets     – confirmed tickets with seats and prices.
//  Promotion   – promotion applied at purchase time, if any.
type OrderConfirmation struct {
    OrderNumber string            `json:"order_number"`
    TotalPrice  decimal.Decimal   `json:"total_price"`
    Customer    Customer          `json:"customer"`
    Screening   ScreeningInfo     `json:"screening_info"`
    Tickets     []ConfirmedTicket `json:"tickets"`
    Promotion   *Promotion        `json:"promotion,omitempty"`
}
