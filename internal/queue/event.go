// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published when a purchase completes.  It
// contains enough information for downstream consumers (e-mail
// receipts, analytics) to act without querying the archive.
type OrderConfirmedEvent struct {
    OrderNumber     string   `json:"order_number"`
    ScreeningID     uint64   `json:"screening_id"`
    MovieTitle      string   `json:"movie_title"`
    StartTime       string   `json:"start_time"`
    AuditoriumID    uint64   `json:"auditorium_id"`
    SeatLabels      []string `json:"seats"`
    TicketCount     int      `json:"ticket_count"`
    TotalPrice      string   `json:"total_price"`
    PromotionName   string   `json:"promotion_name,omitempty"`
    CustomerEmail   string   `json:"customer_email"`
    ConfirmedAt     string   `json:"confirmed_at"`
}
