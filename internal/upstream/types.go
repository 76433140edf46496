package upstream

import (
    "fmt"
    "strings"

    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/model"
)

// PromotionCheckRequest is the payload of POST /tickets/check-promotion/.
// TicketTypeID is the numeric category id (1 = "normalny", 2 = "ulgowy").
type PromotionCheckRequest struct {
    ScreeningID  uint64          `json:"screening_id"`
    TicketTypeID int             `json:"ticket_type_id"`
    SeatIDs      []model.SeatRef `json:"seat_ids"`
}

// PurchaseTicket is one line of a purchase request.  The backend wants
// every line self-describing, so the customer contact fields are
// duplicated onto each ticket.
type PurchaseTicket struct {
    TicketTypeID int             `json:"ticket_type_id"`
    Seats        []model.SeatRef `json:"seats"`
    FirstName    string          `json:"first_name"`
    LastName     string          `json:"last_name"`
    Email        string          `json:"email"`
    PhoneNumber  string          `json:"phone_number"`
}

// PurchaseRequest is the payload of POST /tickets/purchase/.
type PurchaseRequest struct {
    ScreeningID uint64           `json:"screening_id"`
    Tickets     []PurchaseTicket `json:"tickets"`
}

// PurchaseScreening is the screening echo on each confirmed ticket.
type PurchaseScreening struct {
    ID           uint64 `json:"id"`
    Movie        string `json:"movie"`
    StartTime    string `json:"start_time"`
    AuditoriumID uint64 `json:"auditorium_id"`
}

// PurchasedTicket is one confirmed ticket in the purchase response.
type PurchasedTicket struct {
    Screening  PurchaseScreening `json:"screening"`
    Seat       model.SeatRef     `json:"seat"`
    TicketType string            `json:"ticket_type"`
    Price      decimal.Decimal   `json:"price"`
}

// PurchaseCustomer is the customer echo in the purchase response.
// Note the backend shortens phone_number to phone here.
type PurchaseCustomer struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Email     string `json:"email"`
    Phone     string `json:"phone"`
}

// PurchaseResponse is the HTTP 201 body of a successful purchase: the
// authoritative order echo used to build the receipt.
type PurchaseResponse struct {
    TotalPrice  decimal.Decimal   `json:"total_price"`
    OrderNumber string            `json:"order_number"`
    Customer    PurchaseCustomer  `json:"customer_info"`
    Tickets     []PurchasedTicket `json:"tickets"`
}

// PurchaseError is returned when the purchase endpoint answers with a
// non-201 status.  FieldMessages carries the backend's per-ticket
// validation messages (invalid email/phone on specific lines) when the
// response body had that structure; it is empty for opaque failures.
type PurchaseError struct {
    StatusCode    int
    FieldMessages []string
}

func (e *PurchaseError) Error() string {
    if len(e.FieldMessages) > 0 {
        return fmt.Sprintf("purchase rejected (%d): %s", e.StatusCode, strings.Join(e.FieldMessages, " | "))
    }
    return fmt.Sprintf("purchase failed with status %d", e.StatusCode)
}
