package repository

import (
    "context"
    "database/sql"

    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/model"
)

// OrderRepo archives order confirmations and serves receipt lookups.
// Money is stored in cents to keep the schema integer-only; decimals
// are reconstructed on read.  All timestamps are stored in UTC.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// cents converts a decimal amount to an integer cent count.
func cents(d decimal.Decimal) int64 { return d.Shift(2).IntPart() }

// fromCents converts a cent count back to a decimal amount.
func fromCents(n int64) decimal.Decimal { return decimal.New(n, -2) }

// Create inserts the confirmation and its tickets atomically.  The
// order number is unique; archiving the same confirmation twice fails
// on the constraint, which is the desired behavior for a receipt.
func (r *OrderRepo) Create(ctx context.Context, oc *model.OrderConfirmation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var promoName sql.NullString
    var promoPercent sql.NullInt64
    if oc.Promotion != nil {
        promoName = sql.NullString{String: oc.Promotion.Name, Valid: true}
        promoPercent = sql.NullInt64{Int64: oc.Promotion.DiscountPercent.IntPart(), Valid: true}
    }
    const insOrder = `INSERT INTO orders
        (order_number, screening_id, movie_title, start_time, auditorium_id,
         first_name, last_name, email, phone_number, total_cents,
         promo_name, promo_discount_percent)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, insOrder,
        oc.OrderNumber, oc.Screening.ID, oc.Screening.MovieTitle,
        oc.Screening.StartTime, oc.Screening.AuditoriumID,
        oc.Customer.FirstName, oc.Customer.LastName, oc.Customer.Email,
        oc.Customer.PhoneNumber, cents(oc.TotalPrice), promoName, promoPercent,
    )
    if err != nil {
        return err
    }
    orderID, err := res.LastInsertId()
    if err != nil {
        return err
    }
    if len(oc.Tickets) > 0 {
        query := `INSERT INTO order_tickets (order_id, ticket_type, row_number, seat_number, price_cents) VALUES `
        args := make([]interface{}, 0, len(oc.Tickets)*5)
        for i, t := range oc.Tickets {
            if i > 0 {
                query += ","
            }
            query += "(?, ?, ?, ?, ?)"
            args = append(args, orderID, t.Type, t.Seat.RowNumber, t.Seat.SeatNumber, cents(t.Price))
        }
        if _, err := tx.ExecContext(ctx, query, args...); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByNumber loads an archived order with its tickets.  Returns
// ErrOrderNotFound when the order number is unknown.
func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*model.OrderConfirmation, error) {
    const sel = `SELECT id, order_number, screening_id, movie_title, start_time, auditorium_id,
        first_name, last_name, email, phone_number, total_cents,
        promo_name, promo_discount_percent
        FROM orders WHERE order_number = ?`
    var (
        id           int64
        oc           model.OrderConfirmation
        totalCents   int64
        promoName    sql.NullString
        promoPercent sql.NullInt64
    )
    err := r.db.QueryRowContext(ctx, sel, orderNumber).Scan(
        &id, &oc.OrderNumber, &oc.Screening.ID, &oc.Screening.MovieTitle,
        &oc.Screening.StartTime, &oc.Screening.AuditoriumID,
        &oc.Customer.FirstName, &oc.Customer.LastName, &oc.Customer.Email,
        &oc.Customer.PhoneNumber, &totalCents, &promoName, &promoPercent,
    )
    if err == sql.ErrNoRows {
        return nil, ErrOrderNotFound
    }
    if err != nil {
        return nil, err
    }
    oc.TotalPrice = fromCents(totalCents)
    if promoName.Valid {
        oc.Promotion = &model.Promotion{
            Name:            promoName.String,
            DiscountPercent: decimal.NewFromInt(promoPercent.Int64),
        }
    }

    const selTickets = `SELECT ticket_type, row_number, seat_number, price_cents
        FROM order_tickets WHERE order_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, selTickets, id)
    if err != nil {
        return nil, err
    }
    defer func() { _ = rows.Close() }()
    for rows.Next() {
        var t model.ConfirmedTicket
        var priceCents int64
        if err := rows.Scan(&t.Type, &t.Seat.RowNumber, &t.Seat.SeatNumber, &priceCents); err != nil {
            return nil, err
        }
        t.Price = fromCents(priceCents)
        oc.Tickets = append(oc.Tickets, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &oc, nil
}
