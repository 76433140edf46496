package checkout

import (
    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/model"
)

// The ticket price catalog is a client-known constant mirrored from
// the ticketing backend, which re-validates prices at purchase time.
// Amounts are in złoty.
var prices = map[model.TicketType]decimal.Decimal{
    model.TicketReduced:  decimal.New(2000, -2), // 20.00
    model.TicketStandard: decimal.New(3000, -2), // 30.00
}

// ServiceFee is added to every undiscounted total.  Currently zero but
// kept explicit so the summary math matches the backend's.
var ServiceFee = decimal.Zero

// PriceOf returns the catalog price for a ticket category.  The second
// return value is false for categories outside the catalog.
func PriceOf(t model.TicketType) (decimal.Decimal, bool) {
    p, ok := prices[t]
    return p, ok
}

// UndiscountedTotal sums the unit prices of the given tickets and adds
// the service fee.  This is the fallback total shown whenever no
// promotion preview is available.
func UndiscountedTotal(tickets []model.Ticket) decimal.Decimal {
    total := decimal.Zero
    for _, t := range tickets {
        total = total.Add(t.UnitPrice)
    }
    return total.Add(ServiceFee)
}
