package model

import "github.com/shopspring/decimal"

// Promotion describes a discount rule applied by the backend, e.g.
// "Wtorek -10%".  DiscountPercent is the percentage taken off the
// undiscounted total.
type Promotion struct {
    Name            string          `json:"name"`
    DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// PromotionPreview is the non-binding discounted total computed by the
// backend for the current screening, ticket category and seat set.
// Promotion is nil when no rule matched; FinalPrice then equals the
// undiscounted total.
type PromotionPreview struct {
    FinalPrice decimal.Decimal `json:"final_price"`
    Promotion  *Promotion      `json:"promotion"`
}
