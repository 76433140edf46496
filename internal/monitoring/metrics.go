package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_started_total",
			Help: "Booking sessions started",
		},
	)

	purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Purchase submissions by outcome",
		},
		[]string{"outcome"},
	)

	promotionPreviews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promotion_previews_total",
			Help: "Promotion preview requests by status",
		},
		[]string{"status"},
	)

	seatMapFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seat_map_fetches_total",
			Help: "Seat map fetches by status",
		},
		[]string{"status"},
	)
)

// Purchase outcomes.
const (
	PurchaseConfirmed = "confirmed"
	PurchaseRejected  = "rejected" // backend validation failure
	PurchaseFailed    = "failed"   // network or opaque failure
)

// CheckoutStarted counts a new booking session.
func CheckoutStarted() { checkoutsStarted.Inc() }

// PurchaseResult counts a purchase submission outcome.
func PurchaseResult(outcome string) { purchases.WithLabelValues(outcome).Inc() }

// PromotionPreview counts a preview attempt: "applied", "none",
// "skipped" (preconditions unmet) or "error".
func PromotionPreview(status string) { promotionPreviews.WithLabelValues(status).Inc() }

// SeatMapFetch counts a seat map fetch: "ok" or "error".
func SeatMapFetch(status string) { seatMapFetches.WithLabelValues(status).Inc() }
