package handler

import (
    "errors"
    "fmt"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/checkout"
    "github.com/kinoapp/checkout/internal/middleware"
    "github.com/kinoapp/checkout/internal/model"
    "github.com/kinoapp/checkout/internal/monitoring"
    "github.com/kinoapp/checkout/internal/queue"
    queue_publisher "github.com/kinoapp/checkout/internal/service"
    "github.com/kinoapp/checkout/internal/upstream"
)

// User-facing messages shown by the summary step.  The wording is part
// of the product and must not drift from the web client's.
const (
    msgMissingFields   = "Uzupełnij wszystkie wymagane pola i wybierz metodę płatności."
    msgPurchaseFailed  = "Błąd podczas zakupu biletów"
    msgPromotionFailed = "Błąd przy sprawdzaniu promocji"
    msgSessionExpired  = "Sesja rezerwacji wygasła."
)

// submitLockTTL bounds how long a crashed submission blocks retries
// for the same session.
const submitLockTTL = 30 * time.Second

// Promotion handles GET /v1/checkout/promotion.  It asks the backend
// for a discounted total for the current screening, first ticket's
// category and selected seats.  When the preconditions are unmet or
// the backend fails, the response falls back to the undiscounted sum
// of unit prices plus the service fee, and any cached preview is
// cleared so a later purchase does not attach a stale promotion.
func (h *CheckoutHandler) Promotion(c echo.Context) error {
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    fallback := checkout.UndiscountedTotal(sess.Tickets)

    if sess.Showtime.ScreeningID == 0 || len(sess.Tickets) == 0 || len(sess.Seats) == 0 {
        monitoring.PromotionPreview("skipped")
        return h.promotionFallback(c, sess, fallback, "")
    }
    refs := make([]model.SeatRef, 0, len(sess.Seats))
    for _, seat := range sess.Seats {
        ref, err := seat.Ref()
        if err != nil {
            monitoring.PromotionPreview("error")
            return h.promotionFallback(c, sess, fallback, msgPromotionFailed)
        }
        refs = append(refs, ref)
    }
    preview, err := h.Upstream.CheckPromotion(c.Request().Context(), upstream.PromotionCheckRequest{
        ScreeningID:  sess.Showtime.ScreeningID,
        TicketTypeID: sess.Tickets[0].Type.WireID(),
        SeatIDs:      refs,
    })
    if err != nil {
        monitoring.PromotionPreview("error")
        return h.promotionFallback(c, sess, fallback, msgPromotionFailed)
    }

    sess.SetPromotionPreview(preview)
    if !h.save(c, sess) {
        return nil
    }
    if preview.Promotion != nil {
        monitoring.PromotionPreview("applied")
    } else {
        monitoring.PromotionPreview("none")
    }
    return c.JSON(http.StatusOK, echo.Map{
        "total":     preview.FinalPrice.StringFixed(2),
        "promotion": preview.Promotion,
    })
}

// promotionFallback clears the cached preview and answers with the
// undiscounted total.  The message, when non-empty, tells the summary
// view why no discount is shown.
func (h *CheckoutHandler) promotionFallback(c echo.Context, sess checkout.Session, total decimal.Decimal, message string) error {
    sess.SetPromotionPreview(nil)
    if !h.save(c, sess) {
        return nil
    }
    body := echo.Map{
        "total":     total.StringFixed(2),
        "promotion": nil,
    }
    if message != "" {
        body["error"] = message
    }
    return c.JSON(http.StatusOK, body)
}

// Submit handles POST /v1/checkout/submit: the purchase orchestration.
// Pre-flight validation happens before any network call; the per
// session submit lock keeps a double click from producing two in
// flight purchases.  On any failure the session survives untouched so
// the customer can correct and resubmit.
func (h *CheckoutHandler) Submit(c echo.Context) error {
    key := middleware.SessionKey(c)
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    if !sess.Customer.Complete() || !sess.PaymentMethod.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msgMissingFields})
    }
    if sess.Expired(time.Now().UTC()) {
        return c.JSON(http.StatusConflict, echo.Map{"error": msgSessionExpired})
    }

    tickets := make([]upstream.PurchaseTicket, 0, len(sess.Tickets))
    for _, t := range sess.Tickets {
        ref, err := t.SeatID.Ref()
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid seat identifier in session"})
        }
        tickets = append(tickets, upstream.PurchaseTicket{
            TicketTypeID: t.Type.WireID(),
            Seats:        []model.SeatRef{ref},
            FirstName:    sess.Customer.FirstName,
            LastName:     sess.Customer.LastName,
            Email:        sess.Customer.Email,
            PhoneNumber:  sess.Customer.PhoneNumber,
        })
    }

    ctx := c.Request().Context()
    locked, err := h.Store.AcquireSubmitLock(ctx, key, submitLockTTL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start purchase"})
    }
    if !locked {
        return c.JSON(http.StatusConflict, echo.Map{"error": "purchase already in progress"})
    }
    defer func() {
        if err := h.Store.ReleaseSubmitLock(ctx, key); err != nil {
            log.Printf("submit: release lock for %q failed: %v", key, err)
        }
    }()

    resp, err := h.Upstream.Purchase(ctx, upstream.PurchaseRequest{
        ScreeningID: sess.Showtime.ScreeningID,
        Tickets:     tickets,
    }, middleware.AccessToken(c))
    if err != nil {
        var perr *upstream.PurchaseError
        if errors.As(err, &perr) && len(perr.FieldMessages) > 0 {
            monitoring.PurchaseResult(monitoring.PurchaseRejected)
            return c.JSON(http.StatusBadRequest, echo.Map{"error": strings.Join(perr.FieldMessages, " | ")})
        }
        monitoring.PurchaseResult(monitoring.PurchaseFailed)
        return c.JSON(http.StatusBadGateway, echo.Map{"error": msgPurchaseFailed})
    }

    oc := confirmationFrom(resp, sess.Promotion)
    sess.SetOrderConfirmation(oc)
    if !h.save(c, sess) {
        return nil
    }

    // Receipt archiving and event publication are best-effort: the
    // purchase already went through and must be reported as such.
    if h.Orders != nil {
        if err := h.Orders.Create(ctx, oc); err != nil {
            log.Printf("submit: archive order %s failed: %v", oc.OrderNumber, err)
        }
    }
    if err := queue_publisher.PublishOrderConfirmed(ctx, h.RabbitURL, orderEvent(oc)); err != nil {
        log.Printf("submit: publish order %s failed: %v", oc.OrderNumber, err)
    }
    monitoring.PurchaseResult(monitoring.PurchaseConfirmed)
    return c.JSON(http.StatusCreated, echo.Map{"order": oc})
}

// confirmationFrom maps the backend's purchase echo into the stored
// receipt, attaching the promotion from the latest preview.
func confirmationFrom(resp *upstream.PurchaseResponse, preview *model.PromotionPreview) *model.OrderConfirmation {
    oc := &model.OrderConfirmation{
        OrderNumber: resp.OrderNumber,
        TotalPrice:  resp.TotalPrice,
        Customer: model.Customer{
            FirstName:   resp.Customer.FirstName,
            LastName:    resp.Customer.LastName,
            Email:       resp.Customer.Email,
            PhoneNumber: resp.Customer.Phone,
        },
    }
    if preview != nil {
        oc.Promotion = preview.Promotion
    }
    if len(resp.Tickets) > 0 {
        s := resp.Tickets[0].Screening
        oc.Screening = model.ScreeningInfo{
            ID:           s.ID,
            MovieTitle:   s.Movie,
            StartTime:    s.StartTime,
            AuditoriumID: s.AuditoriumID,
        }
    }
    for _, t := range resp.Tickets {
        oc.Tickets = append(oc.Tickets, model.ConfirmedTicket{
            Type:  t.TicketType,
            Seat:  t.Seat,
            Price: t.Price,
        })
    }
    return oc
}

// orderEvent builds the broker payload for a confirmed order.
func orderEvent(oc *model.OrderConfirmation) queue.OrderConfirmedEvent {
    labels := make([]string, 0, len(oc.Tickets))
    for _, t := range oc.Tickets {
        labels = append(labels, fmt.Sprintf("R%dS%d", t.Seat.RowNumber, t.Seat.SeatNumber))
    }
    ev := queue.OrderConfirmedEvent{
        OrderNumber:   oc.OrderNumber,
        ScreeningID:   oc.Screening.ID,
        MovieTitle:    oc.Screening.MovieTitle,
        StartTime:     oc.Screening.StartTime,
        AuditoriumID:  oc.Screening.AuditoriumID,
        SeatLabels:    labels,
        TicketCount:   len(oc.Tickets),
        TotalPrice:    oc.TotalPrice.StringFixed(2),
        CustomerEmail: oc.Customer.Email,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    }
    if oc.Promotion != nil {
        ev.PromotionName = oc.Promotion.Name
    }
    return ev
}
