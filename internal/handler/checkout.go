package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/kinoapp/checkout/internal/checkout"
    "github.com/kinoapp/checkout/internal/middleware"
    "github.com/kinoapp/checkout/internal/model"
    "github.com/kinoapp/checkout/internal/monitoring"
    "github.com/kinoapp/checkout/internal/repository"
    "github.com/kinoapp/checkout/internal/store"
    "github.com/kinoapp/checkout/internal/upstream"
)

// SessionStore is the slice of the session store the handlers need.
// *store.SessionStore satisfies it; tests substitute an in-memory
// implementation.
type SessionStore interface {
    Load(ctx context.Context, key string) (checkout.Session, error)
    Save(ctx context.Context, key string, sess checkout.Session) error
    AcquireSubmitLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
    ReleaseSubmitLock(ctx context.Context, key string) error
}

// CheckoutHandler drives the booking flow: it rehydrates the caller's
// session from the store, applies the requested mutation, runs ticket
// reconciliation where the flow demands it and persists the result.
// Every response carries the updated session plus the advisory gating
// flags the step buttons are driven by.
type CheckoutHandler struct {
    Store     SessionStore     // persisted booking sessions
    Upstream  *upstream.Client // ticketing backend API
    Orders    *repository.OrderRepo
    RabbitURL string // broker for order events; empty disables publishing
}

// NewCheckoutHandler constructs a CheckoutHandler.  Store and Upstream
// must be non-nil; Orders may be nil when no archive database is
// configured.
func NewCheckoutHandler(st SessionStore, up *upstream.Client, orders *repository.OrderRepo, rabbitURL string) *CheckoutHandler {
    if st == nil || up == nil {
        panic("nil dependency passed to NewCheckoutHandler")
    }
    return &CheckoutHandler{Store: st, Upstream: up, Orders: orders, RabbitURL: rabbitURL}
}

// sessionView is the standard response body for session-returning
// endpoints.
func sessionView(s checkout.Session) echo.Map {
    return echo.Map{
        "session":                s,
        "can_proceed_to_tickets": s.CanProceedToTickets(),
        "can_proceed_to_summary": s.CanProceedToSummary(),
    }
}

// load fetches the caller's session, writing the error response itself
// when the session is missing or unreadable.  The bool reports whether
// the caller may proceed.
func (h *CheckoutHandler) load(c echo.Context) (checkout.Session, bool) {
    sess, err := h.Store.Load(c.Request().Context(), middleware.SessionKey(c))
    if err != nil {
        if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrUnsupportedVersion) {
            _ = c.JSON(http.StatusNotFound, echo.Map{"error": "checkout session not found"})
        } else {
            _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load session"})
        }
        return checkout.Session{}, false
    }
    return sess, true
}

// save persists the session, writing the error response on failure.
func (h *CheckoutHandler) save(c echo.Context, sess checkout.Session) bool {
    if err := h.Store.Save(c.Request().Context(), middleware.SessionKey(c), sess); err != nil {
        _ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to persist session"})
        return false
    }
    return true
}

// confirmed guards mutating endpoints: once a purchase succeeded the
// session is frozen into a receipt and only a new startCheckout may
// replace it.
func confirmed(c echo.Context, sess checkout.Session) bool {
    if sess.Confirmation != nil {
        _ = c.JSON(http.StatusConflict, echo.Map{"error": "order already confirmed"})
        return true
    }
    return false
}

// Start handles POST /v1/checkout/start.  It discards any previous
// session under the key and begins a fresh checkout for the screening
// in the body.  When the caller sent a bearer token with profile
// claims, the customer form is prefilled from it.
func (h *CheckoutHandler) Start(c echo.Context) error {
    var show model.ShowtimeContext
    if err := c.Bind(&show); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if show.ScreeningID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_id is required"})
    }
    sess := checkout.NewSession()
    sess.Start(show, middleware.Profile(c), time.Now().UTC())
    if !h.save(c, sess) {
        return nil
    }
    monitoring.CheckoutStarted()
    return c.JSON(http.StatusCreated, sessionView(sess))
}

// State handles GET /v1/checkout.  It returns the rehydrated session
// so a reloaded client resumes at the same step with the same
// selections.
func (h *CheckoutHandler) State(c echo.Context) error {
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// SetStep handles POST /v1/checkout/step.  The step changes
// unconditionally; prerequisites are advisory and surfaced through the
// can_proceed flags, mirroring how the step buttons disable
// themselves.
func (h *CheckoutHandler) SetStep(c echo.Context) error {
    var body struct {
        Step int `json:"step"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    step := checkout.Step(body.Step)
    if !step.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid step"})
    }
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    sess.SetStep(step)
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// ToggleSeat handles POST /v1/checkout/seats/toggle.  Toggling any
// seat clears every ticket assignment; reconciliation immediately
// refills defaults so the ticket list tracks the seat list.
func (h *CheckoutHandler) ToggleSeat(c echo.Context) error {
    var body struct {
        SeatID   model.SeatID `json:"seat_id"`
        Reserved bool         `json:"reserved"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.SeatID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
    }
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    sess.ToggleSeat(body.SeatID, body.Reserved)
    checkout.Reconcile(&sess)
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// AssignTicket handles POST /v1/checkout/tickets.  The unit price is
// resolved from the catalog, never taken from the caller.  An empty
// ticket_type removes the seat's ticket; reconciliation then refills
// the default, so removal is a reset-to-default.
func (h *CheckoutHandler) AssignTicket(c echo.Context) error {
    var body struct {
        TicketType model.TicketType `json:"ticket_type"`
        SeatID     model.SeatID     `json:"seat_id"`
        Position   int              `json:"position"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.SeatID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
    }
    var price decimal.Decimal // stays zero for removals
    if body.TicketType != "" {
        var ok bool
        price, ok = checkout.PriceOf(body.TicketType)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown ticket type"})
        }
    }
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    selected := false
    for _, seat := range sess.Seats {
        if seat == body.SeatID {
            selected = true
            break
        }
    }
    if !selected {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat is not selected"})
    }
    sess.AssignTicket(body.TicketType, body.SeatID, body.Position, price)
    checkout.Reconcile(&sess)
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// SetCustomer handles PATCH /v1/checkout/customer with a partial
// customer body; only the fields present are merged.
func (h *CheckoutHandler) SetCustomer(c echo.Context) error {
    var upd model.CustomerUpdate
    if err := c.Bind(&upd); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    sess.SetCustomer(upd)
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// SetPaymentMethod handles POST /v1/checkout/payment-method.
func (h *CheckoutHandler) SetPaymentMethod(c echo.Context) error {
    var body struct {
        PaymentMethod model.PaymentMethod `json:"payment_method"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if !body.PaymentMethod.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment method"})
    }
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if confirmed(c, sess) {
        return nil
    }
    sess.SetPaymentMethod(body.PaymentMethod)
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// Reset handles POST /v1/checkout/reset.  The session returns to the
// initial empty state; the blob stays in place so the key keeps
// working.
func (h *CheckoutHandler) Reset(c echo.Context) error {
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    sess.Reset()
    if !h.save(c, sess) {
        return nil
    }
    return c.JSON(http.StatusOK, sessionView(sess))
}

// SeatMap handles GET /v1/checkout/seat-map.  It proxies the seat
// availability snapshot for the session's screening.  Failures are
// surfaced as 502; the client decides when to retry.
func (h *CheckoutHandler) SeatMap(c echo.Context) error {
    sess, ok := h.load(c)
    if !ok {
        return nil
    }
    if sess.Showtime.ScreeningID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "no screening in session"})
    }
    m, err := h.Upstream.FetchSeatMap(c.Request().Context(), sess.Showtime.ScreeningID)
    if err != nil || len(m) == 0 {
        monitoring.SeatMapFetch("error")
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load seat map"})
    }
    monitoring.SeatMapFetch("ok")
    return c.JSON(http.StatusOK, m)
}
