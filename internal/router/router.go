package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/kinoapp/checkout/internal/handler"
    "github.com/kinoapp/checkout/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to a booking
// session: the health check used by load balancers and the Prometheus
// scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterCheckout registers the booking flow under /v1/checkout.
// Every endpoint requires the session key header; the bearer token is
// optional throughout: guests can complete a purchase, the token only
// prefills the customer form and ties the order to an account.
func RegisterCheckout(e *echo.Echo, h *handler.CheckoutHandler) {
    g := e.Group("/v1/checkout")
    g.Use(middleware.RequireSessionKey())
    g.Use(middleware.OptionalBearer())

    // Session lifecycle and step navigation.
    g.POST("/start", h.Start)
    g.GET("", h.State)
    g.POST("/step", h.SetStep)
    g.POST("/reset", h.Reset)

    // Step 1: seat selection against the availability snapshot.
    g.GET("/seat-map", h.SeatMap)
    g.POST("/seats/toggle", h.ToggleSeat)

    // Step 2: ticket category per seat.
    g.POST("/tickets", h.AssignTicket)

    // Step 3: contact details, payment method, discount preview and
    // the purchase itself.
    g.PATCH("/customer", h.SetCustomer)
    g.POST("/payment-method", h.SetPaymentMethod)
    g.GET("/promotion", h.Promotion)
    g.POST("/submit", h.Submit)
}

// RegisterOrders registers receipt lookup for the purchase-history
// surface.  Receipts are addressed by order number alone; the number
// is the secret.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler) {
    e.GET("/v1/orders/:order_number", h.GetByNumber)
}
