package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/kinoapp/checkout/internal/repository"
)

// OrderHandler serves archived receipts for the purchase-history
// surface.
type OrderHandler struct {
    Orders *repository.OrderRepo
}

// NewOrderHandler constructs an OrderHandler.  The repository must be
// non-nil.
func NewOrderHandler(orders *repository.OrderRepo) *OrderHandler {
    if orders == nil {
        panic("nil repository passed to NewOrderHandler")
    }
    return &OrderHandler{Orders: orders}
}

// GetByNumber handles GET /v1/orders/:order_number and returns the
// archived receipt.
func (h *OrderHandler) GetByNumber(c echo.Context) error {
    number := c.Param("order_number")
    if number == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order number"})
    }
    oc, err := h.Orders.GetByNumber(c.Request().Context(), number)
    if err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, oc)
}
