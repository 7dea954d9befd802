package handlers

import (
	"errors"
	"net/http"

	"github.com/feitoo/makerboard/internal/auth"
	"github.com/feitoo/makerboard/internal/lifecycle"
	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/services"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler handles maker-facing order requests.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetMakerOrders handles GET /api/order/maker. The optional ?type= query
// narrows the list to product or custom orders.
func (h *OrderHandler) GetMakerOrders(c echo.Context) error {
	makerID, err := auth.GetMakerIDFromContext(c)
	if err != nil {
		return err
	}

	orderType := models.OrderType(c.QueryParam("type"))
	if orderType != "" && orderType != models.OrderTypeProduct && orderType != models.OrderTypeCustom {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown order type")
	}

	orders, err := h.orderService.GetMakerOrders(c.Request().Context(), makerID, orderType)
	if err != nil {
		c.Logger().Errorf("failed to list maker orders: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if len(orders) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrderDetails handles GET /api/order/:id.
func (h *OrderHandler) GetOrderDetails(c echo.Context) error {
	makerID, err := auth.GetMakerIDFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	details, err := h.orderService.GetOrderDetails(c.Request().Context(), makerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrOrderAccessDenied):
			return echo.NewHTTPError(http.StatusForbidden, "order belongs to another maker")
		default:
			c.Logger().Errorf("failed to get order details: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, details)
}

// UpdateStatus handles PATCH /api/order.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	makerID, err := auth.GetMakerIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	err = h.orderService.UpdateStatus(c.Request().Context(), makerID, orderID, models.OrderStatus(req.Status), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown status")
		case errors.Is(err, services.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, "status transition not allowed")
		case errors.Is(err, storage.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrOrderAccessDenied):
			return echo.NewHTTPError(http.StatusForbidden, "order belongs to another maker")
		default:
			c.Logger().Errorf("failed to update order status: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.NoContent(http.StatusOK)
}

// GetStatusOptions handles GET /api/order/statuses. The list backs the
// dashboard's status filter dropdown.
func (h *OrderHandler) GetStatusOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, lifecycle.StatusOptions())
}
