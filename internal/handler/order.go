package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/queue"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// OrderPublisher announces placed orders to downstream consumers.
// Satisfied by queue_publisher.Publisher.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev queue.OrderPlaced) error
}

// OrderHandler turns a user's cart into a persisted order. Unlike
// reservations there is no admission step: orders are written
// synchronously and only announced on the queue afterwards.
type OrderHandler struct {
	Orders    *repository.OrderRepo
	Carts     *repository.CartRepo
	Publisher OrderPublisher
}

func NewOrderHandler(orders *repository.OrderRepo, carts *repository.CartRepo, pub OrderPublisher) *OrderHandler {
	if orders == nil || carts == nil || pub == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Carts: carts, Publisher: pub}
}

type placeOrderReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
}

type orderView struct {
	ID           string            `json:"order_id"`
	RestaurantID uint64            `json:"restaurant_id"`
	Items        []model.OrderItem `json:"items"`
	TotalCents   uint64            `json:"total_cents"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func toOrderView(o model.Order) orderView {
	return orderView{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		Items:        o.Items,
		TotalCents:   o.TotalCents,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}

// Create handles POST /v1/orders. The order is built from the caller's
// cart for the given restaurant; the cart is cleared once the order is
// stored. The queue announcement is best-effort.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	ctx := c.Request().Context()

	cart, err := h.Carts.Get(ctx, userID, req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	order := model.Order{
		ID:           uuid.NewString(),
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		TotalCents:   cart.TotalCents,
		Status:       model.OrderPlaced,
	}
	for _, it := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Quantity: it.Quantity,
		})
	}
	if err := h.Orders.Create(ctx, &order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Carts.Delete(ctx, userID, req.RestaurantID); err != nil {
		// Order is already placed; a stale cart is an annoyance, not a failure.
		log.Printf("[order] cart cleanup failed user=%d restaurant=%d: %v", userID, req.RestaurantID, err)
	}
	if err := h.Publisher.PublishOrderPlaced(ctx, queue.OrderPlaced{
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		PlacedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("[order] announce failed order=%s: %v", order.ID, err)
	}
	return c.JSON(http.StatusCreated, toOrderView(order))
}

// List handles GET /v1/orders (caller's orders, newest first).
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": views})
}

// Get handles GET /v1/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order id"})
	}
	order, err := h.Orders.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toOrderView(*order))
}
