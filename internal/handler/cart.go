package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// CartHandler lets a user stage menu items before placing an order. One
// cart per (user, restaurant); saving replaces the item list wholesale.
type CartHandler struct {
	Carts *repository.CartRepo
	Menus *repository.MenuRepo
}

func NewCartHandler(carts *repository.CartRepo, menus *repository.MenuRepo) *CartHandler {
	if carts == nil || menus == nil {
		panic("nil repository passed to NewCartHandler")
	}
	return &CartHandler{Carts: carts, Menus: menus}
}

type cartItemReq struct {
	ItemID   uint64 `json:"item_id"`
	Quantity int    `json:"item_quantity"`
}

type saveCartReq struct {
	RestaurantID uint64        `json:"restaurant_id"`
	Items        []cartItemReq `json:"items"`
}

// Save handles POST /v1/carts. Item names and unit prices are resolved
// from the menu server-side so the client cannot set its own prices.
func (h *CartHandler) Save(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req saveCartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RestaurantID == 0 || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id and items are required"})
	}
	for _, it := range req.Items {
		if it.ItemID == 0 || it.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each item needs item_id and a positive item_quantity"})
		}
	}

	menu, err := h.Menus.ListByRestaurant(c.Request().Context(), req.RestaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	byID := make(map[uint64]model.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	cart := model.Cart{UserID: userID, RestaurantID: req.RestaurantID}
	for _, it := range req.Items {
		m, ok := byID[it.ItemID]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item not on this restaurant's menu"})
		}
		cart.Items = append(cart.Items, model.CartItem{
			ItemID:     m.ID,
			Name:       m.Name,
			Quantity:   it.Quantity,
			PriceCents: m.PriceCents,
		})
	}
	if err := h.Carts.Save(c.Request().Context(), &cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant_id": cart.RestaurantID,
		"items":         cart.Items,
		"total_cents":   cart.TotalCents,
	})
}

// Get handles GET /v1/carts?restaurant_id=N.
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := queryID(c, "restaurant_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	cart, err := h.Carts.Get(c.Request().Context(), userID, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cart not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant_id": cart.RestaurantID,
		"items":         cart.Items,
		"total_cents":   cart.TotalCents,
		"updated_at":    cart.UpdatedAt,
	})
}
