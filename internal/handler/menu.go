package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// MenuHandler serves a restaurant's menu and lets the owner add items.
type MenuHandler struct {
	Menus       *repository.MenuRepo
	Restaurants *repository.RestaurantRepo
}

func NewMenuHandler(menus *repository.MenuRepo, restaurants *repository.RestaurantRepo) *MenuHandler {
	if menus == nil || restaurants == nil {
		panic("nil repository passed to NewMenuHandler")
	}
	return &MenuHandler{Menus: menus, Restaurants: restaurants}
}

type menuItemView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  uint32 `json:"price_cents"`
	Category    string `json:"category,omitempty"`
}

// List handles GET /v1/restaurants/:id/menu.
func (h *MenuHandler) List(c echo.Context) error {
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	if _, err := h.Restaurants.GetByID(c.Request().Context(), restaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Menus.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]menuItemView, 0, len(items))
	for _, it := range items {
		views = append(views, menuItemView{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			PriceCents:  it.PriceCents,
			Category:    it.Category,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

type createMenuItemReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"price_cents"`
	Category    string `json:"category"`
}

// Create handles POST /v1/restaurants/:id/menu (role OWNER, own
// restaurants only).
func (h *MenuHandler) Create(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	rest, err := h.Restaurants.GetByID(c.Request().Context(), restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if rest.OwnerID != ownerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
	}
	var req createMenuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.PriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price_cents are required"})
	}
	item := model.MenuItem{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		PriceCents:   req.PriceCents,
		Category:     strings.TrimSpace(req.Category),
	}
	if err := h.Menus.Create(c.Request().Context(), &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, menuItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Category:    item.Category,
	})
}
