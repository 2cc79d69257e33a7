package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/feastfleet/feastfleet/internal/model"
	"github.com/feastfleet/feastfleet/internal/repository"
)

// RestaurantHandler covers the public catalogue endpoints and the
// owner-facing create/update operations.
type RestaurantHandler struct {
	Restaurants *repository.RestaurantRepo
}

func NewRestaurantHandler(restaurants *repository.RestaurantRepo) *RestaurantHandler {
	if restaurants == nil {
		panic("nil repository passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Restaurants: restaurants}
}

type restaurantView struct {
	ID       uint64               `json:"id"`
	Name     string               `json:"name"`
	Cuisine  string               `json:"cuisine"`
	Address  string               `json:"address"`
	Timezone string               `json:"timezone"`
	Capacity int                  `json:"capacity"`
	Hours    model.WeeklySchedule `json:"hours"`
}

func toRestaurantView(r model.Restaurant) restaurantView {
	return restaurantView{
		ID:       r.ID,
		Name:     r.Name,
		Cuisine:  r.Cuisine,
		Address:  r.Address,
		Timezone: r.Timezone,
		Capacity: r.Capacity,
		Hours:    r.Hours,
	}
}

// Get handles GET /v1/restaurants/:id.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	rest, err := h.Restaurants.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRestaurantView(*rest))
}

// Search handles GET /v1/restaurants/search?q=&cuisine=&page=&page_size=.
// Matching is case-insensitive substring on name; cuisine filters exact.
func (h *RestaurantHandler) Search(c echo.Context) error {
	q := repository.SearchQuery{
		Name:     strings.TrimSpace(c.QueryParam("q")),
		Cuisine:  strings.TrimSpace(c.QueryParam("cuisine")),
		Page:     1,
		PageSize: 20,
	}
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "page must be a positive integer"})
		}
		q.Page = n
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil || n < 1 || n > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "page_size must be between 1 and 100"})
		}
		q.PageSize = n
	}
	rows, total, err := h.Restaurants.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurants": rows,
		"total":       total,
		"page":        q.Page,
		"page_size":   q.PageSize,
	})
}

type upsertRestaurantReq struct {
	Name     string               `json:"name"`
	Cuisine  string               `json:"cuisine"`
	Address  string               `json:"address"`
	Timezone string               `json:"timezone"`
	Capacity int                  `json:"capacity"`
	Hours    model.WeeklySchedule `json:"hours"`
}

func (r *upsertRestaurantReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if r.Capacity <= 0 {
		return "capacity must be a positive integer"
	}
	if r.Timezone != "" {
		if !model.ValidTimezone(r.Timezone) {
			return "timezone must be a valid IANA zone name"
		}
	}
	if err := r.Hours.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// Create handles POST /v1/restaurants (role OWNER).
func (h *RestaurantHandler) Create(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req upsertRestaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rest := model.Restaurant{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(req.Name),
		Cuisine:  strings.TrimSpace(req.Cuisine),
		Address:  strings.TrimSpace(req.Address),
		Timezone: req.Timezone,
		Capacity: req.Capacity,
		Hours:    req.Hours,
	}
	if err := h.Restaurants.Create(c.Request().Context(), &rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, toRestaurantView(rest))
}

// Update handles PUT /v1/restaurants/:id (role OWNER, own restaurants only).
func (h *RestaurantHandler) Update(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req upsertRestaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rest := model.Restaurant{
		ID:       id,
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(req.Name),
		Cuisine:  strings.TrimSpace(req.Cuisine),
		Address:  strings.TrimSpace(req.Address),
		Timezone: req.Timezone,
		Capacity: req.Capacity,
		Hours:    req.Hours,
	}
	if err := h.Restaurants.Update(c.Request().Context(), &rest, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRestaurantNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, toRestaurantView(rest))
}
