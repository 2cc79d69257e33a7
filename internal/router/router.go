package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/feastfleet/feastfleet/internal/config"
	"github.com/feastfleet/feastfleet/internal/handler"
	"github.com/feastfleet/feastfleet/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts. Keeping them
// in one struct keeps RegisterRoutes' signature stable as endpoints
// are added.
type Handlers struct {
	Auth         *handler.AuthHandler
	Restaurant   *handler.RestaurantHandler
	Availability *handler.AvailabilityHandler
	Menu         *handler.MenuHandler
	Reservation  *handler.ReservationHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
}

// RegisterRoutes mounts the whole HTTP surface on the provided Echo
// instance.
//
// Route groups:
//   - /healthz and /v1/auth/* are open.
//   - public catalogue reads (/v1/restaurants/...) are open and sit
//     behind the Redis response cache, except availability which must
//     always be computed fresh.
//   - everything else requires a valid access token; restaurant and
//     menu mutations additionally require the OWNER role.
//
// The token-bucket rate limiter applies globally so anonymous traffic
// is limited too.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	// Session endpoints. Logout accepts either a bearer token (revoke
	// all sessions) or a refresh_token body (revoke one), so it stays
	// outside the JWT group.
	authGroup := e.Group("/v1/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)

	// Public catalogue. Cached responses are fine here: restaurant
	// profiles and menus change rarely.
	cached := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/restaurants/search", h.Restaurant.Search, cached)
	e.GET("/v1/restaurants/:id", h.Restaurant.Get, cached)
	e.GET("/v1/restaurants/:id/menu", h.Menu.List, cached)
	// Availability depends on the clock and on concurrent bookings;
	// never serve it stale.
	e.GET("/v1/restaurants/:id/availability", h.Availability.GetAvailability)

	// Authenticated surface.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER", "CUSTOMER"))

	auth.GET("/me", h.Auth.Me)

	auth.POST("/reservations", h.Reservation.Create)
	auth.GET("/reservations", h.Reservation.List)
	auth.GET("/reservations/:id", h.Reservation.Get)
	auth.DELETE("/reservations/:id", h.Reservation.Delete)

	auth.POST("/carts", h.Cart.Save)
	auth.GET("/carts", h.Cart.Get)

	auth.POST("/orders", h.Order.Create)
	auth.GET("/orders", h.Order.List)
	auth.GET("/orders/:id", h.Order.Get)

	// Owner-only management endpoints.
	owner := e.Group("/v1")
	owner.Use(middleware.JWTAuth(jwtSecret))
	owner.Use(middleware.RequireRole("OWNER"))

	owner.POST("/restaurants", h.Restaurant.Create)
	owner.PUT("/restaurants/:id", h.Restaurant.Update)
	owner.POST("/restaurants/:id/menu", h.Menu.Create)
}
