package routes

import (
	"context"
	"net/http"

	"github.com/dukerupert/tantuka/internal/domain"
	"github.com/dukerupert/tantuka/internal/handler/api"
	"github.com/dukerupert/tantuka/internal/middleware"
)

// APIDeps contains dependencies for the /api/v1 routes
type APIDeps struct {
	// Users resolves bearer tokens for the Authenticate middleware
	Users domain.UserService

	// AuthRateLimiter throttles login and registration per client IP
	AuthRateLimiter *middleware.RateLimiter

	AuthHandler     *api.AuthHandler
	UserHandler     *api.UserHandler
	ProductHandler  *api.ProductHandler
	CategoryHandler *api.CategoryHandler
	CartHandler     *api.CartHandler
	AdminHandler    *api.AdminHandler
}

// SystemDeps contains dependencies for the unversioned routes
type SystemDeps struct {
	// Metrics serves /metrics; nil disables the endpoint
	Metrics http.Handler

	// Ping checks the store for /health; nil reports ok unconditionally
	Ping func(ctx context.Context) error
}
