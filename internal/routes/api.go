package routes

import (
	"github.com/dukerupert/tantuka/internal/middleware"
	"github.com/dukerupert/tantuka/internal/router"
)

// RegisterAPIRoutes registers the versioned JSON API under /api/v1.
//
// Catalog reads, login, registration and slug generation are public. Cart and
// profile routes require an active user; catalog writes, user listing and the
// dashboard require an admin.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	v1 := r.Route("/api/v1")

	authenticated := v1.Group(middleware.Authenticate(deps.Users))
	admin := authenticated.Group(middleware.RequireAdmin)

	// Auth
	auth := v1
	if deps.AuthRateLimiter != nil {
		auth = v1.Group(deps.AuthRateLimiter.Middleware)
	}
	auth.Post("/auth/register", deps.AuthHandler.Register)
	auth.Post("/auth/login", deps.AuthHandler.Login)

	// Users
	authenticated.Get("/users/me", deps.UserHandler.Me)
	authenticated.Put("/users/me", deps.UserHandler.UpdateMe)
	admin.Get("/users", deps.UserHandler.List)
	admin.Get("/users/{user_id}", deps.UserHandler.Get)

	// Products
	v1.Get("/products", deps.ProductHandler.List)
	v1.Get("/products/{product_id}", deps.ProductHandler.Get)
	v1.Get("/products/slug/{slug}", deps.ProductHandler.GetBySlug)
	v1.Post("/products/generate-slug", deps.ProductHandler.GenerateSlug)
	admin.Post("/products", deps.ProductHandler.Create)
	admin.Put("/products/{product_id}", deps.ProductHandler.Update)
	admin.Delete("/products/{product_id}", deps.ProductHandler.Delete)
	admin.Post("/products/{product_id}/variants", deps.ProductHandler.AddVariant)
	admin.Post("/products/{product_id}/images", deps.ProductHandler.AddImage)

	// Categories
	v1.Get("/categories", deps.CategoryHandler.List)
	v1.Get("/categories/tree", deps.CategoryHandler.Tree)
	v1.Get("/categories/{category_id}", deps.CategoryHandler.Get)
	v1.Get("/categories/slug/{slug}", deps.CategoryHandler.GetBySlug)
	v1.Post("/categories/generate-slug", deps.CategoryHandler.GenerateSlug)
	admin.Post("/categories", deps.CategoryHandler.Create)
	admin.Put("/categories/{category_id}", deps.CategoryHandler.Update)
	admin.Delete("/categories/{category_id}", deps.CategoryHandler.Delete)

	// Cart
	authenticated.Get("/cart", deps.CartHandler.Get)
	authenticated.Delete("/cart", deps.CartHandler.Clear)
	authenticated.Post("/cart/items", deps.CartHandler.AddItem)
	authenticated.Put("/cart/items/{item_id}", deps.CartHandler.UpdateItem)
	authenticated.Delete("/cart/items/{item_id}", deps.CartHandler.RemoveItem)

	// Admin
	admin.Get("/admin/dashboard", deps.AdminHandler.Dashboard)
	admin.Get("/admin/users", deps.UserHandler.List)
	admin.Get("/admin/orders", deps.AdminHandler.Orders)
	admin.Get("/admin/system-health", deps.AdminHandler.SystemHealth)
	admin.Get("/admin-dashboard/summary", deps.AdminHandler.Summary)
}
