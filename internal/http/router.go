package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig bundles the handlers and cross-cutting settings the router
// needs.
type RouterConfig struct {
	Products       *ProductHandler
	Carts          *CartHandler
	Checkout       *CheckoutHandler
	Auth           *AuthHandler
	Admin          *AdminHandler
	AdminToken     string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", cfg.Products.Home)
		r.Get("/products", cfg.Products.List)
		r.Get("/products/{id}", cfg.Products.Detail)
		r.Post("/products/{id}/comments", cfg.Products.AddComment)
		r.Post("/products/{productID}/comments/{commentID}/delete", cfg.Products.DeleteComment)
		r.Get("/categories", cfg.Products.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Carts.Get)
			r.Post("/items", cfg.Carts.AddItem)
			r.Put("/items/{productID}", cfg.Carts.UpdateQuantity)
			r.Delete("/items/{productID}", cfg.Carts.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", cfg.Checkout.Preview)
			r.Post("/", cfg.Checkout.Checkout)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.Auth.Register)
			r.Post("/login", cfg.Auth.Login)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminOnly(cfg.AdminToken))
			r.Post("/products", cfg.Admin.CreateProduct)
			r.Put("/products/{id}", cfg.Admin.UpdateProduct)
			r.Delete("/products/{id}", cfg.Admin.DeleteProduct)
			r.Post("/categories", cfg.Admin.CreateCategory)
			r.Delete("/categories/{id}", cfg.Admin.DeleteCategory)
			r.Get("/orders", cfg.Admin.ListOrders)
			r.Post("/comments/{id}/reply", cfg.Admin.ReplyComment)
			r.Put("/comments/{id}", cfg.Admin.UpdateComment)
			r.Delete("/comments/{id}", cfg.Admin.DeleteComment)
		})
	})

	return r
}
