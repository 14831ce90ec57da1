package routes

import (
	"net/http"
	"time"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/controllers"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/middleware"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/router"
)

// rateWindow bounds login and signup attempts per client IP.
const rateWindow = time.Minute

// Controllers bundles everything RegisterAPI needs.
type Controllers struct {
	Auth     *controllers.AuthController
	Orders   *controllers.OrderController
	Products *controllers.ProductController
	Feed     *controllers.FeedController
}

// RegisterAPI mounts every route of the service.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	api.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	auth := api.Group("/auth", middleware.RateLimit(20, rateWindow))
	auth.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	auth.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	auth.Post("/recover", "auth.recover", ctx.Wrap(c.Auth.Recover))
	auth.Post("/refresh", "auth.refresh", ctx.Wrap(c.Auth.Refresh))
	auth.Post("/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))

	// The ordering channel browses the menu and submits orders.
	api.Get("/products", "products.index", ctx.Wrap(c.Products.Index))
	api.Post("/orders", "orders.intake", ctx.Wrap(c.Orders.Intake))

	admin := api.Group("/admin", middleware.Auth)
	admin.Get("/orders", "admin.orders.index", ctx.Wrap(c.Orders.Index))
	admin.Get("/orders/events", "admin.orders.events", ctx.Wrap(c.Feed.Events))
	admin.Get("/orders/ws", "admin.orders.ws", ctx.Wrap(c.Feed.Socket))
	admin.Get("/orders/{id}", "admin.orders.show", ctx.Wrap(c.Orders.Show))
	admin.Patch("/orders/{id}/status", "admin.orders.status", ctx.Wrap(c.Orders.UpdateStatus))
	admin.Post("/orders/{id}/accept", "admin.orders.accept", ctx.Wrap(c.Orders.Accept))
	admin.Delete("/orders/{id}", "admin.orders.destroy", ctx.Wrap(c.Orders.Destroy))
}
