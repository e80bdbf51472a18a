package router

import (
	"github.com/ergolife/storefront/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every storefront handler
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Blog    *handler.BlogHandler
	Voucher *handler.VoucherHandler
	User    *handler.UserHandler
	Admin   *handler.AdminHandler
}

// Guards holds the access-control middleware applied per group
type Guards struct {
	Authenticated gin.HandlerFunc
	Admin         gin.HandlerFunc
	Staff         gin.HandlerFunc
	// Strict throttles credential endpoints; nil disables it
	Strict gin.HandlerFunc
}

// StorefrontGroups builds the /auth and /api route trees
func StorefrontGroups(h Handlers, g Guards) []*DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	if g.Strict != nil {
		auth.POST("/register", g.Strict, h.Auth.Register)
		auth.POST("/login", g.Strict, h.Auth.Login)
	} else {
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}
	auth.POST("/logout", g.Authenticated, h.Auth.Logout)
	auth.GET("/me", g.Authenticated, h.Auth.Me)

	api := NewDomainGroup("api", "/api")

	products := api.Group("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)
	products.POST("", g.Authenticated, g.Admin, h.Product.Create)
	products.PUT("/:id", g.Authenticated, g.Admin, h.Product.Update)
	products.DELETE("/:id", g.Authenticated, g.Admin, h.Product.Delete)
	products.POST("/:id/reviews", g.Authenticated, h.Product.AddReview)

	cart := api.Group("cart", "/cart").Use(g.Authenticated)
	cart.GET("", h.Cart.Get)
	cart.POST("/add", h.Cart.Add)
	cart.PUT("/item/:id", h.Cart.UpdateItem)
	cart.DELETE("/item/:id", h.Cart.RemoveItem)

	orders := api.Group("orders", "/orders").Use(g.Authenticated)
	orders.POST("", h.Order.Place)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)

	blogs := api.Group("blogs", "/blogs")
	blogs.GET("", h.Blog.List)
	blogs.GET("/:id", h.Blog.Get)

	backOffice := api.Group("admin", "/admin").Use(g.Authenticated)

	staff := backOffice.Group("admin-orders", "/orders").Use(g.Staff)
	staff.GET("", h.Order.AdminList)
	staff.PUT("/:id/status", h.Order.UpdateStatus)

	admin := backOffice.Group("admin-only", "").Use(g.Admin)
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.POST("/uploads", h.Admin.Upload)

	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.Get)
	admin.POST("/users", h.User.Create)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)

	admin.GET("/vouchers", h.Voucher.List)
	admin.GET("/vouchers/:id", h.Voucher.Get)
	admin.POST("/vouchers", h.Voucher.Create)
	admin.PUT("/vouchers/:id", h.Voucher.Update)
	admin.DELETE("/vouchers/:id", h.Voucher.Delete)

	admin.GET("/blogs", h.Blog.AdminList)
	admin.GET("/blogs/:id", h.Blog.AdminGet)
	admin.POST("/blogs", h.Blog.Create)
	admin.PUT("/blogs/:id", h.Blog.Update)
	admin.DELETE("/blogs/:id", h.Blog.Delete)

	return []*DomainGroup{auth, api}
}
