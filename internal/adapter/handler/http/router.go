package http

import (
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	User      *UserHandler
	Catalog   *CatalogHandler
	Order     *OrderHandler
	Product   *ProductHandler
	Lifecycle *LifecycleHandler
	Image     *ImageHandler
}

func NewRouter(tokenService port.TokenService, h Handlers) (*Router, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	staff := requireCapability()
	agent := requireCapability(domain.CapAgent)
	buyer := requireCapability(domain.CapBuyer)
	logistical := requireCapability(domain.CapLogistical)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.User.RegisterUser)
			users.POST("/login", h.User.LoginUser)
			users.GET("/verify/:secret", h.User.VerifyUser)
			users.POST("/password/recover", h.User.RequestPasswordReset)
			users.POST("/password/reset/:secret", h.User.ResetPassword)

			authed := users.Group("", authCheck(tokenService))
			authed.GET("/me", h.User.Me)
			authed.GET("", staff, h.User.FilterUsers)
			authed.GET("/:id", staff, h.User.GetUser)
			authed.PATCH("/:id", staff, h.User.UpdateUser)
		}

		secured := api.Group("", authCheck(tokenService))

		shops := secured.Group("/shops")
		{
			shops.GET("", h.Catalog.ListShops)
			shops.GET("/:name", h.Catalog.GetShop)
			shops.POST("", staff, h.Catalog.CreateShop)
			shops.DELETE("/:name", staff, h.Catalog.DeleteShop)
		}

		accounts := secured.Group("/buying-accounts")
		{
			accounts.GET("", buyer, h.Catalog.ListBuyingAccounts)
			accounts.POST("", staff, h.Catalog.CreateBuyingAccount)
		}

		rates := secured.Group("/common-information")
		{
			rates.GET("", h.Catalog.GetRates)
			rates.PUT("", staff, h.Catalog.UpdateRates)
		}

		orders := secured.Group("/orders")
		{
			orders.POST("", agent, h.Order.CreateOrder)
			orders.GET("", h.Order.FilterOrders)
			orders.GET("/:id", h.Order.GetOrder)
			orders.PATCH("/:id", agent, h.Order.UpdateOrder)
			orders.DELETE("/:id", agent, h.Order.DeleteOrder)
		}

		products := secured.Group("/products")
		{
			products.POST("", agent, h.Product.CreateProduct)
			products.GET("", h.Product.FilterProducts)
			products.GET("/:id", h.Product.GetProduct)
			products.PATCH("/:id", agent, h.Product.UpdateProduct)
			products.DELETE("/:id", agent, h.Product.DeleteProduct)
			products.POST("/recompute-status", staff, h.Product.RecomputeStatuses)
		}

		receips := secured.Group("/shopping-receips")
		{
			receips.POST("", buyer, h.Lifecycle.RecordPurchase)
			receips.GET("", h.Lifecycle.FilterShoppingReceips)
			receips.GET("/:id", h.Lifecycle.GetShoppingReceip)
		}

		packages := secured.Group("/packages")
		{
			packages.POST("", logistical, h.Lifecycle.CreatePackage)
			packages.GET("", h.Lifecycle.FilterPackages)
			packages.GET("/:id", h.Lifecycle.GetPackage)
			packages.POST("/:id/receipt", logistical, h.Lifecycle.RecordReceipt)
		}

		delivers := secured.Group("/deliver-receips")
		{
			delivers.POST("", logistical, h.Lifecycle.CreateDeliverReceip)
			delivers.GET("", h.Lifecycle.FilterDeliverReceips)
			delivers.GET("/:id", h.Lifecycle.GetDeliverReceip)
			delivers.POST("/:id/delivery", logistical, h.Lifecycle.RecordDelivery)
		}

		images := secured.Group("/images")
		{
			images.POST("", h.Image.UploadImage)
			images.DELETE("/:public_id", h.Image.DeleteImage)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
