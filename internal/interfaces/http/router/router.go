package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers groups all HTTP handlers wired into the router
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Blog     *handler.BlogHandler
	Feed     *handler.FeedHandler
}

// Dependencies holds everything the router needs beyond handlers
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	MeterProvider  *telemetry.MeterProvider
}

// New builds the Gin engine with the full middleware chain and all routes
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(deps.Config)))
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	if deps.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.RateLimitRequests,
			deps.Config.HTTP.RateLimitWindow,
		)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: deps.Config.Telemetry.ServiceName,
		Enabled:     deps.Config.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.MeterProvider,
		Enabled:       deps.Config.Telemetry.Enabled,
	}))

	jwtConfig := middleware.DefaultJWTConfig(deps.JWTService)
	jwtConfig.TokenBlacklist = deps.TokenBlacklist
	jwtConfig.Logger = deps.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())

	registerRoutes(engine, deps, h)

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}

func registerRoutes(engine *gin.Engine, deps Dependencies, h Handlers) {
	engine.GET("/health", h.System.Health)
	engine.GET("/healthz", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	v1 := engine.Group("/api/v1")
	v1.GET("/health", h.System.Health)

	// Auth entry points. A stricter per-IP limiter slows credential
	// stuffing without affecting the rest of the API.
	authGroup := v1.Group("/auth")
	if deps.Config.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(
			deps.Config.HTTP.AuthRateLimitRequests,
			deps.Config.HTTP.AuthRateLimitWindow,
		)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.POST("/change-password", h.Auth.ChangePassword)

	// Public storefront reads. The JWT middleware skips these prefixes;
	// the tenant comes from the X-Tenant-ID header.
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/products", h.Product.ListPublic)
		catalog.GET("/products/:slug", h.Product.GetBySlug)
		catalog.GET("/categories", h.Category.Roots)
		catalog.GET("/categories/tree", h.Category.Tree)
		catalog.GET("/categories/slug/:slug", h.Category.GetBySlug)
		catalog.GET("/categories/:id/children", h.Category.Children)
		catalog.GET("/categories/:id/products", h.Product.ListByCategory)
	}

	blog := v1.Group("/blog")
	{
		blog.GET("/posts", h.Blog.ListPublished)
		blog.GET("/posts/:slug", h.Blog.GetPublishedBySlug)
	}

	v1.GET("/feed", h.Feed.ListVisible)

	// Authenticated customer surface.
	v1.GET("/me", h.User.Me)
	v1.PUT("/me", h.User.UpdateMe)

	addresses := v1.Group("/addresses")
	{
		addresses.POST("", h.Address.Create)
		addresses.GET("", h.Address.List)
		addresses.GET("/:id", h.Address.Get)
		addresses.PUT("/:id", h.Address.Update)
		addresses.POST("/:id/default", h.Address.SetDefault)
		addresses.DELETE("/:id", h.Address.Delete)
	}

	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.PUT("", h.Cart.Sync)
		cart.DELETE("", h.Cart.Clear)
		cart.GET("/count", h.Cart.Count)
		cart.POST("/validate", h.Cart.Validate)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
	}

	orders := v1.Group("/orders")
	{
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/number/:number", h.Order.GetByNumber)
		orders.POST("/:id/pay", h.Order.Pay)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	// Admin surface.
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		products := admin.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
			products.POST("/:id/activate", h.Product.Activate)
			products.POST("/:id/deactivate", h.Product.Deactivate)
			products.POST("/:id/variants", h.Product.AddVariant)
			products.PUT("/:id/variants/:variantId", h.Product.UpdateVariant)
			products.DELETE("/:id/variants/:variantId", h.Product.DeleteVariant)
			products.POST("/:id/images/upload-url", h.Product.GenerateImageUploadURL)
			products.POST("/:id/images/confirm", h.Product.ConfirmImageUpload)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.POST("", h.Category.Create)
			categories.GET("/:id", h.Category.Get)
			categories.PUT("/:id", h.Category.Update)
			categories.DELETE("/:id", h.Category.Delete)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", h.Order.AdminList)
			adminOrders.GET("/:id", h.Order.AdminGet)
			adminOrders.POST("/:id/status", h.Order.AdminUpdateStatus)
			adminOrders.POST("/:id/cancel", h.Order.AdminCancel)
		}

		users := admin.Group("/users")
		{
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.POST("/:id/activate", h.User.Activate)
			users.POST("/:id/deactivate", h.User.Deactivate)
		}

		blogAdmin := admin.Group("/blog/posts")
		{
			blogAdmin.GET("", h.Blog.List)
			blogAdmin.POST("", h.Blog.Create)
			blogAdmin.GET("/:id", h.Blog.Get)
			blogAdmin.PUT("/:id", h.Blog.Update)
			blogAdmin.DELETE("/:id", h.Blog.Delete)
			blogAdmin.POST("/:id/publish", h.Blog.Publish)
			blogAdmin.POST("/:id/archive", h.Blog.Archive)
			blogAdmin.POST("/:id/cover/upload-url", h.Blog.GenerateCoverUploadURL)
			blogAdmin.POST("/:id/cover/confirm", h.Blog.ConfirmCoverUpload)
		}

		feedAdmin := admin.Group("/feed")
		{
			feedAdmin.GET("", h.Feed.List)
			feedAdmin.POST("", h.Feed.Ingest)
			feedAdmin.DELETE("/:id", h.Feed.Delete)
			feedAdmin.POST("/:id/show", h.Feed.Show)
			feedAdmin.POST("/:id/hide", h.Feed.Hide)
		}
	}
}
