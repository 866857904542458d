package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Basket  *handler.BasketHandler
	Order   *handler.OrderHandler
	Contact *handler.ContactHandler
	Partner *handler.PartnerHandler
}

// Config holds router construction settings
type Config struct {
	JWTService   *auth.JWTService
	Logger       *zap.Logger
	CORS         middleware.CORSConfig
	MaxFeedBytes int64
	// AuthRateLimit bounds requests per client on the credential endpoints
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg Config, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORSWithConfig(cfg.CORS),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ping", h.System.Ping)

	api := engine.Group("/api/v1")
	jwtCfg := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtCfg.Logger = cfg.Logger
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	api.GET("/health", h.System.Health)
	api.GET("/ping", h.System.Ping)

	registerUserRoutes(api, cfg, h)
	registerCatalogRoutes(api, h)
	registerBuyerRoutes(api, h)
	registerPartnerRoutes(api, cfg, h)

	return engine
}

func registerUserRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	limit := cfg.AuthRateLimit
	if limit <= 0 {
		limit = 10
	}
	window := cfg.AuthRateWindow
	if window <= 0 {
		window = time.Minute
	}
	authLimiter := middleware.RateLimit(middleware.NewRateLimiter(limit, window))

	user := api.Group("/user")
	user.POST("/register", authLimiter, h.Auth.Register)
	user.POST("/register/confirm", authLimiter, h.Auth.Confirm)
	user.POST("/login", authLimiter, h.Auth.Login)
	user.POST("/token/refresh", authLimiter, h.Auth.Refresh)
	user.GET("/details", h.Auth.GetDetails)
	user.POST("/details", h.Auth.UpdateDetails)

	contact := user.Group("/contact")
	contact.GET("", h.Contact.List)
	contact.POST("", h.Contact.Create)
	contact.PUT("", h.Contact.Update)
	contact.DELETE("", h.Contact.Delete)
}

func registerCatalogRoutes(api *gin.RouterGroup, h Handlers) {
	api.GET("/shops", h.Catalog.ListShops)
	api.GET("/categories", h.Catalog.ListCategories)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
}

func registerBuyerRoutes(api *gin.RouterGroup, h Handlers) {
	basket := api.Group("/basket")
	basket.GET("", h.Basket.Get)
	basket.POST("", h.Basket.AddItems)
	basket.PUT("", h.Basket.UpdateItems)
	basket.DELETE("", h.Basket.RemoveItems)

	order := api.Group("/order")
	order.GET("", h.Order.List)
	order.POST("", h.Order.Place)
	order.GET("/:id", h.Order.Get)
}

func registerPartnerRoutes(api *gin.RouterGroup, cfg Config, h Handlers) {
	partner := api.Group("/partner")
	if cfg.MaxFeedBytes > 0 {
		partner.POST("/update", middleware.BodyLimit(cfg.MaxFeedBytes), h.Partner.UpdateFeed)
	} else {
		partner.POST("/update", h.Partner.UpdateFeed)
	}
	partner.GET("/state", h.Partner.GetState)
	partner.POST("/state", h.Partner.SetState)
	partner.GET("/orders", h.Partner.ListOrders)
}
