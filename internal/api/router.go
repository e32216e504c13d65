package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/i-kemen/tomato-market/docs"
	"github.com/i-kemen/tomato-market/internal/api/handler"
	"github.com/i-kemen/tomato-market/internal/api/middleware"
	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/service"
	"github.com/i-kemen/tomato-market/internal/infrastructure/config"
	mongodb "github.com/i-kemen/tomato-market/internal/infrastructure/db/mongo"
	redisdb "github.com/i-kemen/tomato-market/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("market_http"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	sellerRepo := mongodb.NewSellerRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	quotationRepo := mongodb.NewQuotationRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)

	var cache service.ListCache
	if rdb != nil {
		cache = redisdb.NewPageCache(rdb)
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminKey, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	sellerService := service.NewSellerService(sellerRepo, productRepo, quotationRepo, applicationRepo, userRepo, cache, log)
	quotationService := service.NewQuotationService(quotationRepo, productRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	sellerHandler := handler.NewSellerHandler(sellerService)
	quotationHandler := handler.NewQuotationHandler(quotationService)

	authn := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	sellerOnly := middleware.RBAC(domain.RoleSeller)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	e.GET("/users", userHandler.ListUsers, authn, adminOnly)
	e.GET("/users/:userId", userHandler.GetProfile, authn)
	e.PATCH("/users/:userId", userHandler.UpdateProfile, authn)

	// --- Seller routes ---
	e.GET("/sellers", sellerHandler.ListSellers)
	e.GET("/sellers/:sellerId", sellerHandler.GetSeller)
	e.GET("/sellers/users/:userId", sellerHandler.GetSellerByUserID, authn)
	e.PATCH("/sellers/:userId", sellerHandler.UpdateSellerProfile, authn, sellerOnly)
	e.DELETE("/sellers/:sellerId", sellerHandler.DemoteSeller, authn, adminOnly)

	e.GET("/sellers/products", sellerHandler.ListMyProducts, authn, sellerOnly)
	e.POST("/sellers/products", sellerHandler.CreateProduct, authn, sellerOnly)
	e.PATCH("/sellers/products/:productId", sellerHandler.UpdateProduct, authn, sellerOnly)
	e.DELETE("/sellers/products/:productId", sellerHandler.DeleteProduct, authn, sellerOnly)

	e.GET("/sellers/quotations", sellerHandler.ListQuotations, authn, sellerOnly)
	e.PATCH("/sellers/quotations/:requestId", sellerHandler.ApproveQuotation, authn, sellerOnly)

	// --- Seller application routes ---
	e.POST("/sellers/apply", sellerHandler.Apply, authn, customerOnly)
	e.GET("/sellers/waitings", sellerHandler.ListApplications, authn, adminOnly)
	e.PATCH("/sellers/waitings/:applicationId", sellerHandler.ApproveApplication, authn, adminOnly)

	// --- Quotation routes (customer side) ---
	e.POST("/quotations", quotationHandler.Request, authn, customerOnly)
	e.GET("/quotations", quotationHandler.ListMine, authn)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
