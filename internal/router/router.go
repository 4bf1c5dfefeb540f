package router

import (
	"time"

	"gemstore/internal/config"
	"gemstore/internal/handler"
	"gemstore/internal/infra"
	"gemstore/internal/middleware"
	"gemstore/internal/repository"
	"gemstore/internal/service"
	"gemstore/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailBreaker *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, settingsRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, productRepo, inventorySvc, settingsRepo, dispatcher, cfg.InvoicePath)
	settingsSvc := service.NewSettingsService(settingsRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	blogSvc := service.NewBlogService(blogRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	blogH := handler.NewBlogHandler(blogSvc)
	catalogH := handler.NewCatalogHandler(productRepo, rdb, cfg.CatalogCacheTTL)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailBreaker))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront — no auth required
	r.GET("/v1/catalog/:sku", catalogH.GetBySKU)
	r.GET("/v1/blog", blogH.ListPublished)
	r.GET("/v1/blog/:slug", blogH.GetBySlug)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, manager, admin — declared per-endpoint

		// Orders — all staff can read and create; status changes need
		// manager or admin (force is additionally gated in the service log)
		v1.POST("/orders", middleware.RequireRole("staff", "manager", "admin"), ordersH.Create)
		v1.GET("/orders", middleware.RequireRole("staff", "manager", "admin"), ordersH.List)
		v1.GET("/orders/:id", middleware.RequireRole("staff", "manager", "admin"), ordersH.GetByID)
		v1.PUT("/orders/:id", middleware.RequireRole("manager", "admin"), ordersH.UpdateStatus)
		v1.GET("/orders/:id/invoice", middleware.RequireRole("staff", "manager", "admin"), ordersH.Invoice)

		// Products — all authenticated can read, admin writes
		v1.GET("/products", middleware.RequireRole("staff", "manager", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("staff", "manager", "admin"), productsH.GetByID)
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		// Stock ledger — manager or admin
		v1.POST("/stock-movements", middleware.RequireRole("manager", "admin"), inventoryH.Adjust)
		inv := v1.Group("/inventory", middleware.RequireRole("manager", "admin"))
		{
			inv.GET("/movements", inventoryH.ListMovements)
			inv.GET("/alerts", inventoryH.Alerts)
		}

		// Categories — admin writes, all authenticated read
		v1.GET("/categories", middleware.RequireRole("staff", "manager", "admin"), categoriesH.List)
		cats := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			cats.POST("", categoriesH.Create)
			cats.PUT("/:id", categoriesH.Update)
			cats.DELETE("/:id", categoriesH.Deactivate)
		}

		// Blog back-office — manager or admin
		blog := v1.Group("/admin/blog", middleware.RequireRole("manager", "admin"))
		{
			blog.GET("", blogH.ListAll)
			blog.POST("", blogH.Create)
			blog.PUT("/:id", blogH.Update)
			blog.DELETE("/:id", blogH.Delete)
		}

		// Store settings — admin only
		settings := v1.Group("/settings", middleware.RequireRole("admin"))
		{
			settings.GET("", settingsH.Get)
			settings.PUT("", settingsH.Update)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
