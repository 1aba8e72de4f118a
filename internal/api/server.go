package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/config"
	"github.com/panchito04/BackHogEle/internal/api/handlers"
	"github.com/panchito04/BackHogEle/internal/api/middleware"
	"github.com/panchito04/BackHogEle/internal/auth"
	"github.com/panchito04/BackHogEle/internal/cache"
	"github.com/panchito04/BackHogEle/internal/media"
	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	config     config.Config
	httpServer *http.Server
}

// NewServer creates a new HTTP server with all routes wired
func NewServer(
	cfg config.Config,
	db *gorm.DB,
	redisCache *cache.RedisCache,
	uploader media.Uploader,
	tokens *auth.TokenManager,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.SetVerboseErrors(!cfg.IsProduction())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Service layer
	boxes := service.NewBoxService(db)
	categories := service.NewCategoryService(db)
	customers := service.NewCustomerService(db)
	inventory := service.NewInventoryService(db)
	orders := service.NewOrderService(db, redisCache)
	payments := service.NewPaymentService(db, redisCache)
	users := service.NewUserService(db, tokens)
	dashboard := service.NewDashboardService(db, redisCache)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")

	// Registration and login need no token
	usersHandler := handlers.NewUsersHandler(users)
	usersHandler.RegisterPublicRoutes(apiGroup)

	authed := apiGroup.Group("")
	authed.Use(middleware.AuthRequired(tokens))

	// Admin and seller manage inventory, customers and payments. Delivery
	// staff additionally work with orders.
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleSeller)
	orderStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleSeller, models.RoleDelivery)

	handlers.NewBoxesHandler(boxes).RegisterRoutes(authed, staff)
	handlers.NewCategoriesHandler(categories).RegisterRoutes(authed, staff)
	handlers.NewCustomersHandler(customers).RegisterRoutes(authed, staff)
	handlers.NewProductsHandler(inventory, uploader).RegisterRoutes(authed, staff)
	handlers.NewOrdersHandler(orders, payments).RegisterRoutes(authed, orderStaff)
	handlers.NewPaymentsHandler(payments).RegisterRoutes(authed, staff)
	handlers.NewDashboardHandler(dashboard).RegisterRoutes(authed)
	usersHandler.RegisterRoutes(authed, middleware.RequireRoles(models.RoleAdmin))

	return &Server{
		router: router,
		config: cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      router,
			ReadTimeout:  cfg.Server.Timeout,
			WriteTimeout: cfg.Server.Timeout,
		},
	}
}

// Router exposes the underlying gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.Server.Address).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
