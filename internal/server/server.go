// file: internal/server/server.go
// version: 2.2.0
// guid: 5b9e3c7a-2d6f-4b1e-9c8a-4f7d2b5e9c31

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfigueroa/stockroom/internal/config"
	"github.com/mfigueroa/stockroom/internal/database"
	"github.com/mfigueroa/stockroom/internal/metrics"
	"github.com/mfigueroa/stockroom/internal/search"
	"github.com/mfigueroa/stockroom/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine

	store      database.Store
	shops      *ShopService
	products   *ProductService
	categories *CategoryService
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new server instance over the given store.
func NewServer(store database.Store) *Server {
	router := gin.New()

	// Set up middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	if config.AppConfig.RateLimitEnabled {
		limiter := middleware.NewIPRateLimiter(
			config.AppConfig.RateLimitPerMinute,
			config.AppConfig.RateLimitBurst,
		)
		router.Use(limiter.Middleware())
	}
	router.Use(middleware.BasicAuth())

	// Register metrics (idempotent)
	metrics.Register()

	engine := search.NewEngine(store)

	server := &Server{
		router:     router,
		store:      store,
		shops:      NewShopService(store),
		products:   NewProductService(store, engine),
		categories: NewCategoryService(store, engine),
	}

	server.setupRoutes()

	return server
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until an interrupt signal arrives.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Refresh catalog size gauges periodically while running
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				products, categories, err := s.store.CountAll(ctx)
				cancel()
				if err != nil {
					log.Printf("[DEBUG] Gauge refresh: failed to count catalog: %v", err)
					continue
				}
				metrics.SetCatalogSize(products, categories)
			case <-quit:
				return
			}
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-quit

	log.Println("Shutting down server...")

	timeout := time.Duration(config.AppConfig.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint (both paths for compatibility)
	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/shops", s.listShops)
		v1.POST("/shops", s.createShop)
		v1.GET("/shops/:id", s.getShop)
		v1.PUT("/shops/:id", s.updateShop)
		v1.DELETE("/shops/:id", s.deleteShop)
		v1.GET("/shops/:id/dashboard", s.getDashboard)

		v1.GET("/shops/:id/products", s.listProducts)
		v1.POST("/shops/:id/products", s.createProduct)
		v1.GET("/shops/:id/products/search", s.searchProducts)
		v1.GET("/shops/:id/products/suggest", s.suggestProducts)
		v1.GET("/products/:id", s.getProduct)
		v1.PUT("/products/:id", s.updateProduct)
		v1.DELETE("/products/:id", s.deleteProduct)

		v1.GET("/shops/:id/categories", s.listCategories)
		v1.POST("/shops/:id/categories", s.createCategory)
		v1.GET("/shops/:id/categories/search", s.searchCategories)
		v1.GET("/categories/:id", s.getCategory)
		v1.PUT("/categories/:id", s.updateCategory)
		v1.DELETE("/categories/:id", s.deleteCategory)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := config.AppConfig.CORSAllowedOrigin
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	status := "healthy"
	dbStatus := "ok"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if _, _, err := s.store.CountAll(ctx); err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
