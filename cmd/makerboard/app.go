package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/feitoo/makerboard/internal/auth"
	"github.com/feitoo/makerboard/internal/cache"
	"github.com/feitoo/makerboard/internal/config"
	"github.com/feitoo/makerboard/internal/gateway"
	"github.com/feitoo/makerboard/internal/handlers"
	"github.com/feitoo/makerboard/internal/metrics"
	"github.com/feitoo/makerboard/internal/migrations"
	"github.com/feitoo/makerboard/internal/services"
	"github.com/feitoo/makerboard/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App wires the application and its dependencies together.
type App struct {
	cfg        *config.Config
	dbPool     *pgxpool.Pool
	echo       *echo.Echo
	worker     *services.StatusWorker
	orderCache *cache.OrderCache

	// Handlers
	makerHandler *handlers.MakerHandler
	orderHandler *handlers.OrderHandler
}

// NewApp creates and initializes the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initDependencies(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app.initServer()

	return app, nil
}

// initDatabase connects to Postgres and applies migrations.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	log.Println("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	log.Println("Successfully connected to database")

	return nil
}

// initDependencies builds the storage, service and handler layers.
func (app *App) initDependencies(ctx context.Context) error {
	metrics.Register()

	// Storage layer
	makerStorage := storage.NewPostgresMakerStorage(app.dbPool)
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)

	// Optional redis cache for assembled order details
	var detailsCache services.DetailsCache
	if app.cfg.RedisAddress != "" {
		orderCache := cache.NewOrderCache(app.cfg.RedisAddress, 0, log.Default())
		if err := orderCache.Ping(ctx); err != nil {
			log.Printf("WARNING: redis at %s unreachable, order details cache disabled: %v", app.cfg.RedisAddress, err)
			orderCache.Close()
		} else {
			app.orderCache = orderCache
			detailsCache = orderCache
			log.Printf("Order details cache enabled at %s", app.cfg.RedisAddress)
		}
	}

	// Service layer
	makerService := services.NewMakerService(makerStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration)
	orderService := services.NewOrderService(orderStorage, detailsCache, log.Default())

	// Handler layer
	app.makerHandler = handlers.NewMakerHandler(makerService)
	app.orderHandler = handlers.NewOrderHandler(orderService)

	// Background status worker: overdue marking plus refund polling when a
	// gateway is configured.
	var gw gateway.Client
	if app.cfg.GatewayAddress != "" {
		log.Printf("Initializing payment gateway client with address: %s", app.cfg.GatewayAddress)
		gw = gateway.NewHTTPClient(app.cfg.GatewayAddress, 5*time.Second)
	} else {
		log.Println("WARNING: GatewayAddress is not configured. Refunds will not settle automatically!")
	}
	app.worker = services.NewStatusWorker(orderStorage, gw, app.cfg.WorkerInterval, log.Default())

	return nil
}

// initServer sets up the HTTP server and routes.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))
	e.Use(metricsMiddleware)

	// Public routes
	e.POST("/api/maker/register", app.makerHandler.Register)
	e.POST("/api/maker/login", app.makerHandler.Login)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Authenticated routes
	protected := e.Group("/api")
	protected.Use(auth.JWTMiddleware(app.cfg.JWTSecret))
	protected.GET("/maker/profile", app.makerHandler.GetProfile)
	protected.GET("/order/maker", app.orderHandler.GetMakerOrders)
	protected.GET("/order/statuses", app.orderHandler.GetStatusOptions)
	protected.GET("/order/:id", app.orderHandler.GetOrderDetails)
	protected.PATCH("/order", app.orderHandler.UpdateStatus)

	app.echo = e
}

// metricsMiddleware records request counts and latency per route.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		path := c.Path()
		if path == "" {
			path = c.Request().URL.Path
		}
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}

		metrics.HTTPRequestDuration.WithLabelValues(path, c.Request().Method).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
		return err
	}
}

// Start runs the background worker and the HTTP server.
func (app *App) Start(ctx context.Context) error {
	log.Println("Starting status worker...")
	app.worker.Start(ctx)
	log.Println("Status worker started")

	log.Printf("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown stops the application gracefully.
func (app *App) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.orderCache != nil {
		app.orderCache.Close()
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
