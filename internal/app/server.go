// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"garimoto-service/internal/cache"
	"garimoto-service/internal/config"
	"garimoto-service/internal/db"
	authHandler "garimoto-service/internal/handlers/auth"
	mediaHandler "garimoto-service/internal/handlers/media"
	salesHandler "garimoto-service/internal/handlers/sales"
	salespersonHandler "garimoto-service/internal/handlers/salesperson"
	storefrontHandler "garimoto-service/internal/handlers/storefront"
	vehicleHandler "garimoto-service/internal/handlers/vehicle"
	wsHandler "garimoto-service/internal/handlers/websocket"
	"garimoto-service/internal/middleware"
	"garimoto-service/internal/pkg/jwt"
	"garimoto-service/internal/pkg/session"
	"garimoto-service/internal/repository/postgres"
	authService "garimoto-service/internal/service/auth"
	inventoryService "garimoto-service/internal/service/inventory"
	mediaService "garimoto-service/internal/service/media"
	salesService "garimoto-service/internal/service/sales"
	salespersonService "garimoto-service/internal/service/salesperson"
	"garimoto-service/internal/storage"
	"garimoto-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpSrv     *http.Server
	pool        *pgxpool.Pool
	redisClient *redis.Client
	stopHub     context.CancelFunc
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, engine: gin.New()}, nil
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB()
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	s.pool = pool
	log.Println("[POSTGRES] ✅ Connected successfully")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.redisClient = redisClient
	log.Println("[REDIS] ✅ Connected successfully")

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Session Manager -----
	sessionManager := session.NewManager(redisClient)

	// ----- Media storage -----
	imageStore, err := storage.NewDiskStore(s.cfg.MediaDir, s.cfg.MediaBaseURL)
	if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}

	// ----- Repositories -----
	vehicleRepo := postgres.NewVehicleRepository(pool)
	salespersonRepo := postgres.NewSalespersonRepository(pool)
	authRepo := postgres.NewAuthRepository(pool)

	// ----- Listing cache -----
	listingCache := cache.NewListingCache(redisClient)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager, sessionManager)
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	go hub.Run(hubCtx)

	// ----- Services -----
	inventorySvc := inventoryService.NewInventoryService(vehicleRepo, listingCache, hub, logger)
	salesSvc := salesService.NewSalesService(vehicleRepo, salespersonRepo, listingCache, hub, logger)
	mediaSvc := mediaService.NewMediaService(inventorySvc, imageStore, s.cfg.MaxUploadBytes, logger)
	salespersonSvc := salespersonService.NewSalespersonService(salespersonRepo, logger)
	authSvc := authService.NewAuthService(authRepo, jwtManager, sessionManager, hub, logger)

	// New inventory subscribers get the storefront listing as their first frame.
	hub.SetSnapshotFunc(inventorySvc.Snapshot)

	// ----- Seed admin -----
	if err := authSvc.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName); err != nil {
		logger.Error("failed to seed admin account", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authSvc)
	vehicleHandlerInst := vehicleHandler.NewVehicleHandler(inventorySvc, salesSvc)
	storefrontHandlerInst := storefrontHandler.NewStorefrontHandler(inventorySvc)
	mediaHandlerInst := mediaHandler.NewMediaHandler(mediaSvc)
	salespersonHandlerInst := salespersonHandler.NewSalespersonHandler(salespersonSvc)
	salesHandlerInst := salesHandler.NewSalesHandler(salesSvc)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// Uploaded images are served from the same process.
	s.engine.Static("/media", imageStore.Dir())

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:        authHandlerInst,
		VehicleHandler:     vehicleHandlerInst,
		StorefrontHandler:  storefrontHandlerInst,
		MediaHandler:       mediaHandlerInst,
		SalespersonHandler: salespersonHandlerInst,
		SalesHandler:       salesHandlerInst,
		WSHandler:          wsHandlerInst,
		AuthMiddleware:     authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	s.httpSrv = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests, waits for in-flight ones up to the
// context deadline, then tears down the hub, Redis, and the database pool.
// Safe on a server that never started.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.redisClient != nil {
		if cerr := s.redisClient.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
	return err
}
