package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine  *gin.Engine
	Service *service.BoardService
	Config  *config.Config
	closers []func() error
}

func Init(cfg *config.Config) (*Server, error) {
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	s := &Server{Config: cfg}

	repo, err := s.openRepository(cfg)
	if err != nil {
		return nil, err
	}

	center := notify.NewCenter(log.StandardLogger(), notify.Permission(cfg.NotificationPermission))
	svc := service.New(repo, center, service.WithStorageKey(cfg.StorageKey))
	if err := svc.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("❌ failed to load board: %w", err)
	}
	s.Service = svc

	s.Engine = NewRouter(svc, center)
	return s, nil
}

// NewRouter wires every route onto a fresh engine.
func NewRouter(svc *service.BoardService, center *notify.Center) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.StandardLogger()))

	taskHandler := handler.NewTaskHandler(svc)
	boardHandler := handler.NewBoardHandler(svc, center)

	// Board routes
	r.GET("/board", boardHandler.Get)
	r.GET("/stats", boardHandler.Stats)
	r.GET("/export", boardHandler.Export)
	r.GET("/notifications", boardHandler.Notifications)

	// Task routes
	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks/:id", taskHandler.GetByID)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.POST("/tasks/:id/move", taskHandler.MoveTask)
	r.POST("/tasks/:id/timer", taskHandler.ToggleTimer)
	r.POST("/tasks/bulk/move", taskHandler.BulkMove)
	r.POST("/tasks/bulk/delete", taskHandler.BulkDelete)

	// History routes
	r.POST("/history/undo", boardHandler.Undo)
	r.POST("/history/redo", boardHandler.Redo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func (s *Server) openRepository(cfg *config.Config) (repository.RecordRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Println("✅ Using in-memory storage")
		return repository.NewMemoryRecordRepository(), nil

	case config.BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
		}
		log.Println("✅ Connected to database")
		repo := repository.NewGormRecordRepository(db)
		if err := repo.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			s.closers = append(s.closers, sqlDB.Close)
		}
		return repo, nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("❌ invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("❌ failed to connect to Redis: %w", err)
		}
		log.Println("✅ Connected to Redis")
		s.closers = append(s.closers, client.Close)
		return repository.NewRedisRecordRepository(client, "taskboard:"), nil
	}
	return nil, fmt.Errorf("❌ unknown storage backend %q", cfg.StorageBackend)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	scanCtx, stopScan := context.WithCancel(context.Background())
	go s.Service.RunDueDateScanner(scanCtx, s.Config.DueDateCheckInterval)

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	stopScan()
	s.Service.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	if err := s.Service.Save(ctx); err != nil {
		log.WithError(err).Error("❌ Failed to save board on shutdown")
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("⚠️  Failed to close storage")
		}
	}

	log.Println("✅ Server exited properly")
}
