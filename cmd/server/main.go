package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"steam-analysis/internal/client"
	"steam-analysis/internal/config"
	delivery "steam-analysis/internal/delivery/http"
	"steam-analysis/internal/delivery/http/middleware"
	ws "steam-analysis/internal/delivery/websocket"
	"steam-analysis/internal/logger"
	"steam-analysis/internal/service"
	"steam-analysis/pkg/taskmanager"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env-file", ".env", "Path to .env file")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutput,
		Service:    "analysis-view-server",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)
	log.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("analysisBaseURL", cfg.Analysis.BaseURL),
		zap.String("analysisPath", cfg.Analysis.Path),
		zap.Duration("analysisTimeout", cfg.Analysis.ClientTimeout),
		zap.Strings("corsAllowedOrigins", cfg.GetAllowedOrigins()),
	)

	// --- Dependency Injection ---
	analysisClient, err := client.NewAnalysisServiceClient(cfg.Analysis.BaseURL, cfg.Analysis.Path, cfg.Analysis.ClientTimeout, log)
	if err != nil {
		log.Fatal("Failed to create analysis service client", zap.Error(err))
	}

	// Один запрос в полете: больше одной задачи не нужно
	taskManager := taskmanager.New(taskmanager.Config{MaxTasks: 1}, log)
	controller := service.NewRequestController(analysisClient, taskManager, log)

	hub := ws.NewStateHub(func() interface{} { return controller.Display() }, cfg.GetAllowedOrigins(), log)
	hub.Start()
	unsubscribe := controller.Subscribe(func(update service.StateUpdate) {
		hub.Broadcast(ws.MessageTypeState, update.Display)
	})

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	handler := delivery.New(controller, hub.Handler(), log)
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	// Запрос в полете не отменяется, ждем его завершения
	if err := taskManager.Shutdown(ctx); err != nil {
		log.Error("Task manager shutdown failed", zap.Error(err))
	}

	unsubscribe()
	hub.Stop()
	log.Info("Server stopped gracefully")
}
