package http

import (
	"context"
	"fmt"
	"github.com/14kear/pollstore/internal/handlers"
	"github.com/14kear/pollstore/internal/middleware"
	"github.com/14kear/pollstore/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
)

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp инициализирует HTTP-сервер Gin и настраивает маршруты
func NewApp(
	log *slog.Logger,
	port int,
	allowedOrigins []string,
	handler *handlers.PollHandler,
	authMiddleware gin.HandlerFunc,
) *App {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	corsCfg := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	// cors.New паникует, если не разрешён ни один origin
	if len(allowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	// Группировка маршрутов: /api/*
	api := r.Group("/api")
	{
		// Публичные маршруты
		routes.RegisterPublicRoutes(api, handler)

		// Приватные маршруты (с авторизацией)
		private := api.Group("", authMiddleware)
		routes.RegisterPrivateRoutes(private, handler)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return &App{
		log:    log,
		engine: r,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		},
		port: port,
	}
}

// Run запускает HTTP-сервер
func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

// Stop корректно останавливает сервер
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping")
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
