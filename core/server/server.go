package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"meetmatch/core/cache"
	"meetmatch/core/config"
	"meetmatch/core/constants"
	"meetmatch/core/database"
	"meetmatch/core/logger"
	coreMiddleware "meetmatch/core/middleware"
	"meetmatch/core/queue"
	"meetmatch/modules/auth"
	"meetmatch/modules/calendar"
	"meetmatch/modules/group"
	"meetmatch/modules/meeting"
	"meetmatch/modules/schedule"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run wires configuration, storage, the task queue and every module, then
// serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer c.Close()

	q := queue.New(cfg.Redis)
	defer q.Shutdown()

	mux := asynq.NewServeMux()
	mux.Handle(constants.TaskRefreshCalendarTokens, calendar.HandleRefreshTokens(calendar.GetService(db, c)))
	if err := q.Start(mux); err != nil {
		return fmt.Errorf("failed to start task queue: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := coreMiddleware.NewMiddleware()
	auth.Init(e, db, c, mw)
	calendar.Init(e, db, c, mw)
	schedule.Init(e, db, c, mw)
	meeting.Init(e, db, c, mw)
	group.Init(e, db, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
		}
	}()
	logger.Info("Server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
