// Package server initializes and runs the student-records server.
// It wires the database, the domain services, and the TCP endpoint, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"studentdesk/internal/envelope"
	"studentdesk/internal/logging"
	"studentdesk/internal/server/config"
	"studentdesk/internal/server/protocol"
	"studentdesk/internal/server/repositories/repomanager"
	"studentdesk/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *services.UserService
	sessionService *services.SessionService
	studentService *services.StudentService
	requestService *services.RequestService
	codec          *envelope.Codec
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	if len(cfg.EnvelopeKey) != envelope.KeySize {
		return nil, fmt.Errorf("config error: envelope key must be %d bytes, got %d", envelope.KeySize, len(cfg.EnvelopeKey))
	}

	codec, err := envelope.New([]byte(cfg.EnvelopeKey))
	if err != nil {
		return nil, fmt.Errorf("codec init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db := rm.Conn()

	return &App{
		config:         cfg,
		logger:         logger,
		userService:    services.NewUserService(db, rm, cfg, logger),
		sessionService: services.NewSessionService(db, rm, cfg, logger),
		studentService: services.NewStudentService(db, rm),
		requestService: services.NewRequestService(db, rm),
		codec:          codec,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startTCPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := protocol.NewRouter(app.userService, app.sessionService, app.studentService, app.requestService, app.logger)
	s := protocol.NewServer(app.config.EndpointAddr, app.codec, router, app.config.IdleTimeout, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startSessionJanitor purges expired session rows on a timer until ctx is
// cancelled.
func (app *App) startSessionJanitor(ctx context.Context) {

	interval := app.config.SessionCleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := app.sessionService.Cleanup(ctx); err != nil {
				app.logger.Warn(ctx, "session cleanup failed", "error", err.Error())
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTCPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startSessionJanitor(ctx)
	}()

	wg.Wait()

}
