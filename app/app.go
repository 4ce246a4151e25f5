package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/database"
	"github.com/feedchain/backend/handlers"
	"github.com/feedchain/backend/middleware/ratelimit"
	"github.com/feedchain/backend/openapi"
	"github.com/feedchain/backend/server"
	"github.com/feedchain/backend/services/auth"
	"github.com/feedchain/backend/services/claim"
	"github.com/feedchain/backend/services/foodpost"
	"github.com/feedchain/backend/services/impact"
	"github.com/feedchain/backend/services/jwt"
	"github.com/feedchain/backend/services/logging"
	"github.com/feedchain/backend/services/mail"
	"github.com/feedchain/backend/services/otp"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const stopTimeout = 30 * time.Second

// Modules is the complete dependency graph except the configuration.
func Modules() fx.Option {
	return fx.Options(
		logging.Module,
		database.Module,
		jwt.Module,
		auth.Module,
		otp.Module,
		foodpost.Module,
		mail.Module,
		claim.Module,
		impact.Module,
		ratelimit.Module,
		openapi.Module,
		server.Module,
		handlers.Module,
	)
}

type App struct {
	fx     *fx.App
	config *config.Config
	logger *logging.Service
	db     *gorm.DB
	server *server.Server
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

// Run starts the application and blocks until SIGINT, SIGTERM or a fatal
// server error, then stops it.
func (a *App) Run() {
	startCtx, cancel := context.WithTimeout(context.Background(), a.fx.StartTimeout())
	defer cancel()

	if err := a.Start(startCtx); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.logger.Info("received shutdown signal, stopping gracefully", zap.String("signal", sig.String()))
	case sig := <-a.fx.Wait():
		a.logger.Warn("application requested shutdown", zap.Int("exit_code", sig.ExitCode))
	}

	a.Stop()
}

func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := a.fx.Stop(ctx); err != nil {
		if a.logger != nil {
			a.logger.Error("failed to stop application gracefully", zap.Error(err))
		} else {
			log.Printf("Failed to stop application gracefully: %v", err)
		}
	}
}

func (a *App) Echo() *echo.Echo {
	if a.server == nil {
		return nil
	}
	return a.server.Echo()
}

func (a *App) Server() *server.Server {
	return a.server
}

func (a *App) DB() *gorm.DB {
	return a.db
}

func (a *App) Logger() *logging.Service {
	return a.logger
}

func (a *App) Config() *config.Config {
	return a.config
}
