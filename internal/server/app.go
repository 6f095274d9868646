// Package server initializes and runs the BudgetVault backend: it loads
// configuration, opens the database, applies migrations, provisions the
// default encryption transform, and wires the services the (external)
// web layer calls.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vkazmin/budgetvault/internal/logging"
	"github.com/vkazmin/budgetvault/internal/recordx"
	"github.com/vkazmin/budgetvault/internal/server/config"
	"github.com/vkazmin/budgetvault/internal/server/repositories/repomanager"
	"github.com/vkazmin/budgetvault/internal/server/services"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	provider           *recordx.Provider
	userService        *services.UserService
	transactionService *services.TransactionService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	provider, err := recordx.NewProvider(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("key provisioning error: %w", err)
	}

	us := services.NewUserService(db, rm)
	ts := services.NewTransactionService(db, rm, provider.Transform())

	return &App{
		config:             cfg,
		logger:             logger,
		db:                 db,
		provider:           provider,
		userService:        us,
		transactionService: ts,
	}, nil
}

// Users returns the credential service.
func (app *App) Users() *services.UserService { return app.userService }

// Transactions returns the transaction service.
func (app *App) Transactions() *services.TransactionService { return app.transactionService }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal
// arrives, then closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
