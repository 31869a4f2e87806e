// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "fintrack/internal/api"
	"fintrack/internal/api/handler"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/repository"
	"fintrack/internal/repository/postgres"
	"fintrack/internal/service"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Views  *cache.ViewCache

	// Repositories
	UserRepository        repository.UserRepository
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	IdentityResolver   service.IdentityResolver
	AccountService     service.AccountService
	TransactionService service.TransactionService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.RunMigrations(app.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database connection established and schema migrated.")

	// 4. Initialize the view cache (presentation-layer invalidation collaborator)
	views, err := cache.NewViewCache()
	if err != nil {
		return fmt.Errorf("failed to initialize view cache: %w", err)
	}
	app.Views = views

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.IdentityResolver = service.NewIdentityResolver(app.DB, app.UserRepository)
	app.AccountService = service.NewAccountService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.AccountRepository,
		app.TransactionRepository,
		app.Views,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.TransactionService = service.NewTransactionService(
		app.DB,
		app.DB,
		app.AccountRepository,
		app.TransactionRepository,
		app.Views,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	accountHandler := handler.NewAccountHandler(app.IdentityResolver, app.AccountService, app.Views, app.Logger)
	transactionHandler := handler.NewTransactionHandler(app.IdentityResolver, app.TransactionService, app.Logger)
	app.HTTPHandler = router.NewRouter(accountHandler, transactionHandler, app.Config.JWTSecret, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
