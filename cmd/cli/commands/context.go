package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/internal/config"
	"github.com/jakechorley/gramconnect/pkg/clients/marketclient"
	"github.com/jakechorley/gramconnect/pkg/core/dashboard"
	"github.com/jakechorley/gramconnect/pkg/db"
	"github.com/jakechorley/gramconnect/pkg/postgres"
	"github.com/jakechorley/gramconnect/pkg/sqlite"
)

// AnnotationConsole on a command sets the console log level ("info" for server-side commands).
// Client commands default to errors only so logs do not interleave with the dashboard.
const AnnotationConsole = "console"

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env        string
	Cfg        *config.Config
	Logger     *zap.Logger
	Ctx        context.Context
	Client     *marketclient.Client
	State      *dashboard.AppState
	Controller *dashboard.Controller
	Terminal   *Terminal

	database Store
}

// Store is a database that can also apply its schema
type Store interface {
	db.Database
	RunMigrations(ctx context.Context) error
}

// OpenDatabase connects to the configured backend. The connection is reused until Close.
func (app *AppContext) OpenDatabase() (Store, error) {
	if app.database != nil {
		return app.database, nil
	}

	app.Logger.Info("Connecting to database", zap.String("driver", app.Cfg.Database.Driver))

	var (
		store Store
		err   error
	)
	switch app.Cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = postgres.NewDB(app.Ctx, app.Cfg.Database.URL)
	case config.DriverSQLite:
		store, err = sqlite.NewDB(app.Ctx, app.Cfg.Database.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", app.Cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	app.database = store
	return store, nil
}

// Close releases the database connection if one was opened
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
		app.database = nil
	}
}
