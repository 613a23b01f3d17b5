package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jakechorley/gramconnect/cmd/cli/commands"
	"github.com/jakechorley/gramconnect/internal/config"
	"github.com/jakechorley/gramconnect/pkg/clients/marketclient"
	"github.com/jakechorley/gramconnect/pkg/core/dashboard"
	"github.com/jakechorley/gramconnect/pkg/core/session"
	"github.com/jakechorley/gramconnect/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:          "gramconnect",
		Short:        "GramConnect - connect farmers with farm workers",
		Long:         `Run the GramConnect marketplace server, or use it as a farmer or worker from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app, cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.CheckDatabaseCmd(app))
	rootCmd.AddCommand(commands.AuthorizeMailCmd(app))
	rootCmd.AddCommand(commands.SignupCmd(app))
	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.WhoamiCmd(app))
	rootCmd.AddCommand(commands.DashboardCmd(app))
	rootCmd.AddCommand(commands.PostJobCmd(app))
	rootCmd.AddCommand(commands.ApplyCmd(app))
	rootCmd.AddCommand(commands.ApproveCmd(app))
	rootCmd.AddCommand(commands.RejectCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config and sets up the logger, the API client and the client state
func initApp(app *commands.AppContext, cmd *cobra.Command) error {
	app.Env = env
	app.Ctx = context.Background()

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	consoleLevel := zapcore.ErrorLevel
	if cmd.Annotations[commands.AnnotationConsole] == "info" {
		consoleLevel = zapcore.InfoLevel
	}

	app.Logger, err = logging.InitLogger(env, cfg.Logging.Dir, consoleLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Configuration loaded", zap.String("command", cmd.Name()), zap.String("base_url", cfg.Client.BaseURL))

	sessionStore, err := session.NewFileStore(cfg.Client.SessionDir, env)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	app.Terminal = commands.NewTerminal(os.Stdout, os.Stderr)

	var state *dashboard.AppState
	app.Client = marketclient.New(cfg.Client.BaseURL,
		marketclient.WithTimeout(cfg.Client.RequestTimeout),
		marketclient.WithIdentity(func() string { return state.CurrentID() }),
		marketclient.WithIndicator(app.Terminal),
		marketclient.WithNotifier(app.Terminal),
		marketclient.WithLogger(app.Logger),
	)

	state = dashboard.NewAppState(sessionStore, app.Client)
	if err := state.Init(); err != nil {
		app.Logger.Warn("Ignoring unreadable session", zap.String("path", sessionStore.Path()), zap.Error(err))
	}
	app.State = state

	app.Controller = dashboard.NewController(state, app.Client, commands.NewRenderer(os.Stdout), app.Terminal, app.Logger)
	return nil
}
