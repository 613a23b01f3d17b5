package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/internal/config"
	"github.com/jakechorley/gramconnect/pkg/api"
	"github.com/jakechorley/gramconnect/pkg/clients/gmailclient"
	"github.com/jakechorley/gramconnect/pkg/core/services"
	"github.com/jakechorley/gramconnect/pkg/db"
	"github.com/jakechorley/gramconnect/pkg/utils"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the marketplace API server",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationConsole: "info"},
		RunE: func(cmd *cobra.Command, args []string) error {
			skipMigrations, _ := cmd.Flags().GetBool("skip-migrations")
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.Server.Addr
			}

			store, err := app.OpenDatabase()
			if err != nil {
				return err
			}

			if !skipMigrations {
				if err := store.RunMigrations(app.Ctx); err != nil {
					return err
				}
			}

			notifier, wait, err := buildNotifier(app, store)
			if err != nil {
				return err
			}
			defer wait()

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.New(store, notifier, app.Logger, app.Cfg.Server.RequestTimeout)
			if err := server.ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}

			app.Logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to server.addr from config)")
	cmd.Flags().Bool("skip-migrations", false, "Do not apply pending migrations on startup")

	return cmd
}

// buildNotifier returns the email notifier when enabled and a func that drains pending sends
func buildNotifier(app *AppContext, profiles db.ProfileStore) (services.Notifier, func(), error) {
	if !app.Cfg.Notifications.Enabled {
		app.Logger.Info("Email notifications disabled")
		return services.NopNotifier{}, func() {}, nil
	}

	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, nil, err
	}

	tokenSource, err := utils.StoredTokenSource(app.Ctx, oauthConfig, app.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mail token (run authorizeMail first): %w", err)
	}

	gmail, err := gmailclient.NewClient(app.Ctx, tokenSource, app.Cfg.Notifications.Sender)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	app.Logger.Info("Email notifications enabled", zap.String("sender", app.Cfg.Notifications.Sender))
	notifier := services.NewMailNotifier(profiles, gmail, app.Logger)
	return notifier, notifier.Wait, nil
}
