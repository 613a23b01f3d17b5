package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CheckDatabaseCmd creates the checkDatabase command
func CheckDatabaseCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "checkDatabase",
		Short:       "Check database connectivity (locally, or through the server with --remote)",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationConsole: "info"},
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, _ := cmd.Flags().GetBool("remote")

			if remote {
				resp := app.Client.Health(app.Ctx)
				if !resp.Success {
					return fmt.Errorf("server health check failed: %s", resp.Error)
				}
				fmt.Printf("\n✓ Server at %s reports database %s\n\n", app.Cfg.Client.BaseURL, resp.Database)
				return nil
			}

			store, err := app.OpenDatabase()
			if err != nil {
				return err
			}

			if err := store.Ping(app.Ctx); err != nil {
				return err
			}

			app.Logger.Debug("Database reachable", zap.String("driver", app.Cfg.Database.Driver))
			fmt.Printf("\n✓ Connected to %s database\n\n", app.Cfg.Database.Driver)
			return nil
		},
	}

	cmd.Flags().Bool("remote", false, "Ask the running server instead of connecting directly")

	return cmd
}
