package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Apply pending database migrations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationConsole: "info"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.OpenDatabase()
			if err != nil {
				return err
			}

			if err := store.RunMigrations(app.Ctx); err != nil {
				return err
			}

			fmt.Printf("\n✓ Database is up to date (%s)\n\n", app.Cfg.Database.Driver)
			return nil
		},
	}
}
