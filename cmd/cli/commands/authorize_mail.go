package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gramconnect/internal/config"
	"github.com/jakechorley/gramconnect/pkg/utils"
)

// AuthorizeMailCmd creates the authorizeMail command
func AuthorizeMailCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "authorizeMail",
		Short:       "Authorize the server to send notification emails through Gmail",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationConsole: "info"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")

			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
			if err != nil {
				return err
			}

			if reset {
				utils.ClearToken()
				if err := utils.DeleteTokenFile(app.Env); err != nil {
					return err
				}
			}

			if _, err := utils.GetTokenWithFlow(app.Ctx, oauthConfig, app.Env, app.Logger); err != nil {
				return err
			}

			fmt.Printf("\n✓ Mail authorized for environment %q\n\n", app.Env)
			return nil
		},
	}

	cmd.Flags().Bool("reset", false, "Discard the stored token and authorize again")

	return cmd
}
