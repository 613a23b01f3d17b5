package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/gramconnect/pkg/core/model"
)

var errRequestFailed = errors.New("request failed")

// SignupCmd creates the signup command
func SignupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a farmer or worker account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			name, _ := flags.GetString("name")
			email, _ := flags.GetString("email")
			phone, _ := flags.GetString("phone")
			location, _ := flags.GetString("location")
			userType, _ := flags.GetString("type")
			password, _ := flags.GetString("password")

			req := model.SignupRequest{
				Name:     name,
				Email:    email,
				Phone:    phone,
				Location: location,
				UserType: model.UserType(userType),
				Password: password,
			}

			if !app.Controller.Signup(app.Ctx, req) {
				return errRequestFailed
			}
			return nil
		},
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("location", "", "Village or district")
	cmd.Flags().String("type", "", "Account type: farmer or worker")
	cmd.Flags().String("password", "", "Password (at least 6 characters)")

	return cmd
}

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and save the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, ok := app.Controller.Login(app.Ctx, model.LoginRequest{Email: args[0], Password: args[1]})
			if !ok {
				return errRequestFailed
			}

			fmt.Printf("Run 'dashboard' to open the %s dashboard.\n\n", identity.Type)
			return nil
		},
	}
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Controller.Logout()
		},
	}
}

// WhoamiCmd creates the whoami command
func WhoamiCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := app.State.Identity()
			if identity == nil {
				fmt.Println("Not logged in")
				return nil
			}

			fmt.Printf("\nName:     %s\n", identity.Name)
			fmt.Printf("Email:    %s\n", identity.Email)
			fmt.Printf("Type:     %s\n", identity.Type)
			fmt.Printf("Location: %s\n", identity.Location)
			fmt.Printf("Phone:    %s\n", identity.Phone)
			fmt.Printf("ID:       %s\n\n", identity.ID)
			return nil
		},
	}
}
