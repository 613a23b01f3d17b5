package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/dashboard"
	"github.com/jakechorley/gramconnect/pkg/core/model"
)

// enterDashboard renders the dashboard, turning a missing session into a readable error
func enterDashboard(app *AppContext) error {
	err := app.Controller.Enter(app.Ctx)
	if errors.Is(err, dashboard.ErrNotLoggedIn) {
		return fmt.Errorf("not logged in: run 'login <email> <password>' first")
	}
	return err
}

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the farmer or worker dashboard for the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, _ := cmd.Flags().GetString("job")
			app.Logger.Debug("dashboard command", zap.String("job", jobID))

			app.Controller.SetJobFilter(jobID)
			return enterDashboard(app)
		},
	}

	cmd.Flags().String("job", "", "Only list applications for this job ID")

	return cmd
}

// PostJobCmd creates the postJob command
func PostJobCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postJob <title>",
		Short: "Post a new job (farmers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			description, _ := flags.GetString("description")
			timeSlot, _ := flags.GetString("time-slot")
			duration, _ := flags.GetString("duration")
			skills, _ := flags.GetString("skills")
			payRateArg, _ := flags.GetString("pay-rate")

			payRate, err := parsePayRate(payRateArg)
			if err != nil {
				return err
			}

			req := model.PostJobRequest{
				Title:          args[0],
				Description:    description,
				TimeSlot:       timeSlot,
				Duration:       duration,
				PayRate:        payRate,
				SkillsRequired: skills,
			}

			if !app.Controller.PostJob(app.Ctx, req) {
				return errRequestFailed
			}
			return nil
		},
	}

	cmd.Flags().String("description", "", "What the work involves")
	cmd.Flags().String("time-slot", "", "When the work happens, e.g. 6am-12pm")
	cmd.Flags().String("duration", "", "How long the job lasts, e.g. 3 days")
	cmd.Flags().String("pay-rate", "", "Daily pay in rupees")
	cmd.Flags().String("skills", "", "Skills or crop type required")

	return cmd
}

// parsePayRate converts the flag value; empty is left unset so the server reports it
func parsePayRate(value string) (model.IntString, error) {
	if value == "" {
		return model.IntString{}, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return model.IntString{}, fmt.Errorf("pay-rate must be a number, got: %s", value)
	}
	return model.NewIntString(n), nil
}

// ApplyCmd creates the apply command
func ApplyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <job_id>",
		Short: "Apply for a job (workers)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Controller.Apply(app.Ctx, args[0]) {
				return errRequestFailed
			}
			return nil
		},
	}
}

// ApproveCmd creates the approve command
func ApproveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <application_id>",
		Short: "Approve a pending application on one of your jobs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Controller.Approve(app.Ctx, args[0]) {
				return errRequestFailed
			}
			return nil
		},
	}
}

// RejectCmd creates the reject command
func RejectCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <application_id>",
		Short: "Reject a pending application on one of your jobs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Controller.Reject(app.Ctx, args[0]) {
				return errRequestFailed
			}
			return nil
		},
	}
}
