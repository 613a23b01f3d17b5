package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/gramconnect/pkg/core/model"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
		wantErr  bool
	}{
		{"simple", "apply j1", []string{"apply", "j1"}, false},
		{"double quotes", `postJob "Harvest wheat" --pay-rate 500`, []string{"postJob", "Harvest wheat", "--pay-rate", "500"}, false},
		{"single quotes", `postJob 'Sow rice'`, []string{"postJob", "Sow rice"}, false},
		{"extra spaces", "  whoami   ", []string{"whoami"}, false},
		{"unclosed quote", `postJob "Harvest`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := parseCommandLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestRunInSession_ResetsFlagsBetweenRuns(t *testing.T) {
	var seen []string
	cmd := &cobra.Command{
		Use:  "dashboard",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _ := cmd.Flags().GetString("job")
			seen = append(seen, job)
			return nil
		},
	}
	cmd.Flags().String("job", "", "")

	require.NoError(t, runInSession(cmd, []string{"--job", "j1"}))
	require.NoError(t, runInSession(cmd, nil))
	assert.Equal(t, []string{"j1", ""}, seen)

	assert.Error(t, runInSession(cmd, []string{"extra"}))
	assert.Error(t, runInSession(cmd, []string{"--unknown"}))
}

func TestSessionCommands_ExcludesServerAndSelf(t *testing.T) {
	root := &cobra.Command{Use: "gramconnect"}
	app := &AppContext{}
	root.AddCommand(ServeCmd(app), DashboardCmd(app), InteractiveCmd(app), ApplyCmd(app))

	commands := sessionCommands(root)

	assert.Contains(t, commands, "dashboard")
	assert.Contains(t, commands, "apply")
	assert.NotContains(t, commands, "serve")
	assert.NotContains(t, commands, "interactive")
}

func TestParsePayRate(t *testing.T) {
	rate, err := parsePayRate("")
	require.NoError(t, err)
	assert.False(t, rate.Valid)

	rate, err = parsePayRate("500")
	require.NoError(t, err)
	assert.Equal(t, model.NewIntString(500), rate)

	_, err = parsePayRate("five hundred")
	assert.Error(t, err)
}
