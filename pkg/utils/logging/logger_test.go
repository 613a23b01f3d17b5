package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger_WritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	logger, err := initLogger("test", dir, zapcore.WarnLevel, &console)
	require.NoError(t, err)

	logger.Debug("debug only in file", zap.String("job_id", "j1"))
	logger.Warn("warn everywhere")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, console.String(), "debug only in file")
	assert.Contains(t, console.String(), "warn everywhere")

	files, err := filepath.Glob(filepath.Join(dir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "debug only in file", first["msg"])
	assert.Equal(t, "j1", first["job_id"])
	assert.Equal(t, "test", first["env"])
	assert.Contains(t, first, "timestamp")
}
