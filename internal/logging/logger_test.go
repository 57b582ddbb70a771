package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	log, err := Initialize(Options{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.Same(t, log, L())
}

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "patentai.log")
	log, err := Initialize(Options{Level: "info", File: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Initialize(Options{Level: ""}) })

	Named("search").Info("patent search completed")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "patent search completed")
	assert.Contains(t, string(data), "search")
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel), "debug should be disabled at info level")
}

func TestInitializeLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")
	path := filepath.Join(t.TempDir(), "debug.log")
	log, err := Initialize(Options{File: path})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Initialize(Options{}) })
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}
