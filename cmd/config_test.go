package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "unwrapaudit", configBaseName)
	assert.Equal(t, "unwrapaudit.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "verbose", verboseFlagName)
	assert.Equal(t, "scan.root", scanRootKey)
	assert.Equal(t, "scan.parallel", scanParallelKey)
	assert.Equal(t, "", defaultReportsDir)
	assert.Equal(t, 1, defaultScanParallel)
	assert.Equal(t, "UNWRAPAUDIT", envPrefix)
}

func TestScanOptionsFromConfig_Defaults(t *testing.T) {
	opts := scanOptionsFromConfig("")

	assert.Equal(t, m.DefaultScanOptions(), opts)
}

func TestScanOptionsFromConfig_RootArg(t *testing.T) {
	opts := scanOptionsFromConfig("src")

	assert.Equal(t, m.Path("src"), opts.Root)
	assert.Equal(t, ".rs", opts.Extension)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"numeric", "-4", slog.LevelDebug},
		{"garbage uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}
