package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

const (
	configBaseName   = "unwrapaudit"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName  = "output"
	verboseFlagName = "verbose"

	scanRootKey           = "scan.root"
	scanExtensionKey      = "scan.extension"
	scanExcludeDirKey     = "scan.exclude_dir"
	scanDisabledMarkerKey = "scan.disabled_marker"
	scanTestMarkersKey    = "scan.test_markers"
	scanPatternKey        = "scan.pattern"
	scanSafePatternKey    = "scan.safe_pattern"
	scanParallelKey       = "scan.parallel"

	// Empty means findings are printed but not persisted.
	defaultReportsDir = ""

	defaultScanParallel = 1

	envPrefix = "UNWRAPAUDIT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".unwrapaudit.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	defaults := m.DefaultScanOptions()

	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(scanRootKey, string(defaults.Root))
	viper.SetDefault(scanExtensionKey, defaults.Extension)
	viper.SetDefault(scanExcludeDirKey, defaults.ExcludeDir)
	viper.SetDefault(scanDisabledMarkerKey, defaults.DisabledMarker)
	viper.SetDefault(scanTestMarkersKey, defaults.TestMarkers)
	viper.SetDefault(scanPatternKey, defaults.Pattern)
	viper.SetDefault(scanSafePatternKey, defaults.SafePattern)
	viper.SetDefault(scanParallelKey, defaultScanParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// scanOptionsFromConfig materializes the scan configuration, optionally
// overriding the root with a positional argument.
func scanOptionsFromConfig(rootArg string) m.ScanOptions {
	root := viper.GetString(scanRootKey)
	if rootArg != "" {
		root = rootArg
	}

	return m.ScanOptions{
		Root:           m.Path(root),
		Extension:      viper.GetString(scanExtensionKey),
		ExcludeDir:     viper.GetString(scanExcludeDirKey),
		DisabledMarker: viper.GetString(scanDisabledMarkerKey),
		TestMarkers:    viper.GetStringSlice(scanTestMarkersKey),
		Pattern:        viper.GetString(scanPatternKey),
		SafePattern:    viper.GetString(scanSafePatternKey),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug. Log
// output goes to a rotating file so stdout stays report-only.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
