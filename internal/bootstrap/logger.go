package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/LootCrates_Go/internal/config"
	"github.com/osse101/LootCrates_Go/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// It creates the log directory, prunes old session logs and installs the
// configured slog handler over a MultiWriter as the default logger.
// Returns the log file handle (caller must close) and any error encountered.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateLogsDir, err)
	}

	// the new session file is the ninth
	cleanupLogs(cfg.LogDir, LogFileRetentionCount-1)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenLogFile, err)
	}

	mw := io.MultiWriter(os.Stdout, logFile)
	logCfg := logger.ServiceConfig(ServiceName)
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Version = cfg.Version
	logCfg.Environment = cfg.Environment
	logCfg.AddSource = logger.IsDevelopment(cfg.Environment)
	logger.InitLoggerWithWriter(logCfg, mw)

	slog.Info(LogMsgLoggingInitialized, LogFieldLevel, logCfg.LogLevel(), LogFieldFile, logFileName)
	slog.Info(LogMsgStartingLootCrates,
		LogFieldEnvironment, cfg.Environment,
		LogFieldVersion, cfg.Version,
		LogFieldLogFormat, cfg.LogFormat)

	slog.Debug(LogMsgConfigurationLoaded,
		LogFieldBackend, cfg.StorageBackend,
		LogFieldPort, cfg.Port,
		LogFieldConfigFile, cfg.CratesConfig,
		LogFieldCratesDir, cfg.CratesDir)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, LogFieldWarning, w)
	}

	return logFile, nil
}

// cleanupLogs removes the oldest session logs until at most keep remain.
// Session names embed a sortable timestamp, so directory order is age order.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	for i := 0; i < len(logFiles)-keep; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i].Name())); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, LogFieldFile, logFiles[i].Name(), LogFieldError, err)
		}
	}
}
