package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level        string `json:"level"`
	LogToFile    bool   `json:"log_to_file"`
	LogToConsole bool   `json:"log_to_console"`
	File         string `json:"file"`
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitSlog installs the default logger. Output goes to the console and/or a
// rotating log file depending on config; a config enabling neither falls
// back to the console.
func InitSlog(config LogConfig) {
	var writers []io.Writer
	if config.LogToConsole {
		writers = append(writers, os.Stderr)
	}
	if config.LogToFile && config.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: parseLevel(config.Level),
	})
	slog.SetDefault(slog.New(handler))
}
