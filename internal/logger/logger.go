package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config содержит настройки для логгера.
type Config struct {
	Level      string // Уровень логирования (debug, info, warn, error)
	Encoding   string // Формат вывода (json или console)
	OutputPath string // stderr, stdout или путь к файлу (если пусто, используется stderr)
	Service    string // Имя бинарника, добавляется полем service в каждую запись
	// StdoutReserved - stdout занят выводом результата (CLI):
	// OutputPath "stdout" в этом случае заменяется на stderr.
	StdoutReserved bool
}

// New создает новый экземпляр zap.Logger на основе конфигурации.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	logLevel := strings.ToLower(cfg.Level)
	if logLevel == "" {
		logLevel = "info"
	}
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		// Логгера еще нет, пишем в stderr
		fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'. Error: %v\n", cfg.Level, err)
		level.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := strings.ToLower(cfg.Encoding)
	if encoding != "console" && encoding != "json" {
		encoding = "json"
	}

	outputPath := ResolveOutputPath(cfg.OutputPath, cfg.StdoutReserved)

	zapConfig := zap.Config{
		Level:             level,
		Development:       false,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{outputPath},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if cfg.Service != "" {
		logger = logger.With(zap.String("service", cfg.Service))
	}
	if outputPath != cfg.OutputPath && cfg.OutputPath != "" {
		logger.Warn("Log output redirected, stdout is reserved for command output",
			zap.String("requested", cfg.OutputPath),
			zap.String("actual", outputPath))
	}

	return logger, nil
}

// ResolveOutputPath возвращает путь вывода логов: пустой -> stderr,
// stdout при занятом stdout -> stderr, иначе без изменений.
func ResolveOutputPath(requested string, stdoutReserved bool) string {
	switch {
	case requested == "":
		return "stderr"
	case stdoutReserved && strings.EqualFold(requested, "stdout"):
		return "stderr"
	default:
		return requested
	}
}
