package config

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogWriter is the writer used for application and database logs.
var LogWriter io.Writer = os.Stdout

// Logger is the structured application logger. It is a no-op until InitLogging runs.
var Logger = zap.NewNop()

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return filepath.Join("logs", "portal-api.log")
}

// InitLogging prepares the log file and builds Logger on top of it. The
// returned file must be closed by the caller when not nil.
func InitLogging() (*os.File, error) {
	var logFile *os.File
	if err := os.MkdirAll(filepath.Dir(LogFilePath()), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	} else {
		f, err := os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Printf("Warning: Failed to open log file: %v", err)
		} else {
			logFile = f
		}
	}

	LogWriter = os.Stdout
	if logFile != nil {
		LogWriter = io.MultiWriter(os.Stdout, logFile)
	}
	log.SetOutput(LogWriter)

	level := zapcore.DebugLevel
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	if Cfg.IsProduction() {
		level = zapcore.InfoLevel
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(LogWriter),
		zap.NewAtomicLevelAt(level),
	)
	Logger = zap.New(core, zap.AddCaller())
	return logFile, nil
}
