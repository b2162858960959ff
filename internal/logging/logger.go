package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotated log inside the log directory.
const LogFile = "urlpinger.log"

// NewLogger writes JSON to a rotating file under logDir, or to stderr with
// a console encoder when logDir is empty. An unknown level means info.
func NewLogger(logDir, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if logDir == "" {
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), lvl)
		return zap.New(core), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFile),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, lvl)
	return zap.New(core), nil
}
