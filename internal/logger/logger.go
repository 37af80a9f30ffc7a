package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"marbles/internal/engineconfig"
)

const defaultHistoryLines = 200

// Logger writes structured logs to the console and optionally a rotating JSON file,
// and keeps the most recent lines in memory for the on-screen console.
type Logger struct {
	zap     *zap.Logger
	history *history
}

// New builds a Logger from cfg writing human-readable lines to console.
// An unknown level falls back to info.
func New(cfg engineconfig.LogPrefs, console zapcore.WriteSyncer) *Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	keep := cfg.HistoryLines
	if keep <= 0 {
		keep = defaultHistoryLines
	}
	h := &history{max: keep}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), console, level),
		zapcore.NewCore(historyEncoder(), h, level),
	}
	if cfg.File != "" {
		// lumberjack creates the directory and rotates the file.
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), file, level))
	}

	return &Logger{
		zap:     zap.New(zapcore.NewTee(cores...)).Named("marbles"),
		history: h,
	}
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return zapcore.NewConsoleEncoder(cfg)
}

// historyEncoder renders "[15:04:05] message fields" for the on-screen console.
func historyEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "T",
		MessageKey:       "M",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("[15:04:05]"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}

// Log records a plain line at info level (e.g. a line typed into the console).
func (l *Logger) Log(line string) {
	l.zap.Info(line)
}

// Debug logs msg with fields at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info logs msg with fields at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs msg with fields at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs msg with fields at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// With returns a child logger that adds fields to every entry and shares the history.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), history: l.history}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// Lines returns a copy of the retained lines, oldest first.
func (l *Logger) Lines() []string {
	return l.history.lines()
}

// history is a zapcore.WriteSyncer keeping the last max lines.
type history struct {
	mu  sync.Mutex
	buf []string
	max int
}

func (h *history) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		h.buf = append(h.buf, line)
	}
	if over := len(h.buf) - h.max; over > 0 {
		h.buf = append(h.buf[:0], h.buf[over:]...)
	}
	return len(p), nil
}

func (h *history) Sync() error {
	return nil
}

func (h *history) lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.buf))
	copy(out, h.buf)
	return out
}
