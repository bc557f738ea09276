// Package logging provides config-driven categorized file-based logging for
// patternpick. Logs are written to .patternpick/logs/ with one file per
// category, backed by zap. Logging is controlled by the logging section of
// the config file - when debug mode is off, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config resolution
	CategoryCatalog Category = "catalog" // Pattern catalog scanning and watching
	CategoryLLM     Category = "llm"     // Provider API calls and streaming
	CategorySuggest Category = "suggest" // Suggestion cycle: prompt, stream, validate
	CategoryUI      Category = "ui"      // TUI lifecycle and interactions
)

// loggingConfig mirrors the logging section of config.Config to avoid a
// circular import with the config package.
type loggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
	JSONFormat bool            `yaml:"json_format"`
}

type configFile struct {
	Logging loggingConfig `yaml:"logging"`
}

// Logger is a category-scoped logger writing to its own file.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu        sync.RWMutex
	loggers   = make(map[Category]*Logger)
	logsDir   string
	workspace string
	cfg       loggingConfig
	level     zapcore.Level
	nop       = &Logger{sugar: zap.NewNop().Sugar()}
)

// Initialize sets up the logging directory and loads the logging config.
// Call once at startup with the workspace directory (usually ~/.patternpick).
// When debug mode is disabled this is a silent no-op.
func Initialize(ws string) error {
	if ws == "" {
		return fmt.Errorf("workspace path required")
	}

	mu.Lock()
	workspace = ws
	logsDir = filepath.Join(workspace, "logs")
	loadConfigLocked()
	mu.Unlock()

	if !cfg.DebugMode {
		return nil
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== patternpick logging initialized ===")
	boot.Info("Workspace: %s", workspace)
	boot.Info("Log level: %s", level.String())
	return nil
}

// loadConfigLocked reads the logging section of config.yaml. Missing file
// means production mode (no logging). Caller holds mu.
func loadConfigLocked() {
	cfg = loggingConfig{}
	level = zapcore.InfoLevel

	data, err := os.ReadFile(filepath.Join(workspace, "config.yaml"))
	if err != nil {
		return
	}
	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not parse config: %v\n", err)
		return
	}
	cfg = cf.Logging

	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
}

// Get returns the logger for a category, creating it on first use.
// Returns a no-op logger when logging is disabled or the category is
// filtered out.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	enabled := cfg.DebugMode && categoryEnabled(category)
	mu.RUnlock()

	if !enabled {
		return nop
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l, err := newFileLogger(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log for %s: %v\n", category, err)
		return nop
	}
	loggers[category] = l
	return l
}

// categoryEnabled checks the per-category filter. An empty filter map means
// all categories are enabled.
func categoryEnabled(category Category) bool {
	if len(cfg.Categories) == 0 {
		return true
	}
	enabled, ok := cfg.Categories[string(category)]
	return ok && enabled
}

func newFileLogger(category Category) (*Logger, error) {
	path := filepath.Join(logsDir, string(category)+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if cfg.JSONFormat {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(f), level)
	z := zap.New(core).Named(string(category))
	return &Logger{category: category, sugar: z.Sugar()}, nil
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warn-level message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error-level message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes all open category loggers. Called on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
}

// Reset closes all loggers and clears state. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
	loggers = make(map[Category]*Logger)
	cfg = loggingConfig{}
	workspace = ""
	logsDir = ""
}
