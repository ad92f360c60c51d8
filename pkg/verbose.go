package dirchecksums

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and carries function entry/exit records
const LevelTrace = slog.Level(-8)

var globalVerboseLevel int
var debugFlags map[string]bool

var logLevel = new(slog.LevelVar)
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

func init() {
	logLevel.Set(slog.LevelWarn)
}

// SetLogger replaces the package logger. The handler should honour LogLevel().
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger
func Logger() *slog.Logger {
	return logger
}

// LogLevel returns the level variable driven by SetVerboseLevel, for use in handler options
func LogLevel() *slog.LevelVar {
	return logLevel
}

// SetVerboseLevel sets the global verbose level.
// 0 = warnings only, 1 = info, 2 = debug, 3 = trace
func SetVerboseLevel(level int) {
	globalVerboseLevel = level
	switch {
	case level <= 0:
		logLevel.Set(slog.LevelWarn)
	case level == 1:
		logLevel.Set(slog.LevelInfo)
	case level == 2:
		logLevel.Set(slog.LevelDebug)
	default:
		logLevel.Set(LevelTrace)
	}
}

// GetVerboseLevel returns the current verbose level
func GetVerboseLevel() int {
	return globalVerboseLevel
}

// VerboseEnter logs function entry at level 3+ and returns a defer function for exit logging
func VerboseEnter() func() {
	if globalVerboseLevel < 3 {
		return func() {}
	}

	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return func() {}
	}

	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx != -1 {
		funcName = funcName[idx+1:]
	}

	ctx := context.Background()
	logger.Log(ctx, LevelTrace, "entering function", slog.String("func", funcName))
	return func() {
		logger.Log(ctx, LevelTrace, "exiting function", slog.String("func", funcName))
	}
}

// VerboseLog logs a formatted message if the verbose level is at least level
func VerboseLog(level int, format string, args ...interface{}) {
	if globalVerboseLevel < level {
		return
	}
	msg := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	switch level {
	case 1:
		logger.Info(msg)
	case 2:
		logger.Debug(msg)
	default:
		logger.Log(context.Background(), LevelTrace, msg)
	}
}

// SetDebugFlags sets the debug flags from a comma-separated string
// Supports both simple flags ("walk,hash") and key:value format ("walk:true,hash:false")
func SetDebugFlags(flagsStr string) {
	debugFlags = make(map[string]bool)
	if flagsStr == "" {
		return
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(parts[0])
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "false", "0", "no", "off":
				flagValue = false
			}
		}

		debugFlags[flagName] = flagValue
	}
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func IsDebugEnabled(flag string) bool {
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}

// debugLog emits a record for an enabled debug flag at the active threshold,
// so flags work regardless of the verbose level
func debugLog(flag, msg string, args ...any) {
	if IsDebugEnabled(flag) {
		level := max(logLevel.Level(), slog.LevelDebug)
		logger.Log(context.Background(), level, msg, append([]any{slog.String("area", flag)}, args...)...)
	}
}
