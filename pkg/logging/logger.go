package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel overrides the default log level.
	EnvLogLevel = "PIXELXOR_LOG_LEVEL"
	// EnvJSONLog switches to JSON output when set to "1".
	EnvJSONLog = "PIXELXOR_JSON_LOG"

	DefaultLevel = "warn"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv(EnvJSONLog) == "1"

	// Prefix only human-readable output
	if !jsonFormat {
		output = NewPrefixWriter("🖼️  ", output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ResolveLevel picks the flag value, then the environment, then the default.
// The second return names where the level came from.
func ResolveLevel(flagLevel string) (string, string) {
	if lvl := strings.TrimSpace(flagLevel); lvl != "" {
		return lvl, "flag"
	}
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		return lvl, "env"
	}
	return DefaultLevel, "default"
}
