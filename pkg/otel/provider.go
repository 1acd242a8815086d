package otel

import (
	"os"
	"strconv"
)

const instrumentationName = "github.com/adrianliechti/narrator"

var (
	EnableDebug     = enabled("NARRATOR_DEBUG", "DEBUG")
	EnableTelemetry = enabled("NARRATOR_TELEMETRY", "TELEMETRY") || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
)

// enabled reports whether the first set variable is truthy. Values that are
// not booleans count as true, so DEBUG=yes works.
func enabled(names ...string) bool {
	for _, name := range names {
		value := os.Getenv(name)

		if value == "" {
			continue
		}

		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}

		return true
	}

	return false
}

// Observable marks providers already wrapped with tracing and metrics.
type Observable interface {
	otelSetup()
}
