package logger

import "github.com/charmbracelet/log"

// LevelFromVerbosity maps the -v CLI flag (0=error, 1=info, 2=debug) onto a
// charmbracelet/log level, clamping out-of-range values to the nearest end.
func LevelFromVerbosity(v int) log.Level {
	switch {
	case v <= 0:
		return log.ErrorLevel
	case v == 1:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}
