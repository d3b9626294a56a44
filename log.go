package streampress

import "log/slog"

// Global logger for the package. Only finalization paths log: errors
// swallowed during implicit teardown have no caller left to report to.
var log = slog.Default()

// SetLogger configures the global logger
func SetLogger(l *slog.Logger) {
	log = l
}
