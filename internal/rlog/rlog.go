// Package rlog centralizes the renderer's diagnostic logging so every
// subsystem's warnings share one prefix and destination, matching this
// codebase's terse fmt.Printf/fmt.Errorf call-site style without pulling in
// a structured-logging framework the reference renderer never reaches for.
package rlog

import (
	"log"
	"os"
)

var Logger = log.New(os.Stderr, "", log.LstdFlags)

// Warnf logs a subsystem-prefixed warning, e.g. Warnf("rhi", "unknown uniform %q", name).
func Warnf(subsystem, format string, args ...any) {
	Logger.Printf(subsystem+": "+format, args...)
}
