// Package log provides the process-wide logger used by coredata's
// packages. It mirrors the teacher's pkg/util/log: a swappable
// go-kit/log logger plus level-tagged convenience wrappers.
package log

import (
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the package-wide logger. Callers that embed coredata into a
// larger process can call SetLogger to redirect it; everything else
// should log through Logger rather than constructing their own.
var Logger kitlog.Logger = newDefault()

func newDefault() kitlog.Logger {
	l := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	l = kitlog.With(l, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)
	return level.NewFilter(l, level.AllowInfo())
}

// SetLogger replaces the package-wide logger. Not safe to call
// concurrently with logging from another goroutine; callers should set
// this once at process start.
func SetLogger(l kitlog.Logger) {
	Logger = l
}

// SetLevel narrows Logger's output to the named level ("debug", "info",
// "warn", "error"); unknown names fall back to info.
func SetLevel(name string) {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	base = kitlog.With(base, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.DefaultCaller)

	switch name {
	case "debug":
		Logger = level.NewFilter(base, level.AllowDebug())
	case "warn":
		Logger = level.NewFilter(base, level.AllowWarn())
	case "error":
		Logger = level.NewFilter(base, level.AllowError())
	default:
		Logger = level.NewFilter(base, level.AllowInfo())
	}
}
