// Package telemetry is the reconciler's ambient logging layer. It is
// grounded on the leveled, tag-based logging convention used across
// the BringYour connect stack (connect/log.go, connect/trace.go):
// numeric levels gate a LogFunction closure, and sub-loggers nest a tag
// onto a parent logger rather than building a new one from scratch.
// The teacher package (resorch) does no logging of its own -- it is a
// pure library that reports failure only through returned errors -- so
// this concern is grounded on the wider example pack instead, with
// glog swapped in for the actual sink.
package telemetry

import "github.com/golang/glog"

// Logging levels, in the same convention as connect/log.go: lower
// numbers are more urgent and are never filtered out by a reasonable
// GlobalLevel setting.
const (
	LevelUrgent = 0
	LevelInfo   = 50
	LevelDebug  = 100
)

// GlobalLevel gates every LogFunction produced by LogFn/SubLogFn: a
// call is emitted only when its level is <= GlobalLevel.
var GlobalLevel = LevelInfo

// LogFunction is a tagged, leveled log statement.
type LogFunction func(format string, args ...any)

// LogFn builds a top-level LogFunction at the given level, tagged with
// tag, backed by glog.
func LogFn(level int, tag string) LogFunction {
	return func(format string, args ...any) {
		if level > GlobalLevel {
			return
		}
		glog.Infof(tag+": "+format, args...)
	}
}

// SubLogFn nests tag onto an existing LogFunction, gated by its own
// level independent of the parent's.
func SubLogFn(level int, log LogFunction, tag string) LogFunction {
	return func(format string, args ...any) {
		if level > GlobalLevel {
			return
		}
		log(tag+": "+format, args...)
	}
}
