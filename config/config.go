// Package config loads the declarative run options for cmd/reconcile
// from YAML, in the same load-then-unmarshal style as resorch's
// examples/05_yaml_to_specs/main.go.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tonyjiang88215/react/telemetry"
)

// RunOptions configures a demo reconciliation run.
type RunOptions struct {
	// Mode selects the reconciler variant: "mount", "update", or
	// "in-place" (spec §4.1).
	Mode string `yaml:"mode"`
	// DevWarnings enables the duplicate-key scan (spec §7).
	DevWarnings bool `yaml:"devWarnings"`
	// LogLevel is one of "urgent", "info", or "debug".
	LogLevel string `yaml:"logLevel"`
	// GraphFormat selects the devtools export format used by the graph
	// subcommand: "mermaid" for Mermaid, anything else (including
	// empty) for DOT.
	GraphFormat string `yaml:"graphFormat"`
}

// DefaultRunOptions are used when no config file is given.
func DefaultRunOptions() RunOptions {
	return RunOptions{Mode: "update", LogLevel: "info"}
}

// Load reads and parses a YAML run-options file at path.
func Load(path string) (RunOptions, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return RunOptions{}, fmt.Errorf("read config %s: %w", path, err)
	}
	opts := DefaultRunOptions()
	if err := yaml.Unmarshal(payload, &opts); err != nil {
		return RunOptions{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

// LogLevelValue translates LogLevel to its telemetry numeric constant,
// falling back to telemetry.LevelInfo for an unrecognized or empty
// value.
func (o RunOptions) LogLevelValue() int {
	switch o.LogLevel {
	case "urgent":
		return telemetry.LevelUrgent
	case "debug":
		return telemetry.LevelDebug
	default:
		return telemetry.LevelInfo
	}
}
