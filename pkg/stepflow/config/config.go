// Package config loads debugger session configuration from YAML or
// JSON files and converts it into session options.
package config

import (
	"github.com/randalmurphal/stepflow/pkg/stepflow"
)

// SessionConfig is the declarative form of a session's tunable
// settings. Zero values are meaningful: use Default for the standard
// starting point.
type SessionConfig struct {
	// FlowID attaches sessions to a workflow identifier.
	FlowID string `yaml:"flow_id" json:"flow_id"`

	// Show surfaces passthrough print output.
	Show bool `yaml:"show" json:"show"`

	// StepMode pauses before every event.
	StepMode bool `yaml:"step_mode" json:"step_mode"`

	// AutoContinue answers control requests without user interaction.
	AutoContinue bool `yaml:"auto_continue" json:"auto_continue"`

	// Dedup enables duplicate event suppression.
	Dedup bool `yaml:"dedup" json:"dedup"`

	// DedupCacheSize bounds the seen-key cache. Zero means the
	// default size.
	DedupCacheSize int `yaml:"dedup_cache_size" json:"dedup_cache_size"`

	// Breakpoints seeds the initial breakpoint set with bare event
	// types.
	Breakpoints []string `yaml:"breakpoints" json:"breakpoints"`
}

// Default returns the standard session configuration: step mode and
// deduplication on, everything else off.
func Default() SessionConfig {
	return SessionConfig{
		StepMode: true,
		Dedup:    true,
	}
}

// Options converts the configuration into session options.
func (c SessionConfig) Options() []stepflow.Option {
	opts := []stepflow.Option{
		stepflow.WithShow(c.Show),
		stepflow.WithStepMode(c.StepMode),
		stepflow.WithAutoContinue(c.AutoContinue),
		stepflow.WithDedup(c.Dedup),
	}
	if c.FlowID != "" {
		opts = append(opts, stepflow.WithFlowID(c.FlowID))
	}
	if c.DedupCacheSize > 0 {
		opts = append(opts, stepflow.WithDedupCacheSize(c.DedupCacheSize))
	}
	if len(c.Breakpoints) > 0 {
		bps := make([]stepflow.Breakpoint, 0, len(c.Breakpoints))
		for _, eventType := range c.Breakpoints {
			bps = append(bps, stepflow.EventBreakpoint(eventType))
		}
		opts = append(opts, stepflow.WithBreakpoints(bps...))
	}
	return opts
}
