package config

import (
	"time"

	"git.home.luguber.info/inful/docpub/internal/retry"
)

// RetryConfig holds retry policy knobs for transient publish failures.
// Generation is never retried.
type RetryConfig struct {
	MaxRetries   *int   `yaml:"max_retries,omitempty"`   // default 2
	Backoff      string `yaml:"backoff,omitempty"`       // fixed|linear|exponential (default linear)
	InitialDelay string `yaml:"initial_delay,omitempty"` // duration string (default 1s)
	MaxDelay     string `yaml:"max_delay,omitempty"`     // cap for growth (default 30s)
}

func (r *RetryConfig) applyDefaults() {
	if r.Backoff == "" {
		r.Backoff = string(retry.BackoffLinear)
	}
	if r.InitialDelay == "" {
		r.InitialDelay = "1s"
	}
	if r.MaxDelay == "" {
		r.MaxDelay = "30s"
	}
}

// Policy converts the raw config into a retry.Policy, falling back to defaults
// for unparsable durations.
func (r RetryConfig) Policy() retry.Policy {
	initial, _ := time.ParseDuration(r.InitialDelay)
	maxDelay, _ := time.ParseDuration(r.MaxDelay)
	maxRetries := 2
	if r.MaxRetries != nil {
		maxRetries = *r.MaxRetries
	}
	return retry.NewPolicy(retry.BackoffMode(r.Backoff), initial, maxDelay, maxRetries)
}
