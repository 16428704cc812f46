package search

import "time"

// Config represents configuration options for the searcher.
type Config struct {
	// DebounceInterval is the quiet period after the last keystroke
	// before a query is dispatched.
	DebounceInterval time.Duration `yaml:"debounce_interval" mapstructure:"debounce_interval" default:"300ms"`

	// MaxResults caps how many suggestions one query requests.
	MaxResults int `yaml:"max_results" mapstructure:"max_results" default:"10"`
}

func (c Config) debounceInterval() time.Duration {
	if c.DebounceInterval <= 0 {
		return 300 * time.Millisecond
	}
	return c.DebounceInterval
}

func (c Config) maxResults() int {
	if c.MaxResults <= 0 {
		return 10
	}
	return c.MaxResults
}
