package statsd

// Config represents configuration options for the statsd reporter.
type Config struct {
	Enabled      bool    `yaml:"enabled" mapstructure:"enabled" default:"false"`
	Address      string  `yaml:"address" mapstructure:"address" default:"127.0.0.1:8125"`
	Prefix       string  `yaml:"prefix" mapstructure:"prefix" default:"scout"`
	SamplingRate float64 `yaml:"sampling_rate" mapstructure:"sampling_rate" default:"1"`
}
