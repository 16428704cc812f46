package statsd

import (
	"time"

	std "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/goto/salt/log"
)

// Reporter provides functions for reporting metrics. A nil Reporter, or one
// built with metrics disabled, silently drops everything, so callers never
// need to branch on whether metrics are configured.
type Reporter struct {
	client *std.Client
	logger log.Logger
	config Config
}

// Init validates the config and initializes the statsd client.
func Init(logger log.Logger, cfg Config) (*Reporter, error) {
	reporter := &Reporter{}
	if !cfg.Enabled {
		logger.Warn("statsd is disabled")
		return reporter, nil
	}

	client, err := std.New(cfg.Address,
		std.WithNamespace(cfg.Prefix),
		std.WithoutTelemetry())
	if err != nil {
		return nil, err
	}

	reporter.client = client
	reporter.logger = logger
	reporter.config = cfg
	return reporter, nil
}

// Close closes the statsd connection.
func (sd *Reporter) Close() {
	if sd != nil && sd.client != nil {
		_ = sd.client.Close()
	}
}

// Incr returns an increment counter metric.
func (sd *Reporter) Incr(name string) *Metric {
	return sd.metric(name, func(name string, tags []string, rate float64) error {
		if sd == nil || sd.client == nil {
			return nil
		}
		return sd.client.Incr(name, tags, rate)
	})
}

// Timing returns a timer metric.
func (sd *Reporter) Timing(name string, value time.Duration) *Metric {
	return sd.metric(name, func(name string, tags []string, rate float64) error {
		if sd == nil || sd.client == nil {
			return nil
		}
		return sd.client.Timing(name, value, tags, rate)
	})
}

func (sd *Reporter) metric(name string, publish func(string, []string, float64) error) *Metric {
	var (
		rate   = 1.0
		logger log.Logger
	)
	if sd != nil {
		if sd.config.SamplingRate > 0 {
			rate = sd.config.SamplingRate
		}
		logger = sd.logger
	}
	return &Metric{
		rate:        rate,
		logger:      logger,
		name:        name,
		publishFunc: publish,
	}
}
