package statsd

import (
	"fmt"

	"github.com/goto/salt/log"
)

// Metric represents a single statsd metric being assembled.
type Metric struct {
	logger      log.Logger
	name        string
	rate        float64
	tags        map[string]string
	publishFunc func(name string, tags []string, rate float64) error
}

// Success tags the metric as successful.
func (m *Metric) Success() *Metric {
	return m.Tag("success", "true")
}

// Failure tags the metric as failed.
func (m *Metric) Failure() *Metric {
	return m.Tag("success", "false")
}

// Tag adds a tag to the metric.
func (m *Metric) Tag(key, val string) *Metric {
	if m == nil {
		return nil
	}

	if m.tags == nil {
		m.tags = map[string]string{}
	}
	m.tags[key] = val
	return m
}

// Publish publishes the metric with collected tags. Intended to be used
// with defer.
func (m *Metric) Publish() {
	if m == nil {
		return
	}

	ddTags := make([]string, 0, len(m.tags))
	for k, v := range m.tags {
		ddTags = append(ddTags, fmt.Sprintf("%s:%s", k, v))
	}

	go func() {
		if err := m.publishFunc(m.name, ddTags, m.rate); err != nil && m.logger != nil {
			m.logger.Warn("failed to publish metric", "name", m.name, "err", err)
		}
	}()
}
