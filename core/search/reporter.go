package search

import (
	"context"

	"github.com/goto/salt/log"
	"github.com/goto/scout/pkg/statsd"
)

// LogReporter surfaces search failures through the logger and counts them
// in statsd. It satisfies Reporter.
type LogReporter struct {
	logger  log.Logger
	metrics *statsd.Reporter
}

func NewLogReporter(logger log.Logger, metrics *statsd.Reporter) *LogReporter {
	return &LogReporter{
		logger:  logger,
		metrics: metrics,
	}
}

func (r *LogReporter) Report(_ context.Context, err error) {
	r.metrics.Incr("search_errors").Publish()
	r.logger.Error("entity search failed", "err", err)
}
