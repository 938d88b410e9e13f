package app

import (
	"flag"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/zachfi/zkit/pkg/util"
)

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway-url,omitempty"`
	Job            string `yaml:"job,omitempty"`
}

func (c *MetricsConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.PushgatewayURL, util.PrefixConfig(prefix, "pushgateway-url"), "", "Pushgateway to push the run metrics to when the run ends. Empty disables pushing.")
	f.StringVar(&c.Job, util.PrefixConfig(prefix, "job"), metricsNamespace, "Job label used when pushing metrics.")
}

// pushMetrics sends the metrics of this run together with the process
// defaults to the configured Pushgateway.
func (a *App) pushMetrics() error {
	if a.cfg.Metrics.PushgatewayURL == "" {
		return nil
	}

	job := a.cfg.Metrics.Job
	if job == "" {
		job = metricsNamespace
	}

	err := push.New(a.cfg.Metrics.PushgatewayURL, job).
		Gatherer(prometheus.Gatherers{prometheus.DefaultGatherer, a.registry}).
		Push()
	if err != nil {
		return errors.Wrap(err, "failed to push metrics")
	}

	a.logger.Debug("pushed metrics", "url", a.cfg.Metrics.PushgatewayURL, "job", job)
	return nil
}
