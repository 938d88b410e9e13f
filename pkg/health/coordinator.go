package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zachfi/radiolist/pkg/station"
)

// Progress is reported each time a probe finishes.
type Progress struct {
	Done    int
	Total   int
	URL     string
	Outcome Outcome
}

type Coordinator struct {
	cfg     Config
	prober  Prober
	logger  *slog.Logger
	metrics *Metrics

	// OnProgress, if set, is called once per finished probe. Calls are
	// serialized and happen in completion order.
	OnProgress func(Progress)
}

func NewCoordinator(cfg Config, prober Prober, logger *slog.Logger, metrics *Metrics) *Coordinator {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		cfg:     cfg,
		prober:  prober,
		logger:  logger.With("module", "health"),
		metrics: metrics,
	}
}

// Check probes every distinct candidate URL exactly once and waits for all of
// them. The returned map has one entry per distinct URL.
func (c *Coordinator) Check(ctx context.Context, candidates []station.Candidate) Results {
	urls := station.DistinctURLs(candidates)
	outcomes := make([]Outcome, len(urls))

	c.logger.Info("starting health checks", "streams", len(urls), "concurrency", c.cfg.Concurrency, "timeout", c.cfg.Timeout)
	start := time.Now()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		done int
	)
	if c.cfg.Concurrency > 0 {
		g.SetLimit(c.cfg.Concurrency)
	}

	for i, url := range urls {
		g.Go(func() error {
			o := c.prober.Probe(ctx, url)
			outcomes[i] = o
			c.metrics.observe(o)

			mu.Lock()
			defer mu.Unlock()
			done++
			if c.OnProgress != nil {
				c.OnProgress(Progress{Done: done, Total: len(urls), URL: url, Outcome: o})
			}
			return nil
		})
	}
	_ = g.Wait()

	results := make(Results, len(urls))
	for i, url := range urls {
		results[url] = outcomes[i]
	}

	elapsed := time.Since(start)
	c.metrics.observeRun(elapsed.Seconds())
	c.logger.Info("health checks finished",
		"healthy", results.Count(StatusHealthy),
		"unhealthy", results.Count(StatusUnhealthy),
		"elapsed", elapsed,
	)

	return results
}

// LogProgress returns an OnProgress callback that logs every finished probe.
func LogProgress(logger *slog.Logger) func(Progress) {
	return func(p Progress) {
		logger.Info("checked stream",
			"done", p.Done,
			"total", p.Total,
			"url", p.URL,
			"status", p.Outcome.Status,
			"reason", p.Outcome.Reason,
			"latency", p.Outcome.Latency,
		)
	}
}
