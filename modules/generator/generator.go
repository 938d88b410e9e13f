// Package generator runs the playlist pipeline once: fetch the station
// directory, probe the streams and write one file per playlist format.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/grafana/dskit/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zachfi/zkit/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zachfi/radiolist/pkg/health"
	"github.com/zachfi/radiolist/pkg/playlist"
	"github.com/zachfi/radiolist/pkg/station"
)

var module = "generator"

var tracer trace.Tracer = otel.Tracer("github.com/zachfi/radiolist/modules/generator")

// Directory lists the stations of the network.
type Directory interface {
	Stations(ctx context.Context) ([]station.Station, error)
}

// Checker decides which stream URLs are healthy.
type Checker interface {
	Check(ctx context.Context, candidates []station.Candidate) health.Results
}

type Generator struct {
	services.Service
	cfg       *Config
	logger    *slog.Logger
	directory Directory
	checker   Checker
	encoders  []playlist.Encoder
	metrics   *metrics

	// out receives the stream list in list-streams mode.
	out io.Writer
}

// New creates and returns a new Generator. A nil checker publishes every
// stream without probing it.
func New(cfg Config, logger slog.Logger, directory Directory, checker Checker, reg prometheus.Registerer) (*Generator, error) {
	if directory == nil {
		return nil, errors.New("no station directory configured")
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}

	formats, err := playlist.ParseFormats(cfg.Formats)
	if err != nil {
		return nil, err
	}

	opts := playlist.Options{Title: cfg.Title, Creator: cfg.Creator}
	encoders := make([]playlist.Encoder, 0, len(formats))
	for _, f := range formats {
		enc, err := playlist.NewEncoder(f, opts)
		if err != nil {
			return nil, err
		}
		encoders = append(encoders, enc)
	}

	g := &Generator{
		cfg:       &cfg,
		logger:    logger.With("module", module),
		directory: directory,
		checker:   checker,
		encoders:  encoders,
		metrics:   newMetrics(reg),
		out:       os.Stdout,
	}

	g.Service = services.NewBasicService(nil, g.running, nil)

	return g, nil
}

func (g *Generator) running(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "generate")
	return tracing.ErrHandler(span, g.Generate(ctx), "playlist generation failed", g.logger)
}

// Generate runs the pipeline once. Each requested format is attempted even
// when another one fails; any failure is returned.
func (g *Generator) Generate(ctx context.Context) error {
	logger := g.logger.With("run", uuid.NewString())

	stations, err := g.fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch station directory: %w", err)
	}

	candidates := station.Extract(stations, g.cfg.StreamFormat)
	g.metrics.stations.Set(float64(len(stations)))
	g.metrics.streams.Set(float64(len(candidates)))
	logger.Info("fetched station directory", "stations", len(stations), "streams", len(candidates), "format", g.cfg.StreamFormat)

	if g.cfg.ListStreams {
		for _, url := range station.URLs(candidates) {
			if _, err := fmt.Fprintln(g.out, url); err != nil {
				return fmt.Errorf("failed to list streams: %w", err)
			}
		}
		return nil
	}

	results := g.check(ctx, logger, candidates)

	var (
		written []string
		errs    []error
	)
	for _, enc := range g.encoders {
		path, err := g.write(ctx, enc, candidates, results)
		if err != nil {
			g.metrics.writes.WithLabelValues(string(enc.Format()), "error").Inc()
			logger.Error("failed to write playlist", "format", enc.Format(), "err", err)
			errs = append(errs, err)
			continue
		}
		g.metrics.writes.WithLabelValues(string(enc.Format()), "success").Inc()
		written = append(written, path)
	}

	logger.Info("created playlists", "count", len(written), "files", written)

	if len(errs) > 0 {
		return fmt.Errorf("wrote %d of %d playlists: %w", len(written), len(g.encoders), errors.Join(errs...))
	}

	return nil
}

func (g *Generator) fetch(ctx context.Context) ([]station.Station, error) {
	ctx, span := tracer.Start(ctx, "fetch")
	stations, err := g.directory.Stations(ctx)
	return stations, tracing.ErrHandler(span, err, "failed to fetch stations", nil)
}

func (g *Generator) check(ctx context.Context, logger *slog.Logger, candidates []station.Candidate) health.Results {
	if g.checker == nil {
		logger.Info("health checks skipped")
		return health.Skip(candidates)
	}

	ctx, span := tracer.Start(ctx, "health")
	defer span.End()

	results := g.checker.Check(ctx, candidates)
	for _, url := range station.DistinctURLs(candidates) {
		o := results[url]
		if o.OK() {
			logger.Debug("stream ok", "url", url, "status_code", o.StatusCode, "latency", o.Latency)
			continue
		}
		logger.Warn("stream failed", "url", url, "reason", o.Reason)
	}

	return results
}

func (g *Generator) write(ctx context.Context, enc playlist.Encoder, candidates []station.Candidate, results health.Results) (string, error) {
	_, span := tracer.Start(ctx, "write-"+string(enc.Format()))
	path := filepath.Join(g.cfg.Dir, g.cfg.Output+enc.Format().Extension())

	data, err := enc.Encode(candidates, results)
	if err != nil {
		return path, tracing.ErrHandler(span, fmt.Errorf("failed to encode %s playlist: %w", enc.Format(), err), "encode", nil)
	}

	if err := writeFile(path, data); err != nil {
		return path, tracing.ErrHandler(span, fmt.Errorf("failed to write %s: %w", path, err), "write", nil)
	}

	entries := 0
	for _, c := range candidates {
		if results.Healthy(c.URL) {
			entries++
		}
	}
	g.metrics.entries.WithLabelValues(string(enc.Format())).Set(float64(entries))
	g.logger.Debug("wrote playlist", "path", path, "entries", entries, "bytes", len(data))

	return path, tracing.ErrHandler(span, nil, "", nil)
}
