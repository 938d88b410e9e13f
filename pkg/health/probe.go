package health

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Prober checks a single stream URL. Implementations must always return an
// outcome and must not block past their own timeout.
type Prober interface {
	Probe(ctx context.Context, url string) Outcome
}

// NewClient builds the HTTP client shared by the probes of a run. Streams are
// never drained, so connections are not kept alive.
func NewClient(cfg Config) *http.Client {
	cfg.applyDefaults()

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		DisableKeepAlives:     true,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
	}

	return &http.Client{Transport: transport}
}

// HTTPProber checks that a stream answers with a successful status and starts
// sending data within the configured timeout.
type HTTPProber struct {
	client *http.Client
	cfg    Config
}

func NewHTTPProber(cfg Config, client *http.Client) *HTTPProber {
	cfg.applyDefaults()
	if client == nil {
		client = NewClient(cfg)
	}

	return &HTTPProber{
		client: client,
		cfg:    cfg,
	}
}

// Probe connects to url and reads the first chunk of the stream. Only that
// first chunk is inspected, so a stream that stalls later still passes.
func (p *HTTPProber) Probe(ctx context.Context, url string) Outcome {
	start := time.Now()
	o := p.probe(ctx, url)
	o.Latency = time.Since(start)
	return o
}

func (p *HTTPProber) probe(ctx context.Context, url string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Unhealthy(fmt.Sprintf("invalid request: %v", err))
	}
	req.Header.Set("accept", "*/*")
	req.Header.Set("user-agent", p.cfg.UserAgent)
	req.Header.Set("icy-metadata", "0")

	resp, err := p.client.Do(req)
	if err != nil {
		return Unhealthy(p.reason(ctx, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		o := Unhealthy(fmt.Sprintf("unexpected status: %s", resp.Status))
		o.StatusCode = resp.StatusCode
		return o
	}

	buf := make([]byte, p.cfg.ReadBytes)
	n, err := io.ReadAtLeast(resp.Body, buf, 1)
	if n == 0 {
		if errors.Is(err, io.EOF) {
			return Unhealthy("stream closed before sending data")
		}
		return Unhealthy(p.reason(ctx, err))
	}

	if p.cfg.RequireFrameSync && frameSyncIndex(buf[:n]) < 0 {
		return Unhealthy(fmt.Sprintf("no mp3 frame sync in first %d bytes", n))
	}

	o := Healthy(resp.StatusCode)
	o.StreamName = resp.Header.Get("icy-name")
	return o
}

func (p *HTTPProber) reason(ctx context.Context, err error) string {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Sprintf("timeout after %s", p.cfg.Timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return "probe canceled"
	case err == nil:
		return "unknown error"
	}
	return err.Error()
}
