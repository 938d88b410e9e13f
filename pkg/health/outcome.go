package health

import (
	"time"

	"github.com/zachfi/radiolist/pkg/station"
)

// Status is the verdict of a health check.
type Status int

const (
	StatusUnhealthy Status = iota
	StatusHealthy
	// StatusSkipped marks a URL that was never probed because checking was
	// disabled. It is published like a healthy stream.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusSkipped:
		return "skipped"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

const skippedReason = "skipped"

// Outcome is the result of checking one stream URL.
type Outcome struct {
	Status Status
	// Reason is always set for unhealthy outcomes.
	Reason     string
	StatusCode int
	Latency    time.Duration
	// StreamName is the icy-name announced by the server, if any.
	StreamName string
}

// OK reports whether the stream may be published.
func (o Outcome) OK() bool {
	return o.Status == StatusHealthy || o.Status == StatusSkipped
}

func Healthy(statusCode int) Outcome {
	return Outcome{Status: StatusHealthy, StatusCode: statusCode}
}

func Unhealthy(reason string) Outcome {
	if reason == "" {
		reason = "unknown error"
	}
	return Outcome{Status: StatusUnhealthy, Reason: reason}
}

func Skipped() Outcome {
	return Outcome{Status: StatusSkipped, Reason: skippedReason}
}

// Results maps a stream URL to its outcome.
type Results map[string]Outcome

// Healthy reports whether url has an outcome that may be published. URLs that
// were never checked are not healthy.
func (r Results) Healthy(url string) bool {
	o, ok := r[url]
	return ok && o.OK()
}

// Count returns how many URLs ended with the given status.
func (r Results) Count(s Status) int {
	n := 0
	for _, o := range r {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Skip marks every candidate URL as skipped without touching the network.
func Skip(candidates []station.Candidate) Results {
	results := make(Results, len(candidates))
	for _, url := range station.DistinctURLs(candidates) {
		results[url] = Skipped()
	}
	return results
}
