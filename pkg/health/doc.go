// Package health decides which streams are live enough to be published.
//
// A Prober performs one bounded liveness check against a stream URL: it
// connects, waits for a successful response and reads the first chunk of
// audio. The Coordinator fans probes out over every distinct URL of a run on
// a bounded worker pool and joins them into a Results map that is read-only
// once returned.
package health
