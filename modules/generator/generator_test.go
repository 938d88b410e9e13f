package generator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/zachfi/radiolist/pkg/health"
	"github.com/zachfi/radiolist/pkg/playlist"
	"github.com/zachfi/radiolist/pkg/station"
)

type fakeDirectory struct {
	stations []station.Station
	err      error
}

func (d *fakeDirectory) Stations(context.Context) ([]station.Station, error) {
	return d.stations, d.err
}

type fakeChecker struct {
	results health.Results
	calls   int
}

func (c *fakeChecker) Check(_ context.Context, candidates []station.Candidate) health.Results {
	c.calls++
	return c.results
}

func intPtr(i int) *int { return &i }

func testStations() []station.Station {
	return []station.Station{
		{
			Name:        "Alpha",
			Description: "Indie all day",
			Genre:       "Indie",
			URL:         "https://alpha.example",
			Art:         "https://alpha.example/art.png",
			Mounts: []station.Mount{
				{URL: "http://a/1", Format: "mp3", Bitrate: intPtr(128), IsDefault: true},
				{URL: "http://a/1.aac", Format: "aac", Bitrate: intPtr(64)},
			},
		},
		{
			Name:   "Beta",
			Mounts: []station.Mount{{URL: "http://a/2", Format: "mp3"}},
		},
	}
}

func testLogger() slog.Logger {
	return *slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestGenerator(t *testing.T, cfg Config, dir Directory, checker Checker) *Generator {
	t.Helper()

	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	g, err := New(cfg, testLogger(), dir, checker, prometheus.NewRegistry())
	require.NoError(t, err)

	return g
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestGenerate(t *testing.T) {
	checker := &fakeChecker{results: health.Results{
		"http://a/1": health.Healthy(200),
		"http://a/2": health.Unhealthy("timeout"),
	}}
	g := newTestGenerator(t, Config{Output: "radio"}, &fakeDirectory{stations: testStations()}, checker)

	require.NoError(t, g.Generate(context.Background()))
	require.Equal(t, 1, checker.calls)

	require.Equal(t, "#EXTM3U\n#EXTINF:-1,Alpha - 128kbps\nhttp://a/1\n", readFile(t, filepath.Join(g.cfg.Dir, "radio.m3u")))
	require.Equal(t, "[playlist]\nFile1=http://a/1\nTitle1=Alpha\nLength1=-1\nNumberOfEntries=1\nVersion=2\n", readFile(t, filepath.Join(g.cfg.Dir, "radio.pls")))

	xspf := readFile(t, filepath.Join(g.cfg.Dir, "radio.xspf"))
	require.Contains(t, xspf, "<location>http://a/1</location>")
	require.Contains(t, xspf, `<meta rel="genre">Indie</meta>`)
	require.Contains(t, xspf, "<info>https://alpha.example</info>")
	require.NotContains(t, xspf, "http://a/2")

	entries, err := os.ReadDir(g.cfg.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestGenerateSelectedFormats(t *testing.T) {
	g := newTestGenerator(t, Config{Output: "radio", Formats: []string{"pls"}}, &fakeDirectory{stations: testStations()}, nil)

	require.NoError(t, g.Generate(context.Background()))

	entries, err := os.ReadDir(g.cfg.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "radio.pls", entries[0].Name())

	// Without a checker every stream is published.
	require.Contains(t, readFile(t, filepath.Join(g.cfg.Dir, "radio.pls")), "NumberOfEntries=2\n")

	require.Equal(t, 2.0, testutil.ToFloat64(g.metrics.entries.WithLabelValues("pls")))
	require.Equal(t, 1.0, testutil.ToFloat64(g.metrics.writes.WithLabelValues("pls", "success")))
	require.Equal(t, 2.0, testutil.ToFloat64(g.metrics.stations))
	require.Equal(t, 2.0, testutil.ToFloat64(g.metrics.streams))
}

func TestGenerateListStreams(t *testing.T) {
	checker := &fakeChecker{}
	g := newTestGenerator(t, Config{ListStreams: true}, &fakeDirectory{stations: testStations()}, checker)

	var out bytes.Buffer
	g.out = &out

	require.NoError(t, g.Generate(context.Background()))
	require.Equal(t, "http://a/1\nhttp://a/2\n", out.String())
	require.Zero(t, checker.calls)

	entries, err := os.ReadDir(g.cfg.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGenerateDirectoryFailure(t *testing.T) {
	checker := &fakeChecker{}
	g := newTestGenerator(t, Config{}, &fakeDirectory{err: errors.New("connection refused")}, checker)

	err := g.Generate(context.Background())
	require.ErrorContains(t, err, "failed to fetch station directory")
	require.ErrorContains(t, err, "connection refused")
	require.Zero(t, checker.calls)

	entries, err := os.ReadDir(g.cfg.Dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGeneratePartialFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the m3u file makes only that write fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "radio.m3u"), 0o755))

	g := newTestGenerator(t, Config{Output: "radio", Dir: dir}, &fakeDirectory{stations: testStations()}, nil)

	err := g.Generate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "wrote 2 of 3 playlists")
	require.Contains(t, err.Error(), "radio.m3u")

	require.FileExists(t, filepath.Join(dir, "radio.xspf"))
	require.FileExists(t, filepath.Join(dir, "radio.pls"))
	require.Equal(t, 1.0, testutil.ToFloat64(g.metrics.writes.WithLabelValues("m3u", "error")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestGenerateWithProbes(t *testing.T) {
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xFF, 0xFB, 0x90, 0x64})
	}))
	defer live.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	stations := []station.Station{
		{Name: "Live", Mounts: []station.Mount{{URL: live.URL + "/live", Format: "mp3"}}},
		{Name: "Dead", Mounts: []station.Mount{{URL: deadURL + "/dead", Format: "mp3"}}},
		{Name: "Live Again", Mounts: []station.Mount{{URL: live.URL + "/live", Format: "mp3"}}},
	}

	hcfg := health.Config{Timeout: time.Second}
	coordinator := health.NewCoordinator(hcfg, health.NewHTTPProber(hcfg, nil), nil, nil)

	g := newTestGenerator(t, Config{Output: "radio", Formats: []string{"m3u"}}, &fakeDirectory{stations: stations}, coordinator)
	require.NoError(t, g.Generate(context.Background()))

	entries, err := playlist.ParseM3U(strings.NewReader(readFile(t, filepath.Join(g.cfg.Dir, "radio.m3u"))))
	require.NoError(t, err)
	require.Equal(t, []playlist.Entry{
		{URL: live.URL + "/live", Title: "Live"},
		{URL: live.URL + "/live", Title: "Live Again"},
	}, entries)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Config{Formats: []string{"wav"}}, testLogger(), &fakeDirectory{}, nil, prometheus.NewRegistry())
	require.Error(t, err)

	_, err = New(Config{}, testLogger(), nil, nil, prometheus.NewRegistry())
	require.Error(t, err)
}
