package azuracast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const stationsJSON = `[
  {"name":"Alpha","description":"First","genre":"Indie","url":"https://alpha.example","art":"https://alpha.example/art.jpg",
   "mounts":[{"url":"http://a/1","format":"mp3","bitrate":128,"is_default":true},
             {"url":"http://a/1.aac","format":"aac","bitrate":64,"is_default":false}]},
  {"name":"Beta","description":null,"genre":null,"url":null,"art":null,
   "mounts":[{"url":"http://b/1","format":"mp3","bitrate":null,"is_default":true}]}
]`

func TestStations(t *testing.T) {
	var gotPath, gotAccept, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stationsJSON))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL + "/api/", UserAgent: "test-agent", Timeout: time.Second}, nil, nil)

	stations, err := c.Stations(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/stations", gotPath)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, "test-agent", gotAgent)
	require.Len(t, stations, 2)

	require.Equal(t, "Alpha", stations[0].Name)
	require.Len(t, stations[0].Mounts, 2)
	require.Equal(t, 128, *stations[0].Mounts[0].Bitrate)

	require.Equal(t, "Beta", stations[1].Name)
	require.Empty(t, stations[1].Genre)
	require.Nil(t, stations[1].Mounts[0].Bitrate)
}

func TestStationsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: time.Second}, nil, nil)

	_, err := c.Stations(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
	require.Contains(t, err.Error(), "maintenance")
}

func TestStationsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, Timeout: time.Second}, nil, nil)

	_, err := c.Stations(context.Background())
	require.ErrorContains(t, err, "failed to decode stations")
}

func TestStationsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{URL: url, Timeout: time.Second}, nil, nil)

	_, err := c.Stations(context.Background())
	require.ErrorContains(t, err, "failed to fetch stations")
}
