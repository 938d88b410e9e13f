// Package azuracast fetches the station directory from an AzuraCast instance.
package azuracast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/zachfi/radiolist/pkg/station"
)

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 512

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a directory client. A nil httpClient gets one bounded by cfg.Timeout.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.With("module", "azuracast"),
	}
}

// Stations returns every station in directory order.
func (c *Client) Stations(ctx context.Context) ([]station.Station, error) {
	url := strings.TrimRight(c.cfg.URL, "/") + "/stations"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.cfg.UserAgent)

	c.logger.Debug("fetching station data", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch stations")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("station directory returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var stations []station.Station
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return nil, errors.Wrap(err, "failed to decode stations")
	}

	c.logger.Debug("fetched station data", "status", resp.StatusCode, "stations", len(stations))

	return stations, nil
}
