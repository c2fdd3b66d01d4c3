package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lolbin-monitor/internal/config"
	"lolbin-monitor/internal/model"
	"lolbin-monitor/internal/util"
)

// StatusError reports a non-success HTTP response from the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("backend http %d", e.Code) }

// Backend polls the detection agent's REST API for suspicious events.
type Backend struct {
	cfg    config.BackendConfig
	client *http.Client
}

func NewBackend(cfg config.BackendConfig) *Backend {
	to := cfg.Timeout
	if to == 0 {
		to = 5 * time.Second
	}
	return &Backend{cfg: cfg, client: util.NewHTTPClient(to)}
}

func (b *Backend) Name() string { return "backend" }

// Fetch returns the backend's current batch of suspicious-process alerts in
// the order the backend serves them. Failures are returned to the caller,
// which decides whether to log and carry on.
func (b *Backend) Fetch(ctx context.Context) ([]model.Alert, error) {
	u := strings.TrimRight(b.cfg.URL, "/") + "/events/suspicious"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := b.cfg.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch suspicious events: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var alerts []model.Alert
	if err := json.NewDecoder(resp.Body).Decode(&alerts); err != nil {
		return nil, fmt.Errorf("decode suspicious events: %w", err)
	}
	return alerts, nil
}
