package pto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is sent with calendar requests; the upstream rejects
// clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"

const maxErrorBody = 512

// ClientConfig configures the calendar client.
type ClientConfig struct {
	URL       string
	Username  string
	Password  string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches the PTO calendar over HTTP.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClient creates a calendar client. A nil httpClient gets one with
// cfg.Timeout (10s when unset).
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Fetch downloads the calendar and returns its requestList.
func (c *Client) Fetch(ctx context.Context) ([]Request, error) {
	if strings.TrimSpace(c.cfg.URL) == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building calendar request: %w", err)
	}
	if c.cfg.Username != "" || c.cfg.Password != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching calendar: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cal Calendar
	if err := json.NewDecoder(resp.Body).Decode(&cal); err != nil {
		return nil, fmt.Errorf("%w: decoding calendar: %v", ErrUpstream, err)
	}
	return cal.RequestList, nil
}

// Flatten expands requests into one Leave per (name, day), dropping
// duplicates. Dates that do not parse are counted and skipped.
func Flatten(requests []Request) ([]Leave, int) {
	var leaves []Leave
	invalid := 0
	seen := make(map[string]bool)
	for _, r := range requests {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			invalid += len(r.LeaveDates)
			continue
		}
		for _, raw := range r.LeaveDates {
			day, err := time.Parse(DateLayout, strings.TrimSpace(raw))
			if err != nil {
				invalid++
				continue
			}
			key := name + "\x00" + day.Format(DateLayout)
			if seen[key] {
				continue
			}
			seen[key] = true
			leaves = append(leaves, Leave{Name: name, Date: day})
		}
	}
	return leaves, invalid
}
