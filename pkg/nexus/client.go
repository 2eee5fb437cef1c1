// Package nexus fetches mod metadata from the NexusMods v1 API.
package nexus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/small-frappuccino/modsheet/pkg/log"
)

const (
	DefaultBaseURL = "https://api.nexusmods.com/v1"
	DefaultSiteURL = "https://www.nexusmods.com"
	DefaultGame    = "stardewvalley"
	DefaultTimeout = 10 * time.Second

	// UnknownName and NoSummary replace fields missing from the catalog response.
	UnknownName = "Mod desconocido"
	NoSummary   = "Sin descripción"
)

// ErrMissingAPIKey is returned by Mod when the client has no API key.
var ErrMissingAPIKey = errors.New("nexus api key not configured")

// StatusError is a non-200 reply from the catalog.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nexus api returned status %d", e.Code)
}

// Mod is the subset of catalog metadata stored in the sheet.
type Mod struct {
	ID      int
	Name    string
	Summary string
	Link    string
}

// Options configures a Client. Zero values fall back to the public NexusMods endpoints.
type Options struct {
	APIKey     string
	BaseURL    string
	SiteURL    string
	Game       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a minimal NexusMods API client.
type Client struct {
	apiKey  string
	baseURL string
	siteURL string
	game    string
	http    *http.Client
}

// NewClient builds a client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: strings.TrimRight(orDefault(opts.BaseURL, DefaultBaseURL), "/"),
		siteURL: strings.TrimRight(orDefault(opts.SiteURL, DefaultSiteURL), "/"),
		game:    orDefault(opts.Game, DefaultGame),
		http:    opts.HTTPClient,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

// Link returns the public page for mod id.
func (c *Client) Link(id int) string {
	return fmt.Sprintf("%s/%s/mods/%d", c.siteURL, c.game, id)
}

type modResponse struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Mod fetches mod id. No retries are made.
func (c *Client) Mod(ctx context.Context, id int) (Mod, error) {
	if c.apiKey == "" {
		return Mod{}, ErrMissingAPIKey
	}

	url := fmt.Sprintf("%s/games/%s/mods/%s.json", c.baseURL, c.game, strconv.Itoa(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Mod{}, fmt.Errorf("build nexus request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	logger := log.CatalogLogger().WithFields(map[string]any{"operation": "nexus_mod", "mod_id": id})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.ErrorWithErr("NexusMods request failed", err)
		return Mod{}, fmt.Errorf("fetch mod %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.WithField("status", resp.StatusCode).Warn("NexusMods returned non-200")
		return Mod{}, &StatusError{Code: resp.StatusCode}
	}

	var body modResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Mod{}, fmt.Errorf("decode mod %d: %w", id, err)
	}
	logger.WithField("duration", time.Since(start).String()).Debug("NexusMods request completed")

	return Mod{
		ID:      id,
		Name:    orDefault(body.Name, UnknownName),
		Summary: orDefault(body.Summary, NoSummary),
		Link:    c.Link(id),
	}, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
