package google

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"keyword-scraper/config"
	"keyword-scraper/utils"
)

const suggestBaseURL = "https://suggestqueries.google.com"

// SuggestClient fetches autocomplete suggestions from the type-ahead
// endpoint. Unlike PAA and PASF this needs no browser: the endpoint returns
// already-clean suggestion strings.
type SuggestClient struct {
	http    *resty.Client
	country string
	ua      string
	logger  *utils.Logger
}

// NewSuggestClient creates a client configured for the given country.
func NewSuggestClient(cfg *config.Config, logger *utils.Logger) *SuggestClient {
	client := resty.New()
	client.SetBaseURL(suggestBaseURL)
	client.SetTimeout(15 * time.Second)

	return &SuggestClient{
		http:    client,
		country: strings.ToUpper(cfg.Country),
		ua:      randomUserAgent(),
		logger:  logger,
	}
}

// Fetch returns the suggestions for one keyword.
func (c *SuggestClient) Fetch(keyword string) Outcome {
	resp, err := c.http.R().
		SetHeader("User-Agent", c.ua).
		SetQueryParams(map[string]string{
			"client": "firefox",
			"hl":     "en-US",
			"gl":     c.country,
			"q":      keyword,
		}).
		Get("/complete/search")
	if err != nil {
		return Outcome{Err: fmt.Errorf("suggest request: %w", err)}
	}
	if resp.StatusCode() != http.StatusOK {
		return Outcome{Err: fmt.Errorf("suggest request: status %d", resp.StatusCode())}
	}

	items, err := parseSuggestResponse(resp.Body())
	if err != nil {
		return Outcome{Err: err}
	}

	c.logger.Debug("[google] Autocomplete for %q: %d suggestions", keyword, len(items))
	return Outcome{Items: items}
}

// parseSuggestResponse decodes the endpoint's [query, [suggestions...]]
// payload.
func parseSuggestResponse(body []byte) ([]string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("suggest payload: %w", err)
	}
	if len(payload) < 2 {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal(payload[1], &items); err != nil {
		return nil, fmt.Errorf("suggest payload: %w", err)
	}
	return items, nil
}
