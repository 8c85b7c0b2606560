package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/squadtools/squad-roulette/internal/model"
)

// DefaultBaseURL is the public BattleMetrics servers endpoint
const DefaultBaseURL = "https://api.battlemetrics.com/servers"

// Fixed query parameters for the first page request
const (
	GameFilter   = "squad"
	StatusFilter = "online"
	PageSize     = 100
	SortOrder    = "-players"
)

// MaxPages bounds worst-case fetch latency regardless of how many pages the
// source advertises
const MaxPages = 5

// DefaultTimeout applies when no HTTP client is supplied
const DefaultTimeout = 15 * time.Second

// euCountries is the fixed allow-list of two-letter codes; records from any
// other country are dropped. Not externally configurable.
var euCountries = map[string]struct{}{
	"DE": {}, "FR": {}, "PL": {}, "GB": {}, "UA": {}, "NL": {},
	"CZ": {}, "SK": {}, "IT": {}, "ES": {}, "AT": {}, "BE": {},
	"DK": {}, "SE": {}, "NO": {}, "FI": {}, "IE": {}, "TR": {},
}

// API response shapes mirror the BattleMetrics JSON:API payload.
type apiDetails struct {
	Map      *string `json:"map"`
	GameMode *string `json:"gameMode"`
}

type apiAttributes struct {
	Name       string     `json:"name"`
	Players    int        `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`
	Details    apiDetails `json:"details"`
	Country    *string    `json:"country"`
}

type apiServer struct {
	Attributes apiAttributes `json:"attributes"`
}

type apiLinks struct {
	Next string `json:"next"`
}

type apiPage struct {
	Data  []apiServer `json:"data"`
	Links *apiLinks   `json:"links"`
}

// Client retrieves pages of eligible servers from the listing source
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a listing client. A nil httpClient and empty baseURL
// fall back to sensible defaults.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// FetchServers walks the paginated listing and returns every eligible server
// within the player-count range. It blocks for up to MaxPages sequential
// requests and must be called off the UI path. Any transport, status, or
// decode failure ends pagination; records from earlier pages are kept.
func (c *Client) FetchServers(ctx context.Context, minPlayers, maxPlayers int) []model.ServerRecord {
	servers := make([]model.ServerRecord, 0, PageSize)
	next := c.firstPageURL(minPlayers, maxPlayers)

	for page := 1; next != "" && page <= MaxPages; page++ {
		records, nextURL, err := c.fetchPage(ctx, next)
		if err != nil {
			log.Printf("Listing fetch stopped at page %d: %v", page, err)
			break
		}
		servers = append(servers, records...)
		next = nextURL
	}

	return servers
}

// firstPageURL builds the base query; follow-up pages use the server-supplied
// next link verbatim.
func (c *Client) firstPageURL(minPlayers, maxPlayers int) string {
	params := url.Values{}
	params.Set("filter[game]", GameFilter)
	params.Set("filter[status]", StatusFilter)
	params.Set("page[size]", strconv.Itoa(PageSize))
	params.Set("sort", SortOrder)
	params.Set("filter[players][min]", strconv.Itoa(minPlayers))
	params.Set("filter[players][max]", strconv.Itoa(maxPlayers))
	return c.baseURL + "?" + params.Encode()
}

// fetchPage requests a single page and returns its eligible records plus the
// next-page URL, empty when pagination is done.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]model.ServerRecord, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var page apiPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("decode page: %w", err)
	}

	records := make([]model.ServerRecord, 0, len(page.Data))
	for _, server := range page.Data {
		record, ok := toRecord(server.Attributes)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	next := ""
	if page.Links != nil {
		next = page.Links.Next
	}
	return records, next, nil
}

// toRecord applies field defaults and the country allow-list. It returns
// false for servers outside the allow-list.
func toRecord(attr apiAttributes) (model.ServerRecord, bool) {
	country := model.UnknownCountry
	if attr.Country != nil {
		country = *attr.Country
	}
	if _, ok := euCountries[country]; !ok {
		return model.ServerRecord{}, false
	}

	mapName := model.UnknownMap
	if attr.Details.Map != nil {
		mapName = *attr.Details.Map
	}
	mode := model.UnknownMode
	if attr.Details.GameMode != nil {
		mode = *attr.Details.GameMode
	}

	return model.ServerRecord{
		Name:       attr.Name,
		Players:    attr.Players,
		MaxPlayers: attr.MaxPlayers,
		Map:        mapName,
		Mode:       mode,
		Country:    country,
	}, true
}
