// Package hipo fetches the public Hipo university directory, a large JSON
// dataset of world universities and their web domains. The dataset is
// downloaded once and kept in memory; searches run against the cached copy.
package hipo

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// DefaultDirectoryURL points at the Hipo world universities dataset.
const DefaultDirectoryURL = "https://raw.githubusercontent.com/Hipo/university-domains-list/master/world_universities_and_domains.json"

const defaultTimeout = 30 * time.Second

// University is a single directory record. It carries no local ID because
// directory results are not persisted until explicitly imported.
type University struct {
	Name    string
	Country string
	Website string
	Domains []string
}

// Client downloads and searches the university directory.
type Client struct {
	url  string
	http *retryablehttp.Client

	mu       sync.Mutex
	universe []University
	loaded   bool
}

// NewClient builds a directory client for the given dataset URL. An empty
// url falls back to DefaultDirectoryURL.
func NewClient(url string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = defaultTimeout

	if url == "" {
		url = DefaultDirectoryURL
	}
	return &Client{url: url, http: retryClient}
}

// Search returns directory entries matching the optional country and name
// filters, paginated by limit and offset. The first call downloads the
// dataset; later calls hit the in-memory copy.
func (c *Client) Search(ctx context.Context, country, name string, limit, offset int) ([]University, error) {
	all, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	country = strings.ToLower(strings.TrimSpace(country))
	name = strings.ToLower(strings.TrimSpace(name))

	matched := make([]University, 0, limit)
	skipped := 0
	for _, u := range all {
		if country != "" && !strings.Contains(strings.ToLower(u.Country), country) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(u.Name), name) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		matched = append(matched, u)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

func (c *Client) load(ctx context.Context) ([]University, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.universe, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch university directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("university directory returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read university directory: %w", err)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("university directory: expected JSON array")
	}

	var universe []University
	parsed.ForEach(func(_, record gjson.Result) bool {
		u := University{
			Name:    record.Get("name").String(),
			Country: record.Get("country").String(),
			Website: record.Get("web_pages.0").String(),
		}
		for _, d := range record.Get("domains").Array() {
			u.Domains = append(u.Domains, d.String())
		}
		if u.Name != "" {
			universe = append(universe, u)
		}
		return true
	})

	c.universe = universe
	c.loaded = true
	return c.universe, nil
}
