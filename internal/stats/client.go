package stats

import (
	"net/http"
	"sync"
	"time"
)

const cacheTTL = 10 * time.Minute

type Client struct {
	WakaKey     string
	GithubUser  string
	GithubToken string
	HTTP        *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

func NewClient(wakaKey, githubUser, githubToken string) *Client {
	return &Client{
		WakaKey:     wakaKey,
		GithubUser:  githubUser,
		GithubToken: githubToken,
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		cache:       make(map[string]cacheEntry),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) cached(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Since(entry.fetchedAt) > cacheTTL {
		return nil, false
	}
	return entry.value, true
}

func (c *Client) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		c.cache = make(map[string]cacheEntry)
	}
	c.cache[key] = cacheEntry{value: value, fetchedAt: time.Now()}
}
