package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_CacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewClient("", "", "")

	_, ok := c.cached("wakatime")
	assert.False(t, ok, "empty cache misses")

	c.store("wakatime", &WakaStats{TotalAllProjects: "42 hrs"})
	got, ok := c.cached("wakatime")
	assert.True(t, ok)
	assert.Equal(t, &WakaStats{TotalAllProjects: "42 hrs"}, got)
}

func TestClient_CacheExpires(t *testing.T) {
	t.Parallel()

	c := NewClient("", "", "")
	c.store("github", &GitHubStats{PublicRepos: 7})

	// Age the entry past the TTL.
	c.mu.Lock()
	entry := c.cache["github"]
	entry.fetchedAt = time.Now().Add(-cacheTTL - time.Minute)
	c.cache["github"] = entry
	c.mu.Unlock()

	_, ok := c.cached("github")
	assert.False(t, ok, "stale entries are not served")
}
