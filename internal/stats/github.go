package stats

import (
	"context"
	"fmt"
)

type GitHubStats struct {
	Username    string `json:"username"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

func (c *Client) GitHub(ctx context.Context) (*GitHubStats, error) {
	if cached, ok := c.cached("github"); ok {
		return cached.(*GitHubStats), nil
	}

	var profile struct {
		Login       string `json:"login"`
		PublicRepos int    `json:"public_repos"`
		Followers   int    `json:"followers"`
		Following   int    `json:"following"`
	}

	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if c.GithubToken != "" {
		headers["Authorization"] = "Bearer " + c.GithubToken
	}
	url := fmt.Sprintf("https://api.github.com/users/%s", c.GithubUser)
	if err := c.getJSON(ctx, url, headers, &profile); err != nil {
		return nil, err
	}

	out := &GitHubStats{
		Username:    profile.Login,
		PublicRepos: profile.PublicRepos,
		Followers:   profile.Followers,
		Following:   profile.Following,
	}
	c.store("github", out)
	return out, nil
}
