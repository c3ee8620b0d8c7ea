// Package stats proxies coding-activity counters from WakaTime and
// GitHub so the frontend never sees the API keys. Responses are cached
// in-process; upstream failures degrade to an inactive/empty answer
// rather than an error page.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"
)

const wakaBaseURL = "https://wakatime.com/api/v1/users/current"

// A heartbeat older than this means the owner stopped coding.
const activeWindow = 10 * time.Minute

type WakaStats struct {
	IsCodingNow          bool   `json:"is_coding_now"`
	IDEName              string `json:"ide_name,omitempty"`
	ProjectName          string `json:"project_name,omitempty"`
	CurrentlyEditingFile string `json:"currently_editing_file,omitempty"`
	LastActiveTime       string `json:"last_active_time,omitempty"`
	TotalAllProjects     string `json:"total_spent_on_all_projects,omitempty"`
	TotalCurrentProject  string `json:"total_spent_on_current_project,omitempty"`
}

func (c *Client) WakaTime(ctx context.Context) (*WakaStats, error) {
	if cached, ok := c.cached("wakatime"); ok {
		return cached.(*WakaStats), nil
	}

	out := &WakaStats{}

	var heartbeats struct {
		Data []struct {
			Time    float64 `json:"time"`
			Project string  `json:"project"`
			Editor  string  `json:"editor"`
			Entity  string  `json:"entity"`
		} `json:"data"`
	}
	hbURL := fmt.Sprintf("%s/heartbeats?date=today&api_key=%s", wakaBaseURL, c.WakaKey)
	if err := c.getJSON(ctx, hbURL, nil, &heartbeats); err != nil {
		return nil, err
	}

	currentProject := ""
	if n := len(heartbeats.Data); n > 0 {
		last := heartbeats.Data[n-1]
		at := time.Unix(int64(last.Time), 0)
		currentProject = last.Project

		out.IsCodingNow = time.Since(at) < activeWindow
		out.IDEName = last.Editor
		out.ProjectName = last.Project
		out.CurrentlyEditingFile = path.Base(strings.ReplaceAll(last.Entity, `\`, "/"))
		out.LastActiveTime = at.Format("15:04:05")
	}

	var allTime struct {
		Data struct {
			HumanReadableTotal string `json:"human_readable_total"`
			Projects           []struct {
				Name string `json:"name"`
				Text string `json:"text"`
			} `json:"projects"`
		} `json:"data"`
	}
	statsURL := fmt.Sprintf("%s/stats/all_time?api_key=%s", wakaBaseURL, c.WakaKey)
	if err := c.getJSON(ctx, statsURL, nil, &allTime); err != nil {
		return nil, err
	}

	out.TotalAllProjects = allTime.Data.HumanReadableTotal
	if currentProject != "" {
		out.TotalCurrentProject = "Just started"
		for _, p := range allTime.Data.Projects {
			if strings.EqualFold(p.Name, currentProject) {
				out.TotalCurrentProject = p.Text
				break
			}
		}
	}

	c.store("wakatime", out)
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("stats upstream returned %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
