// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package releases scrapes a public release API and turns per-asset download
// counts into a CSV report.
package releases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

const perPage = 100

// Asset is one downloadable artifact of a release.
type Asset struct {
	Name          string `json:"name"`
	DownloadCount int    `json:"download_count"`
}

// Release is one published release with its assets.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	Assets      []Asset   `json:"assets"`
}

// Client fetches release listings.
type Client struct {
	http *resty.Client
}

// NewClient creates a client against baseURL.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/vnd.github+json")
	return &Client{http: c}
}

// List fetches every release of owner/repo, following pagination in API
// order (newest first).
func (c *Client) List(ctx context.Context, owner, repo string) ([]Release, error) {
	var all []Release

	for page := 1; ; page++ {
		var batch []Release
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"per_page": strconv.Itoa(perPage),
				"page":     strconv.Itoa(page),
			}).
			SetResult(&batch).
			Get(fmt.Sprintf("/repos/%s/%s/releases", owner, repo))
		if err != nil {
			return nil, fmt.Errorf("failed to list releases for %s/%s: %w", owner, repo, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("failed to list releases for %s/%s: %s", owner, repo, resp.Status())
		}

		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
	}
}

// WriteCSV writes one row per release asset. Draft releases are excluded;
// releases without assets still get a row so every tag appears in the
// report.
func WriteCSV(w io.Writer, releases []Release) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"tag", "name", "published_at", "prerelease", "asset", "downloads"}); err != nil {
		return err
	}

	for _, rel := range releases {
		if rel.Draft {
			continue
		}
		published := rel.PublishedAt.UTC().Format(time.RFC3339)
		prerelease := strconv.FormatBool(rel.Prerelease)

		if len(rel.Assets) == 0 {
			if err := cw.Write([]string{rel.TagName, rel.Name, published, prerelease, "", "0"}); err != nil {
				return err
			}
			continue
		}
		for _, asset := range rel.Assets {
			row := []string{rel.TagName, rel.Name, published, prerelease, asset.Name, strconv.Itoa(asset.DownloadCount)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
