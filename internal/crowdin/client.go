// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package crowdin is a minimal client for the Crowdin v2 API covering the
// calls the fetch step needs: project details, per-language translation
// exports, and glossary terms.
package crowdin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/session-foundation/session-shared-scripts/internal/project"
)

// DefaultBaseURL is the production Crowdin API endpoint.
const DefaultBaseURL = "https://api.crowdin.com/api/v2"

const (
	requestTimeout    = 30 * time.Second
	maxRetries        = 5
	initialRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

// Client calls the translation platform API. Requests are retried with
// exponential backoff; rate-limited responses honor the Retry-After header.
type Client struct {
	http *resty.Client
}

// New creates a client against baseURL authenticated with token.
func New(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(requestTimeout).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(initialRetryDelay).
		SetRetryMaxWaitTime(maxRetryDelay).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests
		}).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			if s := resp.Header().Get("Retry-After"); s != "" {
				if secs, err := strconv.Atoi(s); err == nil {
					return time.Duration(secs) * time.Second, nil
				}
			}
			delay := initialRetryDelay << uint(resp.Request.Attempt-1)
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			return delay, nil
		})

	return &Client{http: c}
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func checkError(resp *resty.Response, msg string) error {
	if !resp.IsError() {
		return nil
	}
	var e apiError
	message := "unknown error"
	if err := json.Unmarshal(resp.Body(), &e); err == nil && e.Error.Message != "" {
		message = e.Error.Message
	}
	return fmt.Errorf("%s: %s (code: %d)", msg, message, resp.StatusCode())
}

// ProjectDetails fetches the project's language configuration. The raw
// response body is returned alongside the parsed info so the caller can
// write the manifest verbatim.
func (c *Client) ProjectDetails(ctx context.Context, projectID string) (*project.Info, []byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/projects/" + projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve project details: %w", err)
	}
	if err := checkError(resp, "failed to retrieve project details"); err != nil {
		return nil, nil, err
	}

	info, err := project.ParseInfo(resp.Body())
	if err != nil {
		return nil, nil, err
	}
	return info, resp.Body(), nil
}

type exportRequest struct {
	TargetLanguageID        string `json:"targetLanguageId"`
	Format                  string `json:"format"`
	SkipUntranslatedStrings bool   `json:"skipUntranslatedStrings"`
	ExportApprovedOnly      bool   `json:"exportApprovedOnly"`
}

type exportResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// ExportTranslation requests an XLIFF export for one language and returns
// the temporary download URL.
func (c *Client) ExportTranslation(ctx context.Context, projectID, languageID string, skipUntranslated, approvedOnly bool) (string, error) {
	var out exportResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(exportRequest{
			TargetLanguageID:        languageID,
			Format:                  "xliff",
			SkipUntranslatedStrings: skipUntranslated,
			ExportApprovedOnly:      approvedOnly,
		}).
		SetResult(&out).
		Post("/projects/" + projectID + "/translations/exports")
	if err != nil {
		return "", fmt.Errorf("export failed for %s: %w", languageID, err)
	}
	if err := checkError(resp, "export failed for "+languageID); err != nil {
		return "", err
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("export failed for %s: response carried no download URL", languageID)
	}
	return out.Data.URL, nil
}

// DownloadFile streams url to path.
func (c *Client) DownloadFile(ctx context.Context, url, path string) error {
	resp, err := c.http.R().SetContext(ctx).SetOutput(path).Get(url)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("download failed: %s", resp.Status())
	}
	return nil
}

// GlossaryTerms fetches the raw non-translatable terms manifest for a
// glossary concept.
func (c *Client) GlossaryTerms(ctx context.Context, glossaryID, conceptID string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"conceptId": conceptID,
			"limit":     "500",
		}).
		Get("/glossaries/" + glossaryID + "/terms")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve non-translatable strings: %w", err)
	}
	if err := checkError(resp, "failed to retrieve non-translatable strings"); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}
