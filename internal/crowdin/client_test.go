// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package crowdin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/12345", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "data": {
    "sourceLanguage": {"id": "en", "locale": "en", "twoLettersCode": "en", "textDirection": "ltr"},
    "targetLanguages": [
      {"id": "fr", "locale": "fr", "twoLettersCode": "fr", "textDirection": "ltr"}
    ]
  }
}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	info, raw, err := c.ProjectDetails(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, "en", info.SourceLanguage.Locale)
	require.Len(t, info.TargetLanguages, 1)

	var echo map[string]any
	require.NoError(t, json.Unmarshal(raw, &echo), "raw body is preserved for the manifest")
}

func TestProjectDetails_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid token", "code": 401}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad")
	_, _, err := c.ProjectDetails(context.Background(), "12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
	assert.Contains(t, err.Error(), "401")
}

func TestExportTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/12345/translations/exports", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fr", req["targetLanguageId"])
		assert.Equal(t, "xliff", req["format"])
		assert.Equal(t, true, req["skipUntranslatedStrings"])
		assert.Equal(t, false, req["exportApprovedOnly"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"url": "https://example.com/fr.xliff"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	url, err := c.ExportTranslation(context.Background(), "12345", "fr", true, false)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fr.xliff", url)
}

func TestExportTranslation_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"url": "https://example.com/fr.xliff"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	url, err := c.ExportTranslation(context.Background(), "12345", "fr", false, true)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fr.xliff", url)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<xliff/>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "fr.xliff")

	c := New(srv.URL, "secret")
	require.NoError(t, c.DownloadFile(context.Background(), srv.URL+"/fr.xliff", path))

	data, err := os.ReadFile(path) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Equal(t, "<xliff/>", string(data))
}

func TestGlossaryTerms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/glossaries/7/terms", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("conceptId"))
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"data": {"note": "app_name", "text": "Session"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	raw, err := c.GlossaryTerms(context.Background(), "7", "42")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "app_name")
}
