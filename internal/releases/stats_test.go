// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package releases

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Paginates(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/session-foundation/session-desktop/releases", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		pages++

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "1" {
			releases := make([]Release, perPage)
			for i := range releases {
				releases[i] = Release{TagName: "v1.0.0"}
			}
			require.NoError(t, json.NewEncoder(w).Encode(releases))
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode([]Release{{TagName: "v0.9.0"}}))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	releases, err := client.List(context.Background(), "session-foundation", "session-desktop")
	require.NoError(t, err)

	assert.Equal(t, 2, pages)
	assert.Len(t, releases, perPage+1)
	assert.Equal(t, "v0.9.0", releases[perPage].TagName)
}

func TestList_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.List(context.Background(), "nobody", "nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody/nothing")
}

func TestWriteCSV(t *testing.T) {
	published := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	releases := []Release{
		{
			TagName:     "v1.2.0",
			Name:        "Session 1.2.0",
			PublishedAt: published,
			Assets: []Asset{
				{Name: "session-desktop-linux-amd64-1.2.0.deb", DownloadCount: 1200},
				{Name: "session-desktop-win-x64-1.2.0.exe", DownloadCount: 3400},
			},
		},
		{TagName: "v1.2.0-rc1", Name: "draft", Draft: true},
		{TagName: "v1.1.9", Name: "Session 1.1.9", PublishedAt: published, Prerelease: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, releases))

	expected := "tag,name,published_at,prerelease,asset,downloads\n" +
		"v1.2.0,Session 1.2.0,2026-01-15T12:00:00Z,false,session-desktop-linux-amd64-1.2.0.deb,1200\n" +
		"v1.2.0,Session 1.2.0,2026-01-15T12:00:00Z,false,session-desktop-win-x64-1.2.0.exe,3400\n" +
		"v1.1.9,Session 1.1.9,2026-01-15T12:00:00Z,true,,0\n"
	assert.Equal(t, expected, buf.String())
}
