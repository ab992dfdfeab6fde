package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/presentation"
)

// setupConfigDir writes a test profile using a file store in a temp dir.
// An empty oembedURL disables song lookups.
func setupConfigDir(t *testing.T, oembedURL string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))

	oembed := "  oembed:\n    enabled: false\n"
	if oembedURL != "" {
		oembed = fmt.Sprintf("  oembed:\n    enabled: true\n    base_url: %s\n", oembedURL)
	}

	profile := fmt.Sprintf(`app:
  environment: test
client:
  retry:
    max_attempts: 1
services:
%sstorage:
  backend: file
  file:
    path: %s
`, oembed, filepath.Join(dir, "data", "dedications.json"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "test.yaml"), []byte(profile), 0o600))

	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	return runCLIContext(t, context.Background(), dir, args...)
}

func runCLIContext(t *testing.T, ctx context.Context, dir string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config-dir", dir, "--profile", "test"}, args...))

	err := cmd.ExecuteContext(ctx)

	return out.String(), err
}

func addArgs(from, to, message string) []string {
	return []string{"add", "--from", from, "--from-class", "10A", "--to", to, "--to-class", "10B", "--message", message}
}

func TestAddThenList(t *testing.T) {
	dir := setupConfigDir(t, "")

	out, err := runCLI(t, dir, addArgs("Ann", "Ben", "see you at the dance")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Message: 5/30 words")
	assert.Contains(t, out, "Added dedication")
	assert.Contains(t, out, "Ben (10B)")

	_, err = runCLI(t, dir, addArgs("Cat", "Dan", "good luck")...)
	require.NoError(t, err)

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann (10A)")
	assert.Contains(t, out, "just now")
	assert.Less(t, strings.Index(out, "good luck"), strings.Index(out, "see you at the dance"))
}

func TestList_Empty(t *testing.T) {
	dir := setupConfigDir(t, "")

	out, err := runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, presentation.EmptyText+"\n", out)
}

func TestList_JSON(t *testing.T) {
	dir := setupConfigDir(t, "")

	_, err := runCLI(t, dir, addArgs("Ann", "Ben", "hello")...)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "list", "--json")
	require.NoError(t, err)

	var list []domain.Dedication
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Message)
	assert.NotEmpty(t, list[0].ID)
}

func TestAdd_TrimsFields(t *testing.T) {
	dir := setupConfigDir(t, "")

	_, err := runCLI(t, dir, "add", "--from", "  Ann ", "--from-class", " 10A", "--to", "Ben  ", "--to-class", "\t10B ",
		"--message", "  hello  ", "--title", "Orphan")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "list", "--json")
	require.NoError(t, err)

	var list []domain.Dedication
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0].SenderName)
	assert.Equal(t, "10A", list[0].SenderClass)
	assert.Equal(t, "Ben", list[0].RecipientName)
	assert.Equal(t, "10B", list[0].RecipientClass)
	assert.Equal(t, "hello", list[0].Message)
	assert.Empty(t, list[0].SongTitle)
}

func TestAdd_ValidationErrors(t *testing.T) {
	dir := setupConfigDir(t, "")

	long := strings.TrimSpace(strings.Repeat("word ", domain.MaxMessageWords+1))

	out, err := runCLI(t, dir, "add", "--from", "Ann", "--message", long)
	require.Error(t, err)
	assert.Contains(t, out, "Message: 31/30 words")
	assert.Contains(t, out, "--to: ")
	assert.Contains(t, out, "--to-class: ")
	assert.Contains(t, out, "--message: ")
	assert.NotContains(t, out, "--from: ")

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, presentation.EmptyText)
}

func TestDelete(t *testing.T) {
	dir := setupConfigDir(t, "")

	for _, msg := range []string{"first", "second", "third"} {
		_, err := runCLI(t, dir, addArgs("Ann", "Ben", msg)...)
		require.NoError(t, err)
	}

	out, err := runCLI(t, dir, "delete", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted dedication 0")

	out, err = runCLI(t, dir, "list", "--json")
	require.NoError(t, err)

	var list []domain.Dedication
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	_, err = runCLI(t, dir, "delete", "--by", "id", list[1].ID)
	require.NoError(t, err)

	_, err = runCLI(t, dir, "delete", "5")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	_, err = runCLI(t, dir, "delete", "--by", "position", "abc")
	require.Error(t, err)

	_, err = runCLI(t, dir, "delete", "--by", "name", "1")
	require.Error(t, err)
}

func newOEmbedServer(t *testing.T, title string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":       title,
			"author_name": "Spotify",
		})
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestSong(t *testing.T) {
	srv := newOEmbedServer(t, "Yellow by Coldplay")
	dir := setupConfigDir(t, srv.URL)

	out, err := runCLI(t, dir, "song", "https://open.spotify.com/track/3AJwUDP919kvQ9QcozQPxg")
	require.NoError(t, err)
	assert.Contains(t, out, "3AJwUDP919kvQ9QcozQPxg")
	assert.Contains(t, out, "Yellow")
	assert.Contains(t, out, "Coldplay")

	_, err = runCLI(t, dir, "song", "https://example.com/not-a-track")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAdd_WithSongLookup(t *testing.T) {
	srv := newOEmbedServer(t, "Yellow")
	dir := setupConfigDir(t, srv.URL)

	args := append(addArgs("Ann", "Ben", "for you"), "--song", "https://open.spotify.com/track/abc123")

	out, err := runCLI(t, dir, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "pass --artist")

	args = append(addArgs("Cat", "Dan", "again"), "--song", "https://open.spotify.com/track/abc123", "--artist", "Coldplay")

	out, err = runCLI(t, dir, args...)
	require.NoError(t, err)
	assert.NotContains(t, out, "pass --artist")

	out, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Yellow - Coldplay")
}

func TestWatch_PrintsBoard(t *testing.T) {
	dir := setupConfigDir(t, "")

	_, err := runCLI(t, dir, addArgs("Ann", "Ben", "watch me")...)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := runCLIContext(t, ctx, dir, "watch", "--interval", "50ms")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "watch me"), "unchanged wall is printed once off a terminal")
	assert.NotContains(t, out, clearScreen)
}

func TestRenderBoard(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	board := presentation.BuildBoard([]domain.Dedication{
		{ID: "a", SenderName: "Ann", RecipientName: "Ben", Message: "hi", Timestamp: now.Add(-2 * time.Hour)},
		{
			ID: "b", SenderName: "Cat", SenderClass: "9C", RecipientName: "Dan", Message: "yo",
			SpotifyURL: "https://open.spotify.com/track/x", SongTitle: "Song", SongArtist: "Band",
			Timestamp: now,
		},
	}, now, time.UTC)

	out := renderBoard(board)

	assert.Contains(t, out, "Cat (9C)")
	assert.Contains(t, out, "Song - Band")
	assert.Contains(t, out, "2 hours ago")
	assert.Less(t, strings.Index(out, "Cat (9C)"), strings.Index(out, "Ann"))
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestSongLabel(t *testing.T) {
	assert.Empty(t, songLabel(nil))
	assert.Equal(t, "https://x", songLabel(&presentation.SongView{URL: "https://x"}))
	assert.Equal(t, "Title", songLabel(&presentation.SongView{Title: "Title"}))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
