package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibooks/internal/config"
)

const testCatalog = `items:
  - id: b1
    category: books
    title: Intro to CS
    subtitle: Prof. Hopper
    badge: New
    badge_color: success
  - id: c1
    category: chapters
    title: Data Structures
    subtitle: Intro to CS
  - id: u1
    category: users
    title: Ada Lovelace
`

// run executes the CLI against files in a temp dir and returns stdout
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o644))
	}

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "unibooks.toml"),
		"--catalog", catalogPath,
		"--log-file", filepath.Join(dir, "unibooks.log"),
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFilterText(t *testing.T) {
	out, err := run(t, t.TempDir(), "filter", "intro")
	require.NoError(t, err)

	want := "▣ Books (1)\n" +
		"  Intro to CS · Prof. Hopper [New]\n" +
		"\n" +
		"≡ Chapters (1)\n" +
		"  Data Structures · Intro to CS\n"
	assert.Equal(t, want, out)
}

func TestFilterJSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "filter", "--json", "a")
	require.NoError(t, err)

	var got jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want := jsonResult{
		Query: "a",
		Count: 2,
		Groups: []jsonGroup{
			{Category: "chapters", Label: "Chapters", Items: []jsonItem{
				{ID: "c1", Title: "Data Structures", Subtitle: "Intro to CS", Icon: "document-text-outline"},
			}},
			{Category: "users", Label: "Users", Items: []jsonItem{
				{ID: "u1", Title: "Ada Lovelace", Icon: "person-outline"},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter --json mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterBlankQueryPolicies(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "filter")
	require.NoError(t, err)
	assert.Contains(t, out, "Books (1)")
	assert.Contains(t, out, "Users (1)")

	out, err = run(t, dir, "filter", "--policy", config.PolicyHideUntilTyped)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Labels.EmptyMessage+"\n", out)

	_, err = run(t, dir, "filter", "--policy", "sometimes")
	assert.Error(t, err)
}

func TestFilterNoResults(t *testing.T) {
	out, err := run(t, t.TempDir(), "filter", "Quantum")
	require.NoError(t, err)
	assert.Contains(t, out, `No results found for "Quantum"`)
	assert.Contains(t, out, "Try searching for something else")
}

func TestFilterRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte("items:\n  - category: videos\n    title: x\n"), 0o644))

	_, err := run(t, dir, "filter", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 0")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unibooks.toml")

	out, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.NewConfigService(path, nil, nil).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = run(t, dir, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, dir, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigFileDrivesFilter(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Search.EmptyQuery = config.PolicyHideUntilTyped
	cfg.Labels.EmptyMessage = "Type to begin"
	require.NoError(t, config.NewConfigService(filepath.Join(dir, "unibooks.toml"), nil, nil).Save(cfg))

	out, err := run(t, dir, "filter")
	require.NoError(t, err)
	assert.Equal(t, "Type to begin\n", out)
}

func TestCategories(t *testing.T) {
	out, err := run(t, t.TempDir(), "categories")
	require.NoError(t, err)
	for _, want := range []string{"books", "Books", "chapters", "documents", "No users found", "person-outline"} {
		assert.Contains(t, out, want)
	}
}
