package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

type result struct {
	Stdout string
	Stderr string
	Err    error
}

func (r result) code() int {
	if r.Err == nil {
		return exitSuccess
	}
	return exitCode(r.Err)
}

// clearEnv keeps the caller's TABLECTL_* variables out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TABLECTL_CONFIG_DIR", "TABLECTL_SOURCE", "TABLECTL_ROW_IDENTIFIER",
		"TABLECTL_PAGE_SIZE", "TABLECTL_HTTP_TIMEOUT", "TABLECTL_SHEET",
		"TABLECTL_LOG_LEVEL", "TABLECTL_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

// runCLI executes tablectl with an isolated config directory.
func runCLI(t *testing.T, configDir, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", configDir}, args...))
	err := root.Execute()
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

func writeUsers(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "users.json")
	data := `[
  {"id": 1, "name": "Ann", "role": "admin"},
  {"id": 2, "name": "Bo", "role": "viewer"},
  {"id": 3, "name": "Cy", "role": "viewer"}
]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func parseView(t *testing.T, s string) types.View {
	t.Helper()
	var v types.View
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

func TestVersion(t *testing.T) {
	clearEnv(t)
	r := runCLI(t, t.TempDir(), "", "version")
	require.NoError(t, r.Err)
	assert.Equal(t, "tablectl "+version+"\n", r.Stdout)
}

func TestInit(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "conf")

	r := runCLI(t, dir, "", "init")
	require.NoError(t, r.Err)
	assert.Contains(t, r.Stdout, "Created")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "row_identifier: id")

	r = runCLI(t, dir, "", "init")
	require.NoError(t, r.Err)
	assert.Contains(t, r.Stdout, "Config already exists")
}

func TestShow_Table(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	r := runCLI(t, dir, "", "show", "--source", src, "--page-size", "2")
	require.NoError(t, r.Err)

	lines := strings.Split(strings.TrimRight(r.Stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"SEL", "ID", "NAME", "ROLE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"[ ]", "1", "Ann", "admin"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"[ ]", "2", "Bo", "viewer"}, strings.Fields(lines[3]))
	assert.Equal(t, "Page 1/2  3 row(s)  0 selected", lines[4])
}

func TestShow_SearchAndPageJSON(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	r := runCLI(t, dir, "", "show", "--source", src, "--search", "VIEWER", "--page-size", "1", "--page", "2", "--json")
	require.NoError(t, r.Err)

	v := parseView(t, r.Stdout)
	assert.Equal(t, types.StatusReady, v.Status)
	assert.Equal(t, "VIEWER", v.Search)
	assert.Equal(t, 2, v.TotalItems)
	assert.Equal(t, 2, v.TotalPages)
	assert.Equal(t, 2, v.CurrentPage)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Cy", v.Rows[0].Record["name"])
}

func TestShow_NoMatches(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	r := runCLI(t, dir, "", "show", "--source", src, "--search", "zed")
	require.NoError(t, r.Err)
	assert.Equal(t, "No rows match \"zed\".\n", r.Stdout)
}

func TestShow_ExitCodes(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"page out of range", []string{"show", "--source", src, "--page", "5"}, exitUserError},
		{"no data source", []string{"show"}, exitUserError},
		{"unsupported source", []string{"show", "--source", filepath.Join(dir, "users.csv")}, exitUserError},
		{"missing file", []string{"show", "--source", filepath.Join(dir, "missing.json")}, exitSysError},
		{"negative page size", []string{"show", "--source", src, "--page-size", "-1"}, exitUserError},
		{"bad log level", []string{"show", "--source", src, "--log-level", "loud"}, exitUserError},
		{"unknown flag", []string{"show", "--nope"}, exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, dir, "", tt.args...)
			require.Error(t, r.Err)
			assert.Equal(t, tt.want, r.code())
		})
	}
}

func TestShow_MissingIdentifierIsFetchFailure(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	r := runCLI(t, dir, "", "show", "--source", src, "--id", "email")
	require.Error(t, r.Err)
	assert.ErrorIs(t, r.Err, types.ErrFetchFailed)
	assert.ErrorIs(t, r.Err, types.ErrMissingIdentifier)
	assert.Equal(t, exitSysError, r.code())
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeUsers(t, dir)
	cfg := "data_source: users.json\npage_size: 1\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	t.Run("relative data_source resolves against the config dir", func(t *testing.T) {
		r := runCLI(t, dir, "", "show", "--json")
		require.NoError(t, r.Err)
		v := parseView(t, r.Stdout)
		assert.Equal(t, 3, v.TotalPages)
		assert.Contains(t, r.Stderr, "table ready")
	})

	t.Run("env overrides config file", func(t *testing.T) {
		t.Setenv("TABLECTL_PAGE_SIZE", "2")
		r := runCLI(t, dir, "", "show", "--json")
		require.NoError(t, r.Err)
		assert.Equal(t, 2, parseView(t, r.Stdout).TotalPages)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("TABLECTL_PAGE_SIZE", "2")
		r := runCLI(t, dir, "", "show", "--json", "--page-size", "3")
		require.NoError(t, r.Err)
		assert.Equal(t, 1, parseView(t, r.Stdout).TotalPages)
	})

	t.Run("source flag overrides config file", func(t *testing.T) {
		r := runCLI(t, dir, "", "show", "--source", filepath.Join(dir, "other.json"))
		assert.Equal(t, exitSysError, r.code())
	})
}

func TestConfigDirFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TABLECTL_CONFIG_DIR", dir)

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetArgs([]string{"init"})
	require.NoError(t, root.Execute())

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

func TestShell(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	src := writeUsers(t, dir)

	script := strings.Join([]string{
		"select 1",
		"select 3",
		"search bo",
		"bogus",
		"selected",
		"quit",
	}, "\n")
	r := runCLI(t, dir, script, "shell", "--source", src)
	require.NoError(t, r.Err)

	assert.NotContains(t, r.Stdout, shellPrompt, "no prompt when stdin is not a terminal")
	assert.True(t, strings.HasSuffix(r.Stdout, "\n1 3\n"), "stdout: %q", r.Stdout)
	assert.Contains(t, r.Stdout, "Page 1/1  1 row(s)  0 selected")
	assert.Contains(t, r.Stderr, `unknown command "bogus"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(errors.New("plain")))
	assert.Equal(t, exitUserError, exitCode(userError(errors.New("bad input"))))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk"))))
	assert.Equal(t, exitSysError, exitCode(fmt.Errorf("wrapped: %w", sysError(errors.New("disk")))))

	err := sysError(types.ErrFetchFailed)
	assert.ErrorIs(t, err, types.ErrFetchFailed)
	assert.Equal(t, types.ErrFetchFailed.Error(), err.Error())
}
