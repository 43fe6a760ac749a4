package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.arcalot.io/assert"
)

const testIndex = `
packages:
  - name: app
    version: 1.0.0
    requires:
      - name: lib
  - name: lib
    version: 1.0.0
  - name: lib
    version: 2.0.0
  - name: broken
    version: 1.0.0
    requires:
      - name: lib
        constraint: ">=5"
`

func writeIndex(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(testIndex), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolve(t *testing.T) {
	indexPath := writeIndex(t)

	t.Run("text", func(t *testing.T) {
		stdout, _, err := run(t, "solve", "--index", indexPath, "app@1.0.0")
		assert.NoError(t, err)
		assert.Equals(t, stdout, "app@1.0.0 -> lib@2.0.0\napp@1.0.0 -> lib@1.0.0\n")
	})
	t.Run("json", func(t *testing.T) {
		stdout, _, err := run(t, "solve", "--index", indexPath, "--format", "json", "--concurrency", "2", "app@1.0.0")
		assert.NoError(t, err)
		var output solveOutput
		assert.NoError(t, json.Unmarshal([]byte(stdout), &output))
		assert.Equals(t, output, solveOutput{
			Root:        "app@1.0.0",
			Satisfiable: true,
			Paths:       [][]string{{"app@1.0.0", "lib@2.0.0"}, {"app@1.0.0", "lib@1.0.0"}},
			Cause:       []string{},
		})
	})
	t.Run("mermaid", func(t *testing.T) {
		stdout, _, err := run(t, "solve", "--index", indexPath, "--format", "mermaid", "lib@1.0.0")
		assert.NoError(t, err)
		assert.Equals(t, stdout, `%% Mermaid markdown resolution
flowchart LR
%% Path 1
n0["lib@1.0.0"]
%% Mermaid end
`)
	})
	t.Run("unresolvable", func(t *testing.T) {
		stdout, _, err := run(t, "solve", "--index", indexPath, "broken@1.0.0")
		assert.Equals(t, errors.Is(err, errUnresolvable), true)
		assert.Equals(t, stdout, "no consistent selection for broken@1.0.0, blamed: {}\n")
	})
	t.Run("verbose", func(t *testing.T) {
		_, stderr, err := run(t, "solve", "--index", indexPath, "-v", "2", "lib@1.0.0")
		assert.NoError(t, err)
		assert.Equals(t, strings.Contains(stderr, `"msg"="visiting node"`), true)
		assert.Equals(t, strings.Contains(stderr, `"msg"="solve finished"`), true)
	})
	t.Run("metrics", func(t *testing.T) {
		metricsPath := filepath.Join(t.TempDir(), "depsolve.prom")
		_, _, err := run(t, "solve", "--index", indexPath, "--metrics", metricsPath, "app@1.0.0")
		assert.NoError(t, err)
		data, err := os.ReadFile(metricsPath)
		assert.NoError(t, err)
		assert.Equals(t, strings.Contains(string(data), `depsolve_solves_total{result="success"} 1`), true)
	})
	t.Run("invalid", func(t *testing.T) {
		_, _, err := run(t, "solve", "--index", indexPath, "--format", "xml", "app@1.0.0")
		assert.Error(t, err)
		_, _, err = run(t, "solve", "--index", indexPath, "app")
		assert.Error(t, err)
		_, _, err = run(t, "solve", "--index", indexPath, "missing@1.0.0")
		assert.Error(t, err)
		_, _, err = run(t, "solve", "--index", filepath.Join(t.TempDir(), "none.yaml"), "app@1.0.0")
		assert.Error(t, err)
	})
}

func TestGraph(t *testing.T) {
	indexPath := writeIndex(t)

	t.Run("text", func(t *testing.T) {
		stdout, _, err := run(t, "graph", "--index", indexPath, "app@1.0.0")
		assert.NoError(t, err)
		assert.Equals(t, stdout, "app@1.0.0 -> lib@2.0.0, lib@1.0.0\nlib@1.0.0\nlib@2.0.0\ncycles: false\n")
	})
	t.Run("mermaid", func(t *testing.T) {
		stdout, _, err := run(t, "graph", "--index", indexPath, "--format", "mermaid", "app@1.0.0")
		assert.NoError(t, err)
		assert.Equals(t, stdout, `%% Mermaid markdown dependency graph
flowchart LR
n0["app@1.0.0"]
n1["lib@1.0.0"]
n2["lib@2.0.0"]
n0-->n2
n0-->n1
%% Mermaid end
`)
	})
	t.Run("invalid", func(t *testing.T) {
		_, _, err := run(t, "graph", "--index", indexPath, "--format", "json", "app@1.0.0")
		assert.Error(t, err)
	})
}
