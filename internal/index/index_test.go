package index_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/depsolve"
	"go.arcalot.io/depsolve/internal/index"
)

var V = depsolve.MustParseVersioned

const testIndex = `
packages:
  - name: app
    version: 1.0.0
    requires:
      - name: lib
        constraint: ">=1.0.0 <3.0.0"
      - choices: [log@1.0.0, zap@1.2.0]
  - name: lib
    version: 1.0.0
  - name: lib
    version: 2.0.0
  - name: lib
    version: 3.0.0
  - name: log
    version: 1.0.0
    requires:
      - name: lib
        constraint: "^1"
  - name: zap
    version: v1.2.0
`

func load(t *testing.T, doc string) *index.Index {
	t.Helper()
	idx, err := index.Load(strings.NewReader(doc))
	assert.NoError(t, err)
	return idx
}

func TestLoad(t *testing.T) {
	idx := load(t, testIndex)
	assert.Equals(t, idx.Packages(), []depsolve.Versioned{
		V("app@1.0.0"),
		V("lib@1.0.0"),
		V("lib@2.0.0"),
		V("lib@3.0.0"),
		V("log@1.0.0"),
		V("zap@1.2.0"),
	})

	deps, ok := idx.Dependencies(V("app@1.0.0"))
	assert.Equals(t, ok, true)
	assert.Equals(t, len(deps), 2)
	// Constraints expand highest version first.
	assert.Equals(t, deps[0].IDs(), []depsolve.Versioned{V("lib@2.0.0"), V("lib@1.0.0")})
	assert.Equals(t, deps[1].IDs(), []depsolve.Versioned{V("log@1.0.0"), V("zap@1.2.0")})

	_, ok = idx.Dependencies(V("app@9.0.0"))
	assert.Equals(t, ok, false)
}

func TestLoad_EmptyConstraint(t *testing.T) {
	idx := load(t, `
packages:
  - name: app
    version: 1.0.0
    requires:
      - name: lib
  - name: lib
    version: 1.0.0
  - name: lib
    version: 1.1.0
`)
	deps, ok := idx.Dependencies(V("app@1.0.0"))
	assert.Equals(t, ok, true)
	assert.Equals(t, deps[0].IDs(), []depsolve.Versioned{V("lib@1.1.0"), V("lib@1.0.0")})
}

func TestLoad_Empty(t *testing.T) {
	idx := load(t, "")
	assert.Equals(t, len(idx.Packages()), 0)
	assert.Equals(t, idx.Repository().Len(), 0)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed":         "packages: [",
		"unknown field":     "packages:\n  - name: a\n    version: 1.0.0\n    color: red\n",
		"bad version":       "packages:\n  - name: a\n    version: one\n",
		"missing name":      "packages:\n  - version: 1.0.0\n",
		"duplicate":         "packages:\n  - name: a\n    version: 1.0.0\n  - name: a\n    version: v1.0.0\n",
		"bad constraint":    "packages:\n  - name: a\n    version: 1.0.0\n    requires:\n      - name: b\n        constraint: foo\n",
		"bad choice":        "packages:\n  - name: a\n    version: 1.0.0\n    requires:\n      - choices: [b]\n",
		"empty requirement": "packages:\n  - name: a\n    version: 1.0.0\n    requires:\n      - {}\n",
		"name and choices":  "packages:\n  - name: a\n    version: 1.0.0\n    requires:\n      - name: b\n        choices: [b@1.0.0]\n",
		"second document":   "packages:\n  - name: a\n    version: 1.0.0\n---\npackages:\n  - name: b\n    version: 1.0.0\n",
		"empty second":      "packages: []\n---\n{}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := index.Load(strings.NewReader(doc))
			var invalid index.ErrInvalidIndex
			assert.Equals(t, errors.As(err, &invalid), true)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(testIndex), 0o600))

	idx, err := index.LoadFile(path)
	assert.NoError(t, err)
	assert.Equals(t, len(idx.Packages()), 6)

	_, err = index.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIndex_Solve(t *testing.T) {
	r := load(t, testIndex).Repository()
	root, err := r.Compile(V("app@1.0.0"))
	assert.NoError(t, err)

	res, err := depsolve.NewSolver[depsolve.Versioned]().Solve(context.Background(), root)
	assert.NoError(t, err)

	var got []string
	for _, p := range res.Paths {
		got = append(got, p.String())
	}
	// Picking log brings its own lib onto the joined path next to the one app picked, so only
	// the zap combinations survive.
	assert.Equals(t, got, []string{
		"app@1.0.0 -> lib@2.0.0 -> zap@1.2.0",
		"app@1.0.0 -> lib@1.0.0 -> zap@1.2.0",
	})
}
