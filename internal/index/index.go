// Package index loads package indexes: YAML documents listing versioned packages and what they
// require. Version constraints are expanded against the index into explicit choice sets.
package index

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"go.arcalot.io/depsolve"
	"go.arcalot.io/depsolve/repository"
)

// Document is the YAML layout of an index file.
type Document struct {
	Packages []PackageEntry `yaml:"packages"`
}

// PackageEntry describes a single version of a package.
type PackageEntry struct {
	Name     string             `yaml:"name"`
	Version  string             `yaml:"version"`
	Requires []RequirementEntry `yaml:"requires,omitempty"`
}

// RequirementEntry is either a name with an optional semver constraint, or an explicit list of
// name@version choices.
type RequirementEntry struct {
	Name       string   `yaml:"name,omitempty"`
	Constraint string   `yaml:"constraint,omitempty"`
	Choices    []string `yaml:"choices,omitempty"`
}

// ErrInvalidIndex is returned when an index document cannot be turned into a repository.
type ErrInvalidIndex struct {
	Reason string
	Cause  error
}

func (e ErrInvalidIndex) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid index: %s (%v)", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid index: %s", e.Reason)
}

func (e ErrInvalidIndex) Unwrap() error {
	return e.Cause
}

// Index is a validated set of package definitions.
type Index struct {
	definitions []repository.Definition[depsolve.Versioned]
}

// LoadFile reads an index from the named file.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load index %s: %w", path, err)
	}
	return idx, nil
}

// Load reads an index document. Unknown fields and further documents are rejected. An empty
// input is an empty index.
func Load(r io.Reader) (*Index, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return FromDocument(doc)
		}
		return nil, ErrInvalidIndex{Reason: "malformed YAML", Cause: err}
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidIndex{Reason: "index must hold a single YAML document", Cause: err}
	}
	return FromDocument(doc)
}

// FromDocument validates a decoded document and expands its requirements.
func FromDocument(doc Document) (*Index, error) {
	ids := make([]depsolve.Versioned, len(doc.Packages))
	versions := map[string][]depsolve.Versioned{}
	seen := map[depsolve.Versioned]struct{}{}
	for i, entry := range doc.Packages {
		id, err := depsolve.NewVersioned(entry.Name, entry.Version)
		if err != nil {
			return nil, ErrInvalidIndex{Reason: fmt.Sprintf("package %d", i), Cause: err}
		}
		if _, ok := seen[id]; ok {
			return nil, ErrInvalidIndex{Reason: fmt.Sprintf("duplicate package %s", id)}
		}
		seen[id] = struct{}{}
		ids[i] = id
		versions[id.Name] = append(versions[id.Name], id)
	}
	// Highest version first, so expanded constraints prefer newer releases.
	for _, list := range versions {
		slices.SortFunc(list, func(a, b depsolve.Versioned) int {
			return b.Compare(a)
		})
	}

	idx := &Index{
		definitions: make([]repository.Definition[depsolve.Versioned], len(doc.Packages)),
	}
	for i, entry := range doc.Packages {
		deps := make([]repository.Dependency[depsolve.Versioned], len(entry.Requires))
		for j, req := range entry.Requires {
			dep, err := expand(req, versions)
			if err != nil {
				return nil, ErrInvalidIndex{
					Reason: fmt.Sprintf("package %s, requirement %d", ids[i], j),
					Cause:  err,
				}
			}
			deps[j] = dep
		}
		idx.definitions[i] = repository.Definition[depsolve.Versioned]{Ident: ids[i], Requires: deps}
	}
	return idx, nil
}

func expand(
	req RequirementEntry,
	versions map[string][]depsolve.Versioned,
) (repository.Dependency[depsolve.Versioned], error) {
	var zero repository.Dependency[depsolve.Versioned]
	switch {
	case req.Name != "" && len(req.Choices) != 0:
		return zero, errors.New("name and choices are mutually exclusive")
	case len(req.Choices) != 0:
		if req.Constraint != "" {
			return zero, errors.New("constraint cannot be combined with choices")
		}
		choices := make([]depsolve.Versioned, len(req.Choices))
		for i, c := range req.Choices {
			id, err := depsolve.ParseVersioned(c)
			if err != nil {
				return zero, err
			}
			choices[i] = id
		}
		return repository.Choice(choices...), nil
	case req.Name != "":
		raw := req.Constraint
		if raw == "" {
			raw = "*"
		}
		constraint, err := semver.NewConstraint(raw)
		if err != nil {
			return zero, fmt.Errorf("invalid constraint %q for %s: %w", raw, req.Name, err)
		}
		var choices []depsolve.Versioned
		for _, id := range versions[req.Name] {
			if constraint.Check(id.SemVer()) {
				choices = append(choices, id)
			}
		}
		return repository.Choice(choices...), nil
	default:
		return zero, errors.New("either name or choices must be set")
	}
}

// Packages returns the identities of all packages in the index, in document order.
func (i *Index) Packages() []depsolve.Versioned {
	result := make([]depsolve.Versioned, len(i.definitions))
	for j, def := range i.definitions {
		result[j] = def.Ident
	}
	return result
}

// Dependencies returns the expanded choice sets of a package.
func (i *Index) Dependencies(id depsolve.Versioned) ([]repository.Dependency[depsolve.Versioned], bool) {
	for _, def := range i.definitions {
		if def.Ident == id {
			return def.Requires, true
		}
	}
	return nil, false
}

// Repository returns a repository holding every package of the index.
func (i *Index) Repository() *repository.Repository[depsolve.Versioned] {
	packages := make([]repository.Package[depsolve.Versioned], len(i.definitions))
	for j, def := range i.definitions {
		packages[j] = def
	}
	return repository.New(packages...)
}
