// Package repository holds the packages a dependency solve draws from. It builds the raw
// dependency graph of a root package and compiles it into a depsolve requirement graph.
package repository

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.arcalot.io/depsolve"
)

// Dependency is a choice set: it is satisfied by any one of its identities.
type Dependency[ID comparable] struct {
	choices []ID
}

// Choice creates a dependency satisfied by any of the given identities. Earlier identities are
// preferred.
func Choice[ID comparable](ids ...ID) Dependency[ID] {
	return Dependency[ID]{slices.Clone(ids)}
}

// IDs returns the identities of the choice set in preference order.
func (d Dependency[ID]) IDs() []ID {
	return slices.Clone(d.choices)
}

func (d Dependency[ID]) String() string {
	return fmt.Sprint(d.choices)
}

// Definition is a plain Package.
type Definition[ID comparable] struct {
	Ident    ID
	Requires []Dependency[ID]
}

// ID returns the identity of the package.
func (d Definition[ID]) ID() ID {
	return d.Ident
}

// Dependencies returns the choice sets of the package.
func (d Definition[ID]) Dependencies() []Dependency[ID] {
	return d.Requires
}

// Repository is a flat collection of packages keyed by identity.
type Repository[ID depsolve.Ident[ID]] struct {
	lock     *sync.Mutex
	packages map[ID]Package[ID]
}

// New creates a repository holding the given packages.
func New[ID depsolve.Ident[ID]](packages ...Package[ID]) *Repository[ID] {
	r := &Repository[ID]{
		&sync.Mutex{},
		make(map[ID]Package[ID], len(packages)),
	}
	for _, pkg := range packages {
		r.Add(pkg)
	}
	return r
}

// Add stores the package, replacing any package with the same identity.
func (r *Repository[ID]) Add(pkg Package[ID]) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.packages[pkg.ID()] = pkg
}

// Get returns the package with the specified identity, or ErrPackageNotFound.
func (r *Repository[ID]) Get(id ID) (Package[ID], error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	pkg, ok := r.packages[id]
	if !ok {
		return nil, ErrPackageNotFound{fmt.Sprint(id)}
	}
	return pkg, nil
}

// Len returns the number of packages in the repository.
func (r *Repository[ID]) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.packages)
}

// DependencyMatches returns the packages of the repository that satisfy the dependency, in the
// preference order of its choices. Choices missing from the repository are skipped.
func (r *Repository[ID]) DependencyMatches(dep Dependency[ID]) []Package[ID] {
	r.lock.Lock()
	defer r.lock.Unlock()
	var result []Package[ID]
	for _, id := range dep.choices {
		if pkg, ok := r.packages[id]; ok {
			result = append(result, pkg)
		}
	}
	return result
}

// BuildGraph builds the raw dependency graph of every package reachable from root.
func (r *Repository[ID]) BuildGraph(root ID) (Graph[ID], error) {
	g, _, err := r.buildGraph(root)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// reachablePackage is a package of a built graph together with the identities matching each of
// its choice sets at build time.
type reachablePackage[ID comparable] struct {
	id      ID
	matches [][]ID
}

// buildGraph also returns the reachable packages in discovery order. Dependencies are matched
// once per package, so both passes and Compile see the same snapshot even if the repository
// changes meanwhile.
func (r *Repository[ID]) buildGraph(root ID) (*rawGraph[ID], []reachablePackage[ID], error) {
	rootPkg, err := r.Get(root)
	if err != nil {
		return nil, nil, err
	}

	g := newGraph[ID]()
	var reachable []reachablePackage[ID]
	// First pass: collect the nodes. The visited set stops the walk on cycles.
	pending := []Package[ID]{rootPkg}
	for len(pending) > 0 {
		pkg := pending[0]
		pending = pending[1:]
		if _, err := g.GetNodeByID(pkg.ID()); err == nil {
			continue
		}
		if _, err := g.addNode(pkg.ID()); err != nil {
			return nil, nil, err
		}
		deps := pkg.Dependencies()
		entry := reachablePackage[ID]{pkg.ID(), make([][]ID, len(deps))}
		for i, dep := range deps {
			for _, match := range r.DependencyMatches(dep) {
				entry.matches[i] = append(entry.matches[i], match.ID())
				pending = append(pending, match)
			}
		}
		reachable = append(reachable, entry)
	}
	g.root = g.nodes[root]

	// Second pass: connect every package to its matching dependencies.
	for _, entry := range reachable {
		for _, ids := range entry.matches {
			for _, id := range ids {
				err := g.connectNodes(entry.id, id)
				var exists ErrConnectionAlreadyExists
				if err != nil && !errors.As(err, &exists) {
					return nil, nil, err
				}
			}
		}
	}
	return g, reachable, nil
}
