package repository

import (
	"go.arcalot.io/depsolve"
)

// Compile turns the packages reachable from root into a requirement graph and returns the node of
// root. Every package becomes one node. A package with the choice sets D1..Dn requires one AND of
// every selection of D1..Dn; a choice set without any available package leaves no selection and
// makes the package unsatisfiable.
func (r *Repository[ID]) Compile(root ID) (*depsolve.Node[ID], error) {
	_, reachable, err := r.buildGraph(root)
	if err != nil {
		return nil, err
	}

	nodes := make(map[ID]*depsolve.Node[ID], len(reachable))
	for _, entry := range reachable {
		nodes[entry.id] = depsolve.NewNode[ID](entry.id, nil)
	}
	for _, entry := range reachable {
		if len(entry.matches) == 0 {
			continue
		}
		choices := make([][]*depsolve.Node[ID], len(entry.matches))
		for i, ids := range entry.matches {
			for _, id := range ids {
				choices[i] = append(choices[i], nodes[id])
			}
		}
		selections := depsolve.Selections(choices)
		ands := make([]depsolve.AndDependency[ID], len(selections))
		for i, selection := range selections {
			ands[i] = depsolve.NewAnd(selection...)
		}
		nodes[entry.id].Dependency = depsolve.NewOrAnd(depsolve.NewOr(ands...))
	}
	return nodes[root], nil
}
