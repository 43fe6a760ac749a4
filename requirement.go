package depsolve

// Leaf is a requirement satisfied by resolving exactly one node.
type Leaf[ID Ident[ID]] struct {
	Node *Node[ID]
}

// NewLeaf creates a requirement forwarding to node.
func NewLeaf[ID Ident[ID]](node *Node[ID]) Leaf[ID] {
	return Leaf[ID]{mustNode(node)}
}

// Resolve solves the single node on top of path.
func (l Leaf[ID]) Resolve(path Path[ID]) Resolved[ID] {
	return l.resolve(plainWalk[ID](), path)
}

func (l Leaf[ID]) resolve(w *walk[ID], path Path[ID]) Resolved[ID] {
	return l.Node.solve(w, path)
}

// Any is a requirement satisfied by any one of several nodes. Every alternative is tried against
// the same starting path, and all of their outcomes are kept.
type Any[ID Ident[ID]] struct {
	Nodes []*Node[ID]
}

// NewAny creates a requirement over the specified alternatives.
func NewAny[ID Ident[ID]](nodes ...*Node[ID]) Any[ID] {
	return Any[ID]{mustNodes(nodes)}
}

// Resolve solves every alternative on its own copy of path and merges the outcomes in
// alternative order.
func (a Any[ID]) Resolve(path Path[ID]) Resolved[ID] {
	return a.resolve(plainWalk[ID](), path)
}

func (a Any[ID]) resolve(w *walk[ID], path Path[ID]) Resolved[ID] {
	return Merge(w.each(len(a.Nodes), func(i int) Resolved[ID] {
		return a.Nodes[i].solve(w, path.Clone())
	})...)
}

// OrAnd is a requirement in disjunctive normal form: any one of several conjunctions of nodes.
type OrAnd[ID Ident[ID]] struct {
	Or OrDependency[ID]
}

// NewOrAnd creates a requirement from a disjunction of conjunctions.
func NewOrAnd[ID Ident[ID]](or OrDependency[ID]) OrAnd[ID] {
	return OrAnd[ID]{or}
}

// Resolve resolves the disjunction on top of path.
func (o OrAnd[ID]) Resolve(path Path[ID]) Resolved[ID] {
	return o.resolve(plainWalk[ID](), path)
}

func (o OrAnd[ID]) resolve(w *walk[ID], path Path[ID]) Resolved[ID] {
	return o.Or.resolveStep(w, path)
}

// OrDependency is a disjunction of conjunctions.
type OrDependency[ID Ident[ID]] struct {
	Ands []AndDependency[ID]
}

// NewOr creates a disjunction of the specified conjunctions, tried in order.
func NewOr[ID Ident[ID]](ands ...AndDependency[ID]) OrDependency[ID] {
	return OrDependency[ID]{ands}
}

// SingleOr creates a disjunction with one conjunction.
func SingleOr[ID Ident[ID]](and AndDependency[ID]) OrDependency[ID] {
	return NewOr(and)
}

// ResolveStep tries every conjunction against the same starting path and keeps all outcomes.
func (o OrDependency[ID]) ResolveStep(path Path[ID]) Resolved[ID] {
	return o.resolveStep(plainWalk[ID](), path)
}

func (o OrDependency[ID]) resolveStep(w *walk[ID], path Path[ID]) Resolved[ID] {
	return Merge(w.each(len(o.Ands), func(i int) Resolved[ID] {
		return o.Ands[i].resolveStep(w, path.Clone())
	})...)
}

// AndDependency is a conjunction: every node must resolve, and their selections must be
// consistent with each other.
type AndDependency[ID Ident[ID]] struct {
	Nodes []*Node[ID]
}

// NewAnd creates a conjunction of the specified nodes. It panics with ErrNilNode if a node is nil.
func NewAnd[ID Ident[ID]](nodes ...*Node[ID]) AndDependency[ID] {
	return AndDependency[ID]{mustNodes(nodes)}
}

// SingleAnd creates a conjunction with one member.
func SingleAnd[ID Ident[ID]](node *Node[ID]) AndDependency[ID] {
	return NewAnd(node)
}

// ResolveStep solves every member independently on top of path. If any member fails, the
// conjunction fails with the causes of all members. Otherwise every combination of member paths
// is joined into one path (the shared prefix followed by each member's suffix, in member order),
// and the joined paths without conflicts are returned.
func (a AndDependency[ID]) ResolveStep(path Path[ID]) Resolved[ID] {
	return a.resolveStep(plainWalk[ID](), path)
}

func (a AndDependency[ID]) resolveStep(w *walk[ID], path Path[ID]) Resolved[ID] {
	results := w.each(len(a.Nodes), func(i int) Resolved[ID] {
		return a.Nodes[i].solve(w, path.Clone())
	})

	cause := EmptyCause[ID]()
	failed := false
	candidates := make([][]Path[ID], len(results))
	for i, r := range results {
		cause = cause.Merge(r.Cause)
		if !r.IsSuccess() {
			failed = true
		}
		candidates[i] = r.Paths
	}
	if failed {
		return Failure(cause)
	}

	var paths []Path[ID]
	for _, selection := range Selections(candidates) {
		parts := make([]Path[ID], 0, len(selection)+1)
		parts = append(parts, path)
		for _, p := range selection {
			parts = append(parts, p.Suffix(path))
		}
		megapath := Chain(parts...)
		if megapath.Conflict() {
			w.pruned(megapath)
			continue
		}
		paths = append(paths, megapath)
	}
	return NewResolved(paths, cause)
}

func mustNode[ID Ident[ID]](node *Node[ID]) *Node[ID] {
	if node == nil {
		panic(ErrNilNode{})
	}
	return node
}

func mustNodes[ID Ident[ID]](nodes []*Node[ID]) []*Node[ID] {
	for _, n := range nodes {
		mustNode(n)
	}
	return nodes
}
