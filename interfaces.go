package depsolve

// Ident is the contract for values naming a component.
//
// Two identities are the same component if and only if they are equal. AreConflicting is used
// like a static function: it is always called on the zero value of the type, and must decide
// from its argument alone whether the identities can appear together in one path.
type Ident[ID any] interface {
	comparable
	// AreConflicting returns true if the given sequence of identities cannot coexist.
	AreConflicting(ids []ID) bool
}

// Requirement describes what else must resolve for a node to be usable.
//
// The set of implementations is closed: Leaf, Any and OrAnd.
type Requirement[ID Ident[ID]] interface {
	// Resolve attempts to satisfy the requirement on top of the specified path. Each returned
	// path starts with the specified one.
	Resolve(path Path[ID]) Resolved[ID]

	resolve(w *walk[ID], path Path[ID]) Resolved[ID]
}

// Solvability is the classification of a path after a node has been appended to it.
type Solvability string

const (
	// Solvable means the identities on the path do not conflict.
	Solvable Solvability = "ok"
	// Conflict means the path contains conflicting identities and cannot be extended.
	Conflict Solvability = "conflict"
)

// Classify returns the Solvability of the specified path.
func Classify[ID Ident[ID]](path Path[ID]) Solvability {
	if path.Conflict() {
		return Conflict
	}
	return Solvable
}

func areConflicting[ID Ident[ID]](ids []ID) bool {
	var zero ID
	return zero.AreConflicting(ids)
}
