package depsolve

import (
	"fmt"
	"reflect"
)

// Node is a unit of the requirement graph: an identity, plus what else must resolve for it to be
// usable. Nodes are shared by reference between paths and causes. Two nodes are the same node
// when they carry equal identities and equal requirements.
type Node[ID Ident[ID]] struct {
	ID         ID
	Dependency Requirement[ID]
}

// NewNode creates a node with the specified identity and requirement. A nil requirement means the
// node is usable on its own.
func NewNode[ID Ident[ID]](id ID, dependency Requirement[ID]) *Node[ID] {
	return &Node[ID]{ID: id, Dependency: dependency}
}

// Solve appends the node to path and resolves its requirement on top of it, returning every
// completed path.
func (n *Node[ID]) Solve(path Path[ID]) Resolved[ID] {
	return n.solve(plainWalk[ID](), path)
}

func (n *Node[ID]) solve(w *walk[ID], path Path[ID]) Resolved[ID] {
	if n == nil {
		panic(ErrNilNode{})
	}
	extended := path.Append(n)
	if w.halted(n, extended) {
		return Failure(EmptyCause[ID]())
	}
	w.visit(n, extended)

	if Classify(extended) == Conflict {
		// When n occurs once, the duplicate is an earlier node and the blame belongs there.
		cause := CauseFrom(n)
		if extended.Unique(n) {
			cause = EmptyCause[ID]()
		}
		w.conflict(n, extended, cause)
		return Failure(cause)
	}
	if n.Dependency == nil {
		return Success(extended)
	}
	sub := n.Dependency.resolve(w, extended)
	return NewResolved(sub.Paths, sub.Cause.Above(n))
}

func (n *Node[ID]) String() string {
	return fmt.Sprint(n.ID)
}

// sameNode reports whether a and b are equal by content.
func sameNode[ID Ident[ID]](a, b *Node[ID]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.ID != b.ID {
		return false
	}
	return reflect.DeepEqual(a.Dependency, b.Dependency)
}
