package depsolve

import (
	"fmt"
	"strings"
)

// Path is the ordered trail of nodes visited by one branch of a solve.
//
// A Path is a value: Append returns an extended copy and never modifies the receiver, so
// branches can share a starting path safely.
type Path[ID Ident[ID]] struct {
	nodes []*Node[ID]
}

// NewPath creates a path visiting the specified nodes in order.
func NewPath[ID Ident[ID]](nodes ...*Node[ID]) Path[ID] {
	return newPath(append([]*Node[ID](nil), nodes...))
}

// newPath takes ownership of nodes. An empty path always has a nil backing slice.
func newPath[ID Ident[ID]](nodes []*Node[ID]) Path[ID] {
	if len(nodes) == 0 {
		return Path[ID]{}
	}
	return Path[ID]{nodes}
}

// Chain concatenates the nodes of the specified paths in argument order.
func Chain[ID Ident[ID]](paths ...Path[ID]) Path[ID] {
	total := 0
	for _, p := range paths {
		total += len(p.nodes)
	}
	nodes := make([]*Node[ID], 0, total)
	for _, p := range paths {
		nodes = append(nodes, p.nodes...)
	}
	return newPath(nodes)
}

// Append returns a copy of the path extended with node.
func (p Path[ID]) Append(node *Node[ID]) Path[ID] {
	nodes := make([]*Node[ID], len(p.nodes)+1)
	copy(nodes, p.nodes)
	nodes[len(p.nodes)] = node
	return Path[ID]{nodes}
}

// Clone returns an independent copy of the path.
func (p Path[ID]) Clone() Path[ID] {
	return NewPath(p.nodes...)
}

// Nodes returns the visited nodes in order.
func (p Path[ID]) Nodes() []*Node[ID] {
	return append([]*Node[ID](nil), p.nodes...)
}

// Len returns the number of visited nodes.
func (p Path[ID]) Len() int {
	return len(p.nodes)
}

// Unique returns true if node occurs exactly once in the path. Nodes equal by content count as
// occurrences of node.
func (p Path[ID]) Unique(node *Node[ID]) bool {
	count := 0
	for _, n := range p.nodes {
		if sameNode(n, node) {
			count++
		}
	}
	return count == 1
}

// Idents projects the path onto the identities of its nodes.
func (p Path[ID]) Idents() []ID {
	ids := make([]ID, len(p.nodes))
	for i, n := range p.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Conflict returns true if the identities on the path are conflicting.
func (p Path[ID]) Conflict() bool {
	return areConflicting(p.Idents())
}

// Suffix returns the part of the path after prefix. Passing a value that is not a prefix of the
// path is a programming error and panics with ErrNotAPrefix.
func (p Path[ID]) Suffix(prefix Path[ID]) Path[ID] {
	if !p.hasPrefix(prefix) {
		panic(ErrNotAPrefix{Path: p.String(), Prefix: prefix.String()})
	}
	return NewPath(p.nodes[len(prefix.nodes):]...)
}

func (p Path[ID]) hasPrefix(prefix Path[ID]) bool {
	if len(prefix.nodes) > len(p.nodes) {
		return false
	}
	for i, n := range prefix.nodes {
		if !sameNode(p.nodes[i], n) {
			return false
		}
	}
	return true
}

// Equal returns true if both paths visit the same nodes in the same order.
func (p Path[ID]) Equal(other Path[ID]) bool {
	return len(p.nodes) == len(other.nodes) && p.hasPrefix(other)
}

func (p Path[ID]) String() string {
	parts := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		parts[i] = fmt.Sprint(n.ID)
	}
	return strings.Join(parts, " -> ")
}
