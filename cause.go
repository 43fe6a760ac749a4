package depsolve

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Cause is the set of nodes blamed for a failed resolution. The set is unordered and holds each
// node at most once, nodes equal by content counting as one. Every operation returns a new
// value, so causes can be shared freely.
type Cause[ID Ident[ID]] struct {
	nodes map[*Node[ID]]struct{}
}

// EmptyCause returns a cause blaming no node.
func EmptyCause[ID Ident[ID]]() Cause[ID] {
	return Cause[ID]{}
}

// CauseFrom returns a cause blaming exactly node.
func CauseFrom[ID Ident[ID]](node *Node[ID]) Cause[ID] {
	return Cause[ID]{map[*Node[ID]]struct{}{node: {}}}
}

// An empty cause always has a nil map.
func newCause[ID Ident[ID]](nodes map[*Node[ID]]struct{}) Cause[ID] {
	if len(nodes) == 0 {
		return Cause[ID]{}
	}
	return Cause[ID]{nodes}
}

// find returns the member equal to node.
func (c Cause[ID]) find(node *Node[ID]) (*Node[ID], bool) {
	if _, ok := c.nodes[node]; ok {
		return node, true
	}
	for n := range c.nodes {
		if sameNode(n, node) {
			return n, true
		}
	}
	return nil, false
}

// Add returns the cause with node added.
func (c Cause[ID]) Add(node *Node[ID]) Cause[ID] {
	if c.Has(node) {
		return c
	}
	nodes := make(map[*Node[ID]]struct{}, len(c.nodes)+1)
	maps.Copy(nodes, c.nodes)
	nodes[node] = struct{}{}
	return newCause(nodes)
}

// Above returns the cause with node removed. It is used to promote blame past a node once the
// resolution has returned above it.
func (c Cause[ID]) Above(node *Node[ID]) Cause[ID] {
	member, ok := c.find(node)
	if !ok {
		return c
	}
	nodes := maps.Clone(c.nodes)
	delete(nodes, member)
	return newCause(nodes)
}

// Merge returns the union of both causes.
func (c Cause[ID]) Merge(other Cause[ID]) Cause[ID] {
	if len(other.nodes) == 0 {
		return c
	}
	if len(c.nodes) == 0 {
		return other
	}
	nodes := maps.Clone(c.nodes)
	for n := range other.nodes {
		if _, ok := (Cause[ID]{nodes}).find(n); !ok {
			nodes[n] = struct{}{}
		}
	}
	return newCause(nodes)
}

// Has returns true if node is blamed.
func (c Cause[ID]) Has(node *Node[ID]) bool {
	_, ok := c.find(node)
	return ok
}

// Len returns the number of blamed nodes.
func (c Cause[ID]) Len() int {
	return len(c.nodes)
}

// IsEmpty returns true if no node is blamed.
func (c Cause[ID]) IsEmpty() bool {
	return len(c.nodes) == 0
}

// Nodes returns the blamed nodes, sorted by the string form of their identity.
func (c Cause[ID]) Nodes() []*Node[ID] {
	nodes := slices.Collect(maps.Keys(c.nodes))
	slices.SortStableFunc(nodes, func(a, b *Node[ID]) int {
		return strings.Compare(fmt.Sprint(a.ID), fmt.Sprint(b.ID))
	})
	return nodes
}

// Idents returns the identities of the blamed nodes in the order of Nodes.
func (c Cause[ID]) Idents() []ID {
	nodes := c.Nodes()
	ids := make([]ID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// Equal returns true if both causes blame the same nodes.
func (c Cause[ID]) Equal(other Cause[ID]) bool {
	if len(c.nodes) != len(other.nodes) {
		return false
	}
	for n := range c.nodes {
		if !other.Has(n) {
			return false
		}
	}
	return true
}

func (c Cause[ID]) String() string {
	parts := make([]string, 0, len(c.nodes))
	for _, id := range c.Idents() {
		parts = append(parts, fmt.Sprint(id))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
