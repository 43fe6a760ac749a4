package repository

// Package is a component available in a Repository.
type Package[ID comparable] interface {
	// ID returns the identity of the package. It must be unique within a Repository.
	ID() ID
	// Dependencies lists the choice sets of the package. Every set must be satisfied by one of
	// its identities.
	Dependencies() []Dependency[ID]
}

// Graph is the raw dependency graph of the packages reachable from a root package. It carries no
// conflict semantics: every dependency edge to every available choice is present.
type Graph[ID comparable] interface {
	// Root returns the node of the package the graph was built from.
	Root() RawNode[ID]
	// GetNodeByID returns the node with the specified ID. If the node does not exist, an
	// ErrNodeNotFound is returned.
	GetNodeByID(id ID) (RawNode[ID], error)
	// ListNodes lists all nodes in the graph.
	ListNodes() map[ID]RawNode[ID]
	// ListNodesWithoutInboundConnections lists all nodes that no other package depends on.
	ListNodesWithoutInboundConnections() map[ID]RawNode[ID]
	// HasCycles performs cycle detection and returns true if some package depends on itself,
	// directly or transitively.
	HasCycles() bool
	// Mermaid outputs the graph as a Mermaid string.
	Mermaid() string
}

// RawNode is a single package in a Graph.
type RawNode[ID comparable] interface {
	// ID returns the identity of the package.
	ID() ID
	// ListOutboundConnections lists the dependencies of the package in the order they were
	// declared. A dependency matched by several choice sets is listed once.
	ListOutboundConnections() []RawNode[ID]
	// ListInboundConnections lists the packages depending on this one.
	ListInboundConnections() map[ID]RawNode[ID]
}
