package repository

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

func newGraph[ID comparable]() *rawGraph[ID] {
	return &rawGraph[ID]{
		&sync.Mutex{},
		nil,
		map[ID]*rawNode[ID]{},
		map[ID]map[ID]struct{}{},
		map[ID]map[ID]struct{}{},
	}
}

type rawGraph[ID comparable] struct {
	lock  *sync.Mutex
	root  *rawNode[ID]
	nodes map[ID]*rawNode[ID]
	// Map of the depending packages to a set of their dependencies.
	connectionsFromNode map[ID]map[ID]struct{}
	// Map of the dependencies to a set of the packages depending on them.
	connectionsToNode map[ID]map[ID]struct{}
}

func (g *rawGraph[ID]) Root() RawNode[ID] {
	return g.root
}

func (g *rawGraph[ID]) Mermaid() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	result := []string{
		"%% Mermaid markdown dependency graph",
		"flowchart LR",
	}

	sorted := g.sortedNodes()
	vertexIDs := make(map[ID]string, len(sorted))
	for i, n := range sorted {
		vertexIDs[n.id] = fmt.Sprintf("n%d", i)
		result = append(result, fmt.Sprintf("%s[%q]", vertexIDs[n.id], fmt.Sprint(n.id)))
	}
	for _, n := range sorted {
		for _, target := range n.outbound {
			result = append(result, fmt.Sprintf("%s-->%s", vertexIDs[n.id], vertexIDs[target]))
		}
	}

	result = append(result, "%% Mermaid end")
	return strings.Join(result, "\n") + "\n"
}

// sortedNodes returns the nodes ordered by their printed identity. The caller must hold the lock.
func (g *rawGraph[ID]) sortedNodes() []*rawNode[ID] {
	result := make([]*rawNode[ID], 0, len(g.nodes))
	for _, n := range g.nodes {
		result = append(result, n)
	}
	slices.SortFunc(result, func(a, b *rawNode[ID]) int {
		return cmp.Compare(fmt.Sprint(a.id), fmt.Sprint(b.id))
	})
	return result
}

func (g *rawGraph[ID]) cloneMap(source map[ID]map[ID]struct{}) map[ID]map[ID]struct{} {
	result := make(map[ID]map[ID]struct{}, len(source))
	for nodeID1, tier2 := range source {
		result[nodeID1] = make(map[ID]struct{}, len(tier2))
		for nodeID2 := range tier2 {
			result[nodeID1][nodeID2] = struct{}{}
		}
	}
	return result
}

func (g *rawGraph[ID]) HasCycles() bool {
	g.lock.Lock()
	connectionsToNode := g.cloneMap(g.connectionsToNode)
	g.lock.Unlock()
	for {
		var removeNodeIDs []ID
		// Select all nodes nothing depends on.
		for nodeID, inboundConnections := range connectionsToNode {
			if len(inboundConnections) == 0 {
				removeNodeIDs = append(removeNodeIDs, nodeID)
			}
		}
		// Whatever remains once no such node exists lies on a cycle.
		if len(removeNodeIDs) == 0 {
			return len(connectionsToNode) != 0
		}
		for _, nodeID := range removeNodeIDs {
			delete(connectionsToNode, nodeID)
		}
		for _, nodeID := range removeNodeIDs {
			for targetNodeID := range connectionsToNode {
				delete(connectionsToNode[targetNodeID], nodeID)
			}
		}
	}
}

func (g *rawGraph[ID]) addNode(id ID) (*rawNode[ID], error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	if _, ok := g.nodes[id]; ok {
		return nil, ErrNodeAlreadyExists{
			fmt.Sprint(id),
		}
	}
	n := &rawNode[ID]{
		id: id,
		g:  g,
	}
	g.nodes[id] = n
	g.connectionsToNode[id] = map[ID]struct{}{}
	g.connectionsFromNode[id] = map[ID]struct{}{}
	return n, nil
}

func (g *rawGraph[ID]) GetNodeByID(id ID) (RawNode[ID], error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound{
			fmt.Sprint(id),
		}
	}
	return n, nil
}

func (g *rawGraph[ID]) ListNodes() map[ID]RawNode[ID] {
	g.lock.Lock()
	defer g.lock.Unlock()

	result := make(map[ID]RawNode[ID], len(g.nodes))
	for nodeID, n := range g.nodes {
		result[nodeID] = n
	}
	return result
}

func (g *rawGraph[ID]) ListNodesWithoutInboundConnections() map[ID]RawNode[ID] {
	g.lock.Lock()
	defer g.lock.Unlock()

	result := map[ID]RawNode[ID]{}
	for nodeID, n := range g.nodes {
		if len(g.connectionsToNode[nodeID]) == 0 {
			result[nodeID] = n
		}
	}
	return result
}

// connectNodes records that the package fromID depends on toID. Unlike a workflow DAG, a package
// may depend on itself.
func (g *rawGraph[ID]) connectNodes(fromID, toID ID) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return ErrNodeNotFound{fmt.Sprint(fromID)}
	}
	if _, ok := g.nodes[toID]; !ok {
		return ErrNodeNotFound{fmt.Sprint(toID)}
	}
	if _, ok := g.connectionsFromNode[fromID][toID]; ok {
		return ErrConnectionAlreadyExists{fmt.Sprint(fromID), fmt.Sprint(toID)}
	}
	g.connectionsFromNode[fromID][toID] = struct{}{}
	g.connectionsToNode[toID][fromID] = struct{}{}
	fromNode.outbound = append(fromNode.outbound, toID)
	return nil
}

type rawNode[ID comparable] struct {
	id ID
	g  *rawGraph[ID]
	// Dependencies in declaration order.
	outbound []ID
}

func (n *rawNode[ID]) ID() ID {
	return n.id
}

func (n *rawNode[ID]) ListOutboundConnections() []RawNode[ID] {
	n.g.lock.Lock()
	defer n.g.lock.Unlock()
	result := make([]RawNode[ID], len(n.outbound))
	for i, id := range n.outbound {
		result[i] = n.g.nodes[id]
	}
	return result
}

func (n *rawNode[ID]) ListInboundConnections() map[ID]RawNode[ID] {
	n.g.lock.Lock()
	defer n.g.lock.Unlock()
	result := make(map[ID]RawNode[ID], len(n.g.connectionsToNode[n.id]))
	for id := range n.g.connectionsToNode[n.id] {
		result[id] = n.g.nodes[id]
	}
	return result
}

func (n *rawNode[ID]) String() string {
	return fmt.Sprint(n.id)
}
