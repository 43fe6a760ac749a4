package repository

import (
	"errors"
	"testing"

	"go.arcalot.io/assert"
)

func TestRawGraph_Connect(t *testing.T) {
	g := newGraph[string]()
	_, err := g.addNode("node-1")
	assert.NoError(t, err)
	_, err = g.addNode("node-2")
	assert.NoError(t, err)

	var exists ErrNodeAlreadyExists
	_, err = g.addNode("node-1")
	assert.Equals(t, errors.As(err, &exists), true)
	assert.Equals(t, exists.NodeID, "node-1")

	assert.NoError(t, g.connectNodes("node-1", "node-2"))
	var connected ErrConnectionAlreadyExists
	assert.Equals(t, errors.As(g.connectNodes("node-1", "node-2"), &connected), true)
	assert.Equals(t, connected.SourceNodeID, "node-1")
	assert.Equals(t, connected.DestinationNodeID, "node-2")

	var notFound ErrNodeNotFound
	assert.Equals(t, errors.As(g.connectNodes("node-1", "node-3"), &notFound), true)
	assert.Equals(t, notFound.NodeID, "node-3")
	assert.Error(t, g.connectNodes("node-3", "node-1"))

	// Packages may depend on themselves.
	assert.NoError(t, g.connectNodes("node-2", "node-2"))
	assert.Equals(t, g.HasCycles(), true)
}
