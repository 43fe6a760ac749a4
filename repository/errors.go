package repository

import "fmt"

// ErrPackageNotFound is returned if the requested package is not in the repository.
type ErrPackageNotFound struct {
	PackageID string
}

func (e ErrPackageNotFound) Error() string {
	return fmt.Sprintf("package %q not found in repository", e.PackageID)
}

// ErrNodeNotFound is returned if a graph holds no node for the specified package.
type ErrNodeNotFound struct {
	NodeID string
}

func (e ErrNodeNotFound) Error() string {
	return fmt.Sprintf("package %q is not part of the graph", e.NodeID)
}

// ErrNodeAlreadyExists signals that the graph already holds a node for the package.
type ErrNodeAlreadyExists struct {
	NodeID string
}

func (e ErrNodeAlreadyExists) Error() string {
	return fmt.Sprintf("package %q is already part of the graph", e.NodeID)
}

// ErrConnectionAlreadyExists signals that the dependency edge was recorded before.
type ErrConnectionAlreadyExists struct {
	SourceNodeID      string
	DestinationNodeID string
}

func (e ErrConnectionAlreadyExists) Error() string {
	return fmt.Sprintf("dependency of %q on %q is already recorded", e.SourceNodeID, e.DestinationNodeID)
}
