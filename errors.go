package depsolve

import "fmt"

// ErrNotAPrefix is the panic value of Path.Suffix when the argument is not a prefix of the path.
type ErrNotAPrefix struct {
	Path   string
	Prefix string
}

func (e ErrNotAPrefix) Error() string {
	return fmt.Sprintf("path %q does not start with %q", e.Path, e.Prefix)
}

// ErrDepthExceeded is returned by a Solver when a path grows beyond the configured maximum depth.
type ErrDepthExceeded struct {
	MaxDepth int
	NodeID   string
}

func (e ErrDepthExceeded) Error() string {
	return fmt.Sprintf("visiting node %q would exceed the maximum path depth of %d", e.NodeID, e.MaxDepth)
}

// ErrNilNode is the panic value when a nil node is solved or placed in a requirement.
type ErrNilNode struct{}

func (e ErrNilNode) Error() string {
	return "nil node"
}

// ErrInvalidIdentity indicates that an identity could not be parsed.
type ErrInvalidIdentity struct {
	Identity string
	Reason   string
	Cause    error
}

func (e ErrInvalidIdentity) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid identity %q: %s (%v)", e.Identity, e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid identity %q: %s", e.Identity, e.Reason)
}

func (e ErrInvalidIdentity) Unwrap() error {
	return e.Cause
}
