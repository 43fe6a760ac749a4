package depsolve

// Resolved is the outcome of resolving a requirement along a path.
//
// Paths holds every accepted selection. When Paths is empty the resolution failed and Cause
// names the nodes whose repeated identity blocked it; an empty Cause on a failure means the
// blame has been promoted away. Cause carries no meaning when Paths is not empty.
type Resolved[ID Ident[ID]] struct {
	Paths []Path[ID]
	Cause Cause[ID]
}

// NewResolved creates an outcome from the specified paths and cause.
func NewResolved[ID Ident[ID]](paths []Path[ID], cause Cause[ID]) Resolved[ID] {
	if len(paths) == 0 {
		paths = nil
	}
	return Resolved[ID]{paths, cause}
}

// Success returns an outcome with a single accepted path.
func Success[ID Ident[ID]](path Path[ID]) Resolved[ID] {
	return NewResolved([]Path[ID]{path}, EmptyCause[ID]())
}

// Failure returns an outcome without paths, blaming cause.
func Failure[ID Ident[ID]](cause Cause[ID]) Resolved[ID] {
	return NewResolved(nil, cause)
}

// Merge folds several outcomes into one: the paths are concatenated in input order and the
// causes are united. Merging nothing yields a failure with an empty cause.
func Merge[ID Ident[ID]](results ...Resolved[ID]) Resolved[ID] {
	var paths []Path[ID]
	cause := EmptyCause[ID]()
	for _, r := range results {
		paths = append(paths, r.Paths...)
		cause = cause.Merge(r.Cause)
	}
	return NewResolved(paths, cause)
}

// IsSuccess returns true if at least one path was accepted.
func (r Resolved[ID]) IsSuccess() bool {
	return len(r.Paths) != 0
}

// Equal returns true if both outcomes hold the same paths in the same order and blame the same
// nodes.
func (r Resolved[ID]) Equal(other Resolved[ID]) bool {
	if len(r.Paths) != len(other.Paths) {
		return false
	}
	for i := range r.Paths {
		if !r.Paths[i].Equal(other.Paths[i]) {
			return false
		}
	}
	return r.Cause.Equal(other.Cause)
}
