package depsolve

// HasDuplicates returns true if any value occurs more than once in items.
func HasDuplicates[T comparable](items []T) bool {
	seen := make(map[T]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			return true
		}
		seen[item] = struct{}{}
	}
	return false
}

// Unique is the simplest identity: a name that conflicts only with itself.
type Unique string

// AreConflicting returns true if the same name occurs more than once.
func (Unique) AreConflicting(ids []Unique) bool {
	return HasDuplicates(ids)
}

func (u Unique) String() string {
	return string(u)
}
