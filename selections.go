package depsolve

// Selections returns the Cartesian product of sources: every way of picking one element from each
// source, in source order. The first source varies slowest. Zero sources yield a single empty
// selection; any empty source yields none.
func Selections[T any](sources [][]T) [][]T {
	if len(sources) == 0 {
		return [][]T{{}}
	}
	rest := Selections(sources[1:])
	result := make([][]T, 0, len(sources[0])*len(rest))
	for _, head := range sources[0] {
		for _, tail := range rest {
			selection := make([]T, 0, len(tail)+1)
			selection = append(selection, head)
			selection = append(selection, tail...)
			result = append(result, selection)
		}
	}
	return result
}
