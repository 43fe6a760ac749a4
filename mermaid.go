package depsolve

import (
	"fmt"
	"strings"
)

// Mermaid renders the accepted paths as a Mermaid flowchart. Each distinct node gets its own
// vertex, edges follow visitation order and are listed once. Blamed nodes are listed in a
// separate section.
func (r Resolved[ID]) Mermaid() string {
	result := []string{
		"%% Mermaid markdown resolution",
		"flowchart LR",
	}

	names := map[*Node[ID]]string{}
	vertex := func(n *Node[ID]) string {
		name, ok := names[n]
		if !ok {
			name = fmt.Sprintf("n%d", len(names))
			names[n] = name
			result = append(result, fmt.Sprintf("%s[%q]", name, fmt.Sprint(n.ID)))
		}
		return name
	}

	seen := map[string]struct{}{}
	for i, p := range r.Paths {
		result = append(result, fmt.Sprintf("%%%% Path %d", i+1))
		var previous string
		for j, n := range p.nodes {
			current := vertex(n)
			if j > 0 {
				connection := fmt.Sprintf("%s-->%s", previous, current)
				if _, ok := seen[connection]; !ok {
					seen[connection] = struct{}{}
					result = append(result, connection)
				}
			}
			previous = current
		}
	}

	if !r.Cause.IsEmpty() {
		result = append(result, "%% Cause")
		for _, n := range r.Cause.Nodes() {
			result = append(result, fmt.Sprintf("%s:::cause", vertex(n)))
		}
		result = append(result, "classDef cause stroke:#f00")
	}

	result = append(result, "%% Mermaid end")
	return strings.Join(result, "\n") + "\n"
}
