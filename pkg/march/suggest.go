package march

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a suggestion may be from the query.
const maxSuggestDistance = 3

// Suggest returns up to limit known node names closest to the query by
// edit distance, nearest first. Names further than maxSuggestDistance
// edits away are never suggested.
func (g *Graph) Suggest(query string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	query = strings.ToLower(query)
	candidates := make([]scored, 0, limit)
	for _, node := range g.nodes {
		d := levenshtein.ComputeDistance(query, node.Name)
		if d > maxSuggestDistance {
			continue
		}
		candidates = append(candidates, scored{name: node.Name, dist: d})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
