package family

import "slices"

// AssignGenerations runs a breadth-first traversal from rootID and assigns a
// signed generation level to every reachable person: the root is 0, spouses
// share their partner's level, parents are one level below (level-1) and
// children one level above (level+1).
//
// The visited set doubles as the cycle guard: each person is enqueued at
// most once, so marriage loops and consanguineous ancestry terminate. Every
// person never reached by the traversal (disconnected subgraphs, or an
// unknown root) defaults to generation 0 so it still renders as an isolated
// node instead of being dropped.
func AssignGenerations(idx *Index, rootID string) map[string]int {
	levels := make(map[string]int, idx.PersonCount())

	type item struct {
		id    string
		level int
	}

	if idx.Has(rootID) {
		queue := []item{{rootID, 0}}
		visited := map[string]struct{}{rootID: {}}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			levels[cur.id] = cur.level

			enqueue := func(id string, level int) {
				if _, seen := visited[id]; seen {
					return
				}
				visited[id] = struct{}{}
				queue = append(queue, item{id, level})
			}

			for _, spouse := range idx.Spouses(cur.id) {
				enqueue(spouse, cur.level)
			}
			for _, parent := range idx.Parents(cur.id) {
				enqueue(parent, cur.level-1)
			}
			for _, child := range idx.Children(cur.id) {
				enqueue(child, cur.level+1)
			}
		}
	}

	for _, id := range idx.PersonIDs() {
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}
	return levels
}

// GenerationLevels returns the distinct levels present in the assignment,
// sorted ascending.
func GenerationLevels(levels map[string]int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, l := range levels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return out
}
