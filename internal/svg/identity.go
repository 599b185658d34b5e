package svg

import "strconv"

// idAssigner guarantees unique primitive identifiers within one parse.
// Synthesized ids derive from the emission index so re-parsing the same
// source yields identical results. The seen set is owned by exactly one
// parse invocation and dies with it.
type idAssigner struct {
	seen map[string]struct{}
}

func newIDAssigner() *idAssigner {
	return &idAssigner{seen: make(map[string]struct{})}
}

// assign returns proposed when it is unused, synthesizes path-<index> when
// proposed is empty, and disambiguates collisions with an incrementing
// numeric suffix.
func (a *idAssigner) assign(proposed string, index int) string {
	id := proposed
	if id == "" {
		id = "path-" + strconv.Itoa(index)
	}
	if _, taken := a.seen[id]; taken {
		for n := 2; ; n++ {
			candidate := id + "-" + strconv.Itoa(n)
			if _, taken := a.seen[candidate]; !taken {
				id = candidate
				break
			}
		}
	}
	a.seen[id] = struct{}{}
	return id
}
