package maze

import (
	"fmt"
	"strings"
)

// Algorithm selects the generator a Maze carves its grid with.
type Algorithm int

const (
	// Kruskal builds a randomized spanning tree by shuffling every candidate edge
	// and keeping the ones that join two disjoint sets.
	Kruskal Algorithm = iota
	// Eller propagates per-row sets from top to bottom.
	Eller
)

var algorithmNames = map[Algorithm]string{
	Kruskal: "Kruskal",
	Eller:   "Eller",
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func (a Algorithm) valid() bool {
	_, ok := algorithmNames[a]
	return ok
}

// ParseAlgorithm resolves an algorithm by name, case-insensitively.
// "spanning-tree" and "row-propagation" are accepted as aliases.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kruskal", "spanning-tree":
		return Kruskal, nil
	case "eller", "row-propagation":
		return Eller, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
