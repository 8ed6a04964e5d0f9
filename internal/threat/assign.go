package threat

import (
	"math/rand/v2"

	"github.com/abhisek/waddle/internal/catalog"
)

// Assignment is a threat bound to a node for one run, with its choices
// in a fixed presentation order.
type Assignment struct {
	NodeID  string
	Threat  catalog.Threat
	Choices []string
}

// IsCorrect reports whether choice is the mitigation text.
func (a *Assignment) IsCorrect(choice string) bool {
	return choice == a.Threat.Mitigation
}

// CorrectIndex returns the position of the mitigation in Choices.
func (a *Assignment) CorrectIndex() int {
	for i, c := range a.Choices {
		if a.IsCorrect(c) {
			return i
		}
	}
	return -1
}

// Assigner picks threats for nodes from a catalog.
type Assigner struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewAssigner creates an Assigner. A nil rng gets a randomly seeded PCG.
func NewAssigner(cat *catalog.Catalog, rng *rand.Rand) *Assigner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Assigner{catalog: cat, rng: rng}
}

// Assign returns the threat for node. An existing assignment is returned
// unchanged. Otherwise a threat eligible at the node and not in seen is
// picked uniformly and its choices shuffled. Returns nil when no such
// threat exists; the node is then ungated.
//
// Assign does not record anything; the caller memoizes the result.
func (a *Assigner) Assign(node catalog.Node, seen map[string]bool, existing *Assignment) *Assignment {
	if existing != nil {
		return existing
	}

	var pool []catalog.Threat
	for _, t := range a.catalog.ThreatsFor(node.ID) {
		if !seen[t.ID] {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	picked := pool[a.rng.IntN(len(pool))]
	choices := picked.Choices()
	a.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return &Assignment{
		NodeID:  node.ID,
		Threat:  picked,
		Choices: choices,
	}
}
