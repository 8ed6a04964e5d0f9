package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when a catalog fails structural validation.
var ErrInvalid = errors.New("invalid catalog")

// ChoiceCount is the number of choices presented for every threat.
const ChoiceCount = 4

// Catalog is the read-only table of nodes, categories and threats.
type Catalog struct {
	nodes      []Node
	categories []Category
	threats    []Threat

	nodeIndex     map[string]int
	categoryIndex map[string]int
	threatIndex   map[string]int
}

// New builds a catalog from the given tables. Node ordinals are assigned
// from slice order.
func New(nodes []Node, categories []Category, threats []Threat) (*Catalog, error) {
	if err := validate(nodes, categories, threats); err != nil {
		return nil, err
	}

	c := &Catalog{
		nodes:         make([]Node, len(nodes)),
		categories:    append([]Category(nil), categories...),
		threats:       make([]Threat, len(threats)),
		nodeIndex:     make(map[string]int, len(nodes)),
		categoryIndex: make(map[string]int, len(categories)),
		threatIndex:   make(map[string]int, len(threats)),
	}
	for i, n := range nodes {
		n.Ordinal = i
		c.nodes[i] = n
		c.nodeIndex[n.ID] = i
	}
	for i, cat := range c.categories {
		c.categoryIndex[cat.Code] = i
	}
	for i, t := range threats {
		t.NodeIDs = append([]string(nil), t.NodeIDs...)
		t.Distractors = append([]string(nil), t.Distractors...)
		c.threats[i] = t
		c.threatIndex[t.ID] = i
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(seedNodes, seedCategories, seedThreats)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in seed is invalid: %v", err))
	}
	return c
}

// Nodes returns the nodes in traversal order.
func (c *Catalog) Nodes() []Node {
	return append([]Node(nil), c.nodes...)
}

// NodeCount returns the number of nodes.
func (c *Catalog) NodeCount() int {
	return len(c.nodes)
}

// LastIndex returns the ordinal of the final node.
func (c *Catalog) LastIndex() int {
	return len(c.nodes) - 1
}

// NodeAt returns the node at ordinal i.
func (c *Catalog) NodeAt(i int) (Node, bool) {
	if i < 0 || i >= len(c.nodes) {
		return Node{}, false
	}
	return c.nodes[i], true
}

// Node looks up a node by id.
func (c *Catalog) Node(id string) (Node, bool) {
	i, ok := c.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return c.nodes[i], true
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Category looks up a category by code.
func (c *Catalog) Category(code string) (Category, bool) {
	i, ok := c.categoryIndex[code]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Threats returns every threat definition.
func (c *Catalog) Threats() []Threat {
	return append([]Threat(nil), c.threats...)
}

// Threat looks up a threat by id.
func (c *Catalog) Threat(id string) (Threat, bool) {
	i, ok := c.threatIndex[id]
	if !ok {
		return Threat{}, false
	}
	return c.threats[i], true
}

// ThreatsFor returns the threats eligible at nodeID, in catalog order.
func (c *Catalog) ThreatsFor(nodeID string) []Threat {
	var out []Threat
	for _, t := range c.threats {
		if t.EligibleFor(nodeID) {
			out = append(out, t)
		}
	}
	return out
}
