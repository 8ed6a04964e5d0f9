package catalog

import "strings"

// Node is one fixed stage in the data-flow traversal.
type Node struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`

	// Ordinal is the zero-based position in the traversal. Assigned from
	// list order when the catalog is built.
	Ordinal int `yaml:"-" json:"-"`
}

// Category is a WADDLE threat category with its STRIDE counterpart.
type Category struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Stride   string `yaml:"stride" json:"stride"`
	ColorTag string `yaml:"color" json:"color"`
}

// Letter returns the WADDLE letter shown for the category. The two
// D categories (D1 Disruption, D2 Denial) both display as "D".
func (c Category) Letter() string {
	if strings.HasPrefix(c.Code, "D") {
		return "D"
	}
	return c.Code
}

// Threat is a scenario bound to one or more nodes with one correct
// mitigation and three distractors.
type Threat struct {
	ID           string   `yaml:"id" json:"id"`
	CategoryCode string   `yaml:"category" json:"category"`
	NodeIDs      []string `yaml:"nodes" json:"nodes"`
	Prompt       string   `yaml:"prompt" json:"prompt"`
	Mitigation   string   `yaml:"mitigation" json:"mitigation"`
	Distractors  []string `yaml:"distractors" json:"distractors"`
	Hint         string   `yaml:"hint" json:"hint"`
}

// Choices returns the mitigation followed by the distractors, in catalog
// order. Callers shuffle for presentation.
func (t Threat) Choices() []string {
	out := make([]string, 0, len(t.Distractors)+1)
	out = append(out, t.Mitigation)
	out = append(out, t.Distractors...)
	return out
}

// EligibleFor reports whether the threat may be assigned at nodeID.
func (t Threat) EligibleFor(nodeID string) bool {
	for _, id := range t.NodeIDs {
		if id == nodeID {
			return true
		}
	}
	return false
}
