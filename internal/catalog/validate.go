package catalog

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on the catalog tables.
// Returns a combined error describing all problems found, or nil if valid.
func validate(nodes []Node, categories []Category, threats []Threat) error {
	var errs []string

	if len(nodes) == 0 {
		errs = append(errs, "catalog has no nodes")
	}

	nodeSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			errs = append(errs, "node with empty ID")
			continue
		}
		if nodeSet[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node ID: %q", n.ID))
		}
		nodeSet[n.ID] = true
	}

	catSet := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c.Code == "" {
			errs = append(errs, "category with empty code")
			continue
		}
		if catSet[c.Code] {
			errs = append(errs, fmt.Sprintf("duplicate category code: %q", c.Code))
		}
		catSet[c.Code] = true
	}

	threatSet := make(map[string]bool, len(threats))
	for _, t := range threats {
		if t.ID == "" {
			errs = append(errs, "threat with empty ID")
			continue
		}
		if threatSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate threat ID: %q", t.ID))
		}
		threatSet[t.ID] = true

		if !catSet[t.CategoryCode] {
			errs = append(errs, fmt.Sprintf("threat %q references unknown category %q", t.ID, t.CategoryCode))
		}
		if len(t.NodeIDs) == 0 {
			errs = append(errs, fmt.Sprintf("threat %q has no eligible nodes", t.ID))
		}
		for _, id := range t.NodeIDs {
			if !nodeSet[id] {
				errs = append(errs, fmt.Sprintf("threat %q references unknown node %q", t.ID, id))
			}
		}
		if strings.TrimSpace(t.Mitigation) == "" {
			errs = append(errs, fmt.Sprintf("threat %q has empty mitigation", t.ID))
		}
		if len(t.Distractors) != ChoiceCount-1 {
			errs = append(errs, fmt.Sprintf("threat %q has %d distractors, want %d", t.ID, len(t.Distractors), ChoiceCount-1))
		}

		// Exactly one of the choices may equal the mitigation, and choices
		// must be distinct so a chosen text identifies one option.
		seen := map[string]bool{t.Mitigation: true}
		for _, d := range t.Distractors {
			if seen[d] {
				errs = append(errs, fmt.Sprintf("threat %q has duplicate choice %q", t.ID, d))
			}
			seen[d] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(errs, "; "))
	}
	return nil
}
