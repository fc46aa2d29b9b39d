package presenter

import (
	"fmt"

	"water-abstraction-admin/internal/refdata/domain"
)

// PointDescription builds the human-readable description of an abstraction
// point from its 1–4 grid references:
//
//   - four references: an area bounded by all four
//   - two references: a reach between the two
//   - otherwise: a single point
//
// A free-text description, when present, is appended in parentheses.
func PointDescription(p *domain.Point) string {
	var out string
	switch {
	case p.NGR4 != "":
		out = fmt.Sprintf(
			"Within the area formed by the straight lines running between National Grid References %s %s %s and %s",
			p.NGR1, p.NGR2, p.NGR3, p.NGR4)
	case p.NGR2 != "":
		out = fmt.Sprintf("Between National Grid References %s and %s", p.NGR1, p.NGR2)
	default:
		out = fmt.Sprintf("At National Grid Reference %s", p.NGR1)
	}

	if p.Description != "" {
		out = fmt.Sprintf("%s (%s)", out, p.Description)
	}
	return out
}
