package schema

import "fmt"

// Label identifies an amount column. It is a tagged variant over a closed
// canonical vocabulary and a synthesized amount_N fallback, per the Design
// Notes on label inference: equality is cheap string comparison either way,
// and the canonical set stays exhaustive without an open string space.
type Label struct {
	canonical string
	synthetic int // 0 when canonical is set
}

// CanonicalLabel constructs a Label from a member of the closed vocabulary
// (e.g. "personnel", "2025_approved_budget").
func CanonicalLabel(name string) Label {
	return Label{canonical: name}
}

// SyntheticLabel constructs the Nth synthesized fallback label amount_N.
func SyntheticLabel(n int) Label {
	return Label{synthetic: n}
}

// IsSynthetic reports whether the label is a synthesized amount_N fallback.
func (l Label) IsSynthetic() bool {
	return l.canonical == "" && l.synthetic > 0
}

// String renders the label's stable string identifier.
func (l Label) String() string {
	if l.IsSynthetic() {
		return fmt.Sprintf("amount_%d", l.synthetic)
	}
	return l.canonical
}
