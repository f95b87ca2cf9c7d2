// Package schema defines the extracted-field carrier and the entity types
// produced by every table extractor in the pipeline.
package schema

import "encoding/json"

// NullReason is the closed set of machine-readable reasons a Field carries
// no value.
type NullReason string

const (
	NotExtracted   NullReason = "not_extracted"
	MissingAmount  NullReason = "missing_amount"
	ParentNotFound NullReason = "parent_not_found"
	FromFilename   NullReason = "from_filename"
)

// Provenance records the page and verbatim source line a value was parsed
// from. It is immutable once attached to a Field.
type Provenance struct {
	Page     int
	LineText string
}

// Field is the uniform extracted-value carrier F<T>: either a populated
// value with provenance, or a null value with a reason. A Field parsed from
// the document always carries at least one Provenance entry; a Field
// derived from an out-of-band source (the input file name) carries none and
// is marked with reason FromFilename alongside its value.
type Field[T any] struct {
	Value      *T
	Reason     NullReason
	Provenance []Provenance
}

// Of constructs a populated Field with a single provenance entry.
func Of[T any](value T, page int, lineText string) Field[T] {
	return Field[T]{
		Value:      &value,
		Provenance: []Provenance{{Page: page, LineText: lineText}},
	}
}

// Null constructs an empty Field carrying the given reason.
func Null[T any](reason NullReason) Field[T] {
	return Field[T]{Reason: reason}
}

// FromFile constructs a Field sourced from the file name rather than the
// document body; it never carries Provenance.
func FromFile[T any](value T) Field[T] {
	return Field[T]{Value: &value, Reason: FromFilename}
}

// IsNull reports whether the field carries no value.
func (f Field[T]) IsNull() bool {
	return f.Value == nil
}

// Get returns the value and whether it was present.
func (f Field[T]) Get() (T, bool) {
	if f.Value == nil {
		var zero T
		return zero, false
	}
	return *f.Value, true
}

// provenanceWire is the serialized shape of one Provenance entry.
type provenanceWire struct {
	Page     int    `json:"page"`
	LineText string `json:"line_text"`
}

// fieldWire is the serialized shape of a Field: its value (nil when
// absent), the reason it is absent, and the ordered provenance of a value
// parsed from the document.
type fieldWire[T any] struct {
	Value      *T               `json:"value"`
	Reason     NullReason       `json:"reason,omitempty"`
	Provenance []provenanceWire `json:"provenance,omitempty"`
}

// MarshalJSON renders the field as
// {"value": ..., "reason": ..., "provenance": [...]}.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	wire := fieldWire[T]{Value: f.Value, Reason: f.Reason}
	for _, p := range f.Provenance {
		wire.Provenance = append(wire.Provenance, provenanceWire{Page: p.Page, LineText: p.LineText})
	}
	return json.Marshal(wire)
}

// UnmarshalJSON restores a Field from its wire shape.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var wire fieldWire[T]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	f.Value = wire.Value
	f.Reason = wire.Reason
	f.Provenance = nil
	for _, p := range wire.Provenance {
		f.Provenance = append(f.Provenance, Provenance{Page: p.Page, LineText: p.LineText})
	}
	return nil
}
