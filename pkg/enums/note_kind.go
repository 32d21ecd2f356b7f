package enums

import "fmt"

// NoteKind routes a note into the internal, customer, or supplier thread.
type NoteKind string

const (
	NoteKindInternal NoteKind = "internal"
	NoteKindCustomer NoteKind = "customer"
	NoteKindSupplier NoteKind = "supplier"
)

var validNoteKinds = []NoteKind{
	NoteKindInternal,
	NoteKindCustomer,
	NoteKindSupplier,
}

// String implements fmt.Stringer.
func (n NoteKind) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NoteKind.
func (n NoteKind) IsValid() bool {
	for _, candidate := range validNoteKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNoteKind converts raw input into a NoteKind.
func ParseNoteKind(value string) (NoteKind, error) {
	for _, candidate := range validNoteKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid note kind %q", value)
}
