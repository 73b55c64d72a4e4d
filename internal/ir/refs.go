package ir

// Identifier is an opaque record anchor (Unity fileID) or script GUID.
// Identifiers link records within one file; they are not unique across files.
type Identifier string

// NoIdentifier is the zero fileID Unity writes for an empty reference.
const NoIdentifier Identifier = "0"

// String returns the identifier as written in the source document.
func (id Identifier) String() string {
	return string(id)
}
