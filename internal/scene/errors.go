package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

// MalformedRecordError reports a record of a known kind missing an expected
// field.
type MalformedRecordError struct {
	// Anchor is the document's fileID (empty for documents without one).
	Anchor ir.Identifier

	// Kind is the record's top-level key, e.g. "Transform".
	Kind string

	// Path is the lookup path that failed, e.g. ["Transform", "m_GameObject", "fileID"].
	Path []string

	// Line is the source line of the last node reached, 0 if unknown.
	Line int
}

func (e *MalformedRecordError) Error() string {
	path := strings.Join(e.Path, ".")
	if e.Anchor == "" {
		return fmt.Sprintf("malformed %s record: missing %s", e.Kind, path)
	}
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s record &%s (line %d): missing %s", e.Kind, e.Anchor, e.Line, path)
	}
	return fmt.Sprintf("malformed %s record &%s: missing %s", e.Kind, e.Anchor, path)
}

// DuplicateIdentifierError reports two records of one scene claiming the same
// identifier.
type DuplicateIdentifierError struct {
	ID   ir.Identifier
	Kind string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate %s identifier %s", e.Kind, e.ID)
}

// DuplicateRootListError reports a second SceneRoots record in one scene.
type DuplicateRootListError struct{}

func (e *DuplicateRootListError) Error() string {
	return "scene has more than one root list"
}

// UnresolvedReferenceError reports a child, root or owner identifier with no
// registered entity.
type UnresolvedReferenceError struct {
	// ID is the identifier that could not be resolved.
	ID ir.Identifier

	// From is the hierarchy node that holds the reference, empty for roots.
	From ir.Identifier

	// Kind is "node" for transform lookups and "object" for owner lookups.
	Kind string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("unresolved %s reference %s in root list", e.Kind, e.ID)
	}
	return fmt.Sprintf("unresolved %s reference %s from node %s", e.Kind, e.ID, e.From)
}

// CyclicReferenceError reports a hierarchy node reachable from itself, or a
// hierarchy deeper than the resolver's depth bound.
type CyclicReferenceError struct {
	ID    ir.Identifier
	Depth int

	// Path is the chain of node identifiers from the root to ID.
	Path []ir.Identifier
}

func (e *CyclicReferenceError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("cyclic reference at node %s (depth %d): %s", e.ID, e.Depth, strings.Join(parts, " → "))
}

// IsSceneError reports whether err is one of the scene-scoped error kinds.
// Uses errors.As to handle wrapped errors.
func IsSceneError(err error) bool {
	var (
		malformed  *MalformedRecordError
		duplicate  *DuplicateIdentifierError
		roots      *DuplicateRootListError
		unresolved *UnresolvedReferenceError
		cyclic     *CyclicReferenceError
	)
	return errors.As(err, &malformed) ||
		errors.As(err, &duplicate) ||
		errors.As(err, &roots) ||
		errors.As(err, &unresolved) ||
		errors.As(err, &cyclic)
}

// IsCycleError returns true if err is a cyclic reference error.
func IsCycleError(err error) bool {
	var ce *CyclicReferenceError
	return errors.As(err, &ce)
}

// ErrorIdentifier extracts the offending identifier from a scene error, or
// "" if err carries none.
func ErrorIdentifier(err error) ir.Identifier {
	var (
		malformed  *MalformedRecordError
		duplicate  *DuplicateIdentifierError
		unresolved *UnresolvedReferenceError
		cyclic     *CyclicReferenceError
	)
	switch {
	case errors.As(err, &malformed):
		return malformed.Anchor
	case errors.As(err, &duplicate):
		return duplicate.ID
	case errors.As(err, &unresolved):
		return unresolved.ID
	case errors.As(err, &cyclic):
		return cyclic.ID
	}
	return ""
}
