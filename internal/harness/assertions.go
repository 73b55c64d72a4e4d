package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertDump:
		return assertDump(&result.Snapshot, a)
	case AssertSceneError:
		return assertSceneError(&result.Snapshot, a)
	case AssertUnused:
		return assertUnused(&result.Snapshot, a)
	case AssertReferenced:
		return assertReferenced(result, a)
	case AssertScriptFailures:
		return assertScriptFailures(&result.Snapshot, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func assertDump(s *Snapshot, a Assertion) error {
	sc, ok := s.Scene(a.Scene)
	if !ok {
		return &AssertionError{Type: a.Type, Expected: "scene " + a.Scene, Actual: "scene not processed"}
	}
	if sc.Error != "" {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s rendered", a.Scene),
			Actual:   fmt.Sprintf("skipped with %s (id %q)", sc.Error, sc.ErrorID),
		}
	}
	if !slices.Equal(sc.Dump, a.Lines) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%q", a.Lines),
			Actual:   fmt.Sprintf("%q", sc.Dump),
		}
	}
	return nil
}

func assertSceneError(s *Snapshot, a Assertion) error {
	sc, ok := s.Scene(a.Scene)
	if !ok {
		return &AssertionError{Type: a.Type, Expected: "scene " + a.Scene, Actual: "scene not processed"}
	}
	if sc.Error != a.Code || (a.ID != "" && sc.ErrorID != a.ID) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s (id %q)", a.Code, a.ID),
			Actual:   fmt.Sprintf("%q (id %q)", sc.Error, sc.ErrorID),
		}
	}
	return nil
}

func assertUnused(s *Snapshot, a Assertion) error {
	got := make([]string, 0, len(s.Unused))
	for _, asset := range s.Unused {
		got = append(got, string(asset.ID))
	}
	if !slices.Equal(got, a.GUIDs) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", a.GUIDs), Actual: fmt.Sprintf("%q", got)}
	}
	return nil
}

func assertReferenced(r *Result, a Assertion) error {
	if r.Run == nil {
		return &AssertionError{Type: a.Type, Expected: "a completed run", Actual: "no run"}
	}
	var missing []string
	for _, guid := range a.GUIDs {
		if !r.Run.Referenced.Contains(ir.Identifier(guid)) {
			missing = append(missing, guid)
		}
	}
	if len(missing) > 0 {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%q referenced", a.GUIDs),
			Actual:   fmt.Sprintf("%q not referenced", missing),
		}
	}
	return nil
}

func assertScriptFailures(s *Snapshot, a Assertion) error {
	if !slices.Equal(s.ScriptFailures, a.Paths) {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", a.Paths), Actual: fmt.Sprintf("%q", s.ScriptFailures)}
	}
	return nil
}
