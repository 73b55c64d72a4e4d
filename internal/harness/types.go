package harness

import (
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/project"
)

// Snapshot is the deterministic, path-independent view of a run.
type Snapshot struct {
	Scenario       string           `json:"scenario"`
	Scenes         []SceneSnapshot  `json:"scenes"`
	Unused         []ir.ScriptAsset `json:"unused"`
	ScriptFailures []string         `json:"script_failures,omitempty"`
}

// SceneSnapshot is one scene in a Snapshot. Exactly one of Dump or Error
// is set, except for a scene that rendered nothing.
type SceneSnapshot struct {
	Name    string   `json:"name"`
	Dump    []string `json:"dump,omitempty"`
	Error   string   `json:"error,omitempty"`
	ErrorID string   `json:"error_id,omitempty"`
}

// Scene returns the named scene, or false.
func (s *Snapshot) Scene(name string) (SceneSnapshot, bool) {
	for _, sc := range s.Scenes {
		if sc.Name == name {
			return sc, true
		}
	}
	return SceneSnapshot{}, false
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Snapshot Snapshot `json:"snapshot"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`

	// Run is the raw project result. Its paths point into a directory
	// that no longer exists once Run returns.
	Run *project.Result `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
