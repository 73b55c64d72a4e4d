package harness

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is optional CUE source for the project layout.
	Config string `yaml:"config,omitempty"`

	// Scenes are written to the scenes directory, in order.
	Scenes []SceneFile `yaml:"scenes"`

	// Scripts are written as meta files under the scripts directory.
	Scripts []ScriptFile `yaml:"scripts,omitempty"`

	// Assertions validate the snapshot.
	Assertions []Assertion `yaml:"assertions"`
}

// SceneFile is one scene of a scenario.
type SceneFile struct {
	// Name is the file name, e.g. "Main.unity". Slash-separated
	// subdirectories are allowed.
	Name string `yaml:"name"`

	// YAML is the scene file content.
	YAML string `yaml:"yaml"`
}

// ScriptFile is one script meta file of a scenario.
type ScriptFile struct {
	// Path is relative to the scripts directory and includes the meta
	// extension, e.g. "Enemies/Boss.cs.meta".
	Path string `yaml:"path"`

	// GUID produces a minimal meta file. Ignored when Meta is set.
	GUID string `yaml:"guid,omitempty"`

	// Meta is the raw meta file content.
	Meta string `yaml:"meta,omitempty"`
}

// Content returns the meta file bytes.
func (s ScriptFile) Content() string {
	if s.Meta != "" {
		return s.Meta
	}
	return fmt.Sprintf("fileFormatVersion: 2\nguid: %s\n", s.GUID)
}

// Assertion validates the snapshot.
type Assertion struct {
	// Type specifies the assertion type:
	// - "dump": Scene rendered exactly Lines
	// - "scene_error": Scene skipped with Code (and ID when set)
	// - "unused": Unused GUIDs equal GUIDs, in order
	// - "referenced": Every GUID in GUIDs was referenced
	// - "script_failures": Failed meta paths equal Paths, in order
	Type string `yaml:"type"`

	// Scene names the scene (used by dump, scene_error).
	Scene string `yaml:"scene,omitempty"`

	// Lines are the expected dump lines (used by dump).
	Lines []string `yaml:"lines,omitempty"`

	// Code is the expected error code, e.g. "E204" (used by scene_error).
	Code string `yaml:"code,omitempty"`

	// ID is the expected offending identifier (used by scene_error).
	ID string `yaml:"id,omitempty"`

	// GUIDs are script GUIDs (used by unused, referenced).
	GUIDs []string `yaml:"guids,omitempty"`

	// Paths are meta paths relative to the scripts directory (used by
	// script_failures).
	Paths []string `yaml:"paths,omitempty"`
}

// Assertion type constants.
const (
	AssertDump           = "dump"
	AssertSceneError     = "scene_error"
	AssertUnused         = "unused"
	AssertReferenced     = "referenced"
	AssertScriptFailures = "script_failures"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Scenes) == 0 {
		return fmt.Errorf("scenes list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	seen := make(map[string]bool)
	for i, sc := range s.Scenes {
		if err := validateRelPath(sc.Name); err != nil {
			return fmt.Errorf("scenes[%d]: name %w", i, err)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenes[%d]: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true
	}

	for i, sf := range s.Scripts {
		if err := validateRelPath(sf.Path); err != nil {
			return fmt.Errorf("scripts[%d]: path %w", i, err)
		}
		if sf.GUID == "" && sf.Meta == "" {
			return fmt.Errorf("scripts[%d]: guid or meta is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateRelPath rejects paths that would escape the project.
func validateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("is required")
	}
	if path.IsAbs(p) || strings.HasPrefix(path.Clean(p), "..") {
		return fmt.Errorf("%q must be relative and stay inside the project", p)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertDump:
		if a.Scene == "" {
			return fmt.Errorf("assertions[%d]: scene is required for dump", index)
		}
	case AssertSceneError:
		if a.Scene == "" || a.Code == "" {
			return fmt.Errorf("assertions[%d]: scene and code are required for scene_error", index)
		}
	case AssertUnused, AssertScriptFailures:
		// an empty list asserts none
	case AssertReferenced:
		if len(a.GUIDs) == 0 {
			return fmt.Errorf("assertions[%d]: guids list is required for referenced", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
