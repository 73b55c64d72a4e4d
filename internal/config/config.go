// Package config loads the project layout used to discover scenes and
// scripts.
//
// Configuration is an optional CUE file. Its fields are unified with a closed
// schema that supplies defaults matching the standard Unity layout, so an
// empty or absent file yields Default(). Unknown fields are rejected.
//
//	scenes_dir:      "Assets/Scenes"
//	scene_ext:       ".unity"
//	scripts_dir:     "Assets/Scripts"
//	script_ext:      ".cs.meta"
//	max_depth:       1024
//	transform_kinds: ["Transform", "RectTransform"]
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// schema is the closed definition every config file is unified with.
const schema = `
#Config: {
	scenes_dir:      *"Assets/Scenes" | (string & !="")
	scene_ext:       *".unity" | (string & =~"^\\.")
	scripts_dir:     *"Assets/Scripts" | (string & !="")
	script_ext:      *".cs.meta" | (string & =~"^\\.")
	max_depth:       *1024 | (int & >0)
	transform_kinds: *["Transform", "RectTransform"] | [string, ...string]
}
`

// Config describes where a project's inputs live and how scenes are walked.
type Config struct {
	ScenesDir      string   `json:"scenes_dir"`
	SceneExt       string   `json:"scene_ext"`
	ScriptsDir     string   `json:"scripts_dir"`
	ScriptExt      string   `json:"script_ext"`
	MaxDepth       int      `json:"max_depth"`
	TransformKinds []string `json:"transform_kinds"`
}

// Error reports an invalid configuration file.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Default returns the standard Unity project layout.
func Default() *Config {
	cfg, err := Parse(nil, "")
	if err != nil {
		// The embedded schema is constant; failing here is a programming error.
		panic(fmt.Sprintf("config: invalid built-in schema: %v", err))
	}
	return cfg
}

// Load reads a CUE config file. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: fmt.Sprintf("read config: %v", err)}
	}
	return Parse(data, path)
}

// Parse unifies CUE source with the schema and decodes the result.
// filename is used for error positions only.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(schema, cue.Filename("config-schema.cue")).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return nil, formatCUEError(filename, err)
	}

	value := def
	if len(data) > 0 {
		file := ctx.CompileBytes(data, cue.Filename(filename))
		if err := file.Err(); err != nil {
			return nil, formatCUEError(filename, err)
		}
		value = def.Unify(file)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(filename, err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, formatCUEError(filename, err)
	}
	return &cfg, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: path, Message: err.Error()}
	}

	first := errs[0]
	cfgErr := &Error{Path: path, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		cfgErr.Pos = positions[0]
	}
	return cfgErr
}
