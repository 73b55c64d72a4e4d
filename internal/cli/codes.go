package cli

import (
	"errors"
	"io/fs"

	"github.com/Bunioslaw/UnityProjectParser/internal/config"
	"github.com/Bunioslaw/UnityProjectParser/internal/project"
	"github.com/Bunioslaw/UnityProjectParser/internal/scene"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// Error codes for CLI output.
const (
	// Command errors
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeConfig   = "E002" // Invalid or unreadable config file
	ErrCodeDatabase = "E003" // Run history database error

	// Scene and meta file errors
	ErrCodeMalformed      = "E201" // Required field missing
	ErrCodeDuplicateID    = "E202" // Identifier defined twice
	ErrCodeDuplicateRoots = "E203" // Second root list
	ErrCodeUnresolved     = "E204" // Reference to an unknown identifier
	ErrCodeCyclic         = "E205" // Cycle or depth limit
	ErrCodeDecode         = "E206" // YAML syntax or document framing

	// I/O errors
	ErrCodeRead  = "E301" // Reading an input file
	ErrCodeScan  = "E302" // Discovering inputs
	ErrCodeWrite = "E303" // Creating or writing outputs
)

// ErrorCode maps an error to its CLI error code.
func ErrorCode(err error) string {
	var (
		malformed  *scene.MalformedRecordError
		dupID      *scene.DuplicateIdentifierError
		dupRoots   *scene.DuplicateRootListError
		unresolved *scene.UnresolvedReferenceError
		cyclic     *scene.CyclicReferenceError
		decode     *yamldoc.DecodeError
		ioErr      *project.IOError
		cfgErr     *config.Error
		pathErr    *fs.PathError
	)
	switch {
	case errors.As(err, &malformed):
		return ErrCodeMalformed
	case errors.As(err, &dupID):
		return ErrCodeDuplicateID
	case errors.As(err, &dupRoots):
		return ErrCodeDuplicateRoots
	case errors.As(err, &unresolved):
		return ErrCodeUnresolved
	case errors.As(err, &cyclic):
		return ErrCodeCyclic
	case errors.As(err, &decode):
		return ErrCodeDecode
	case errors.As(err, &ioErr):
		switch ioErr.Op {
		case "read":
			return ErrCodeRead
		case "scan":
			return ErrCodeScan
		default:
			return ErrCodeWrite
		}
	case errors.As(err, &cfgErr):
		return ErrCodeConfig
	case errors.As(err, &pathErr):
		return ErrCodeRead
	}
	return ErrCodeGeneric
}
