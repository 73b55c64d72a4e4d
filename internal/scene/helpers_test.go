package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// decode parses an inline Unity YAML fixture.
func decode(t *testing.T, src string) []yamldoc.Document {
	t.Helper()
	docs, err := yamldoc.Decode(strings.NewReader(src))
	require.NoError(t, err)
	return docs
}

// firstDoc parses src and returns its only document.
func firstDoc(t *testing.T, src string) yamldoc.Document {
	t.Helper()
	docs := decode(t, src)
	require.Len(t, docs, 1)
	return docs[0]
}

// buildRegistry registers records directly, bypassing YAML.
func buildRegistry(t *testing.T, records ...Record) *Registry {
	t.Helper()
	reg := NewRegistry(ir.NewReferencedScriptSet())
	for _, rec := range records {
		require.NoError(t, reg.Register(rec))
	}
	reg.Seal()
	return reg
}

func ids(values ...string) []ir.Identifier {
	out := make([]ir.Identifier, len(values))
	for i, v := range values {
		out[i] = ir.Identifier(v)
	}
	return out
}
