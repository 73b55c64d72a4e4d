// Package audit finds script assets that no scene references.
package audit

import (
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/scene"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// Membership is the read side of a referenced-script set.
type Membership interface {
	Contains(id ir.Identifier) bool
}

// Audit returns the assets whose GUID is not in refs, in input order.
// Neither argument is modified.
func Audit(refs Membership, assets []ir.ScriptAsset) []ir.ScriptAsset {
	unused := make([]ir.ScriptAsset, 0)
	for _, asset := range assets {
		if !refs.Contains(asset.ID) {
			unused = append(unused, asset)
		}
	}
	return unused
}

// metaKind labels meta-file errors; meta files have no Unity type key.
const metaKind = "meta"

// LoadScriptAsset reads the GUID from a script's .meta file.
//
// The reported path is relative to projectRoot with the metadata component of
// ext removed ("Assets/Scripts/Player.cs.meta" -> "Assets/Scripts/Player.cs").
// A meta file without a top-level guid is a *scene.MalformedRecordError.
func LoadScriptAsset(projectRoot, metaPath, ext string) (ir.ScriptAsset, error) {
	docs, err := yamldoc.DecodeFile(metaPath)
	if err != nil {
		return ir.ScriptAsset{}, err
	}

	rel, err := ir.RelativeAssetPath(projectRoot, metaPath)
	if err != nil {
		return ir.ScriptAsset{}, err
	}
	rel = ir.TrimMetaSuffix(rel, ext)

	for _, doc := range docs {
		n, ok := doc.Root.Get("guid")
		if !ok {
			continue
		}
		guid, ok := n.Scalar()
		if !ok || guid == "" {
			return ir.ScriptAsset{}, &scene.MalformedRecordError{Kind: metaKind, Path: []string{"guid"}, Line: n.Line()}
		}
		return ir.ScriptAsset{RelativePath: rel, ID: ir.Identifier(guid)}, nil
	}

	return ir.ScriptAsset{}, &scene.MalformedRecordError{Kind: metaKind, Path: []string{"guid"}}
}
