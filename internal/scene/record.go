package scene

import "github.com/Bunioslaw/UnityProjectParser/internal/ir"

// Record is the classified form of one top-level document.
// The set of variants is closed: ObjectRecord, TransformRecord,
// RootListRecord, ScriptUsageRecord and OtherRecord.
type Record interface {
	isRecord()
}

// ObjectRecord is a GameObject with its display name.
type ObjectRecord struct {
	ID          ir.Identifier
	DisplayName string
}

// TransformRecord is a transform-like component linking an object into the
// hierarchy.
type TransformRecord struct {
	ID       ir.Identifier
	OwnerID  ir.Identifier
	ChildIDs []ir.Identifier
}

// RootListRecord is the scene's ordered list of top-level transforms.
type RootListRecord struct {
	RootIDs []ir.Identifier
}

// ScriptUsageRecord is a MonoBehaviour referencing a script asset.
type ScriptUsageRecord struct {
	ScriptGUID ir.Identifier
}

// OtherRecord is any document the parser does not interpret.
type OtherRecord struct {
	Kind string
}

func (ObjectRecord) isRecord()      {}
func (TransformRecord) isRecord()   {}
func (RootListRecord) isRecord()    {}
func (ScriptUsageRecord) isRecord() {}
func (OtherRecord) isRecord()       {}
