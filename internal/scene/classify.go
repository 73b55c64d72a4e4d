package scene

import (
	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// Top-level keys the classifier interprets.
const (
	KindGameObject    = "GameObject"
	KindTransform     = "Transform"
	KindRectTransform = "RectTransform"
	KindSceneRoots    = "SceneRoots"
	KindMonoBehaviour = "MonoBehaviour"
)

// DefaultTransformKinds are the record kinds treated as hierarchy nodes.
var DefaultTransformKinds = []string{KindTransform, KindRectTransform}

// Classifier turns parsed documents into Records.
// Classification is pure: it neither mutates the document nor keeps state.
type Classifier struct {
	transformKinds map[string]bool
}

// NewClassifier creates a classifier treating the given kinds as
// transform-like. With no kinds, DefaultTransformKinds is used.
func NewClassifier(transformKinds ...string) *Classifier {
	if len(transformKinds) == 0 {
		transformKinds = DefaultTransformKinds
	}
	kinds := make(map[string]bool, len(transformKinds))
	for _, k := range transformKinds {
		kinds[k] = true
	}
	return &Classifier{transformKinds: kinds}
}

// Classify returns the record variant for doc.
//
// Stripped documents are prefab-instance placeholders that carry no fields of
// their own; they classify as OtherRecord.
func (c *Classifier) Classify(doc yamldoc.Document) (Record, error) {
	kind := doc.Kind()
	if doc.Stripped {
		return OtherRecord{Kind: kind}, nil
	}

	x := &extractor{doc: doc, kind: kind}
	switch {
	case kind == KindGameObject:
		name, err := x.scalar(kind, "m_Name")
		if err != nil {
			return nil, err
		}
		return ObjectRecord{ID: ir.Identifier(doc.Anchor), DisplayName: name}, nil

	case c.transformKinds[kind]:
		owner, err := x.scalar(kind, "m_GameObject", "fileID")
		if err != nil {
			return nil, err
		}
		children, err := x.fileIDs(kind, "m_Children")
		if err != nil {
			return nil, err
		}
		return TransformRecord{
			ID:       ir.Identifier(doc.Anchor),
			OwnerID:  ir.Identifier(owner),
			ChildIDs: children,
		}, nil

	case kind == KindSceneRoots:
		roots, err := x.fileIDs(kind, "m_Roots")
		if err != nil {
			return nil, err
		}
		return RootListRecord{RootIDs: roots}, nil

	case kind == KindMonoBehaviour:
		guid, err := x.scalar(kind, "m_Script", "guid")
		if err != nil {
			return nil, err
		}
		return ScriptUsageRecord{ScriptGUID: ir.Identifier(guid)}, nil
	}

	return OtherRecord{Kind: kind}, nil
}

// extractor performs the optional-chain lookups for one document, reporting
// the first missing hop as a MalformedRecordError.
type extractor struct {
	doc  yamldoc.Document
	kind string
}

func (x *extractor) node(path ...string) (*yamldoc.Node, error) {
	cur := x.doc.Root
	for i, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, x.malformed(path[:i+1], cur)
		}
		cur = next
	}
	return cur, nil
}

func (x *extractor) scalar(path ...string) (string, error) {
	n, err := x.node(path...)
	if err != nil {
		return "", err
	}
	v, ok := n.Scalar()
	if !ok {
		return "", x.malformed(path, n)
	}
	return v, nil
}

// fileIDs reads the fileID of every element of the sequence at path.
func (x *extractor) fileIDs(path ...string) ([]ir.Identifier, error) {
	n, err := x.node(path...)
	if err != nil {
		return nil, err
	}
	items, ok := n.Items()
	if !ok {
		return nil, x.malformed(path, n)
	}

	ids := make([]ir.Identifier, 0, len(items))
	for _, item := range items {
		f, ok := item.Get("fileID")
		if !ok {
			return nil, x.malformed(append(append([]string{}, path...), "fileID"), item)
		}
		id, ok := f.Scalar()
		if !ok {
			return nil, x.malformed(append(append([]string{}, path...), "fileID"), f)
		}
		ids = append(ids, ir.Identifier(id))
	}
	return ids, nil
}

func (x *extractor) malformed(path []string, at *yamldoc.Node) *MalformedRecordError {
	return &MalformedRecordError{
		Anchor: ir.Identifier(x.doc.Anchor),
		Kind:   x.kind,
		Path:   append([]string{}, path...),
		Line:   at.Line(),
	}
}
