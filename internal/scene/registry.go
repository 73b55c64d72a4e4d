package scene

import (
	"fmt"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
	"github.com/Bunioslaw/UnityProjectParser/internal/yamldoc"
)

// Registry accumulates the entities of one scene.
//
// A fresh Registry is built per scene. Script references are staged locally
// and merged into the run-scoped set by Seal, so a scene that fails to
// register contributes nothing to the usage audit.
type Registry struct {
	names   map[ir.Identifier]ir.NamedObject
	nodes   map[ir.Identifier]ir.HierarchyNode
	roots   *ir.RootList
	scripts *ir.ReferencedScriptSet // staged for this scene
	refs    *ir.ReferencedScriptSet // run-scoped, owned by the caller
	sealed  bool
}

// NewRegistry creates an empty registry that will merge script references
// into refs on Seal. refs may be nil when only the hierarchy is needed.
func NewRegistry(refs *ir.ReferencedScriptSet) *Registry {
	return &Registry{
		names:   make(map[ir.Identifier]ir.NamedObject),
		nodes:   make(map[ir.Identifier]ir.HierarchyNode),
		scripts: ir.NewReferencedScriptSet(),
		refs:    refs,
	}
}

// Register adds one classified record.
//
// Identifiers of objects and hierarchy nodes are never overwritten: a second
// record with the same identifier is a DuplicateIdentifierError. A second
// root list is a DuplicateRootListError.
func (r *Registry) Register(rec Record) error {
	if r.sealed {
		return fmt.Errorf("register on sealed registry")
	}

	switch rec := rec.(type) {
	case ObjectRecord:
		if _, exists := r.names[rec.ID]; exists {
			return &DuplicateIdentifierError{ID: rec.ID, Kind: "object"}
		}
		r.names[rec.ID] = ir.NamedObject{ID: rec.ID, DisplayName: rec.DisplayName}

	case TransformRecord:
		if _, exists := r.nodes[rec.ID]; exists {
			return &DuplicateIdentifierError{ID: rec.ID, Kind: "node"}
		}
		r.nodes[rec.ID] = ir.HierarchyNode{
			ID:            rec.ID,
			OwnerObjectID: rec.OwnerID,
			ChildIDs:      rec.ChildIDs,
		}

	case RootListRecord:
		if r.roots != nil {
			return &DuplicateRootListError{}
		}
		r.roots = &ir.RootList{RootIDs: rec.RootIDs}

	case ScriptUsageRecord:
		r.scripts.Add(rec.ScriptGUID)

	case OtherRecord:
		// ignored
	}
	return nil
}

// Seal marks registration complete and merges this scene's script references
// into the run-scoped set. Calling Seal twice is a no-op.
func (r *Registry) Seal() {
	if r.sealed {
		return
	}
	r.sealed = true
	if r.refs != nil {
		r.refs.Merge(r.scripts)
	}
}

// Object returns the named object registered under id.
func (r *Registry) Object(id ir.Identifier) (ir.NamedObject, bool) {
	obj, ok := r.names[id]
	return obj, ok
}

// Node returns the hierarchy node registered under id.
func (r *Registry) Node(id ir.Identifier) (ir.HierarchyNode, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Roots returns the scene's root list, or nil if the scene declared none.
func (r *Registry) Roots() *ir.RootList {
	return r.roots
}

// Scripts returns the script references staged by this scene.
func (r *Registry) Scripts() *ir.ReferencedScriptSet {
	return r.scripts
}

// Stats summarizes the registry's contents.
type Stats struct {
	Objects int `json:"objects"`
	Nodes   int `json:"nodes"`
	Roots   int `json:"roots"`
	Scripts int `json:"scripts"`
}

// Stats returns entity counts.
func (r *Registry) Stats() Stats {
	s := Stats{
		Objects: len(r.names),
		Nodes:   len(r.nodes),
		Scripts: r.scripts.Len(),
	}
	if r.roots != nil {
		s.Roots = len(r.roots.RootIDs)
	}
	return s
}

// Load classifies and registers every document, then seals the registry.
//
// Classification of the whole document set happens before any registration,
// so a malformed record leaves the registry untouched. On any error the
// registry is not sealed and refs is left unchanged.
func Load(docs []yamldoc.Document, c *Classifier, refs *ir.ReferencedScriptSet) (*Registry, error) {
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := c.Classify(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	reg := NewRegistry(refs)
	for _, rec := range records {
		if err := reg.Register(rec); err != nil {
			return nil, err
		}
	}
	reg.Seal()
	return reg, nil
}
