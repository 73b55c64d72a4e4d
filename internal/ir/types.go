package ir

// NamedObject is a GameObject record reduced to its display name.
type NamedObject struct {
	ID          Identifier `json:"id"`
	DisplayName string     `json:"display_name"`
}

// HierarchyNode is the parent/child linkage of a transform-like record.
// ChildIDs are lookup keys in source order; the node does not own its children.
type HierarchyNode struct {
	ID            Identifier   `json:"id"`
	OwnerObjectID Identifier   `json:"owner_object_id"`
	ChildIDs      []Identifier `json:"child_ids"`
}

// RootList is the ordered list of top-level hierarchy nodes of one scene.
type RootList struct {
	RootIDs []Identifier `json:"root_ids"`
}

// ScriptAsset is one script discovered on disk through its metadata file.
type ScriptAsset struct {
	RelativePath string     `json:"relative_path"` // slash-separated, relative to project root
	ID           Identifier `json:"guid"`
}
