// Package ir provides the shared entity types for the Unity project parser.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Identifiers are opaque strings, unique within one scene file only
//   - Child order in HierarchyNode is source order, never sorted
//   - ReferencedScriptSet is append-only for the lifetime of a run
//   - All JSON tags use snake_case
package ir
