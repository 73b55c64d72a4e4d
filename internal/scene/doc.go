// Package scene rebuilds the GameObject hierarchy of one Unity scene file.
//
// Processing is two-pass. First every document is classified into a closed
// set of record variants and registered; references may point forward or
// backward in the file, so nothing is resolved yet. Once the file is
// exhausted the Resolver walks the scene's root list depth-first and renders
// one line per object, indented by "--" per level:
//
//	Root
//	--Left
//	--Right
//
// Errors are typed (MalformedRecordError, DuplicateIdentifierError,
// DuplicateRootListError, UnresolvedReferenceError, CyclicReferenceError) and
// always name the offending identifier. A failed render never returns partial
// output.
package scene
