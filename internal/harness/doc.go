// Package harness runs conformance scenarios against the whole parser.
//
// A scenario is a YAML file describing a small Unity project inline: its
// scene files, its script meta files and optionally a CUE layout. The
// harness materializes the project in a temporary directory, runs
// project.Run over it and records a Snapshot: each scene's dump lines or
// error code, the unused scripts and the script failures.
//
// Scenarios carry assertions evaluated against the snapshot:
//
//   - dump: a scene rendered exactly the given lines
//   - scene_error: a scene was skipped with the given error code (and id)
//   - unused: the unused-script GUIDs, in report order
//   - referenced: GUIDs that some scene referenced
//   - script_failures: meta files that could not be audited
//
// RunWithGolden additionally compares the snapshot with
// testdata/golden/<scenario>.golden.
package harness
