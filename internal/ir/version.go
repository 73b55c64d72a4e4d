package ir

// ToolVersion is recorded alongside every persisted run.
const ToolVersion = "0.1.0"
