// Package yamldoc decodes Unity serialized YAML into independently addressable
// documents.
//
// Unity writes one YAML document per serialized object:
//
//	%YAML 1.1
//	%TAG !u! tag:unity3d.com,2011:
//	--- !u!1 &1234567
//	GameObject:
//	  m_Name: Player
//
// The `!u!` tag handle is declared once but used in every document, which a
// conforming parser rejects after the first document, and prefab placeholders
// append a bare `stripped` token to the header. Decode rewrites each header to a
// plain `---`, keeps the class id, anchor and stripped flag on the Document, and
// hands the rest to gopkg.in/yaml.v3.
//
// Node is a read-only view over the parsed tree. Every access is an explicit
// optional lookup so callers can name the hop that failed.
package yamldoc
