package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is one top-level YAML document of a Unity file.
type Document struct {
	// ClassID is the Unity class number from the `!u!` tag ("1" for
	// GameObject, "4" for Transform). Empty for plain YAML documents.
	ClassID string

	// Anchor is the document's fileID, unique within the file.
	Anchor string

	// Stripped marks prefab-instance placeholders.
	Stripped bool

	// Root is the document's root node.
	Root *Node
}

// Kind returns the first key of the root mapping, which Unity uses as the
// type name of the serialized object. Empty when the root is not a mapping.
func (d Document) Kind() string {
	keys := d.Root.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// DecodeError reports a file that could not be parsed as YAML.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode yaml: %v", e.Err)
	}
	return fmt.Sprintf("decode yaml %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrDocumentCount is returned when Unity headers and parsed documents do not
// line up, which means the anchors cannot be attached reliably.
var ErrDocumentCount = errors.New("document headers do not match parsed documents")

// Decode parses every document in r.
// The whole stream is read into memory.
func Decode(r io.Reader) ([]Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(src)
}

// DecodeFile reads and parses the file at path.
// Read failures are returned as-is (wrapping *fs.PathError); parse failures
// are returned as *DecodeError.
func DecodeFile(path string) ([]Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := decodeBytes(src)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
			return nil, de
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return docs, nil
}

func decodeBytes(src []byte) ([]Document, error) {
	clean, headers := rewriteHeaders(src)

	dec := yaml.NewDecoder(bytes.NewReader(clean))
	var docs []Document
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		root := &n
		if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
			root = n.Content[0]
		}

		doc := Document{Root: wrap(root)}
		if i := len(docs); i < len(headers) {
			doc.ClassID = headers[i].classID
			doc.Anchor = headers[i].anchor
			doc.Stripped = headers[i].stripped
		}
		if doc.Anchor == "" {
			doc.Anchor = root.Anchor
		}
		docs = append(docs, doc)
	}

	if len(docs) != len(headers) {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %d headers, %d documents", ErrDocumentCount, len(headers), len(docs))}
	}
	return docs, nil
}
