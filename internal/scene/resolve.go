package scene

import (
	"strings"

	"github.com/Bunioslaw/UnityProjectParser/internal/ir"
)

// DefaultMaxDepth bounds hierarchy depth. Real scenes stay far below it; a
// deeper walk is treated as a reference cycle.
const DefaultMaxDepth = 1024

// IndentMarker is written once per depth level before an object's name.
const IndentMarker = "--"

// Line is one rendered hierarchy entry.
type Line struct {
	Depth    int           `json:"depth"`
	NodeID   ir.Identifier `json:"node_id"`
	ObjectID ir.Identifier `json:"object_id"`
	Name     string        `json:"name"`
}

// String formats the line without its trailing newline.
func (l Line) String() string {
	return strings.Repeat(IndentMarker, l.Depth) + l.Name
}

// Resolver walks a sealed Registry from its root list.
type Resolver struct {
	MaxDepth int
}

// NewResolver creates a resolver with the given depth bound.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewResolver(maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{MaxDepth: maxDepth}
}

// Render returns the scene outline: one line per object, depth-first
// pre-order, roots in declared order, children in source order.
//
// A scene without a root list renders as "". On error the returned string is
// always empty.
func (r *Resolver) Render(reg *Registry) (string, error) {
	lines, err := r.Resolve(reg)
	if err != nil {
		return "", err
	}
	return FormatLines(lines), nil
}

// FormatLines joins lines, each terminated by a newline.
func FormatLines(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Resolve flattens the hierarchy into pre-order lines.
func (r *Resolver) Resolve(reg *Registry) ([]Line, error) {
	roots := reg.Roots()
	if roots == nil {
		return nil, nil
	}

	var lines []Line
	for _, id := range roots.RootIDs {
		var err error
		lines, err = r.walk(reg, id, lines)
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// frame is one worklist entry. leave frames close a node's subtree.
type frame struct {
	id    ir.Identifier
	from  ir.Identifier
	depth int
	leave bool
}

// walk renders the subtree under rootID with an explicit stack.
//
// path holds the identifiers of the nodes whose subtrees are open; meeting one
// of them again is a cycle. A node reachable from two unrelated parents is
// not a cycle and is rendered under each of them.
func (r *Resolver) walk(reg *Registry, rootID ir.Identifier, lines []Line) ([]Line, error) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var (
		stack  = []frame{{id: rootID}}
		path   []ir.Identifier
		onPath = make(map[ir.Identifier]bool)
	)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.leave {
			delete(onPath, f.id)
			path = path[:len(path)-1]
			continue
		}

		if onPath[f.id] || f.depth > maxDepth {
			cycle := make([]ir.Identifier, len(path), len(path)+1)
			copy(cycle, path)
			return nil, &CyclicReferenceError{ID: f.id, Depth: f.depth, Path: append(cycle, f.id)}
		}

		node, ok := reg.Node(f.id)
		if !ok {
			return nil, &UnresolvedReferenceError{ID: f.id, From: f.from, Kind: "node"}
		}
		obj, ok := reg.Object(node.OwnerObjectID)
		if !ok {
			return nil, &UnresolvedReferenceError{ID: node.OwnerObjectID, From: f.id, Kind: "object"}
		}

		lines = append(lines, Line{
			Depth:    f.depth,
			NodeID:   node.ID,
			ObjectID: obj.ID,
			Name:     obj.DisplayName,
		})

		onPath[f.id] = true
		path = append(path, f.id)
		stack = append(stack, frame{id: f.id, leave: true})

		// Push in reverse so the first child is popped first.
		for i := len(node.ChildIDs) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: node.ChildIDs[i], from: f.id, depth: f.depth + 1})
		}
	}

	return lines, nil
}
