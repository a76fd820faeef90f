// Package mapper translates a parsed JSON value tree into a KDL
// document. It has two entry points: Map, which converts arbitrary
// JSON by structural policy, and MapNodeSchema, which interprets the
// input as an explicit node-by-node description of a KDL document.
package mapper

import (
	"encoding/json"

	"github.com/mcncl/jsonkdl/internal/kdl"
	"github.com/mcncl/jsonkdl/internal/models"
)

// AnonymousName is the reserved node name used for values that have no
// key of their own: array elements, and a root value that is not an
// object. KDL has no anonymous top-level scalars or lists, so every
// such value is attached to a node with this marker name.
const AnonymousName = "-"

// Map converts an arbitrary JSON value into a KDL document. It is
// total: every value the parser can produce has a defined KDL
// representation.
//
// A root object maps to the ordered list of nodes produced from its
// members, with no synthetic wrapper. Any other root value maps to a
// single node named with the anonymous marker.
func Map(root models.Value) kdl.Document {
	if obj, ok := root.(models.Object); ok {
		doc := kdl.Document{Nodes: make([]kdl.Node, 0, len(obj))}
		for _, m := range obj {
			doc.Nodes = append(doc.Nodes, convertValue(m.Key, m.Value))
		}
		return doc
	}
	return kdl.Document{Nodes: []kdl.Node{convertValue(AnonymousName, root)}}
}

// convertValue maps one JSON value appearing under the given name.
//
// Scalars become a node with a single argument. Containers become a
// node with one child per element: object members keep their keys as
// child names (each occurrence of a duplicate key stays a separate
// child), array elements are named with the anonymous marker. Empty
// containers keep an explicit empty child block so they stay
// distinguishable from null.
func convertValue(name string, v models.Value) kdl.Node {
	node := kdl.Node{Name: name}
	switch val := v.(type) {
	case models.Object:
		if len(val) == 0 {
			node.EmptyBlock = true
			return node
		}
		node.Children = make([]kdl.Node, 0, len(val))
		for _, m := range val {
			node.Children = append(node.Children, convertValue(m.Key, m.Value))
		}
	case models.Array:
		if len(val) == 0 {
			node.EmptyBlock = true
			return node
		}
		node.Children = make([]kdl.Node, 0, len(val))
		for _, elem := range val {
			node.Children = append(node.Children, convertValue(AnonymousName, elem))
		}
	default:
		node.Args = []kdl.Value{scalar(v)}
	}
	return node
}

// scalar maps a JSON scalar onto the corresponding KDL scalar. Number
// literals pass through untouched; formatting is the serializer's
// concern.
func scalar(v models.Value) kdl.Value {
	switch s := v.(type) {
	case nil:
		return kdl.Null()
	case bool:
		return kdl.Boolean(s)
	case json.Number:
		return kdl.Number(string(s))
	case string:
		return kdl.String(s)
	}
	// The parser produces no other scalar kinds.
	return kdl.Null()
}
