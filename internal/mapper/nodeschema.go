package mapper

import (
	"encoding/json"

	"github.com/mcncl/jsonkdl/internal/errors"
	"github.com/mcncl/jsonkdl/internal/kdl"
	"github.com/mcncl/jsonkdl/internal/models"
)

// MapNodeSchema converts node-shaped JSON into a KDL document. The
// input must be an array of node objects of the form
//
//	{
//	    "name": "node-name",
//	    "type": "annotation",
//	    "arguments": [1, {"value": 2, "type": "u8"}],
//	    "properties": {"key": "value"},
//	    "children": [ ...more node objects... ]
//	}
//
// where everything but "name" is optional. Unlike Map this is not a
// total function: structural violations return mapping errors.
func MapNodeSchema(root models.Value) (kdl.Document, error) {
	return convertNodeList(root)
}

func convertNodeList(v models.Value) (kdl.Document, error) {
	arr, ok := v.(models.Array)
	if !ok {
		return kdl.Document{}, structureError("document root must be an array")
	}

	doc := kdl.Document{Nodes: make([]kdl.Node, 0, len(arr))}
	for _, elem := range arr {
		node, err := convertNode(elem)
		if err != nil {
			return kdl.Document{}, err
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	return doc, nil
}

func convertNode(v models.Value) (kdl.Node, error) {
	obj, ok := v.(models.Object)
	if !ok {
		return kdl.Node{}, structureError("node must be an object")
	}

	nameVal, ok := obj.Get("name")
	if !ok {
		return kdl.Node{}, structureError("node must have a name")
	}
	name, ok := nameVal.(string)
	if !ok {
		return kdl.Node{}, structureError("name must be a string")
	}

	node := kdl.Node{Name: name}

	if argsVal, ok := obj.Get("arguments"); ok {
		args, ok := argsVal.(models.Array)
		if !ok {
			return kdl.Node{}, structureError("arguments must be an array")
		}
		for _, a := range args {
			entry, err := convertEntry(a)
			if err != nil {
				return kdl.Node{}, err
			}
			node.Args = append(node.Args, entry)
		}
	}

	if propsVal, ok := obj.Get("properties"); ok {
		props, ok := propsVal.(models.Object)
		if !ok {
			return kdl.Node{}, structureError("properties must be an object")
		}
		for _, m := range props {
			entry, err := convertEntry(m.Value)
			if err != nil {
				return kdl.Node{}, err
			}
			// Repeated keys overwrite earlier occurrences; properties
			// behave as a map even though the input preserves order.
			node.SetProp(m.Key, entry)
		}
	}

	if childrenVal, ok := obj.Get("children"); ok {
		childDoc, err := convertNodeList(childrenVal)
		if err != nil {
			return kdl.Node{}, err
		}
		node.Children = childDoc.Nodes
		if len(node.Children) == 0 {
			node.EmptyBlock = true
		}
	}

	if tyVal, ok := obj.Get("type"); ok {
		ty, err := convertType(tyVal)
		if err != nil {
			return kdl.Node{}, err
		}
		node.Type = ty
	}

	return node, nil
}

// convertEntry converts an argument or property value. A plain scalar
// is used directly; an object wraps the scalar under "value" with an
// optional "type" annotation alongside it.
func convertEntry(v models.Value) (kdl.Value, error) {
	inner := v
	if obj, ok := v.(models.Object); ok && obj.Has("value") {
		inner, _ = obj.Get("value")
	}

	var entry kdl.Value
	switch s := inner.(type) {
	case nil:
		entry = kdl.Null()
	case bool:
		entry = kdl.Boolean(s)
	case json.Number:
		entry = kdl.Number(string(s))
	case string:
		entry = kdl.String(s)
	default:
		return kdl.Value{}, structureError("unsupported json value type for kdl conversion")
	}

	if obj, ok := v.(models.Object); ok {
		if tyVal, found := obj.Get("type"); found {
			ty, err := convertType(tyVal)
			if err != nil {
				return kdl.Value{}, err
			}
			entry.Type = ty
		}
	}

	return entry, nil
}

// convertType reads a type annotation: a string applies it, null
// leaves it off.
func convertType(v models.Value) (string, error) {
	switch ty := v.(type) {
	case string:
		return ty, nil
	case nil:
		return "", nil
	}
	return "", structureError("type must be a string or null")
}

func structureError(msg string) *errors.AppError {
	return errors.NewMappingError(msg, errors.ErrInvalidStructure)
}
