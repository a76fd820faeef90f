// Package kdl holds the intermediate KDL document model produced by the
// mapping engine and the grammar-aware serializer that renders it as
// KDL v1 or v2 text.
package kdl

// Kind identifies which of the four KDL scalar kinds a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is a KDL scalar: the value of an argument or a property.
//
// Numbers carry the source literal verbatim in Number; the serializer
// emits it unchanged, so no precision is lost between the JSON input
// and the KDL output. Type is an optional type annotation rendered as
// a (type) prefix; the empty string means no annotation.
type Value struct {
	Kind   Kind
	Bool   bool
	Number string
	Str    string
	Type   string
}

// Null returns the KDL null scalar.
func Null() Value {
	return Value{Kind: KindNull}
}

// Boolean returns a KDL boolean scalar.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Number returns a KDL number scalar holding the given source literal.
func Number(literal string) Value {
	return Value{Kind: KindNumber, Number: literal}
}

// String returns a KDL string scalar.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Prop is a named property of a node.
type Prop struct {
	Key   string
	Value Value
}

// Node is one KDL node: a name, an optional type annotation, ordered
// positional arguments, ordered named properties, and child nodes.
//
// A child block is rendered when the node has children or when
// EmptyBlock is set; the latter distinguishes an empty container
// ("x {}") from a node with no block at all ("x").
type Node struct {
	Name       string
	Type       string
	Args       []Value
	Props      []Prop
	Children   []Node
	EmptyBlock bool
}

// HasBlock reports whether the node renders a child block.
func (n *Node) HasBlock() bool {
	return len(n.Children) > 0 || n.EmptyBlock
}

// SetProp sets a property, overwriting the value of an existing key in
// place. Later duplicates win but the position of the first occurrence
// is kept, matching how repeated keys behave in a KDL document.
func (n *Node) SetProp(key string, v Value) {
	for i := range n.Props {
		if n.Props[i].Key == key {
			n.Props[i].Value = v
			return
		}
	}
	n.Props = append(n.Props, Prop{Key: key, Value: v})
}

// Document is an ordered list of top-level nodes.
type Document struct {
	Nodes []Node
}
