package kdl

import "strings"

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

// Options controls presentation details of the rendered text that are
// independent of the grammar version.
type Options struct {
	// Indent is the number of spaces per nesting level. Values below 1
	// fall back to DefaultIndent.
	Indent int
}

// Render serializes the document as KDL text under the given grammar.
// The output is deterministic: the same document and grammar always
// yield byte-identical text. Each top-level node ends on its own line
// and child blocks are indented one unit per nesting depth.
func Render(doc Document, g Grammar, opts Options) string {
	indent := opts.Indent
	if indent < 1 {
		indent = DefaultIndent
	}
	var b strings.Builder
	for i := range doc.Nodes {
		writeNode(&b, &doc.Nodes[i], g, indent, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, g Grammar, indent, depth int) {
	prefix := strings.Repeat(" ", indent*depth)
	b.WriteString(prefix)
	if n.Type != "" {
		b.WriteByte('(')
		b.WriteString(g.Ident(n.Type))
		b.WriteByte(')')
	}
	b.WriteString(g.Ident(n.Name))

	// Arguments first, then properties, each in stored order.
	for _, a := range n.Args {
		b.WriteByte(' ')
		writeValue(b, a, g)
	}
	for _, p := range n.Props {
		b.WriteByte(' ')
		b.WriteString(g.Ident(p.Key))
		b.WriteByte('=')
		writeValue(b, p.Value, g)
	}

	if n.HasBlock() {
		b.WriteString(" {\n")
		for i := range n.Children {
			writeNode(b, &n.Children[i], g, indent, depth+1)
		}
		b.WriteString(prefix)
		b.WriteByte('}')
	}
	b.WriteByte('\n')
}

func writeValue(b *strings.Builder, v Value, g Grammar) {
	if v.Type != "" {
		b.WriteByte('(')
		b.WriteString(g.Ident(v.Type))
		b.WriteByte(')')
	}
	switch v.Kind {
	case KindNull:
		b.WriteString(g.NullLiteral())
	case KindBool:
		b.WriteString(g.BoolLiteral(v.Bool))
	case KindNumber:
		// The number literal is carried verbatim from the JSON input.
		// Every JSON number is lexically a valid KDL number in both
		// grammar versions, so no reformatting is needed or wanted.
		b.WriteString(v.Number)
	case KindString:
		b.WriteString(g.Quote(v.Str))
	}
}
