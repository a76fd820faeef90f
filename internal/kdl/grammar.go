package kdl

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Version selects the target KDL grammar.
type Version int

const (
	V1 Version = iota + 1
	V2
)

// String returns "v1" or "v2".
func (v Version) String() string {
	if v == V1 {
		return "v1"
	}
	return "v2"
}

// Grammar bundles the lexical rules that differ between KDL v1 and v2:
// which characters may appear in a bare identifier, which words are
// reserved, how the keyword literals are spelled, and which code
// points must be escaped inside quoted strings. Every quoting and
// escaping decision in the serializer funnels through this table.
type Grammar struct {
	version     Version
	bannedIdent string          // punctuation never legal in a bare identifier
	reserved    map[string]bool // words that must be quoted when used as identifiers
	nullLit     string
	trueLit     string
	falseLit    string
}

// GrammarV1 returns the lexical rules of KDL 1.0.
//
// v1 bans '<', '>' and ',' from bare identifiers, spells the keyword
// literals without a prefix, and reserves true/false/null as
// identifiers.
func GrammarV1() Grammar {
	return Grammar{
		version:     V1,
		bannedIdent: `\/(){}<>;[]=,"`,
		reserved: map[string]bool{
			"true":  true,
			"false": true,
			"null":  true,
		},
		nullLit:  "null",
		trueLit:  "true",
		falseLit: "false",
	}
}

// GrammarV2 returns the lexical rules of KDL 2.0.
//
// v2 allows '<', '>' and ',' in bare identifiers but bans '#' and '=',
// spells keyword literals with a '#' prefix, and reserves the bare
// spellings of all six keywords so they cannot be confused with
// identifier strings.
func GrammarV2() Grammar {
	return Grammar{
		version:     V2,
		bannedIdent: `\/(){};[]"#=`,
		reserved: map[string]bool{
			"true":  true,
			"false": true,
			"null":  true,
			"inf":   true,
			"-inf":  true,
			"nan":   true,
		},
		nullLit:  "#null",
		trueLit:  "#true",
		falseLit: "#false",
	}
}

// ForVersion returns the grammar table for the given version.
func ForVersion(v Version) Grammar {
	if v == V1 {
		return GrammarV1()
	}
	return GrammarV2()
}

// Version returns the grammar version the table encodes.
func (g Grammar) Version() Version {
	return g.version
}

// IsBareIdent reports whether s may be emitted as a bare identifier.
// Anything rejected here is emitted as a quoted string instead.
func (g Grammar) IsBareIdent(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	if g.reserved[s] {
		return false
	}
	if g.looksLikeNumber(s) {
		return false
	}
	for _, r := range s {
		if !g.isIdentRune(r) {
			return false
		}
	}
	return true
}

// Ident renders s as an identifier: bare when the grammar allows it,
// otherwise as a quoted string carrying the exact original characters.
func (g Grammar) Ident(s string) string {
	if g.IsBareIdent(s) {
		return s
	}
	return g.Quote(s)
}

// Quote renders s as a quoted string with the grammar's escape rules.
// Non-ASCII characters pass through unescaped unless the grammar
// forbids them raw.
func (g Grammar) Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if g.mustEscape(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// NullLiteral returns the grammar's spelling of null.
func (g Grammar) NullLiteral() string {
	return g.nullLit
}

// BoolLiteral returns the grammar's spelling of true or false.
func (g Grammar) BoolLiteral(v bool) string {
	if v {
		return g.trueLit
	}
	return g.falseLit
}

// isIdentRune reports whether r may appear anywhere in a bare
// identifier under this grammar.
func (g Grammar) isIdentRune(r rune) bool {
	if r <= 0x20 || !utf8.ValidRune(r) {
		return false
	}
	if strings.ContainsRune(g.bannedIdent, r) {
		return false
	}
	if isUnicodeSpace(r) || isNewline(r) {
		return false
	}
	if g.version == V2 && forbiddenRawV2(r) {
		return false
	}
	return true
}

// looksLikeNumber reports whether s could be mistaken for the start of
// a number literal, which forces quoting even when every character is
// an identifier character.
func (g Grammar) looksLikeNumber(s string) bool {
	if s == "" {
		return false
	}
	if isDigit(s[0]) {
		return true
	}
	rest := s
	if s[0] == '+' || s[0] == '-' {
		rest = s[1:]
		if rest != "" && isDigit(rest[0]) {
			return true
		}
	}
	if g.version == V2 {
		// v2 additionally treats a leading dot before a digit as
		// number-like, with or without a sign.
		if len(rest) >= 2 && rest[0] == '.' && isDigit(rest[1]) {
			return true
		}
	}
	return false
}

// mustEscape reports whether r may not appear raw inside a quoted
// string under this grammar and needs a \u{...} escape.
func (g Grammar) mustEscape(r rune) bool {
	if r < 0x20 {
		return true
	}
	if g.version == V2 {
		return forbiddenRawV2(r)
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isUnicodeSpace reports whether r is horizontal whitespace per the
// KDL specification (both versions share this set).
func isUnicodeSpace(r rune) bool {
	switch r {
	case 0x09, 0x20, 0xA0, 0x1680, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// isNewline reports whether r is a newline character per the KDL
// specification.
func isNewline(r rune) bool {
	switch r {
	case 0x0A, 0x0B, 0x0C, 0x0D, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// forbiddenRawV2 reports whether KDL v2 forbids r from appearing raw
// anywhere in a document: delete, the bidirectional control characters
// and a non-leading byte order mark.
func forbiddenRawV2(r rune) bool {
	switch {
	case r == 0x7F:
		return true
	case r == 0x200E || r == 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2066 && r <= 0x2069:
		return true
	case r == 0xFEFF:
		return true
	}
	return false
}
