package wexpr

import "strings"

// WriteFlags controls the textual writer's output style.
type WriteFlags uint32

const (
	WriteFlagNone          WriteFlags = 0
	WriteFlagHumanReadable WriteFlags = 1 << 0
)

// Write renders e as wexpr text. indent is the starting indentation
// level (only meaningful with WriteFlagHumanReadable, where children
// are indented by one tab per nesting level beyond it). The result
// always parses back to a structurally-equal tree.
func Write(e *Expression, indent int, flags WriteFlags) string {
	var sb strings.Builder
	if flags&WriteFlagHumanReadable != 0 {
		writeHuman(&sb, e, indent)
	} else {
		writeMini(&sb, e)
	}
	return sb.String()
}

func writeIndent(sb *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		sb.WriteByte('\t')
	}
}

func writeMini(sb *strings.Builder, e *Expression) {
	switch e.Type() {
	case TypeInvalid:
		// nothing: only reachable at the document root of an
		// empty/whitespace-only input, which itself has no text.
	case TypeNull:
		sb.WriteString("null")
	case TypeValue:
		writeQuotedIfNeeded(sb, e.Value())
	case TypeBinaryData:
		writeBinary(sb, e)
	case TypeArray:
		n := e.ArrayCount()
		if n == 0 {
			sb.WriteString("#()")
			return
		}
		sb.WriteString("#(")
		for i := 0; i < n; i++ {
			sb.WriteByte(' ')
			writeMini(sb, e.ArrayAt(i))
		}
		sb.WriteString(" )")
	case TypeMap:
		n := e.MapCount()
		if n == 0 {
			sb.WriteString("@()")
			return
		}
		sb.WriteString("@(")
		for i := 0; i < n; i++ {
			sb.WriteByte(' ')
			writeQuotedIfNeeded(sb, e.MapKeyAt(i))
			sb.WriteByte(' ')
			writeMini(sb, e.MapValueAt(i))
		}
		sb.WriteString(" )")
	}
}

func writeHuman(sb *strings.Builder, e *Expression, indent int) {
	switch e.Type() {
	case TypeInvalid:
	case TypeNull:
		sb.WriteString("null")
	case TypeValue:
		writeQuotedIfNeeded(sb, e.Value())
	case TypeBinaryData:
		writeBinary(sb, e)
	case TypeArray:
		n := e.ArrayCount()
		if n == 0 {
			sb.WriteString("#()")
			return
		}
		sb.WriteString("#(\n")
		for i := 0; i < n; i++ {
			writeIndent(sb, indent+1)
			writeHuman(sb, e.ArrayAt(i), indent+1)
			sb.WriteByte('\n')
		}
		writeIndent(sb, indent)
		sb.WriteByte(')')
	case TypeMap:
		n := e.MapCount()
		if n == 0 {
			sb.WriteString("@()")
			return
		}
		sb.WriteString("@(\n")
		for i := 0; i < n; i++ {
			writeIndent(sb, indent+1)
			writeQuotedIfNeeded(sb, e.MapKeyAt(i))
			sb.WriteByte(' ')
			writeHuman(sb, e.MapValueAt(i), indent+1)
			sb.WriteByte('\n')
		}
		writeIndent(sb, indent)
		sb.WriteByte(')')
	}
}

func writeBinary(sb *strings.Builder, e *Expression) {
	sb.WriteByte('<')
	sb.WriteString(encodeBase64(e.BinaryData()))
	sb.WriteByte('>')
}

// needsQuoting reports whether s must be wrapped in quotes to parse
// back as the same atom string: when empty, equal to the null
// literal, or containing a whitespace or reserved character.
func needsQuoting(s string) bool {
	if s == "" || s == "null" {
		return true
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isWhitespace(b) || isReserved(b) {
			return true
		}
	}
	return false
}

func writeQuotedIfNeeded(sb *strings.Builder, s string) {
	if !needsQuoting(s) {
		sb.WriteString(s)
		return
	}
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteByte('"')
}
