package wexpr

// Shared test helpers.

// asGo projects an expression tree onto plain Go values so go-cmp can
// diff two trees structurally: nil for null, string for values,
// []byte for binary data, []any for arrays, [][2]any for maps
// (preserving insertion order), and TypeInvalid for invalid.
func asGo(e *Expression) any {
	switch e.Type() {
	case TypeNull:
		return nil
	case TypeValue:
		return e.Value()
	case TypeBinaryData:
		return e.BinaryData()
	case TypeArray:
		out := make([]any, 0, e.ArrayCount())
		for i := 0; i < e.ArrayCount(); i++ {
			out = append(out, asGo(e.ArrayAt(i)))
		}
		return out
	case TypeMap:
		out := make([][2]any, 0, e.MapCount())
		for i := 0; i < e.MapCount(); i++ {
			out = append(out, [2]any{e.MapKeyAt(i), asGo(e.MapValueAt(i))})
		}
		return out
	default:
		return TypeInvalid
	}
}
