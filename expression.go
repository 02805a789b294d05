package wexpr

// Type identifies the variant an Expression currently holds.
type Type int

const (
	// TypeInvalid is the sentinel for "nothing" — an unparsed or
	// failed expression. It is never returned as part of a valid tree
	// except as the entire document for an empty/whitespace-only input.
	TypeInvalid Type = iota
	// TypeNull is the explicit null literal.
	TypeNull
	// TypeValue is an atom: identifier, number, or quoted string. No
	// distinction between the three is preserved after parsing.
	TypeValue
	// TypeBinaryData holds an owned byte buffer, base64 in text form.
	TypeBinaryData
	// TypeArray holds an ordered sequence of owned children.
	TypeArray
	// TypeMap holds an ordered sequence of (key, owned child) pairs.
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeInvalid:
		return "Invalid"
	case TypeNull:
		return "Null"
	case TypeValue:
		return "Value"
	case TypeBinaryData:
		return "BinaryData"
	case TypeArray:
		return "Array"
	case TypeMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// mapPair is one (key, value) entry of a Map, in insertion order.
type mapPair struct {
	key   string
	value *Expression
}

// Expression is a tagged wexpr value: null, a value atom, binary data,
// an array, or a map. The zero value is an Invalid expression, the same
// as NewInvalid returns; use one of the New* constructors for the others.
//
// Every child inserted into an Array or Map is owned by its parent.
// Destroy releases a tree recursively; Copy produces an independent deep
// copy that the caller owns.
type Expression struct {
	typ Type

	value []byte // TypeValue payload, owned

	binaryData []byte // TypeBinaryData payload, owned

	array []*Expression // TypeArray payload, owned children

	mapPairs []mapPair      // TypeMap payload, owned values, insertion order
	mapIndex map[string]int // key -> index into mapPairs, built lazily and updated on append
}

// NewInvalid creates an empty invalid expression.
func NewInvalid() *Expression {
	return &Expression{typ: TypeInvalid}
}

// NewNull creates an empty null expression.
func NewNull() *Expression {
	return &Expression{typ: TypeNull}
}

// NewValue creates a value expression holding a copy of s.
func NewValue(s string) *Expression {
	e := &Expression{typ: TypeValue}
	e.SetValue(s)
	return e
}

// NewBinaryData creates a binary-data expression holding a copy of data.
func NewBinaryData(data []byte) *Expression {
	e := &Expression{typ: TypeBinaryData}
	e.SetBinaryData(data)
	return e
}

// NewArray creates an empty array expression.
func NewArray() *Expression {
	return &Expression{typ: TypeArray, array: []*Expression{}}
}

// NewMap creates an empty map expression.
func NewMap() *Expression {
	return &Expression{typ: TypeMap}
}

// Type returns the variant currently held.
func (e *Expression) Type() Type {
	if e == nil {
		return TypeInvalid
	}
	return e.typ
}

// ChangeType discards the current payload and initializes an empty
// payload for t. It is a no-op if e already holds type t with an empty
// payload.
func (e *Expression) ChangeType(t Type) {
	if e == nil {
		return
	}
	if e.typ == t && e.isEmptyPayload() {
		return
	}
	e.clearPayload()
	e.typ = t
	if t == TypeArray {
		e.array = []*Expression{}
	}
}

func (e *Expression) isEmptyPayload() bool {
	switch e.typ {
	case TypeValue:
		return len(e.value) == 0
	case TypeBinaryData:
		return len(e.binaryData) == 0
	case TypeArray:
		return len(e.array) == 0
	case TypeMap:
		return len(e.mapPairs) == 0
	default:
		return true
	}
}

func (e *Expression) clearPayload() {
	e.value = nil
	e.binaryData = nil
	for _, c := range e.array {
		c.Destroy()
	}
	e.array = nil
	for i := range e.mapPairs {
		e.mapPairs[i].value.Destroy()
	}
	e.mapPairs = nil
	e.mapIndex = nil
}

// Destroy recursively frees e's owned children and buffers. After
// Destroy, e must not be used again.
func (e *Expression) Destroy() {
	if e == nil {
		return
	}
	e.clearPayload()
}

// Copy returns an independent deep copy of e; the caller owns the
// result.
func (e *Expression) Copy() *Expression {
	if e == nil {
		return NewInvalid()
	}
	out := &Expression{typ: e.typ}
	switch e.typ {
	case TypeValue:
		out.value = append([]byte(nil), e.value...)
	case TypeBinaryData:
		out.binaryData = append([]byte(nil), e.binaryData...)
	case TypeArray:
		out.array = make([]*Expression, len(e.array))
		for i, c := range e.array {
			out.array[i] = c.Copy()
		}
	case TypeMap:
		out.mapPairs = make([]mapPair, len(e.mapPairs))
		for i, p := range e.mapPairs {
			out.mapPairs[i] = mapPair{key: p.key, value: p.value.Copy()}
		}
		out.rebuildMapIndex()
	}
	return out
}

// Value returns the atom string, or "" if e is not a Value.
func (e *Expression) Value() string {
	if e == nil || e.typ != TypeValue {
		return ""
	}
	return string(e.value)
}

// SetValue converts e to TypeValue (if needed) and sets its atom
// string to a copy of s.
func (e *Expression) SetValue(s string) {
	if e == nil {
		return
	}
	e.ChangeType(TypeValue)
	e.value = []byte(s)
}

// SetValueBytes is like SetValue but takes a byte slice directly; used
// by the parser so the lexed token buffer doesn't need a string copy
// round trip.
func (e *Expression) SetValueBytes(b []byte) {
	if e == nil {
		return
	}
	e.ChangeType(TypeValue)
	e.value = append([]byte(nil), b...)
}

// BinaryData returns the binary payload, or nil if e is not
// TypeBinaryData.
func (e *Expression) BinaryData() []byte {
	if e == nil || e.typ != TypeBinaryData {
		return nil
	}
	return e.binaryData
}

// SetBinaryData converts e to TypeBinaryData (if needed) and copies
// data in as the payload.
func (e *Expression) SetBinaryData(data []byte) {
	if e == nil {
		return
	}
	e.ChangeType(TypeBinaryData)
	e.binaryData = append([]byte(nil), data...)
}

// ArrayCount returns the number of elements, or 0 if e is not an array.
func (e *Expression) ArrayCount() int {
	if e == nil || e.typ != TypeArray {
		return 0
	}
	return len(e.array)
}

// ArrayAt returns the element at index, or nil if out of bounds or e
// is not an array.
func (e *Expression) ArrayAt(index int) *Expression {
	if e == nil || e.typ != TypeArray || index < 0 || index >= len(e.array) {
		return nil
	}
	return e.array[index]
}

// ArrayAddElementToEnd appends element, taking ownership of it. e is
// converted to TypeArray first if needed.
func (e *Expression) ArrayAddElementToEnd(element *Expression) {
	if e == nil || element == nil {
		return
	}
	if e.typ != TypeArray {
		e.ChangeType(TypeArray)
	}
	e.array = append(e.array, element)
}

// MapCount returns the number of pairs, or 0 if e is not a map.
func (e *Expression) MapCount() int {
	if e == nil || e.typ != TypeMap {
		return 0
	}
	return len(e.mapPairs)
}

// MapKeyAt returns the key at index, or "" if out of bounds or e is
// not a map.
func (e *Expression) MapKeyAt(index int) string {
	if e == nil || e.typ != TypeMap || index < 0 || index >= len(e.mapPairs) {
		return ""
	}
	return e.mapPairs[index].key
}

// MapValueAt returns the value at index, or nil if out of bounds or e
// is not a map.
func (e *Expression) MapValueAt(index int) *Expression {
	if e == nil || e.typ != TypeMap || index < 0 || index >= len(e.mapPairs) {
		return nil
	}
	return e.mapPairs[index].value
}

// MapValueForKey returns the value for key, or nil if key is absent or
// e is not a map. Lookup is average-constant via the auxiliary index.
func (e *Expression) MapValueForKey(key string) *Expression {
	if e == nil || e.typ != TypeMap {
		return nil
	}
	if e.mapIndex == nil {
		e.rebuildMapIndex()
	}
	i, ok := e.mapIndex[key]
	if !ok {
		return nil
	}
	return e.mapPairs[i].value
}

// MapSetValueForKey sets the value for key, taking ownership of value.
// If key already exists its position is preserved and the prior value
// is destroyed; otherwise the pair is appended. e is converted to
// TypeMap first if needed.
func (e *Expression) MapSetValueForKey(key string, value *Expression) {
	if e == nil || value == nil {
		return
	}
	if e.typ != TypeMap {
		e.ChangeType(TypeMap)
	}
	if e.mapIndex == nil {
		e.rebuildMapIndex()
	}
	if i, ok := e.mapIndex[key]; ok {
		e.mapPairs[i].value.Destroy()
		e.mapPairs[i].value = value
		return
	}
	e.mapPairs = append(e.mapPairs, mapPair{key: key, value: value})
	e.mapIndex[key] = len(e.mapPairs) - 1
}

// rebuildMapIndex recomputes the key->index table from mapPairs. The
// first occurrence of a duplicate key wins, matching the parser's
// conflict rule.
func (e *Expression) rebuildMapIndex() {
	e.mapIndex = make(map[string]int, len(e.mapPairs))
	for i, p := range e.mapPairs {
		if _, exists := e.mapIndex[p.key]; !exists {
			e.mapIndex[p.key] = i
		}
	}
}

// Equal reports whether e and other are structurally identical: same
// type, same Value/key/BinaryData bytes, same Array order, and the
// same Map key set with equal per-key values (map order is not
// compared, since it is the insertion order of two independently
// constructed trees that need not agree).
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	if e.typ != other.typ {
		return false
	}
	switch e.typ {
	case TypeInvalid, TypeNull:
		return true
	case TypeValue:
		return string(e.value) == string(other.value)
	case TypeBinaryData:
		return bytesEqual(e.binaryData, other.binaryData)
	case TypeArray:
		if len(e.array) != len(other.array) {
			return false
		}
		for i := range e.array {
			if !e.array[i].Equal(other.array[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(e.mapPairs) != len(other.mapPairs) {
			return false
		}
		for _, p := range e.mapPairs {
			v := other.MapValueForKey(p.key)
			if v == nil || !p.value.Equal(v) {
				return false
			}
		}
		return true
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
