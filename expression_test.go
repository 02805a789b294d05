package wexpr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, TypeInvalid, NewInvalid().Type())
	assert.Equal(t, TypeNull, NewNull().Type())

	v := NewValue("hello")
	assert.Equal(t, TypeValue, v.Type())
	assert.Equal(t, "hello", v.Value())

	b := NewBinaryData([]byte{1, 2, 3})
	assert.Equal(t, TypeBinaryData, b.Type())
	assert.Equal(t, []byte{1, 2, 3}, b.BinaryData())

	assert.Equal(t, TypeArray, NewArray().Type())
	assert.Equal(t, 0, NewArray().ArrayCount())

	assert.Equal(t, TypeMap, NewMap().Type())
	assert.Equal(t, 0, NewMap().MapCount())
}

func TestNilReceiverAccessors(t *testing.T) {
	var e *Expression
	assert.Equal(t, TypeInvalid, e.Type())
	assert.Equal(t, "", e.Value())
	assert.Nil(t, e.BinaryData())
	assert.Equal(t, 0, e.ArrayCount())
	assert.Nil(t, e.ArrayAt(0))
	assert.Equal(t, 0, e.MapCount())
	assert.Equal(t, "", e.MapKeyAt(0))
	assert.Nil(t, e.MapValueAt(0))
	assert.Nil(t, e.MapValueForKey("k"))

	// Mutators and Destroy are no-ops rather than panics.
	e.SetValue("x")
	e.ArrayAddElementToEnd(NewNull())
	e.MapSetValueForKey("k", NewNull())
	e.ChangeType(TypeArray)
	e.Destroy()
}

func TestChangeType(t *testing.T) {
	e := NewValue("hello")
	e.ChangeType(TypeArray)
	assert.Equal(t, TypeArray, e.Type())
	assert.Equal(t, 0, e.ArrayCount())
	assert.Equal(t, "", e.Value())

	// Setters convert a mismatched receiver first.
	e.SetValue("again")
	assert.Equal(t, TypeValue, e.Type())
	assert.Equal(t, "again", e.Value())

	e.MapSetValueForKey("k", NewValue("v"))
	assert.Equal(t, TypeMap, e.Type())
	require.Equal(t, 1, e.MapCount())
	assert.Equal(t, "v", e.MapValueForKey("k").Value())
}

func TestTypeAppropriateEmpties(t *testing.T) {
	e := NewValue("atom")
	assert.Nil(t, e.BinaryData())
	assert.Equal(t, 0, e.ArrayCount())
	assert.Equal(t, 0, e.MapCount())
	assert.Nil(t, e.MapValueForKey("atom"))

	a := NewArray()
	assert.Equal(t, "", a.Value())
	assert.Nil(t, a.ArrayAt(-1))
	assert.Nil(t, a.ArrayAt(0))
}

func TestArrayOrdering(t *testing.T) {
	a := NewArray()
	a.ArrayAddElementToEnd(NewValue("first"))
	a.ArrayAddElementToEnd(NewValue("second"))
	a.ArrayAddElementToEnd(NewNull())

	require.Equal(t, 3, a.ArrayCount())
	assert.Equal(t, "first", a.ArrayAt(0).Value())
	assert.Equal(t, "second", a.ArrayAt(1).Value())
	assert.Equal(t, TypeNull, a.ArrayAt(2).Type())
}

func TestMapSetPreservesPosition(t *testing.T) {
	m := NewMap()
	m.MapSetValueForKey("a", NewValue("1"))
	m.MapSetValueForKey("b", NewValue("2"))
	m.MapSetValueForKey("c", NewValue("3"))

	// Replacing an existing key keeps its slot.
	m.MapSetValueForKey("b", NewValue("two"))
	require.Equal(t, 3, m.MapCount())
	assert.Equal(t, "b", m.MapKeyAt(1))
	assert.Equal(t, "two", m.MapValueAt(1).Value())

	// A new key appends.
	m.MapSetValueForKey("d", NewValue("4"))
	require.Equal(t, 4, m.MapCount())
	assert.Equal(t, "d", m.MapKeyAt(3))
}

func TestMapLookupConsistency(t *testing.T) {
	m := NewMap()
	m.MapSetValueForKey("x", NewValue("ex"))
	m.MapSetValueForKey("y", NewValue("why"))
	m.MapSetValueForKey("z", NewValue("zed"))

	for i := 0; i < m.MapCount(); i++ {
		key := m.MapKeyAt(i)
		assert.Same(t, m.MapValueAt(i), m.MapValueForKey(key))
	}
	assert.Nil(t, m.MapValueForKey("missing"))
}

func TestCopyIsDeepAndIndependent(t *testing.T) {
	src := NewMap()
	inner := NewArray()
	inner.ArrayAddElementToEnd(NewValue("leaf"))
	src.MapSetValueForKey("list", inner)
	src.MapSetValueForKey("blob", NewBinaryData([]byte{9, 8, 7}))

	dst := src.Copy()
	require.True(t, src.Equal(dst))
	if diff := cmp.Diff(asGo(src), asGo(dst)); diff != "" {
		t.Fatalf("copy differs from source (-src +copy):\n%s", diff)
	}

	// Mutating the copy must not reach back into the source.
	dst.MapValueForKey("list").ArrayAt(0).SetValue("changed")
	assert.Equal(t, "leaf", src.MapValueForKey("list").ArrayAt(0).Value())
	assert.False(t, src.Equal(dst))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "same atoms", a: "abc", b: "abc", want: true},
		{name: "different atoms", a: "abc", b: "abd", want: false},
		{name: "same arrays", a: "#(1 2 3)", b: "#( 1 2 3 )", want: true},
		{name: "array order matters", a: "#(1 2)", b: "#(2 1)", want: false},
		{name: "map order does not matter", a: "@(a 1 b 2)", b: "@(b 2 a 1)", want: true},
		{name: "map value differs", a: "@(a 1)", b: "@(a 2)", want: false},
		{name: "map key set differs", a: "@(a 1)", b: "@(b 1)", want: false},
		{name: "null vs atom", a: "null", b: "notnull", want: false},
		{name: "binary equal", a: "<SGVsbG8=>", b: "<SGVsbG8=>", want: true},
		{name: "binary vs value", a: "<SGVsbG8=>", b: "Hello", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.a, ParseFlagNone)
			require.Nil(t, err)
			b, err := Parse(tt.b, ParseFlagNone)
			require.Nil(t, err)
			assert.Equal(t, tt.want, a.Equal(b))
			assert.Equal(t, tt.want, b.Equal(a))
		})
	}
}
