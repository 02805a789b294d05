// Package wexpr implements W-Expressions (wexpr): a human-readable,
// S-expression-like configuration format with an auxiliary binary encoding.
//
// A wexpr document holds exactly one expression. An expression is one of:
// a null literal, a value (an unstructured atom string), binary data
// (arbitrary bytes, base64 in text), an array, or a map.
//
//	null
//	asdf
//	"a quoted string"
//	<SGVsbG8=>
//	#( a b c )
//	@( key1 value1 key2 value2 )
//
// Comments (";" to end of line, or ";(--" ... "--)") are stripped on
// import. References ([name] to declare, *[name] to expand to an
// independent deep copy of the declaration) are resolved during parsing
// and never appear in a returned tree.
//
// BNF:
//
//	document   ::= ws? expression ws? EOF ;
//	expression ::= refDecl? ( atom | quoted | null | binary | array | map | refUse ) ;
//	array      ::= "#(" ws? (expression ws?)* ")" ;
//	map        ::= "@(" ws? (key ws expression ws?)* ")" ;
//	key        ::= atom | quoted ;
//	refDecl    ::= "[" name "]" ;
//	refUse     ::= "*[" name "]" ;
//	atom       ::= <maximal run of bytes excluding whitespace and ()#@"<>;[]*> ;
//
// The same tree can be rendered minified or human-readable (Write), and
// round-trips through a chunked, big-endian binary encoding (EncodeBinary /
// DecodeBinaryChunk) with the 20-byte file framing described by EncodeFile
// and DecodeFile.
package wexpr
