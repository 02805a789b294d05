package wexpr

import "fmt"

// ErrorKind identifies the category of a wexpr parse, decode, or encode
// failure. The zero value, ErrorKindNone, never appears on a returned
// non-nil *Error.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota

	ErrorKindInvalidUTF8
	ErrorKindStringMissingEndingQuote
	ErrorKindInvalidStringEscape
	ErrorKindMapKeyMustBeAValue
	ErrorKindMapNoValue
	ErrorKindMapMissingEndParen
	ErrorKindArrayMissingEndParen
	ErrorKindReferenceMissingEndBracket
	ErrorKindReferenceInsertMissingEnd
	ErrorKindReferenceUnknownReference
	ErrorKindBinaryDataNoEnding
	ErrorKindBinaryDataInvalidBase64
	ErrorKindExtraDataAfterParsingRoot
	ErrorKindEmptyString

	ErrorKindBinaryInvalidHeader
	ErrorKindBinaryUnknownVersion
	ErrorKindBinaryMultipleExpressions
	ErrorKindBinaryChunkOverflow
	ErrorKindBinaryUnknownType
	ErrorKindBinaryChunkNotMap
)

// String names the error kind the way it appears in the taxonomy; it is
// not meant to be user-facing prose.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNone:
		return "None"
	case ErrorKindInvalidUTF8:
		return "InvalidUTF8"
	case ErrorKindStringMissingEndingQuote:
		return "StringMissingEndingQuote"
	case ErrorKindInvalidStringEscape:
		return "InvalidStringEscape"
	case ErrorKindMapKeyMustBeAValue:
		return "MapKeyMustBeAValue"
	case ErrorKindMapNoValue:
		return "MapNoValue"
	case ErrorKindMapMissingEndParen:
		return "MapMissingEndParen"
	case ErrorKindArrayMissingEndParen:
		return "ArrayMissingEndParen"
	case ErrorKindReferenceMissingEndBracket:
		return "ReferenceMissingEndBracket"
	case ErrorKindReferenceInsertMissingEnd:
		return "ReferenceInsertMissingEnd"
	case ErrorKindReferenceUnknownReference:
		return "ReferenceUnknownReference"
	case ErrorKindBinaryDataNoEnding:
		return "BinaryDataNoEnding"
	case ErrorKindBinaryDataInvalidBase64:
		return "BinaryDataInvalidBase64"
	case ErrorKindExtraDataAfterParsingRoot:
		return "ExtraDataAfterParsingRoot"
	case ErrorKindEmptyString:
		return "EmptyString"
	case ErrorKindBinaryInvalidHeader:
		return "BinaryInvalidHeader"
	case ErrorKindBinaryUnknownVersion:
		return "BinaryUnknownVersion"
	case ErrorKindBinaryMultipleExpressions:
		return "BinaryMultipleExpressions"
	case ErrorKindBinaryChunkOverflow:
		return "BinaryChunkOverflow"
	case ErrorKindBinaryUnknownType:
		return "BinaryUnknownType"
	case ErrorKindBinaryChunkNotMap:
		return "BinaryChunkNotMap"
	default:
		return "Unknown"
	}
}

// Error is the structure that crosses every wexpr boundary: parsing,
// binary decoding, and file-header validation all report failures this
// way instead of panicking or returning a bare error. Line and Column
// are 1-based and zero on the binary path.
type Error struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Line == 0 && e.Column == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Message)
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &wexpr.Error{Kind: wexpr.ErrorKindBinaryUnknownType}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newError(kind ErrorKind, line, col int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}
