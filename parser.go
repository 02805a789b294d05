package wexpr

import "unicode/utf8"

// ParseFlags controls optional parser behavior. The only recognised
// value is ParseFlagNone; unknown bits are silently ignored.
type ParseFlags uint32

const ParseFlagNone ParseFlags = 0

const reservedChars = "()#@\"<>;[]*"

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isReserved(b byte) bool {
	for i := 0; i < len(reservedChars); i++ {
		if reservedChars[i] == b {
			return true
		}
	}
	return false
}

func isAtomChar(b byte) bool {
	return !isWhitespace(b) && !isReserved(b)
}

// Parse parses a wexpr document from a string. An empty or
// whitespace-only document yields an Invalid expression with a nil
// error; any other failure aborts at the first error encountered.
func Parse(input string, flags ParseFlags) (*Expression, *Error) {
	return ParseBytes([]byte(input), flags)
}

// ParseBytes is Parse over a byte slice, avoiding a string copy when
// the caller already has one.
func ParseBytes(data []byte, flags ParseFlags) (*Expression, *Error) {
	p := &parser{data: data, line: 1, col: 1}
	return p.parseDocument()
}

type parser struct {
	data []byte
	pos  int
	line int
	col  int
	refs map[string]*Expression
}

type pos struct {
	line, col int
}

func (p *parser) here() pos {
	return pos{line: p.line, col: p.col}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	return p.data[p.pos]
}

func (p *parser) peekAt(offset int) (byte, bool) {
	i := p.pos + offset
	if i >= len(p.data) {
		return 0, false
	}
	return p.data[i], true
}

// advance consumes and returns one byte, updating line/column.
func (p *parser) advance() byte {
	b := p.data[p.pos]
	p.pos++
	if b == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return b
}

func (p *parser) errf(kind ErrorKind, at pos, format string, args ...any) *Error {
	return newError(kind, at.line, at.col, format, args...)
}

func (p *parser) parseDocument() (*Expression, *Error) {
	p.skipWhitespaceAndComments()
	if p.atEnd() {
		return NewInvalid(), nil
	}

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()
	if !p.atEnd() {
		e.Destroy()
		return nil, p.errf(ErrorKindExtraDataAfterParsingRoot, p.here(), "extra data after parsing root expression")
	}
	return e, nil
}

func (p *parser) skipWhitespaceAndComments() {
	for !p.atEnd() {
		b := p.peek()
		if isWhitespace(b) {
			p.advance()
			continue
		}
		if b == ';' {
			b1, ok1 := p.peekAt(1)
			b2, ok2 := p.peekAt(2)
			b3, ok3 := p.peekAt(3)
			if ok1 && ok2 && ok3 && b1 == '(' && b2 == '-' && b3 == '-' {
				p.advance()
				p.advance()
				p.advance()
				p.advance()
				for !p.atEnd() {
					c, ok1 := p.peekAt(0)
					d, ok2 := p.peekAt(1)
					if ok1 && ok2 && c == '-' && d == '-' {
						n, ok3 := p.peekAt(2)
						if ok3 && n == ')' {
							p.advance()
							p.advance()
							p.advance()
							break
						}
					}
					p.advance()
				}
				continue
			}
			// line comment
			p.advance()
			for !p.atEnd() && p.peek() != '\n' {
				p.advance()
			}
			continue
		}
		return
	}
}

// parseExpression parses one expression, including an optional leading
// reference declaration.
func (p *parser) parseExpression() (*Expression, *Error) {
	p.skipWhitespaceAndComments()
	if !p.atEnd() && p.peek() == '[' {
		return p.parseRefDecl()
	}
	return p.parseExpressionBody()
}

func (p *parser) parseRefDecl() (*Expression, *Error) {
	start := p.here()
	p.advance() // '['
	name, ok := p.scanUntil(']')
	if !ok {
		return nil, p.errf(ErrorKindReferenceMissingEndBracket, start, "reference declaration missing ending ']'")
	}
	p.advance() // ']'

	p.skipWhitespaceAndComments()
	e, err := p.parseExpressionBody()
	if err != nil {
		return nil, err
	}

	if p.refs == nil {
		p.refs = make(map[string]*Expression)
	}
	p.refs[name] = e
	return e, nil
}

func (p *parser) parseExpressionBody() (*Expression, *Error) {
	if p.atEnd() {
		return nil, p.errf(ErrorKindEmptyString, p.here(), "expected an expression")
	}

	start := p.here()
	b := p.peek()

	switch {
	case b == '"':
		return p.parseQuoted()
	case b == '<':
		return p.parseBinaryData()
	case b == '#':
		if n, ok := p.peekAt(1); ok && n == '(' {
			return p.parseArray()
		}
	case b == '@':
		if n, ok := p.peekAt(1); ok && n == '(' {
			return p.parseMap()
		}
	case b == '*':
		if n, ok := p.peekAt(1); ok && n == '[' {
			return p.parseRefUse()
		}
	default:
		if isAtomChar(b) {
			return p.parseAtom()
		}
	}

	return nil, p.errf(ErrorKindEmptyString, start, "unexpected character %q where an expression was expected", b)
}

func (p *parser) parseRefUse() (*Expression, *Error) {
	start := p.here()
	p.advance() // '*'
	p.advance() // '['
	name, ok := p.scanUntil(']')
	if !ok {
		return nil, p.errf(ErrorKindReferenceInsertMissingEnd, start, "reference use missing ending ']'")
	}
	p.advance() // ']'

	decl, ok := p.refs[name]
	if !ok {
		return nil, p.errf(ErrorKindReferenceUnknownReference, start, "unknown reference %q", name)
	}
	return decl.Copy(), nil
}

// scanUntil consumes bytes up to (not including) the next occurrence
// of delim, returning false if EOF is reached first.
func (p *parser) scanUntil(delim byte) (string, bool) {
	startPos := p.pos
	for !p.atEnd() {
		if p.peek() == delim {
			return string(p.data[startPos:p.pos]), true
		}
		p.advance()
	}
	return string(p.data[startPos:p.pos]), false
}

func (p *parser) parseAtom() (*Expression, *Error) {
	start := p.here()
	startPos := p.pos
	for !p.atEnd() && isAtomChar(p.peek()) {
		p.advance()
	}
	raw := p.data[startPos:p.pos]

	if !utf8.Valid(raw) {
		return nil, p.errf(ErrorKindInvalidUTF8, start, "atom is not valid UTF-8")
	}
	if string(raw) == "null" {
		return NewNull(), nil
	}
	return NewValue(string(raw)), nil
}

func (p *parser) parseQuoted() (*Expression, *Error) {
	raw, err := p.parseQuotedBytes()
	if err != nil {
		return nil, err
	}
	e := &Expression{}
	e.SetValueBytes(raw)
	return e, nil
}

// parseQuotedBytes scans a "..." quoted string, processing escapes,
// and returns the decoded payload.
func (p *parser) parseQuotedBytes() ([]byte, *Error) {
	start := p.here()
	p.advance() // opening quote

	var buf []byte
	for {
		if p.atEnd() {
			return nil, p.errf(ErrorKindStringMissingEndingQuote, start, "string is missing its ending quote")
		}
		b := p.peek()
		if b == '"' {
			p.advance()
			break
		}
		if b == '\\' {
			escStart := p.here()
			p.advance()
			if p.atEnd() {
				return nil, p.errf(ErrorKindStringMissingEndingQuote, start, "string is missing its ending quote")
			}
			c := p.advance()
			switch c {
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			default:
				return nil, p.errf(ErrorKindInvalidStringEscape, escStart, "invalid string escape '\\%c'", c)
			}
			continue
		}
		buf = append(buf, b)
		p.advance()
	}

	if !utf8.Valid(buf) {
		return nil, p.errf(ErrorKindInvalidUTF8, start, "quoted string is not valid UTF-8")
	}
	return buf, nil
}

func (p *parser) parseBinaryData() (*Expression, *Error) {
	start := p.here()
	p.advance() // '<'

	startPos := p.pos
	for {
		if p.atEnd() {
			return nil, p.errf(ErrorKindBinaryDataNoEnding, start, "binary data is missing its ending '>'")
		}
		if p.peek() == '>' {
			break
		}
		p.advance()
	}
	encoded := p.data[startPos:p.pos]
	p.advance() // '>'

	decoded, derr := decodeBase64(encoded)
	if derr != nil {
		return nil, p.errf(ErrorKindBinaryDataInvalidBase64, start, "invalid base64 in binary data: %v", derr)
	}
	return NewBinaryData(decoded), nil
}

func (p *parser) parseArray() (*Expression, *Error) {
	start := p.here()
	p.advance() // '#'
	p.advance() // '('

	arr := NewArray()
	for {
		p.skipWhitespaceAndComments()
		if p.atEnd() {
			arr.Destroy()
			return nil, p.errf(ErrorKindArrayMissingEndParen, start, "array is missing its ending ')'")
		}
		if p.peek() == ')' {
			p.advance()
			return arr, nil
		}

		child, err := p.parseExpression()
		if err != nil {
			arr.Destroy()
			return nil, err
		}
		arr.ArrayAddElementToEnd(child)
	}
}

func (p *parser) parseMap() (*Expression, *Error) {
	start := p.here()
	p.advance() // '@'
	p.advance() // '('

	m := NewMap()
	for {
		p.skipWhitespaceAndComments()
		if p.atEnd() {
			m.Destroy()
			return nil, p.errf(ErrorKindMapMissingEndParen, start, "map is missing its ending ')'")
		}
		if p.peek() == ')' {
			p.advance()
			return m, nil
		}

		keyStart := p.here()
		var key []byte
		switch {
		case p.peek() == '"':
			raw, err := p.parseQuotedBytes()
			if err != nil {
				m.Destroy()
				return nil, err
			}
			key = raw
		case isAtomChar(p.peek()):
			startPos := p.pos
			for !p.atEnd() && isAtomChar(p.peek()) {
				p.advance()
			}
			key = p.data[startPos:p.pos]
			if !utf8.Valid(key) {
				m.Destroy()
				return nil, p.errf(ErrorKindInvalidUTF8, keyStart, "map key is not valid UTF-8")
			}
		default:
			m.Destroy()
			return nil, p.errf(ErrorKindMapKeyMustBeAValue, keyStart, "map key must be an atom or a quoted string")
		}

		p.skipWhitespaceAndComments()
		if p.atEnd() {
			m.Destroy()
			return nil, p.errf(ErrorKindMapMissingEndParen, start, "map is missing its ending ')'")
		}
		if p.peek() == ')' {
			m.Destroy()
			return nil, p.errf(ErrorKindMapNoValue, p.here(), "map key %q has no value", string(key))
		}

		value, err := p.parseExpression()
		if err != nil {
			m.Destroy()
			return nil, err
		}
		// The first occurrence of a key wins; a later duplicate is
		// still parsed (its syntax must be valid) but discarded.
		if m.MapValueForKey(string(key)) != nil {
			value.Destroy()
			continue
		}
		m.MapSetValueForKey(string(key), value)
	}
}
