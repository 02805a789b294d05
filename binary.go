package wexpr

import (
	"bytes"
	"encoding/binary"
)

// Binary chunk type codes.
const (
	chunkTypeNullOrInvalid byte = 0x00
	chunkTypeValue         byte = 0x01
	chunkTypeArray         byte = 0x02
	chunkTypeMap           byte = 0x03
	chunkTypeBinaryData    byte = 0x04
)

// A chunk is framed as [size:uint32 big-endian][type:uint8][payload].
// size counts only the payload bytes that follow the type byte; the
// total on-wire length of a chunk is therefore 5+size.
const chunkHeaderSize = 5

// EncodeBinary emits the expression chunk for the tree rooted at e,
// recursively. The result contains no file header; wrap it with
// EncodeFile to produce a complete binary document.
func EncodeBinary(e *Expression) []byte {
	var buf bytes.Buffer
	writeChunk(&buf, e)
	return buf.Bytes()
}

func writeChunk(buf *bytes.Buffer, e *Expression) {
	var typ byte
	var payload []byte

	switch e.Type() {
	case TypeArray:
		typ = chunkTypeArray
		var inner bytes.Buffer
		for i := 0; i < e.ArrayCount(); i++ {
			writeChunk(&inner, e.ArrayAt(i))
		}
		payload = inner.Bytes()
	case TypeMap:
		typ = chunkTypeMap
		var inner bytes.Buffer
		for i := 0; i < e.MapCount(); i++ {
			key := NewValue(e.MapKeyAt(i))
			writeChunk(&inner, key)
			writeChunk(&inner, e.MapValueAt(i))
		}
		payload = inner.Bytes()
	case TypeBinaryData:
		typ = chunkTypeBinaryData
		payload = e.BinaryData()
	case TypeValue:
		typ = chunkTypeValue
		payload = []byte(e.Value())
	default: // TypeNull, TypeInvalid
		typ = chunkTypeNullOrInvalid
	}

	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	buf.Write(header[:])
	buf.WriteByte(typ)
	buf.Write(payload)
}

// DecodeBinaryChunk rebuilds an expression tree from a byte range
// containing exactly one chunk, which may recursively contain more.
func DecodeBinaryChunk(data []byte) (*Expression, *Error) {
	e, _, err := decodeChunk(data)
	return e, err
}

// decodeChunk decodes the chunk at the front of data and returns how
// many bytes it consumed, so callers walking a sequence of sibling
// chunks can advance without re-parsing.
func decodeChunk(data []byte) (*Expression, int, *Error) {
	if len(data) < chunkHeaderSize {
		return nil, 0, newError(ErrorKindBinaryChunkOverflow, 0, 0, "chunk header is truncated")
	}

	size := binary.BigEndian.Uint32(data[0:4])
	typ := data[4]
	total := chunkHeaderSize + int(size)
	if total > len(data) {
		return nil, 0, newError(ErrorKindBinaryChunkOverflow, 0, 0, "chunk declares %d payload bytes but only %d are available", size, len(data)-chunkHeaderSize)
	}
	payload := data[chunkHeaderSize:total]

	switch typ {
	case chunkTypeNullOrInvalid:
		return NewNull(), total, nil
	case chunkTypeValue:
		v := &Expression{}
		v.SetValueBytes(payload)
		return v, total, nil
	case chunkTypeBinaryData:
		return NewBinaryData(payload), total, nil
	case chunkTypeArray:
		arr := NewArray()
		off := 0
		for off < len(payload) {
			child, consumed, err := decodeChunk(payload[off:])
			if err != nil {
				arr.Destroy()
				return nil, 0, err
			}
			arr.ArrayAddElementToEnd(child)
			off += consumed
		}
		return arr, total, nil
	case chunkTypeMap:
		m, err := decodeMapPayload(payload)
		if err != nil {
			return nil, 0, err
		}
		return m, total, nil
	default:
		return nil, 0, newError(ErrorKindBinaryUnknownType, 0, 0, "unknown chunk type 0x%02x", typ)
	}
}

func decodeMapPayload(payload []byte) (*Expression, *Error) {
	var children []*Expression
	off := 0
	for off < len(payload) {
		child, consumed, err := decodeChunk(payload[off:])
		if err != nil {
			for _, c := range children {
				c.Destroy()
			}
			return nil, err
		}
		children = append(children, child)
		off += consumed
	}

	if len(children)%2 != 0 {
		for _, c := range children {
			c.Destroy()
		}
		return nil, newError(ErrorKindBinaryChunkNotMap, 0, 0, "map chunk has an odd number of child chunks")
	}

	m := NewMap()
	for i := 0; i < len(children); i += 2 {
		key, value := children[i], children[i+1]
		if key.Type() != TypeValue {
			key.Destroy()
			value.Destroy()
			m.Destroy()
			return nil, newError(ErrorKindBinaryChunkNotMap, 0, 0, "map key chunk is not a value chunk")
		}
		m.MapSetValueForKey(key.Value(), value)
		key.Destroy()
	}
	return m, nil
}
