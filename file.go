package wexpr

import (
	"bytes"
	"encoding/binary"
)

// FileHeaderSize is the fixed size of the binary file header.
const FileHeaderSize = 20

const fileVersion uint32 = 1

var fileMagic = [8]byte{0x83, 'B', 'W', 'E', 'X', 'P', 'R', 0x0A}

// EncodeFile renders e as a complete binary wexpr document: the
// 20-byte file header followed by its expression chunk.
func EncodeFile(e *Expression) []byte {
	out := make([]byte, FileHeaderSize)
	copy(out, fileMagic[:])
	binary.BigEndian.PutUint32(out[8:12], fileVersion)
	// out[12:20] is reserved and stays zero.
	return append(out, EncodeBinary(e)...)
}

// DecodeFile validates the file header and decodes the single
// expression chunk that follows it. Any auxiliary chunks after the
// expression chunk are skipped; a second expression-typed chunk is
// BinaryMultipleExpressions.
func DecodeFile(data []byte) (*Expression, *Error) {
	if len(data) < FileHeaderSize {
		return nil, newError(ErrorKindBinaryInvalidHeader, 0, 0, "binary file header is truncated: need %d bytes, got %d", FileHeaderSize, len(data))
	}
	if !bytes.Equal(data[0:8], fileMagic[:]) {
		return nil, newError(ErrorKindBinaryInvalidHeader, 0, 0, "invalid magic sentinel")
	}
	if version := binary.BigEndian.Uint32(data[8:12]); version != fileVersion {
		return nil, newError(ErrorKindBinaryUnknownVersion, 0, 0, "unknown binary format version %d", version)
	}
	for _, b := range data[12:20] {
		if b != 0 {
			return nil, newError(ErrorKindBinaryInvalidHeader, 0, 0, "reserved header bytes must be zero")
		}
	}

	var result *Expression
	pos := FileHeaderSize
	for pos < len(data) {
		if pos+chunkHeaderSize > len(data) {
			result.Destroy()
			return nil, newError(ErrorKindBinaryChunkOverflow, 0, 0, "trailing chunk header is truncated")
		}
		size := binary.BigEndian.Uint32(data[pos : pos+4])
		typ := data[pos+4]
		total := chunkHeaderSize + int(size)
		if pos+total > len(data) {
			result.Destroy()
			return nil, newError(ErrorKindBinaryChunkOverflow, 0, 0, "chunk declares more bytes than remain in the file")
		}

		if typ <= chunkTypeBinaryData {
			if result != nil {
				result.Destroy()
				return nil, newError(ErrorKindBinaryMultipleExpressions, 0, 0, "found multiple expression chunks")
			}
			e, err := DecodeBinaryChunk(data[pos : pos+total])
			if err != nil {
				return nil, err
			}
			result = e
		}
		// unrecognised top-level chunk types are auxiliary and ignored.
		pos += total
	}

	if result == nil {
		return nil, newError(ErrorKindBinaryInvalidHeader, 0, 0, "file contains no expression chunk")
	}
	return result, nil
}
