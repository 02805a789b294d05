package wexpr

import "encoding/base64"

// encodeBase64 renders data as standard base64 with '=' padding and no
// line breaks. Zero bytes in yields an empty string.
func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// decodeBase64 accepts the standard alphabet plus '=' padding; any
// other byte, or a truncated group, is an error. An empty string
// decodes to an empty (non-nil) buffer.
func decodeBase64(encoded []byte) ([]byte, error) {
	// encoding/base64 skips CR and LF on its own; reject them here.
	for i, b := range encoded {
		if b == '\r' || b == '\n' {
			return nil, base64.CorruptInputError(i)
		}
	}
	decoded, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		decoded = []byte{}
	}
	return decoded, nil
}
