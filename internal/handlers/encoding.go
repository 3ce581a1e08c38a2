package handlers

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// DecodeText converts raw file bytes to a UTF-8 string, honouring UTF-8 and
// UTF-16 byte order marks. Files produced by Windows tooling regularly arrive
// as UTF-16 with a BOM; everything else is passed through unchanged.
func DecodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}), bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		decoded, err := decoder.Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case bytes.HasPrefix(data, []byte{0xef, 0xbb, 0xbf}):
		return string(data[3:]), nil
	default:
		return string(data), nil
	}
}
