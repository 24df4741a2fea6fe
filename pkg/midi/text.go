package midi

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Text returns the payload of a text-like meta event as a string. Payloads
// that are not valid UTF-8 are decoded as Shift-JIS, the encoding most
// Japanese sequencers write markers and track names in.
func (m *MetaMessage) Text() string {
	return decodeText(m.Data)
}

func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	s, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(s)
}
