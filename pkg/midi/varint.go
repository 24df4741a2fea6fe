package midi

import "math"

// EncodeVarint returns the minimal variable-length encoding of x, most
// significant 7-bit group first.
func EncodeVarint(x uint32) []byte {
	return AppendVarint(nil, x)
}

// AppendVarint appends the variable-length encoding of x to buf.
func AppendVarint(buf []byte, x uint32) []byte {
	var tmp [5]byte
	n := len(tmp) - 1
	tmp[n] = byte(x & 0x7F)
	for x >>= 7; x != 0; x >>= 7 {
		n--
		tmp[n] = byte(x&0x7F) | 0x80
	}
	return append(buf, tmp[n:]...)
}

// DecodeVarint reads a variable-length quantity from the start of buf and
// returns the value and the number of bytes consumed. Non-minimal encodings
// are accepted.
func DecodeVarint(buf []byte) (x uint32, n int, err error) {
	for _, b := range buf {
		if x > math.MaxUint32>>7 {
			return 0, n, ErrVarintOverflow
		}
		x = x<<7 | uint32(b&0x7F)
		n++
		if b&0x80 == 0 {
			return x, n, nil
		}
	}
	return 0, n, ErrTruncated
}

func isVoiceMsgType(b byte) bool {
	return 0x8 <= b && b <= 0xE
}
