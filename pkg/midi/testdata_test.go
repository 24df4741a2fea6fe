package midi

import (
	"encoding/binary"
)

func chunk(id string, body []byte) []byte {
	out := append([]byte(id), 0, 0, 0, 0)
	binary.BigEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

func buildFile(format, division uint16, tracks ...[]byte) []byte {
	h := make([]byte, 6)
	binary.BigEndian.PutUint16(h[0:], format)
	binary.BigEndian.PutUint16(h[2:], uint16(len(tracks)))
	binary.BigEndian.PutUint16(h[4:], division)

	out := chunk("MThd", h)
	for _, t := range tracks {
		out = append(out, chunk("MTrk", t)...)
	}
	return out
}

// conductor track: tempo, loop start at 0, loop end at 480
var conductorTrack = []byte{
	0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
	0x00, 0xFF, 0x06, 0x01, '[',
	0x83, 0x60, 0xFF, 0x06, 0x01, ']',
	0x00, 0xFF, 0x2F, 0x00,
}

var pianoTrack = []byte{
	0x00, 0xC0, 0x05, // program 5
	0x00, 0xB0, 0x07, 0x64, // volume 100
	0x00, 0x0B, 0x40, // running status: expression 64
	0x00, 0x90, 0x3C, 0x64, // note on
	0x83, 0x60, 0x3C, 0x00, // running status: note on, velocity 0
	0x00, 0xE0, 0x00, 0x40, // pitch bend center
	0x00, 0xF0, 0x03, 0x7E, 0x7F, 0xF7, // sysex
	0x00, 0xFF, 0x2F, 0x00,
}

func sampleFile() []byte {
	return buildFile(1, 480, conductorTrack, pianoTrack)
}
