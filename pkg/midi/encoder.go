package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Encoder writes a Score as a Standard MIDI File.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode returns the complete file image of s.
func Encode(s *Score) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the header chunk and one track chunk per track. Each track is
// written in stable tick order whether or not the caller sorted it; the score
// itself is not modified.
func (e *Encoder) Encode(s *Score) error {
	if len(s.Tracks) > 0xFFFF {
		return fmt.Errorf("%w - have %d, limited to %d", ErrTooManyTracks, len(s.Tracks), 0xFFFF)
	}

	h := header{
		ChunkType:  headerChunkID,
		ChunkSize:  headerSize,
		Format:     s.Format,
		TrackCount: uint16(len(s.Tracks)),
		Division:   s.TimeDivision,
	}
	if err := binary.Write(e.w, binary.BigEndian, &h); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range s.Tracks {
		body, err := encodeTrack(t)
		if err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		if err := e.writeChunk(trackChunkID, body); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	return nil
}

func (e *Encoder) writeChunk(id [4]byte, body []byte) error {
	if err := binary.Write(e.w, binary.BigEndian, id); err != nil {
		return err
	}
	if err := binary.Write(e.w, binary.BigEndian, uint32(len(body))); err != nil {
		return err
	}
	_, err := e.w.Write(body)
	return err
}

// encodeTrack renders the chunk body. Running status is reused only for
// messages decoded with it, and only when the previous written event has the
// same status byte.
func encodeTrack(t *Track) ([]byte, error) {
	var (
		body          []byte
		lastTick      int64
		runningStatus byte
	)

	for i, ev := range t.sorted() {
		if ev.Tick < 0 {
			return nil, fmt.Errorf("%w - event %d at tick %d", ErrNegativeTick, i, ev.Tick)
		}
		delta := ev.Tick - lastTick
		if delta > 0xFFFFFFFF {
			return nil, fmt.Errorf("%w - event %d delta %d", ErrVarintOverflow, i, delta)
		}
		body = AppendVarint(body, uint32(delta))
		lastTick = ev.Tick

		switch m := ev.Msg.(type) {
		case *ChannelMessage:
			if !isVoiceMsgType(byte(m.Kind)) {
				return nil, fmt.Errorf("%w - event %d: channel message kind %v", ErrUnknownMessage, i, m.Kind)
			}
			status := m.status()
			if !m.runningStatus || status != runningStatus {
				body = append(body, status)
			}
			runningStatus = status
			body = append(body, m.Param1)
			if m.Kind.DataLen() == 2 {
				body = append(body, m.Param2)
			}
		case *MetaMessage:
			runningStatus = 0
			body = append(body, metaStatus, m.Type)
			body = appendVarLenData(body, m.Data)
		case *SysExMessage:
			runningStatus = 0
			body = append(body, m.Type)
			body = appendVarLenData(body, m.Data)
		default:
			return nil, fmt.Errorf("%w - event %d: %T", ErrUnknownMessage, i, ev.Msg)
		}
	}
	return body, nil
}

func appendVarLenData(buf []byte, data []byte) []byte {
	buf = AppendVarint(buf, uint32(len(data)))
	return append(buf, data...)
}
