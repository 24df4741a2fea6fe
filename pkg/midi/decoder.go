package midi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const headerSize = 6

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64}
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B}
)

type header struct {
	ChunkType  [4]byte
	ChunkSize  uint32
	Format     uint16
	TrackCount uint16
	Division   uint16
}

// Decoder reads a Standard MIDI File into a Score.
type Decoder struct {
	r      io.Reader
	offset int64
	track  int

	// state of the track chunk being parsed
	buf           []byte
	pos           int
	tick          int64
	runningStatus byte
	currentTrack  *Track

	Format       uint16
	TimeDivision uint16
	Tracks       []*Track
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, track: -1}
}

// Decode parses a complete file held in memory.
func Decode(b []byte) (*Score, error) {
	return NewDecoder(bytes.NewReader(b)).Decode()
}

// Decode reads the header chunk and every track chunk it announces. Any error
// is a *ParseError and no score is returned with it.
func (d *Decoder) Decode() (*Score, error) {
	var h header
	if err := binary.Read(d.r, binary.BigEndian, &h); err != nil {
		return nil, d.errorf(fmt.Errorf("%w - reading header: %v", ErrTruncated, err))
	}

	if h.ChunkType != headerChunkID {
		return nil, d.errorf(fmt.Errorf("%w - %v", ErrFmtNotSupported, h.ChunkType))
	}

	if h.ChunkSize != headerSize {
		return nil, d.errorf(fmt.Errorf("%w - expected header size to be %d, was %d", ErrFmtNotSupported, headerSize, h.ChunkSize))
	}

	d.offset += 8 + headerSize
	d.Format = h.Format
	d.TimeDivision = h.Division
	d.Tracks = make([]*Track, 0, h.TrackCount)

	for d.track = 0; d.track < int(h.TrackCount); d.track++ {
		if err := d.parseTrack(); err != nil {
			return nil, err
		}
	}

	return &Score{
		Format:       d.Format,
		TimeDivision: d.TimeDivision,
		Tracks:       d.Tracks,
	}, nil
}

func (d *Decoder) parseTrack() error {
	id, size, err := d.IDnSize()
	if err != nil {
		return err
	}
	if id != trackChunkID {
		return d.errorf(fmt.Errorf("%w - expected track chunk ID %v, got %v", ErrUnexpectedData, trackChunkID, id))
	}

	// a limited reader keeps a bogus chunk size from allocating more than the input holds
	d.buf, err = io.ReadAll(io.LimitReader(d.r, int64(size)))
	if err != nil {
		return d.errorf(fmt.Errorf("%w - reading track chunk: %v", ErrTruncated, err))
	}
	if n := len(d.buf); int64(n) < int64(size) {
		d.pos = n
		return d.errorf(fmt.Errorf("%w - track chunk declares %d bytes, %d available", ErrTruncated, size, n))
	}

	d.pos = 0
	d.tick = 0
	d.runningStatus = 0
	d.currentTrack = &Track{Events: make([]*Event, 0, len(d.buf)/3)}
	d.Tracks = append(d.Tracks, d.currentTrack)

	for d.pos < len(d.buf) {
		if err := d.parseEvent(); err != nil {
			return d.errorf(err)
		}
	}

	d.offset += int64(size)
	return nil
}

func (d *Decoder) parseEvent() error {
	timeDelta, err := d.varLen()
	if err != nil {
		return err
	}

	// status byte give us the msg type and channel.
	statusByte, err := d.readByte()
	if err != nil {
		return err
	}

	running := false
	if statusByte&0x80 == 0 {
		if d.runningStatus == 0 {
			return fmt.Errorf("%w - data byte 0x%02x without running status", ErrUnexpectedData, statusByte)
		}
		statusByte = d.runningStatus
		running = true
		d.pos--
	}

	d.tick += int64(timeDelta)

	var ev *Event
	switch {
	case isVoiceMsgType(statusByte >> 4):
		d.runningStatus = statusByte
		m := &ChannelMessage{
			Kind:          Kind(statusByte >> 4),
			Channel:       statusByte & 0x0F,
			runningStatus: running,
		}
		if m.Param1, err = d.readByte(); err != nil {
			return err
		}
		if m.Kind.DataLen() == 2 {
			if m.Param2, err = d.readByte(); err != nil {
				return err
			}
		}
		ev = &Event{Tick: d.tick, Msg: m}

	case statusByte == metaStatus:
		d.runningStatus = 0
		metaType, err := d.readByte()
		if err != nil {
			return err
		}
		data, err := d.varLenData()
		if err != nil {
			return err
		}
		ev = NewMeta(d.tick, metaType, data)

	case statusByte == sysExStatus || statusByte == sysExEscapeStatus:
		d.runningStatus = 0
		data, err := d.varLenData()
		if err != nil {
			return err
		}
		ev = NewSysEx(d.tick, statusByte, data)

	default:
		return fmt.Errorf("%w - status byte 0x%02x", ErrUnexpectedData, statusByte)
	}

	d.currentTrack.Events = append(d.currentTrack.Events, ev)
	return nil
}

func (d *Decoder) errorf(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Offset: d.offset + int64(d.pos), Track: d.track, Err: err}
}
