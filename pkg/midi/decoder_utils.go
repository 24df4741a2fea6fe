package midi

import (
	"encoding/binary"
	"fmt"
	"io"
)

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrChunkLength
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// varLen returns the variable length value at the exact parser location.
func (d *Decoder) varLen() (uint32, error) {
	val, n, err := DecodeVarint(d.buf[d.pos:])
	d.pos += n
	if err == ErrTruncated {
		// the chunk ended inside the quantity
		return 0, fmt.Errorf("%w: %w", ErrTruncated, ErrChunkLength)
	}
	return val, err
}

// varLenData reads a length-prefixed payload and returns a copy of it.
func (d *Decoder) varLenData() ([]byte, error) {
	l, err := d.varLen()
	if err != nil {
		return nil, err
	}
	if left := len(d.buf) - d.pos; int64(l) > int64(left) {
		return nil, fmt.Errorf("%w - payload of %d bytes, %d left: %w", ErrTruncated, l, left, ErrChunkLength)
	}
	data := make([]byte, l)
	copy(data, d.buf[d.pos:])
	d.pos += int(l)
	return data, nil
}

// IDnSize reads a chunk header.
func (d *Decoder) IDnSize() ([4]byte, uint32, error) {
	var chunk struct {
		ID   [4]byte
		Size uint32
	}
	d.pos, d.buf = 0, nil
	if err := binary.Read(d.r, binary.BigEndian, &chunk); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return chunk.ID, 0, d.errorf(fmt.Errorf("%w - reading chunk header: %v", ErrTruncated, err))
	}
	d.offset += 8

	return chunk.ID, chunk.Size, nil
}
