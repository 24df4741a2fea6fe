package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrFmtNotSupported is a generic error reporting an unknown format.
	ErrFmtNotSupported = errors.New("format not supported")
	// ErrUnexpectedData is a generic error reporting that the parser encountered unexpected data.
	ErrUnexpectedData = errors.New("unexpected data content")
	// ErrChunkLength reports an event running past the end of its track chunk.
	ErrChunkLength = errors.New("track chunk length mismatch")
	// ErrTruncated reports a variable-length quantity or payload cut short by the end of input.
	ErrTruncated = errors.New("truncated data")
	// ErrVarintOverflow reports a variable-length quantity that does not fit in 32 bits.
	ErrVarintOverflow = errors.New("variable-length quantity overflows 32 bits")

	ErrNegativeTick   = errors.New("negative absolute tick")
	ErrTooManyTracks  = errors.New("too many tracks")
	ErrUnknownMessage = errors.New("unknown message variant")
)

// ParseError is returned by the decoder. No partial score accompanies it.
type ParseError struct {
	// Offset is the byte position in the input where decoding stopped.
	Offset int64
	// Track is the index of the track chunk being decoded, or -1 for the header.
	Track int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Track < 0 {
		return fmt.Sprintf("midi: header at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("midi: track %d at offset %d: %v", e.Track, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
