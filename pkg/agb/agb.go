// Package agb rewrites a decoded score so that its controllers mean what the
// GBA (AGB) sound engine expects.
package agb

import (
	"errors"

	"github.com/Garik-/midfix4agb/pkg/midi"
)

// Controller numbers. 20-22 are engine specific.
const (
	ccModulation   = 0x01
	ccDataEntryMSB = 0x06
	ccVolume       = 0x07
	ccPan          = 0x0A
	ccExpression   = 0x0B
	ccBendRange    = 0x14 // BENDR
	ccLfoSpeed     = 0x15 // LFOS
	ccModType      = 0x16 // MODT
	ccRPNLSB       = 0x64
	ccRPNMSB       = 0x65

	lfoSpeed = 44
	maxValue = 127
)

var (
	// ErrInvalidModType rejects a MODT value above 2.
	ErrInvalidModType = errors.New("modulation type must be 0, 1 or 2")
	// ErrInvalidModScale rejects a negative, NaN or infinite modulation scale.
	ErrInvalidModScale = errors.New("modulation scale must be a finite non-negative number")
)

// AddAgbCompatibleEvents starts every track that has a channel with MODT and
// LFOS controllers, and mirrors each pitch-bend-range RPN data entry into a
// BENDR controller placed just before it. It returns the number of BENDR
// events added.
func AddAgbCompatibleEvents(s *midi.Score, modType uint8) (int, error) {
	if modType > 2 {
		return 0, ErrInvalidModType
	}

	added := 0
	for _, t := range s.Tracks {
		ch, ok := t.Channel()
		if !ok {
			continue
		}

		t.Insert(0,
			midi.NewController(0, ch, ccModType, modType),
			midi.NewController(0, ch, ccLfoSpeed, lfoSpeed),
		)

		added += addBendRange(t, ch)
	}
	return added, nil
}

// addBendRange rebuilds the event list with a BENDR event ahead of every data
// entry made while RPN 0/0 (pitch bend range) is selected.
func addBendRange(t *midi.Track, ch uint8) int {
	var rpnMSB, rpnLSB uint8
	var out []*midi.Event
	added := 0

	for i, e := range t.Events {
		switch m := e.Msg.(type) {
		case *midi.ChannelMessage:
			if m.Kind != midi.Controller {
				break
			}
			switch m.Param1 {
			case ccRPNLSB:
				rpnLSB = m.Param2
			case ccRPNMSB:
				rpnMSB = m.Param2
			case ccDataEntryMSB:
				if rpnMSB != 0 || rpnLSB != 0 {
					break
				}
				if out == nil {
					out = append(make([]*midi.Event, 0, len(t.Events)+1), t.Events[:i]...)
				}
				out = append(out, midi.NewController(e.Tick, ch, ccBendRange, m.Param2))
				added++
			}
		case *midi.MetaMessage, *midi.SysExMessage:
		}
		if out != nil {
			out = append(out, e)
		}
	}

	if out != nil {
		t.Events = out
	}
	return added
}
