package agb

import "github.com/Garik-/midfix4agb/pkg/midi"

// undefined marks a controller that has not been seen yet. No 7-bit value
// can collide with it.
const undefined = 0xFF

type field int

const (
	fieldTempo field = iota
	fieldVoice
	fieldVolume
	fieldPan
	fieldBendRange
	fieldModulation
	fieldPitchBend
	numFields
)

var fieldNames = [numFields]string{"tempo", "voice", "volume", "pan", "bendRange", "modulation", "pitchBend"}

func (f field) String() string {
	return fieldNames[f]
}

// controllerState is what the engine remembers about a track at one instant.
// It is a plain value: assigning it takes a snapshot.
type controllerState struct {
	Tempo      [3]byte
	Voice      uint8
	Volume     uint8
	Pan        uint8
	BendRange  uint8
	Modulation uint8
	BendLSB    uint8
	BendMSB    uint8
}

// A zero tempo reads as undefined.
func newControllerState() controllerState {
	return controllerState{
		Voice:      undefined,
		Volume:     undefined,
		Pan:        undefined,
		BendRange:  undefined,
		Modulation: undefined,
		BendLSB:    undefined,
		BendMSB:    undefined,
	}
}

// apply records e and reports the field it wrote, if any.
func (s *controllerState) apply(e *midi.Event) (field, bool) {
	switch m := e.Msg.(type) {
	case *midi.MetaMessage:
		if m.Type == midi.MetaTempo && len(m.Data) >= 3 {
			copy(s.Tempo[:], m.Data)
			return fieldTempo, true
		}
	case *midi.ChannelMessage:
		switch m.Kind {
		case midi.ProgramChange:
			s.Voice = m.Param1
			return fieldVoice, true
		case midi.PitchBend:
			s.BendLSB, s.BendMSB = m.Param1, m.Param2
			return fieldPitchBend, true
		case midi.Controller:
			switch m.Param1 {
			case ccModulation:
				s.Modulation = m.Param2
				return fieldModulation, true
			case ccVolume:
				s.Volume = m.Param2
				return fieldVolume, true
			case ccPan:
				s.Pan = m.Param2
				return fieldPan, true
			case ccBendRange:
				s.BendRange = m.Param2
				return fieldBendRange, true
			}
		}
	case *midi.SysExMessage:
	}
	return 0, false
}

// restore returns the events that bring the engine from s back to want, in
// field order. Fields undefined in want are skipped, as are fields listed in
// skip.
func (s controllerState) restore(want controllerState, tick int64, ch uint8, hasChannel bool, skip [numFields]bool) []*midi.Event {
	var events []*midi.Event

	if want.Tempo != s.Tempo && want.Tempo != ([3]byte{}) && !skip[fieldTempo] {
		events = append(events, midi.NewTempo(tick, want.Tempo))
	}
	if !hasChannel {
		return events
	}

	controller := func(f field, cc, have, want uint8) {
		if have != want && want != undefined && !skip[f] {
			events = append(events, midi.NewController(tick, ch, cc, want))
		}
	}

	if s.Voice != want.Voice && want.Voice != undefined && !skip[fieldVoice] {
		events = append(events, midi.NewProgramChange(tick, ch, want.Voice))
	}
	controller(fieldVolume, ccVolume, s.Volume, want.Volume)
	controller(fieldPan, ccPan, s.Pan, want.Pan)
	controller(fieldBendRange, ccBendRange, s.BendRange, want.BendRange)
	controller(fieldModulation, ccModulation, s.Modulation, want.Modulation)

	if (s.BendLSB != want.BendLSB || s.BendMSB != want.BendMSB) && want.BendLSB != undefined && !skip[fieldPitchBend] {
		events = append(events, midi.NewPitchBend(tick, ch, want.BendLSB, want.BendMSB))
	}
	return events
}
