package agb

import (
	"math"

	"github.com/Garik-/midfix4agb/pkg/midi"
)

// CombineVolumeAndExpression folds expression into volume: every volume or
// expression controller becomes a volume controller carrying
// volume*expression/127. Both levels start at 127 on every track.
func CombineVolumeAndExpression(s *midi.Score) int {
	changed := 0
	for _, t := range s.Tracks {
		volume, expression := maxValue, maxValue

		for _, e := range t.Events {
			switch m := e.Msg.(type) {
			case *midi.ChannelMessage:
				if m.Kind != midi.Controller {
					continue
				}
				switch m.Param1 {
				case ccVolume:
					volume = int(m.Param2)
				case ccExpression:
					expression = int(m.Param2)
				default:
					continue
				}
				m.Param1 = ccVolume
				m.Param2 = clamp(volume * expression / maxValue)
				changed++
			case *midi.MetaMessage, *midi.SysExMessage:
			}
		}
	}
	return changed
}

// ApplyExponentialCurve maps every volume controller and note-on velocity
// through ExpCurve.
func ApplyExponentialCurve(s *midi.Score) int {
	changed := 0
	for _, t := range s.Tracks {
		for _, e := range t.Events {
			switch m := e.Msg.(type) {
			case *midi.ChannelMessage:
				if m.IsController(ccVolume) || m.Kind == midi.NoteOn {
					m.Param2 = ExpCurve(m.Param2)
					changed++
				}
			case *midi.MetaMessage, *midi.SysExMessage:
			}
		}
	}
	return changed
}

// ExpCurve returns round(127 * (v/127)^(10/6)); 0 stays 0.
func ExpCurve(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	if v > maxValue {
		v = maxValue
	}
	return uint8(math.Round(maxValue * math.Pow(float64(v)/maxValue, 10.0/6.0)))
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > maxValue {
		return maxValue
	}
	return uint8(v)
}
