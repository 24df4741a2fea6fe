package agb

import (
	"math"

	"github.com/Garik-/midfix4agb/pkg/midi"
)

// ScaleModulation multiplies every modulation controller by scale, clamped to
// 0..127 and rounded half away from zero.
func ScaleModulation(s *midi.Score, scale float64) (int, error) {
	if err := validateModScale(scale); err != nil {
		return 0, err
	}

	changed := 0
	for _, t := range s.Tracks {
		for _, e := range t.Events {
			switch m := e.Msg.(type) {
			case *midi.ChannelMessage:
				if m.IsController(ccModulation) {
					m.Param2 = scaleValue(m.Param2, scale)
					changed++
				}
			case *midi.MetaMessage, *midi.SysExMessage:
			}
		}
	}
	return changed, nil
}

func scaleValue(v uint8, scale float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(float64(v)*scale, maxValue))))
}

func validateModScale(scale float64) error {
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return ErrInvalidModScale
	}
	return nil
}
