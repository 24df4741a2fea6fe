package midi

const defaultBeatsPerBar = 4

type tickRange struct {
	cnt int

	lowerBound int64
	upperBound int64
}

func newTickRange(lowerBound int64, upperBound int64) *tickRange {
	return &tickRange{
		lowerBound: lowerBound,
		upperBound: upperBound,
	}
}

func (r *tickRange) stepBy(n int) {
	r.cnt += n
	step := r.upperBound - r.lowerBound

	r.upperBound += step * int64(n)
	r.lowerBound += step * int64(n)
}

func (r *tickRange) contains(item int64) bool {
	return item >= r.lowerBound && item < r.upperBound
}

// meter returns the bar length in beats and the beat length in ticks, taken
// from a time signature at tick 0 on track 0. Without one the score is 4/4.
func (s *Score) meter() (beatsPerBar int, ticksPerBeat int64) {
	beatsPerBar, ticksPerBeat = defaultBeatsPerBar, int64(s.TicksPerQuarterNote())
	if len(s.Tracks) == 0 {
		return
	}

	for _, e := range s.Tracks[0].Events {
		if e.Tick > 0 {
			break
		}
		m, ok := e.Msg.(*MetaMessage)
		if !ok || m.Type != MetaTimeSig || len(m.Data) < 2 {
			continue
		}
		// denominator is a power of two: 2 means quarter notes
		if m.Data[0] == 0 || m.Data[1] > 6 {
			return
		}
		return int(m.Data[0]), ticksPerBeat * 4 >> m.Data[1]
	}
	return
}

// BarBeat returns the zero-based bar and beat a tick falls into, using the
// time signature at the start of track 0. Later meter changes are ignored.
// Time code divisions and negative ticks yield 0, 0.
func (s *Score) BarBeat(tick int64) (bar, beat int) {
	perBar, perBeat := s.meter()
	if perBeat == 0 || tick < 0 {
		return 0, 0
	}

	r := newTickRange(0, perBeat)
	for !r.contains(tick) {
		if tick >= r.upperBound+perBeat {
			r.stepBy(int((tick - r.lowerBound) / perBeat))
		} else {
			r.stepBy(1)
		}
	}

	return r.cnt / perBar, r.cnt % perBar
}
