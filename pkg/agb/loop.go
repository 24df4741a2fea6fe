package agb

import (
	"errors"
	"slices"
	"sort"

	"github.com/Garik-/midfix4agb/pkg/midi"
)

const (
	loopStartMarker = "["
	loopEndMarker   = "]"
)

// ErrLoopNotFound means track 0 lacks a loop start or loop end marker. It is
// informational: the carryback fix has nothing to do.
var ErrLoopNotFound = errors.New("loop markers not found")

// Loop is the region between the "[" and "]" markers.
type Loop struct {
	Start int64
	End   int64
}

// FindLoop reads the loop markers from track 0. The last marker of each kind wins.
func FindLoop(s *midi.Score) (Loop, error) {
	var loop Loop
	if len(s.Tracks) == 0 {
		return loop, ErrLoopNotFound
	}

	hasStart, hasEnd := false, false
	for _, e := range s.Tracks[0].Events {
		switch m := e.Msg.(type) {
		case *midi.MetaMessage:
			if m.Type != midi.MetaMarker || len(m.Data) != 1 {
				continue
			}
			switch string(m.Data) {
			case loopStartMarker:
				loop.Start, hasStart = e.Tick, true
			case loopEndMarker:
				loop.End, hasEnd = e.Tick, true
			}
		case *midi.ChannelMessage, *midi.SysExMessage:
		}
	}

	if !hasStart || !hasEnd {
		return loop, ErrLoopNotFound
	}
	return loop, nil
}

// Carryback lists the events that re-assert a track's loop-start state.
// InsertAt is the index of the first event at or after the loop start.
type Carryback struct {
	Track    int
	InsertAt int
	Events   []*midi.Event
}

// FixLoopCarryback inserts, at the loop start of every track, the events that
// undo the state the track carries back from the loop end. It returns what it
// inserted, or ErrLoopNotFound with the score untouched.
func FixLoopCarryback(s *midi.Score) ([]Carryback, error) {
	if _, err := FindLoop(s); err != nil {
		return nil, err
	}
	for _, t := range s.Tracks {
		if !t.IsSorted() {
			t.Sort()
		}
	}

	fixes, err := InspectCarryback(s)
	if err != nil {
		return nil, err
	}

	for _, fix := range fixes {
		s.Tracks[fix.Track].Insert(fix.InsertAt, fix.Events...)
	}
	return fixes, nil
}

// InspectCarryback computes what FixLoopCarryback would insert without
// modifying the score. Events in each Carryback are in the order they end up
// in the track.
func InspectCarryback(s *midi.Score) ([]Carryback, error) {
	loop, err := FindLoop(s)
	if err != nil {
		return nil, err
	}

	var out []Carryback
	for i, t := range s.Tracks {
		if !t.IsSorted() {
			sorted := &midi.Track{Events: append([]*midi.Event(nil), t.Events...)}
			sorted.Sort()
			t = sorted
		}
		if fix, ok := carryback(t, i, loop); ok {
			out = append(out, fix)
		}
	}
	return out, nil
}

func carryback(t *midi.Track, index int, loop Loop) (Carryback, bool) {
	ch, hasChannel := t.Channel()
	if len(t.Events) == 0 || (!hasChannel && index != 0) {
		return Carryback{}, false
	}

	start := newControllerState()
	var atLoopStart [numFields]bool

	resume := len(t.Events)
	for i, e := range t.Events {
		if e.Tick > loop.Start {
			resume = i
			break
		}
		if f, ok := start.apply(e); ok {
			// written at the loop point itself: replayed on every pass
			atLoopStart[f] = e.Tick == loop.Start
		}
	}

	end := start
	for _, e := range t.Events[resume:] {
		if e.Tick >= loop.End {
			break
		}
		end.apply(e)
	}

	events := end.restore(start, loop.Start, ch, hasChannel, atLoopStart)
	if len(events) == 0 {
		return Carryback{}, false
	}

	// correctives go ahead of everything already sitting on the loop point
	insertAt := sort.Search(resume, func(i int) bool {
		return t.Events[i].Tick >= loop.Start
	})

	// every event goes in at the same index, one after another, so the last
	// one built ends up first
	slices.Reverse(events)
	return Carryback{Track: index, InsertAt: insertAt, Events: events}, true
}
