package midi

import (
	"slices"
	"sort"
)

type timeFormat int

const (
	MetricalTF timeFormat = iota + 1
	TimeCodeTF
)

// Track is an event list ordered by ascending tick. Events sharing a tick keep
// the order in which they were decoded or inserted.
type Track struct {
	Events []*Event
}

// Score is a decoded Standard MIDI File. Track 0 carries tempo and loop markers.
type Score struct {
	Format       uint16
	TimeDivision uint16
	Tracks       []*Track
}

func (s *Score) TimeFormat() timeFormat {
	if s.TimeDivision&0x8000 == 0 {
		return MetricalTF
	}
	return TimeCodeTF
}

// TicksPerQuarterNote returns 0 when the division is an SMPTE time code.
func (s *Score) TicksPerQuarterNote() uint16 {
	if s.TimeFormat() != MetricalTF {
		return 0
	}
	return s.TimeDivision & 0x7FFF
}

// Clone returns a deep copy of s.
func (s *Score) Clone() *Score {
	out := &Score{Format: s.Format, TimeDivision: s.TimeDivision, Tracks: make([]*Track, len(s.Tracks))}
	for i, t := range s.Tracks {
		out.Tracks[i] = t.Clone()
	}
	return out
}

func (t *Track) Clone() *Track {
	out := &Track{Events: make([]*Event, len(t.Events))}
	for i, e := range t.Events {
		out.Events[i] = e.Clone()
	}
	return out
}

// Channel returns the channel of the first channel message in the track.
func (t *Track) Channel() (uint8, bool) {
	for _, e := range t.Events {
		if m, ok := e.Msg.(*ChannelMessage); ok {
			return m.Channel, true
		}
	}
	return 0, false
}

// Insert places events at index i, shifting later events back. An index past
// the end appends.
func (t *Track) Insert(i int, events ...*Event) {
	if i >= len(t.Events) {
		t.Events = append(t.Events, events...)
		return
	}
	if i < 0 {
		i = 0
	}
	t.Events = slices.Insert(t.Events, i, events...)
}

// Sort orders events by tick, keeping the relative order of simultaneous events.
func (t *Track) Sort() {
	sort.SliceStable(t.Events, func(i, j int) bool {
		return t.Events[i].Tick < t.Events[j].Tick
	})
}

// IsSorted reports whether no event precedes an earlier-tick event.
func (t *Track) IsSorted() bool {
	for i := 1; i < len(t.Events); i++ {
		if t.Events[i].Tick < t.Events[i-1].Tick {
			return false
		}
	}
	return true
}

// sorted returns the track's events in tick order without touching t.
func (t *Track) sorted() []*Event {
	if t.IsSorted() {
		return t.Events
	}
	events := append([]*Event(nil), t.Events...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})
	return events
}
