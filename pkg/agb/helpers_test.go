package agb

import (
	"testing"

	"github.com/Garik-/midfix4agb/pkg/midi"
	"github.com/stretchr/testify/require"
)

func newScore(tracks ...[]*midi.Event) *midi.Score {
	s := &midi.Score{Format: 1, TimeDivision: 96}
	for _, events := range tracks {
		s.Tracks = append(s.Tracks, &midi.Track{Events: events})
	}
	return s
}

func eventStrings(t *midi.Track) []string {
	out := make([]string, len(t.Events))
	for i, e := range t.Events {
		out[i] = e.String()
	}
	return out
}

func encode(t *testing.T, s *midi.Score) []byte {
	t.Helper()
	b, err := midi.Encode(s)
	require.NoError(t, err)
	return b
}

func controllerValue(e *midi.Event) uint8 {
	return e.Msg.(*midi.ChannelMessage).Param2
}
