package midi

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_Channel(t *testing.T) {
	track := &Track{Events: []*Event{
		NewMarker(0, "["),
		NewController(0, 9, 7, 100),
		NewController(0, 3, 7, 100),
	}}
	ch, ok := track.Channel()
	assert.True(t, ok)
	assert.Equal(t, uint8(9), ch)

	_, ok = (&Track{}).Channel()
	assert.False(t, ok)
}

func TestTrack_Insert(t *testing.T) {
	a, b, c := NewMarker(0, "a"), NewMarker(1, "b"), NewMarker(2, "c")
	track := &Track{Events: []*Event{a, c}}

	track.Insert(1, b)
	assert.Equal(t, []*Event{a, b, c}, track.Events)

	d := NewMarker(3, "d")
	track.Insert(10, d)
	assert.Equal(t, []*Event{a, b, c, d}, track.Events)

	z := NewMarker(0, "z")
	track.Insert(0, z)
	assert.Equal(t, []*Event{z, a, b, c, d}, track.Events)
}

func TestScore_Clone(t *testing.T) {
	score, err := Decode(sampleFile())
	require.NoError(t, err)

	clone := score.Clone()
	clone.Tracks[1].Events[0].Msg.(*ChannelMessage).Param1 = 99
	clone.Tracks[0].Events[0].Msg.(*MetaMessage).Data[0] = 0

	assert.Equal(t, uint8(5), score.Tracks[1].Events[0].Msg.(*ChannelMessage).Param1)
	assert.Equal(t, uint8(0x07), score.Tracks[0].Events[0].Msg.(*MetaMessage).Data[0])
}

func TestTrackSortStableProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("equal ticks keep their relative order", prop.ForAll(
		func(ticks []int64) bool {
			track := &Track{}
			for i, tick := range ticks {
				track.Events = append(track.Events, NewController(tick, 0, 7, uint8(i%128)))
			}
			order := make(map[*Event]int, len(track.Events))
			for i, e := range track.Events {
				order[e] = i
			}

			track.Sort()
			if !track.IsSorted() {
				return false
			}
			for i := 1; i < len(track.Events); i++ {
				prev, cur := track.Events[i-1], track.Events[i]
				if prev.Tick == cur.Tick && order[prev] > order[cur] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 8)),
	))

	properties.TestingRun(t)
}

func TestBarBeat(t *testing.T) {
	score := &Score{TimeDivision: 480}

	tests := []struct {
		tick      int64
		bar, beat int
	}{
		{0, 0, 0},
		{90, 0, 0},
		{480, 0, 1},
		{960, 0, 2},
		{1919, 0, 3},
		{1920, 1, 0},
		{1920*3 + 500, 3, 1},
	}
	for _, tt := range tests {
		bar, beat := score.BarBeat(tt.tick)
		assert.Equal(t, tt.bar, bar, "tick %d", tt.tick)
		assert.Equal(t, tt.beat, beat, "tick %d", tt.tick)
	}

	bar, beat := (&Score{TimeDivision: 0xE728}).BarBeat(1000)
	assert.Zero(t, bar)
	assert.Zero(t, beat)
}

func TestBarBeat_TimeSignature(t *testing.T) {
	withMeter := func(tick int64, num, denom uint8) *Score {
		return &Score{TimeDivision: 480, Tracks: []*Track{{Events: []*Event{
			NewMeta(tick, MetaTimeSig, []byte{num, denom, 24, 8}),
			NewEndOfTrack(tick),
		}}}}
	}

	tests := []struct {
		name      string
		score     *Score
		tick      int64
		bar, beat int
	}{
		{"3/4", withMeter(0, 3, 2), 1440, 1, 0},
		{"3/4 last beat", withMeter(0, 3, 2), 1439, 0, 2},
		{"6/8", withMeter(0, 6, 3), 240 * 7, 1, 1},
		{"2/2", withMeter(0, 2, 1), 1920 + 960, 1, 1},
		{"meter change later is ignored", withMeter(10, 3, 2), 1440, 0, 3},
		{"zero numerator", withMeter(0, 0, 2), 1920, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar, beat := tt.score.BarBeat(tt.tick)
			assert.Equal(t, tt.bar, bar)
			assert.Equal(t, tt.beat, beat)
		})
	}
}

func TestMetaMessage_Text(t *testing.T) {
	ascii := &MetaMessage{Type: MetaMarker, Data: []byte("[")}
	assert.Equal(t, "[", ascii.Text())

	sjis := &MetaMessage{Type: MetaMarker, Data: []byte{0x83, 0x8B, 0x81, 0x5B, 0x83, 0x76}}
	assert.Equal(t, "ループ", sjis.Text())
	assert.Equal(t, `Meta(0x06) "ループ"`, sjis.String())
}
