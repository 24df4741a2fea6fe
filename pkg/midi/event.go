package midi

import "fmt"

// Kind is the status nibble of a channel message.
type Kind uint8

const (
	NoteOff           Kind = 0x8
	NoteOn            Kind = 0x9
	PolyAftertouch    Kind = 0xA
	Controller        Kind = 0xB
	ProgramChange     Kind = 0xC
	ChannelAftertouch Kind = 0xD
	PitchBend         Kind = 0xE
)

var kindNames = map[Kind]string{
	NoteOff:           "NoteOff",
	NoteOn:            "NoteOn",
	PolyAftertouch:    "PolyAftertouch",
	Controller:        "Controller",
	ProgramChange:     "ProgramChange",
	ChannelAftertouch: "ChannelAftertouch",
	PitchBend:         "PitchBend",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%#x)", uint8(k))
}

// DataLen returns the number of data bytes following the status byte.
func (k Kind) DataLen() int {
	if k == ProgramChange || k == ChannelAftertouch {
		return 1
	}
	return 2
}

// Meta event types.
const (
	MetaText          uint8 = 0x01
	MetaTrackName     uint8 = 0x03
	MetaMarker        uint8 = 0x06
	MetaEndOfTrack    uint8 = 0x2F
	MetaTempo         uint8 = 0x51
	MetaTimeSig       uint8 = 0x58
	metaStatus        byte  = 0xFF
	sysExStatus       byte  = 0xF0
	sysExEscapeStatus byte  = 0xF7
)

// Message is one of *ChannelMessage, *MetaMessage or *SysExMessage.
type Message interface {
	fmt.Stringer
	isMessage()
}

type ChannelMessage struct {
	Kind    Kind
	Channel uint8
	Param1  uint8
	// Param2 is ignored for ProgramChange and ChannelAftertouch.
	Param2 uint8

	// set by the decoder when the status byte was omitted in the input
	runningStatus bool
}

func (m *ChannelMessage) status() byte {
	return byte(m.Kind)<<4 | m.Channel&0x0F
}

func (m *ChannelMessage) String() string {
	if m.Kind.DataLen() == 1 {
		return fmt.Sprintf("%s ch=%d %d", m.Kind, m.Channel, m.Param1)
	}
	return fmt.Sprintf("%s ch=%d %d %d", m.Kind, m.Channel, m.Param1, m.Param2)
}

// IsController reports whether m is a controller change for controller number cc.
func (m *ChannelMessage) IsController(cc uint8) bool {
	return m.Kind == Controller && m.Param1 == cc
}

type MetaMessage struct {
	Type uint8
	Data []byte
}

func (m *MetaMessage) String() string {
	switch m.Type {
	case MetaText, MetaTrackName, MetaMarker:
		return fmt.Sprintf("Meta(0x%02x) %q", m.Type, m.Text())
	}
	return fmt.Sprintf("Meta(0x%02x) % x", m.Type, m.Data)
}

// SysExMessage holds an F0 or F7 event. Type is the status byte.
type SysExMessage struct {
	Type uint8
	Data []byte
}

func (m *SysExMessage) String() string {
	return fmt.Sprintf("SysEx(0x%02x) %d bytes", m.Type, len(m.Data))
}

func (*ChannelMessage) isMessage() {}
func (*MetaMessage) isMessage()    {}
func (*SysExMessage) isMessage()   {}

// Event is a message placed at an absolute tick.
type Event struct {
	Tick int64
	Msg  Message
}

func (e *Event) String() string {
	return fmt.Sprintf("%d: %s", e.Tick, e.Msg)
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	out := &Event{Tick: e.Tick}
	switch m := e.Msg.(type) {
	case *ChannelMessage:
		c := *m
		out.Msg = &c
	case *MetaMessage:
		out.Msg = &MetaMessage{Type: m.Type, Data: append([]byte(nil), m.Data...)}
	case *SysExMessage:
		out.Msg = &SysExMessage{Type: m.Type, Data: append([]byte(nil), m.Data...)}
	}
	return out
}

func NewChannelEvent(tick int64, kind Kind, channel, p1, p2 uint8) *Event {
	return &Event{Tick: tick, Msg: &ChannelMessage{Kind: kind, Channel: channel & 0x0F, Param1: p1, Param2: p2}}
}

func NewController(tick int64, channel, cc, value uint8) *Event {
	return NewChannelEvent(tick, Controller, channel, cc, value)
}

func NewProgramChange(tick int64, channel, program uint8) *Event {
	return NewChannelEvent(tick, ProgramChange, channel, program, 0)
}

func NewPitchBend(tick int64, channel, lsb, msb uint8) *Event {
	return NewChannelEvent(tick, PitchBend, channel, lsb, msb)
}

func NewNoteOn(tick int64, channel, note, velocity uint8) *Event {
	return NewChannelEvent(tick, NoteOn, channel, note, velocity)
}

func NewNoteOff(tick int64, channel, note, velocity uint8) *Event {
	return NewChannelEvent(tick, NoteOff, channel, note, velocity)
}

func NewMeta(tick int64, metaType uint8, data []byte) *Event {
	return &Event{Tick: tick, Msg: &MetaMessage{Type: metaType, Data: data}}
}

// NewTempo builds a tempo meta event from its three raw microseconds-per-quarter bytes.
func NewTempo(tick int64, tempo [3]byte) *Event {
	return NewMeta(tick, MetaTempo, tempo[:])
}

func NewMarker(tick int64, text string) *Event {
	return NewMeta(tick, MetaMarker, []byte(text))
}

func NewEndOfTrack(tick int64) *Event {
	return NewMeta(tick, MetaEndOfTrack, nil)
}

func NewSysEx(tick int64, sysexType uint8, data []byte) *Event {
	return &Event{Tick: tick, Msg: &SysExMessage{Type: sysexType, Data: data}}
}
