package mml

type EventType int

const (
	EventNote EventType = iota + 1
	EventRest
	EventParam
)

// Outcome reports what a parameter command did to the performance state.
type Outcome int

const (
	Applied Outcome = iota
	Clamped
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Clamped:
		return "clamped"
	default:
		return "ignored"
	}
}

// Event is one scanned token. Notes and rests carry a snapshot of the
// performance state taken when the token was read.
type Event struct {
	Type       EventType
	Pos        int
	PitchClass int
	Octave     int
	Freq       float64
	Seconds    float64
	Dots       int
	Ties       int
	Waveform   int
	Volume     int
	Gate       int
	Command    byte
	Value      int
	Outcome    Outcome
}

type Config struct {
	DefaultOctave   int
	DefaultLength   int
	DefaultBPM      float64
	DefaultVolume   int
	DefaultTuning   float64
	DefaultWaveform int
	DefaultGate     int
}

func DefaultConfig() Config {
	return Config{
		DefaultOctave:   4,
		DefaultLength:   4,
		DefaultBPM:      120,
		DefaultVolume:   8,
		DefaultTuning:   440,
		DefaultWaveform: 1,
		DefaultGate:     7,
	}
}
