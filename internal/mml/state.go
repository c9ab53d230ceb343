package mml

const (
	MaxVolume   = 15
	MaxWaveform = 6
	gateSteps   = 8
)

// State is the performance state shared by every token of one scan.
type State struct {
	Octave   int
	Length   int
	BPM      float64
	Volume   int
	Tuning   float64
	Waveform int
	Gate     int
}

func NewState(cfg Config) State {
	return State{
		Octave:   cfg.DefaultOctave,
		Length:   cfg.DefaultLength,
		BPM:      cfg.DefaultBPM,
		Volume:   cfg.DefaultVolume,
		Tuning:   cfg.DefaultTuning,
		Waveform: cfg.DefaultWaveform,
		Gate:     cfg.DefaultGate,
	}
}

// A negative argument to any setter means no literal followed the command.

func (s *State) SetTempo(v int) Outcome {
	if v <= 0 {
		return Ignored
	}
	s.BPM = float64(v)
	return Applied
}

func (s *State) SetOctave(v int) Outcome {
	if v < 0 {
		return Ignored
	}
	s.Octave = v
	return Applied
}

// ShiftOctave moves the octave by delta without bounds.
func (s *State) ShiftOctave(delta int) Outcome {
	s.Octave += delta
	return Applied
}

func (s *State) SetLength(v int) Outcome {
	if v <= 0 {
		return Ignored
	}
	s.Length = v
	return Applied
}

func (s *State) SetVolume(v int) Outcome {
	switch {
	case v < 0:
		return Ignored
	case v > MaxVolume:
		s.Volume = MaxVolume
		return Clamped
	}
	s.Volume = v
	return Applied
}

func (s *State) SetTuning(v int) Outcome {
	if v <= 0 {
		return Ignored
	}
	s.Tuning = float64(v)
	return Applied
}

func (s *State) SetWaveform(v int) Outcome {
	switch {
	case v < 0:
		return Ignored
	case v > MaxWaveform:
		s.Waveform = MaxWaveform
		return Clamped
	}
	s.Waveform = v
	return Applied
}

// SetGate stores any positive numerator as given; GateRatio treats values
// outside 1..8 as the full note.
func (s *State) SetGate(v int) Outcome {
	if v <= 0 {
		return Ignored
	}
	s.Gate = v
	return Applied
}

// GateRatio is the sounding fraction of each note.
func (s State) GateRatio() float64 {
	return GateRatio(s.Gate)
}

func GateRatio(gate int) float64 {
	if gate >= 1 && gate <= gateSteps {
		return float64(gate) / gateSteps
	}
	return 1
}
