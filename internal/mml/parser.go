package mml

import "github.com/cbegin/mmlwav-go/internal/pitch"

// Scanner walks a score left to right, one token per Next call. Unknown
// bytes are skipped; it never fails.
type Scanner struct {
	src string
	pos int
	st  State
}

func NewScanner(src string, cfg Config) *Scanner {
	return &Scanner{src: src, st: NewState(cfg)}
}

// State returns the performance state as of the last token read.
func (sc *Scanner) State() State { return sc.st }

// Pos is the byte offset of the next unread token.
func (sc *Scanner) Pos() int { return sc.pos }

// Parse scans the whole text and returns every event in order.
func Parse(src string, cfg Config) []Event {
	sc := NewScanner(src, cfg)
	events := make([]Event, 0, 64)
	for {
		evt, ok := sc.Next()
		if !ok {
			return events
		}
		events = append(events, evt)
	}
}

// Next returns the next note, rest or parameter event. It returns false once
// the text is exhausted.
func (sc *Scanner) Next() (Event, bool) {
	s := sc.src
	for sc.pos < len(s) {
		at := sc.pos
		ch := upper(s[at])
		if isBlank(ch) || ch == '&' {
			sc.pos++
			continue
		}
		switch ch {
		case 'T', 'O', 'L', 'V', 'P', 'Q', '@':
			val, next := readNumber(s, at+1)
			sc.pos = next
			return Event{Type: EventParam, Pos: at, Command: ch, Value: val, Outcome: sc.apply(ch, val)}, true
		case '>':
			sc.pos++
			return Event{Type: EventParam, Pos: at, Command: ch, Value: 1, Outcome: sc.st.ShiftOctave(1)}, true
		case '<':
			sc.pos++
			return Event{Type: EventParam, Pos: at, Command: ch, Value: 1, Outcome: sc.st.ShiftOctave(-1)}, true
		case 'R':
			dur, dots, next := parseLengthToken(s, at+1, sc.st)
			sc.pos = next
			if dur <= 0 {
				continue
			}
			return sc.noteEvent(EventRest, at, 0, 0, dur, dots, 0), true
		}
		pc, ok := pitch.PitchClass(ch)
		if !ok {
			sc.pos++
			continue
		}
		i := at + 1
		if i < len(s) {
			switch s[i] {
			case '#', '+':
				pc++
				i++
			case '-':
				pc--
				i++
			}
		}
		pc = pitch.Wrap(pc)
		dur, dots, ties, next := parseLengthWithTie(s, i, sc.st)
		sc.pos = next
		if dur <= 0 {
			continue
		}
		freq := pitch.Frequency(sc.st.Octave, pc, sc.st.Tuning)
		return sc.noteEvent(EventNote, at, pc, freq, dur, dots, ties), true
	}
	return Event{}, false
}

func (sc *Scanner) apply(cmd byte, val int) Outcome {
	switch cmd {
	case 'T':
		return sc.st.SetTempo(val)
	case 'O':
		return sc.st.SetOctave(val)
	case 'L':
		return sc.st.SetLength(val)
	case 'V':
		return sc.st.SetVolume(val)
	case 'P':
		return sc.st.SetTuning(val)
	case 'Q':
		return sc.st.SetGate(val)
	case '@':
		return sc.st.SetWaveform(val)
	}
	return Ignored
}

func (sc *Scanner) noteEvent(typ EventType, at int, pc int, freq float64, dur float64, dots int, ties int) Event {
	return Event{
		Type:       typ,
		Pos:        at,
		PitchClass: pc,
		Octave:     sc.st.Octave,
		Freq:       freq,
		Seconds:    dur,
		Dots:       dots,
		Ties:       ties,
		Waveform:   sc.st.Waveform,
		Volume:     sc.st.Volume,
		Gate:       sc.st.Gate,
	}
}
