package mml

import (
	"math"
	"testing"
)

func notesOf(events []Event) []Event {
	out := []Event{}
	for _, e := range events {
		if e.Type == EventNote || e.Type == EventRest {
			out = append(out, e)
		}
	}
	return out
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseBasicMelody(t *testing.T) {
	notes := notesOf(Parse("T120 O4 L4 C D E", DefaultConfig()))
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	wantPC := []int{0, 2, 4}
	for i, n := range notes {
		if n.Type != EventNote {
			t.Fatalf("note %d: expected EventNote, got %v", i, n.Type)
		}
		if n.PitchClass != wantPC[i] {
			t.Fatalf("note %d: pitch class = %d, want %d", i, n.PitchClass, wantPC[i])
		}
		if !almostEqual(n.Seconds, 0.5) {
			t.Fatalf("note %d: seconds = %v, want 0.5", i, n.Seconds)
		}
	}
	if math.Abs(notes[0].Freq-261.6255653) > 1e-4 {
		t.Fatalf("C4 = %v, want ~261.63", notes[0].Freq)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	upper := notesOf(Parse("t90 o5 l8 c d+ e-", DefaultConfig()))
	lower := notesOf(Parse("T90 O5 L8 C D+ E-", DefaultConfig()))
	if len(upper) != len(lower) || len(upper) != 3 {
		t.Fatalf("expected 3 notes each, got %d and %d", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i].Freq != lower[i].Freq || upper[i].Seconds != lower[i].Seconds {
			t.Fatalf("note %d differs: %+v vs %+v", i, upper[i], lower[i])
		}
	}
}

func TestParseAccidentalsKeepOctave(t *testing.T) {
	notes := notesOf(Parse("O4 C# D+ E- C- B+", DefaultConfig()))
	want := []int{1, 3, 3, 11, 0}
	if len(notes) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(notes))
	}
	for i, n := range notes {
		if n.PitchClass != want[i] {
			t.Fatalf("note %d: pitch class = %d, want %d", i, n.PitchClass, want[i])
		}
		if n.Octave != 4 {
			t.Fatalf("note %d: octave = %d, want 4", i, n.Octave)
		}
	}
	// C- wraps to B in the same octave, B+ to C in the same octave.
	if !almostEqual(notes[3].Freq, 440*math.Pow(2, 2.0/12)) {
		t.Fatalf("C- in O4 = %v, want B4", notes[3].Freq)
	}
}

func TestParseDefaultTuningA4(t *testing.T) {
	notes := notesOf(Parse("A", DefaultConfig()))
	if len(notes) != 1 || notes[0].Freq != 440 {
		t.Fatalf("expected A4 = 440, got %+v", notes)
	}
	notes = notesOf(Parse("P432 A", DefaultConfig()))
	if len(notes) != 1 || notes[0].Freq != 432 {
		t.Fatalf("expected A4 = 432 after P432, got %+v", notes)
	}
}

func TestParseOctaveShift(t *testing.T) {
	notes := notesOf(Parse("O4 A > A < < A", DefaultConfig()))
	want := []float64{440, 880, 220}
	for i, n := range notes {
		if !almostEqual(n.Freq, want[i]) {
			t.Fatalf("note %d: freq = %v, want %v", i, n.Freq, want[i])
		}
	}
}

func TestParseOctaveShiftUnbounded(t *testing.T) {
	sc := NewScanner("O0 < < A", DefaultConfig())
	var last Event
	for {
		e, ok := sc.Next()
		if !ok {
			break
		}
		last = e
	}
	if sc.State().Octave != -2 {
		t.Fatalf("octave = %d, want -2", sc.State().Octave)
	}
	if !almostEqual(last.Freq, 440.0/64) {
		t.Fatalf("A at octave -2 = %v, want %v", last.Freq, 440.0/64)
	}
}

func TestParseLaterCommandsDoNotRewriteEarlierNotes(t *testing.T) {
	notes := notesOf(Parse("O4 C O5 T60", DefaultConfig()))
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Octave != 4 || !almostEqual(notes[0].Seconds, 0.5) {
		t.Fatalf("note changed by later commands: %+v", notes[0])
	}
}

func TestParseExplicitLengthAndZeroLength(t *testing.T) {
	notes := notesOf(Parse("L4 C8 C16 C0 C", DefaultConfig()))
	want := []float64{0.25, 0.125, 0.5, 0.5}
	if len(notes) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(notes))
	}
	for i, n := range notes {
		if !almostEqual(n.Seconds, want[i]) {
			t.Fatalf("note %d: seconds = %v, want %v", i, n.Seconds, want[i])
		}
	}
}

func TestParseDotsAndTies(t *testing.T) {
	notes := notesOf(Parse("L4 C. C.. C^8 C4.^8. C ^4 ^4", DefaultConfig()))
	want := []struct {
		seconds float64
		dots    int
		ties    int
	}{
		{0.75, 1, 0},
		{0.875, 2, 0},
		{0.75, 0, 1},
		{0.75 + 0.375, 1, 1},
		{1.5, 0, 2},
	}
	if len(notes) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(notes))
	}
	for i, n := range notes {
		if !almostEqual(n.Seconds, want[i].seconds) {
			t.Fatalf("note %d: seconds = %v, want %v", i, n.Seconds, want[i].seconds)
		}
		if n.Dots != want[i].dots || n.Ties != want[i].ties {
			t.Fatalf("note %d: dots=%d ties=%d, want %d/%d", i, n.Dots, n.Ties, want[i].dots, want[i].ties)
		}
	}
}

func TestParseRestIgnoresTie(t *testing.T) {
	events := notesOf(Parse("R4^4 C", DefaultConfig()))
	if len(events) != 2 {
		t.Fatalf("expected rest + note, got %d events", len(events))
	}
	if events[0].Type != EventRest || !almostEqual(events[0].Seconds, 0.5) {
		t.Fatalf("rest should keep its own length only: %+v", events[0])
	}
	if events[0].Freq != 0 {
		t.Fatalf("rest frequency = %v, want 0", events[0].Freq)
	}
	if events[1].Type != EventNote {
		t.Fatalf("expected note after rest")
	}
}

func TestParseSkipsUnknownAndSlur(t *testing.T) {
	notes := notesOf(Parse("C&D % ! H z\tE\n|F", DefaultConfig()))
	want := []int{0, 2, 4, 5}
	if len(notes) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(notes))
	}
	for i, n := range notes {
		if n.PitchClass != want[i] {
			t.Fatalf("note %d: pitch class = %d, want %d", i, n.PitchClass, want[i])
		}
	}
}

func TestParseParamOutcomes(t *testing.T) {
	cases := []struct {
		src     string
		cmd     byte
		value   int
		outcome Outcome
	}{
		{"V12", 'V', 12, Applied},
		{"V40", 'V', 40, Clamped},
		{"V", 'V', -1, Ignored},
		{"@9", '@', 9, Clamped},
		{"@0", '@', 0, Applied},
		{"Q0", 'Q', 0, Ignored},
		{"Q12", 'Q', 12, Applied},
		{"T0", 'T', 0, Ignored},
		{"Lx", 'L', -1, Ignored},
		{"O0", 'O', 0, Applied},
		{"P", 'P', -1, Ignored},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			events := Parse(tc.src, DefaultConfig())
			if len(events) == 0 || events[0].Type != EventParam {
				t.Fatalf("expected a param event, got %+v", events)
			}
			e := events[0]
			if e.Command != tc.cmd || e.Value != tc.value || e.Outcome != tc.outcome {
				t.Fatalf("got cmd=%c value=%d outcome=%v, want %c/%d/%v", e.Command, e.Value, e.Outcome, tc.cmd, tc.value, tc.outcome)
			}
		})
	}
}

func TestParseStateSnapshot(t *testing.T) {
	notes := notesOf(Parse("V20 @3 Q4 C V-1 @ C", DefaultConfig()))
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	for i, n := range notes {
		if n.Volume != 15 || n.Waveform != 3 || n.Gate != 4 {
			t.Fatalf("note %d: volume=%d waveform=%d gate=%d, want 15/3/4", i, n.Volume, n.Waveform, n.Gate)
		}
	}
}

func TestParseHugeLiteralSaturates(t *testing.T) {
	notes := notesOf(Parse("L99999999999999999999 C", DefaultConfig()))
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Seconds <= 0 || notes[0].Seconds > 1e-6 {
		t.Fatalf("expected a tiny positive duration, got %v", notes[0].Seconds)
	}
}

func TestParseEmpty(t *testing.T) {
	if events := Parse("", DefaultConfig()); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	sc := NewScanner("   \n\t&&", DefaultConfig())
	if _, ok := sc.Next(); ok {
		t.Fatalf("expected no events from blank text")
	}
	if sc.Pos() != 7 {
		t.Fatalf("pos = %d, want 7", sc.Pos())
	}
}
