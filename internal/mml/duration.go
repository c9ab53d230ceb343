package mml

// Seconds is the length of a 1/length note at bpm quarter notes per minute.
func Seconds(length int, bpm float64) float64 {
	if length <= 0 || bpm <= 0 {
		return 0
	}
	return (60 / bpm) * (4 / float64(length))
}

// Dotted extends base by the series base/2, base/4, ... for each dot.
func Dotted(base float64, dots int) float64 {
	dur, term := base, base*0.5
	for k := 0; k < dots; k++ {
		dur += term
		term *= 0.5
	}
	return dur
}

// parseLengthToken reads an optional length literal and its dots. A missing
// literal or an explicit 0 falls back to the default length.
func parseLengthToken(s string, at int, st State) (float64, int, int) {
	length := st.Length
	val, i := readNumber(s, at)
	if val > 0 {
		length = val
	}
	dots := 0
	for i < len(s) && s[i] == '.' {
		dots++
		i++
	}
	return Dotted(Seconds(length, st.BPM), dots), dots, i
}

// parseLengthWithTie sums the primary length and every ^length that follows.
// Whitespace may separate a length from the next tie marker.
func parseLengthWithTie(s string, at int, st State) (dur float64, dots int, ties int, next int) {
	dur, dots, next = parseLengthToken(s, at, st)
	for {
		i := next
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '^' {
			return dur, dots, ties, i
		}
		extra, _, n2 := parseLengthToken(s, i+1, st)
		dur += extra
		ties++
		next = n2
	}
}
