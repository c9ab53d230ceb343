// Package pitch resolves note names to equal-tempered frequencies.
package pitch

import "math"

// A4 is the octave and pitch class the tuning reference is assigned to.
const (
	A4Octave     = 4
	A4PitchClass = 9
)

// ratios[i] is 2^(i/12).
var ratios = [12]float64{
	1.000000000000, 1.059463094359, 1.122462048309,
	1.189207115002, 1.259921049895, 1.334839854170,
	1.414213562373, 1.498307076876, 1.587401051968,
	1.681792830507, 1.781797436281, 1.887748625363,
}

var pitchClasses = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// PitchClass maps an upper-case note letter to 0..11.
func PitchClass(letter byte) (int, bool) {
	pc, ok := pitchClasses[letter]
	return pc, ok
}

// Semitones is the signed distance from A4.
func Semitones(octave, pitchClass int) int {
	return (octave-A4Octave)*12 + pitchClass - A4PitchClass
}

// Ratio returns 2^(n/12) from the table, splitting n into whole octaves with
// floor division so negative multiples of 12 land on ratio 1.
func Ratio(n int) float64 {
	oct, mod := n/12, n%12
	if mod < 0 {
		mod += 12
		oct--
	}
	return math.Ldexp(ratios[mod], oct)
}

// Frequency returns the pitch in Hz with A4 tuned to ref.
func Frequency(octave, pitchClass int, ref float64) float64 {
	return ref * Ratio(Semitones(octave, pitchClass))
}

// Wrap folds a pitch class shifted by an accidental back into 0..11.
// The octave is not carried.
func Wrap(pc int) int {
	return (pc%12 + 12) % 12
}
