package osc

import (
	"math"
	"math/rand"
)

// Waveform ids as selected by the @ command.
const (
	WaveSine = iota
	WavePulse50
	WavePulse25
	WavePulse12
	WaveTriangle
	WaveSaw
	WaveNoise
)

const twoPi = math.Pi * 2

// Oscillator produces one waveform sample per call to Next.
type Oscillator struct {
	waveform int
	phase    float64 // current phase [0, 1)
	sine     func(float64) float64
	rng      *rand.Rand
}

// New returns an oscillator whose noise source is seeded with seed.
func New(seed int64) *Oscillator {
	return &Oscillator{
		waveform: WavePulse50,
		sine:     Sine5,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// SetPreciseSine switches waveform 0 between the polynomial approximation
// and math.Sin.
func (o *Oscillator) SetPreciseSine(precise bool) {
	if precise {
		o.sine = math.Sin
	} else {
		o.sine = Sine5
	}
}

// SetWaveform selects the waveform; ids outside 0..6 are clamped.
func (o *Oscillator) SetWaveform(waveform int) {
	if waveform < WaveSine {
		waveform = WaveSine
	}
	if waveform > WaveNoise {
		waveform = WaveNoise
	}
	o.waveform = waveform
}

// Reset zeros the phase. Called at the start of every note.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Next wraps the phase into [0, 1), returns the amplitude for it and
// advances by freq/sampleRate. A non-positive or infinite frequency is silence.
func (o *Oscillator) Next(freq float64, sampleRate float64) float64 {
	if !(freq > 0) || math.IsInf(freq, 1) || sampleRate <= 0 {
		return 0
	}
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
	v := o.Value(o.phase)
	o.phase += freq / sampleRate
	return v
}

// Value is the amplitude in [-1, 1] of the selected waveform at phase p.
func (o *Oscillator) Value(p float64) float64 {
	switch o.waveform {
	case WaveSine:
		return o.sine(twoPi * p)
	case WavePulse50, WavePulse25, WavePulse12:
		if p < Duty(o.waveform) {
			return 1
		}
		return -1
	case WaveTriangle:
		if p < 0.5 {
			return 4*p - 1
		}
		return 3 - 4*p
	case WaveSaw:
		return 2*p - 1
	default: // WaveNoise
		return o.rng.Float64()*2 - 1
	}
}

// Duty is the high fraction of a pulse waveform.
func Duty(waveform int) float64 {
	switch waveform {
	case WavePulse25:
		return 0.25
	case WavePulse12:
		return 0.125
	}
	return 0.5
}

// Sine5 approximates sin(x) with a 5th-order odd polynomial after folding x
// into [-pi/2, pi/2].
func Sine5(x float64) float64 {
	k := x / twoPi
	n := math.Round(k)
	x -= n * twoPi
	if x > math.Pi/2 {
		x = math.Pi - x
	}
	if x < -math.Pi/2 {
		x = -math.Pi - x
	}
	x2 := x * x
	return x * (1 + x2*(-1.0/6+x2*(1.0/120)))
}

// Quantize scales amp by volume/16 and converts to signed 16-bit,
// truncating toward zero and clamping at the extremes.
func Quantize(amp float64, volume int) int16 {
	s := amp * (float64(volume) / 16)
	iv := int(s * 32767)
	if iv > math.MaxInt16 {
		iv = math.MaxInt16
	}
	if iv < math.MinInt16 {
		iv = math.MinInt16
	}
	return int16(iv)
}
