// Package chirp generates cyclic-shift upchirps and downchirps for the LoRa
// modulator and demodulator using an incremental phase accumulator, so
// arbitrarily long bursts built from successive calls stay phase-continuous.
package chirp

import "math"

// Generate writes count complex samples into out starting at instantaneous
// frequency offset f0, advancing *phase in place so a following call with
// the same accumulator continues the waveform without a discontinuity.
//
// n is the base samples-per-symbol (1<<sf), osr the oversampling ratio,
// down selects a downchirp (negative slope) instead of an upchirp, ampl is
// the output amplitude, and bwScale is bandwidth/125000. Returns the number
// of samples written, always count (out must have capacity for at least
// count entries; callers size their buffers up front).
func Generate(out []complex128, n, osr, count int, f0 float64, down bool, ampl float64, phase *float64, bwScale float64) int {
	fMin := -math.Pi * bwScale / float64(osr)
	fMax := math.Pi * bwScale / float64(osr)
	fStep := (2 * math.Pi * bwScale) / (float64(n) * float64(osr) * float64(osr))

	f := fMin + f0
	ph := *phase

	if down {
		for i := 0; i < count; i++ {
			f += fStep
			if f > fMax {
				f -= fMax - fMin
			}
			ph -= f
			out[i] = complex(ampl*math.Cos(ph), ampl*math.Sin(ph))
		}
	} else {
		for i := 0; i < count; i++ {
			f += fStep
			if f > fMax {
				f -= fMax - fMin
			}
			ph += f
			out[i] = complex(ampl*math.Cos(ph), ampl*math.Sin(ph))
		}
	}

	ph -= math.Floor(ph/(2*math.Pi)) * 2 * math.Pi
	*phase = ph
	return count
}
