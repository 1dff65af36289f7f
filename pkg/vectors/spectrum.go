package vectors

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// HasSignal runs a coarse FFT pre-scan over samples and reports whether
// any bin's power exceeds the mean bin power by thresholdDB. lora-rx uses
// it to skip demodulating an apparently-empty capture.
// This is advisory tooling only, independent of the bit-exact detector
// in internal/detector.
func HasSignal(samples []complex128, thresholdDB float64) bool {
	if len(samples) == 0 {
		return false
	}
	spectrum := fft.FFT(samples)

	var total, peak float64
	for _, v := range spectrum {
		p := real(v)*real(v) + imag(v)*imag(v)
		total += p
		if p > peak {
			peak = p
		}
	}
	if total == 0 {
		return false
	}
	mean := total / float64(len(spectrum))
	if mean == 0 {
		return peak > 0
	}
	peakDB := 10 * math.Log10(peak/mean)
	return peakDB > thresholdDB
}
