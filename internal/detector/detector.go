// Package detector locates the strongest FFT bin in a windowed symbol and
// reports its power and sub-bin fractional position, the building block
// both the preamble CFO/TO estimator and the per-symbol data slicer in
// pkg/lora are built from.
package detector

import "math"

import "github.com/kc2g-lora/lora-phy/internal/kissfft"

// Detector scans the output of a caller-supplied FFT plan for its peak bin.
// Like kissfft.Plan, it holds no buffers of its own: In and Out are
// supplied by the caller at construction and merely referenced here, so
// repeated Feed/Detect cycles across many symbols allocate nothing.
type Detector struct {
	Plan *kissfft.Plan
	In   []complex128
	Out  []complex128
}

// New returns a Detector bound to plan, in and out. in and out must both
// have length plan.NFFT and remain valid for the Detector's lifetime.
func New(plan *kissfft.Plan, in, out []complex128) *Detector {
	return &Detector{Plan: plan, In: in, Out: out}
}

// Feed places one input sample at index i of the pending transform.
func (d *Detector) Feed(i int, samp complex128) {
	d.In[i] = samp
}

// Detect transforms In into Out and returns the index of the strongest
// bin, its power and the combined power of all other bins (both in dB
// relative to N),
// and the fractional bin offset from parabolic interpolation of the three
// bins centered on the peak.
//
// Ties in peak magnitude are broken in favor of the lowest index: the scan
// below uses a strict greater-than comparison, so a later bin of exactly
// equal magnitude never displaces an earlier one.
func (d *Detector) Detect() (maxIndex int, power, powerAvg, fIndex float64) {
	n := d.Plan.NFFT
	d.Plan.Transform(d.Out, d.In)

	maxValue := 0.0
	maxIdx := 0
	total := 0.0
	for i := 0; i < n; i++ {
		v := d.Out[i]
		mag2 := real(v)*real(v) + imag(v)*imag(v)
		total += mag2
		if mag2 > maxValue {
			maxValue = mag2
			maxIdx = i
		}
	}

	fundamental := math.Sqrt(maxValue)
	noise := math.Sqrt(total - maxValue)

	power = 20*math.Log10(fundamental) - 20*math.Log10(float64(n))
	powerAvg = 20*math.Log10(noise) - 20*math.Log10(float64(n))

	left := d.Out[(maxIdx-1+n)%n]
	right := d.Out[(maxIdx+1)%n]
	l := math.Hypot(real(left), imag(left))
	r := math.Hypot(real(right), imag(right))

	denom := 2*fundamental - r - l
	if denom == 0 {
		fIndex = 0
	} else {
		fIndex = 0.5 * (r - l) / denom
	}

	return maxIdx, power, powerAvg, fIndex
}
