package lora

import (
	"math"
	"math/cmplx"

	"github.com/kc2g-lora/lora-phy/internal/chirp"
)

// DemodWorkspace extends Workspace with the optional scratch buffer used
// to renormalize input amplitudes above the canonical [-1, 1] range, and a
// caller-sized scratch for the per-symbol bin indices a single
// Demodulate call produces.
type DemodWorkspace struct {
	Workspace
	Scratch      []complex128
	IndexScratch []int
}

type preambleHit struct {
	t       int
	index   int
	fIndex  float64
	binVal  complex128
}

// Demodulate recovers the sync word and data symbol indices from an IQ
// burst. len(in) must be a multiple of ws.Params.Step() and cover at
// least two symbols; out must have capacity for at least
// len(in)/step - 2 symbols.
//
// The algorithm runs in three passes: normalize amplitude if needed,
// estimate CFO/time-offset from the two-symbol preamble, then run a
// compensated dechirp+FFT per symbol. See Params.Step, Params.N.
func Demodulate(ws *DemodWorkspace, in []complex128, out []uint16) (count int, syncWord byte, err error) {
	p := ws.Params
	step := p.Step()

	if step == 0 || len(in)%step != 0 {
		return 0, 0, ErrInvalidArg
	}
	total := len(in) / step
	if total < 2 {
		return 0, 0, ErrOutOfRange
	}
	if len(out) < total-2 {
		return 0, 0, ErrOutOfRange
	}
	if len(ws.IndexScratch) < total {
		return 0, 0, ErrNoMemory
	}

	effective, err := normalizeInput(ws, in)
	if err != nil {
		return 0, 0, err
	}

	cfo, timeOffset, err := EstimateOffsets(ws, effective)
	if err != nil {
		return 0, 0, err
	}

	symIdx := ws.IndexScratch[:total]
	if err := CompensateOffsets(ws, effective, cfo, timeOffset, symIdx); err != nil {
		return 0, 0, err
	}

	sw0 := symIdx[0]
	sw1 := symIdx[1]
	shift := p.Shift()
	syncWord = byte(((sw0>>uint(shift))&0xF)<<4 | (sw1>>uint(shift))&0xF)

	for i := 2; i < total; i++ {
		out[i-2] = uint16(symIdx[i])
	}

	return total - 2, syncWord, nil
}

// EstimateOffsets runs the two-symbol preamble CFO/TO estimator over in
// (already amplitude-normalized) and records the result in
// ws.Metrics.CFO / ws.Metrics.TimeOffset, also returning it directly so
// CompensateOffsets can be driven independently of Demodulate.
func EstimateOffsets(ws *DemodWorkspace, in []complex128) (cfo, timeOffset float64, err error) {
	step := ws.Params.Step()
	cfo, timeOffset, err = estimatePreamble(ws, in, ws.Params.N(), step)
	if err != nil {
		return 0, 0, err
	}
	ws.Metrics.CFO = cfo
	ws.Metrics.TimeOffset = timeOffset
	return cfo, timeOffset, nil
}

// CompensateOffsets runs the per-symbol compensated dechirp+FFT pass over
// the full burst in (sync word included), writing one bin index per
// symbol into indices, which must have capacity for len(in)/step entries.
func CompensateOffsets(ws *DemodWorkspace, in []complex128, cfo, timeOffset float64, indices []int) error {
	p := ws.Params
	n := p.N()
	step := p.Step()
	total := len(in) / step
	if len(indices) < total {
		return ErrOutOfRange
	}

	tOff := int(math.Round(timeOffset))
	rate := -2 * math.Pi * cfo / float64(n)
	bwScale := p.BW.scale()

	for s := 0; s < total; s++ {
		base := s * step
		if tOff > 0 {
			if base+tOff+(n-1)*p.OSR < len(in) {
				base += tOff
			}
		} else if tOff < 0 {
			if -tOff <= base {
				base += tOff
			}
		}

		var downPhase float64
		chirp.Generate(ws.FFTOut[:n], n, 1, n, 0.0, true, 1.0, &downPhase, bwScale)

		start := rate * (float64(s*n) + float64(tOff)/float64(p.OSR))
		for i := 0; i < n; i++ {
			samp := in[base+i*p.OSR] * ws.FFTOut[i]
			samp *= cmplx.Exp(complex(0, start+rate*float64(i)))
			if p.Window != WindowNone {
				samp *= complex(ws.Window[i], 0)
			}
			ws.FFTIn[i] = samp
		}

		idx, _, _, _ := ws.Det.Detect()
		indices[s] = idx
	}

	return nil
}

func normalizeInput(ws *DemodWorkspace, in []complex128) ([]complex128, error) {
	maxAbs := 0.0
	for _, v := range in {
		if a := math.Abs(real(v)); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(imag(v)); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs <= 1 {
		return in, nil
	}
	if len(ws.Scratch) < len(in) {
		return nil, ErrOutOfRange
	}
	scale := complex(1/maxAbs, 0)
	for i, v := range in {
		ws.Scratch[i] = v * scale
	}
	return ws.Scratch[:len(in)], nil
}

func estimatePreamble(ws *DemodWorkspace, in []complex128, n, step int) (cfo, timeOffset float64, err error) {
	p := ws.Params
	var hits [2]preambleHit

	for s := 0; s < 2; s++ {
		best := preambleHit{index: -1}
		bestPower := math.Inf(-1)

		for t := 0; t < p.OSR; t++ {
			for i := 0; i < n; i++ {
				si := s*step + t + i*p.OSR
				if si >= len(in) {
					return 0, 0, ErrOutOfRange
				}
				samp := in[si]
				if p.Window != WindowNone {
					samp *= complex(ws.Window[i], 0)
				}
				ws.FFTIn[i] = samp
			}
			idx, power, _, fIndex := ws.Det.Detect()
			if power > bestPower || (power == bestPower && idx < best.index) {
				bestPower = power
				best = preambleHit{t: t, index: idx, fIndex: fIndex, binVal: ws.FFTOut[idx]}
			}
		}
		hits[s] = best
	}

	avgIndex := (float64(hits[0].index) + hits[0].fIndex + float64(hits[1].index) + hits[1].fIndex) / 2
	sumT := float64(hits[0].t + hits[1].t)
	avgT := sumT / 2

	cfoCoarse := avgIndex / float64(n)

	phaseDiff := cmplx.Phase(hits[1].binVal) - cmplx.Phase(hits[0].binVal)
	for phaseDiff > math.Pi {
		phaseDiff -= 2 * math.Pi
	}
	for phaseDiff < -math.Pi {
		phaseDiff += 2 * math.Pi
	}
	cfoFine := (phaseDiff / 1) / (2 * math.Pi * float64(n))

	cfo = cfoCoarse + cfoFine

	frac := avgIndex - math.Round(avgIndex)
	timeOffset = avgT - frac*float64(n)*float64(p.OSR)

	return cfo, timeOffset, nil
}
