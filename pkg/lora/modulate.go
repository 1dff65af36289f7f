package lora

import (
	"math"

	"github.com/kc2g-lora/lora-phy/internal/chirp"
)

// clampAmplitude restricts a to [-1, 1] without forcing it non-negative;
// a caller passing a negative amplitude gets a phase-inverted chirp.
func clampAmplitude(a float64) float64 {
	if a > 1 {
		return 1
	}
	if a < -1 {
		return -1
	}
	return a
}

// Modulate emits two sync-word upchirps followed by one upchirp per entry
// of syms into out, sharing a single phase accumulator so the whole burst
// is phase-continuous. Each syms[i] must be in [0, N). Returns the number
// of IQ samples written, (len(syms)+2)*step, or ErrOutOfRange if out is
// too small.
func Modulate(ws *Workspace, syms []uint16, out []complex128, amplitude float64) (int, error) {
	p := ws.Params
	n := p.N()
	step := p.Step()
	total := (len(syms) + 2) * step

	if total > len(out) {
		return 0, ErrOutOfRange
	}

	ampl := clampAmplitude(amplitude)
	bwScale := p.BW.scale()
	shift := p.Shift()

	var phase float64
	pos := 0

	hiNibble := (p.SyncWord >> 4) & 0xF
	loNibble := p.SyncWord & 0xF

	emit := func(symVal int) {
		f0 := 2 * math.Pi * float64(symVal) * bwScale / (float64(n) * float64(p.OSR))
		chirp.Generate(out[pos:pos+step], n, p.OSR, step, f0, false, ampl, &phase, bwScale)
		pos += step
	}

	emit(int(hiNibble) << uint(shift))
	emit(int(loNibble) << uint(shift))

	for _, s := range syms {
		if int(s) < 0 || int(s) >= n {
			return 0, ErrInvalidArg
		}
		emit(int(s))
	}

	return total, nil
}
