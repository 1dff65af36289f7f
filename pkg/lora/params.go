package lora

import (
	"github.com/kc2g-lora/lora-phy/internal/detector"
	"github.com/kc2g-lora/lora-phy/internal/kissfft"
)

// Bandwidth is one of the three channel bandwidths this modem supports.
type Bandwidth int

const (
	BW125k Bandwidth = 125000
	BW250k Bandwidth = 250000
	BW500k Bandwidth = 500000
)

func (bw Bandwidth) valid() bool {
	switch bw {
	case BW125k, BW250k, BW500k:
		return true
	default:
		return false
	}
}

// scale returns bw / 125000, the factor every chirp-frequency formula in
// this package carries.
func (bw Bandwidth) scale() float64 {
	return float64(bw) / float64(BW125k)
}

// WindowKind selects an optional analysis window applied before each
// per-symbol FFT.
type WindowKind int

const (
	WindowNone WindowKind = iota
	WindowHann
)

// Params describes one LoRa channel configuration. CodingRate is carried
// for bookkeeping only; header rate-matching is out of scope for this
// core.
type Params struct {
	SF         int
	BW         Bandwidth
	CodingRate int
	OSR        int
	Window     WindowKind
	SyncWord   byte
}

func (p Params) validate() error {
	if p.SF < 7 || p.SF > 12 {
		return newError(CodeInvalidArg, "lora: sf out of range [7,12]")
	}
	if !p.BW.valid() {
		return newError(CodeInvalidArg, "lora: unsupported bandwidth")
	}
	if p.OSR < 1 {
		return newError(CodeInvalidArg, "lora: osr must be >= 1")
	}
	return nil
}

// N returns the number of base-rate samples per symbol, 1<<sf.
func (p Params) N() int { return 1 << uint(p.SF) }

// Step returns N*osr, the number of IQ samples one transmitted symbol
// occupies.
func (p Params) Step() int { return p.N() * p.OSR }

// Shift is the nibble-to-frequency shift used when emitting or recovering
// the sync word: max(sf-4, 0).
func (p Params) Shift() int {
	if p.SF-4 > 0 {
		return p.SF - 4
	}
	return 0
}

// Metrics carries the state every demodulate/estimate/decode call
// overwrites.
type Metrics struct {
	CRCOk      bool
	CFO        float64
	TimeOffset float64
}

// Workspace borrows every buffer the modulator and demodulator need from
// the caller: none of the fields below are allocated by this package.
// Init validates Params and binds Plans to N; after that the Workspace
// itself never allocates.
type Workspace struct {
	Params Params

	SymbolScratch []complex128
	FFTIn         []complex128
	FFTOut        []complex128
	Window        []float64

	PlanFwd kissfft.Plan
	PlanInv kissfft.Plan
	Det     detector.Detector

	Metrics Metrics
}

// Init validates p and prepares ws's forward and inverse FFT plans for
// N = 1<<p.sf. SymbolScratch, FFTIn and FFTOut must already be sized to N
// by the caller; Window must be sized to N when p.Window != WindowNone.
func Init(ws *Workspace, p Params) error {
	if err := p.validate(); err != nil {
		return err
	}
	n := p.N()
	if len(ws.SymbolScratch) < n || len(ws.FFTIn) < n || len(ws.FFTOut) < n {
		return newError(CodeNoMemory, "lora: workspace buffers smaller than N")
	}
	if p.Window != WindowNone && len(ws.Window) < n {
		return newError(CodeNoMemory, "lora: window buffer smaller than N")
	}

	if err := ws.PlanFwd.Init(n, false); err != nil {
		return newError(CodeInvalidArg, err.Error())
	}
	if err := ws.PlanInv.Init(n, true); err != nil {
		return newError(CodeInvalidArg, err.Error())
	}

	ws.Params = p
	ws.Det = detector.Detector{Plan: &ws.PlanFwd, In: ws.FFTIn[:n], Out: ws.FFTOut[:n]}
	if p.Window == WindowHann {
		fillHann(ws.Window[:n])
	}

	ws.Metrics = Metrics{}
	return nil
}

// Reset clears ws's Metrics without touching its buffers or plans,
// mirroring a channel restart between bursts.
func Reset(ws *Workspace) {
	ws.Metrics = Metrics{}
}

func fillHann(w []float64) {
	n := len(w)
	if n == 1 {
		w[0] = 1
		return
	}
	for i := range w {
		w[i] = 0.5 * (1 - cos2pi(float64(i)/float64(n-1)))
	}
}
