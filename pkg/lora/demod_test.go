package lora

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A noise-free, unshifted burst should estimate a CFO and time offset both
// near zero.
func TestEstimateOffsetsCleanSignal(t *testing.T) {
	p := Params{SF: 8, BW: BW125k, OSR: 2, SyncWord: 0x12}
	ws := newDemodWorkspace(t, p, 0)

	syms := []uint16{10, 20, 30}
	iq := make([]complex128, (len(syms)+2)*p.Step())
	total, err := Modulate(&ws.Workspace, syms, iq, 1.0)
	require.NoError(t, err)
	iq = iq[:total]

	ws.Scratch = make([]complex128, len(iq))
	ws.IndexScratch = make([]int, len(iq)/p.Step()+1)

	cfo, timeOffset, err := EstimateOffsets(ws, iq)
	require.NoError(t, err)
	require.InDelta(t, 0, cfo, 0.05)
	require.InDelta(t, 0, timeOffset, float64(p.OSR))
	require.Equal(t, cfo, ws.Metrics.CFO)
	require.Equal(t, timeOffset, ws.Metrics.TimeOffset)
}

func TestCompensateOffsetsRecoversSyncSymbols(t *testing.T) {
	p := Params{SF: 7, BW: BW125k, OSR: 1, SyncWord: 0x34}
	ws := newDemodWorkspace(t, p, 0)

	iq := make([]complex128, 2*p.Step())
	total, err := Modulate(&ws.Workspace, nil, iq, 1.0)
	require.NoError(t, err)
	iq = iq[:total]

	ws.Scratch = make([]complex128, len(iq))
	ws.IndexScratch = make([]int, len(iq)/p.Step()+1)

	cfo, timeOffset, err := EstimateOffsets(ws, iq)
	require.NoError(t, err)

	indices := make([]int, 2)
	require.NoError(t, CompensateOffsets(ws, iq, cfo, timeOffset, indices))

	shift := p.Shift()
	sync := byte(((indices[0]>>uint(shift))&0xF)<<4 | (indices[1]>>uint(shift))&0xF)
	require.Equal(t, p.SyncWord, sync)
}

func TestDemodulateRequiresTwoSymbols(t *testing.T) {
	p := Params{SF: 7, BW: BW125k, OSR: 1, SyncWord: 0x12}
	ws := newDemodWorkspace(t, p, 0)

	iq := make([]complex128, p.Step())
	ws.Scratch = make([]complex128, len(iq))
	ws.IndexScratch = make([]int, 2)
	out := make([]uint16, 0)
	_, _, err := Demodulate(ws, iq, out)
	require.ErrorIs(t, err, ErrOutOfRange)
}
