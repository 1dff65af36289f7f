package detector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kc2g-lora/lora-phy/internal/kissfft"
)

// Property 5 / S3: with FFT input [(1,0),(0,0),(1,0),(0,0)] at sf=2 (N=4),
// bins 0 and 2 tie for maximum power; the lowest index must win.
func TestDetectTieBreakLowestIndex(t *testing.T) {
	var plan kissfft.Plan
	require.NoError(t, plan.Init(4, false))

	in := make([]complex128, 4)
	out := make([]complex128, 4)
	d := New(&plan, in, out)

	d.Feed(0, complex(1, 0))
	d.Feed(1, complex(0, 0))
	d.Feed(2, complex(1, 0))
	d.Feed(3, complex(0, 0))

	idx, _, _, _ := d.Detect()
	require.Equal(t, 0, idx)
}

// A pure tone at bin k should be detected at exactly that bin with a
// near-zero fractional offset.
func TestDetectPureTone(t *testing.T) {
	n := 64
	var plan kissfft.Plan
	require.NoError(t, plan.Init(n, false))

	in := make([]complex128, n)
	out := make([]complex128, n)
	d := New(&plan, in, out)

	k := 5
	for i := 0; i < n; i++ {
		ang := 2 * math.Pi * float64(k) * float64(i) / float64(n)
		d.Feed(i, complex(math.Cos(ang), math.Sin(ang)))
	}

	idx, power, _, fIndex := d.Detect()
	require.Equal(t, k, idx)
	require.InDelta(t, 0, fIndex, 1e-6)
	require.Greater(t, power, 0.0)
}
