package kissfft

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// bruteDFT computes the unnormalized forward or inverse DFT directly, as a
// reference the mixed-radix plan's output is checked against.
func bruteDFT(src []complex128, inverse bool) []complex128 {
	n := len(src)
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			ang := sign * 2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += src[j] * complex(math.Cos(ang), math.Sin(ang))
		}
		out[k] = sum
	}
	return out
}

func randomComplex(n, seed int) []complex128 {
	rng := rand.New(rand.NewSource(int64(seed)))
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func TestTransformMatchesBruteDFT(t *testing.T) {
	for _, nfft := range []int{1, 2, 3, 4, 5, 7, 8, 9, 11, 12, 16, 32, 128} {
		nfft := nfft
		t.Run("", func(t *testing.T) {
			for _, inverse := range []bool{false, true} {
				var plan Plan
				require.NoError(t, plan.Init(nfft, inverse))

				src := randomComplex(nfft, nfft*31+1)
				got := make([]complex128, nfft)
				plan.Transform(got, src)

				want := bruteDFT(src, inverse)
				for i := range want {
					require.InDelta(t, real(want[i]), real(got[i]), 1e-6, "nfft=%d inverse=%v bin=%d", nfft, inverse, i)
					require.InDelta(t, imag(want[i]), imag(got[i]), 1e-6, "nfft=%d inverse=%v bin=%d", nfft, inverse, i)
				}
			}
		})
	}
}

func TestTransformPowerOfTwoN(t *testing.T) {
	for sf := 7; sf <= 12; sf++ {
		n := 1 << uint(sf)
		var plan Plan
		require.NoError(t, plan.Init(n, false))
		require.Equal(t, n, plan.NFFT)
	}
}

func TestInitRejectsOversizedNFFT(t *testing.T) {
	var plan Plan
	require.Error(t, plan.Init(MaxNFFT+1, false))
}

func TestInitRejectsZeroOrNegative(t *testing.T) {
	var plan Plan
	require.Error(t, plan.Init(0, false))
	require.Error(t, plan.Init(-1, false))
}
