package vectors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasSignalDetectsTone(t *testing.T) {
	n := 256
	samples := make([]complex128, n)
	for i := range samples {
		ang := 2 * math.Pi * 17 * float64(i) / float64(n)
		samples[i] = complex(math.Cos(ang), math.Sin(ang))
	}
	require.True(t, HasSignal(samples, 6))
}

func TestHasSignalRejectsFlatNoise(t *testing.T) {
	n := 256
	samples := make([]complex128, n)
	for i := range samples {
		samples[i] = complex(0, 0)
	}
	require.False(t, HasSignal(samples, 6))
}

func TestHasSignalEmpty(t *testing.T) {
	require.False(t, HasSignal(nil, 6))
}
