package vectors

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainerRoundTrip(t *testing.T) {
	records := []Record{
		{
			SF:      7,
			BWkHz:   125,
			CRIdx:   5,
			Flags:   0,
			Payload: []byte{0xDE, 0xAD, 0xBE, 0xEF},
			Samples: []complex128{complex(0.1, -0.2), complex(1, 1), complex(-0.5, 0.5)},
		},
		{
			SF:      12,
			BWkHz:   500,
			CRIdx:   8,
			Payload: []byte{},
			Samples: []complex128{},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteContainer(&buf, records))

	got, err := ReadContainer(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(records))

	for i, rec := range records {
		require.Equal(t, rec.SF, got[i].SF)
		require.Equal(t, rec.BWkHz, got[i].BWkHz)
		require.Equal(t, rec.CRIdx, got[i].CRIdx)
		require.Equal(t, rec.Payload, got[i].Payload)
		require.Equal(t, rec.Samples, got[i].Samples)
	}
}

func TestRecordMatchesProfile(t *testing.T) {
	rec := Record{SF: 7, BWkHz: 125, CRIdx: 5}
	p := Profile{SF: 7, BW: 125000, CR: "4/5"}
	require.True(t, rec.Matches(p))

	other := Profile{SF: 9, BW: 250000, CR: "4/6"}
	require.False(t, rec.Matches(other))
}
