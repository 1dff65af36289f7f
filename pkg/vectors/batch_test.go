package vectors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBatchAssignsUniqueIDs(t *testing.T) {
	p := Profile{Name: "sf7"}
	a := NewBatch(p, nil)
	b := NewBatch(p, nil)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, p, a.Profile)
}
