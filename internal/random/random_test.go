package random

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Between(3, 8)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 8)

		d := s.Duration(2*time.Second, 5*time.Second)
		require.GreaterOrEqual(t, d, 2*time.Second)
		require.LessOrEqual(t, d, 5*time.Second)
	}
	assert.Equal(t, time.Duration(0), s.Duration(0, 0))
	assert.Equal(t, 4, s.Between(4, 4))
}

func TestFromConfig(t *testing.T) {
	s, err := FromConfig(0)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
