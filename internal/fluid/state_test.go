package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCloneIndependent(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	require.Equal(t, State{1, 2, 3}, s)
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	assert.InDelta(t, 5.0, s.Norm(), 1e-15)
	assert.InDelta(t, 0.0, State{}.Norm(), 1e-15)
}

func TestStateSub(t *testing.T) {
	a := State{5, 7, 9}
	b := State{1, 2, 3}
	require.Equal(t, State{4, 5, 6}, a.Sub(b))
	require.Equal(t, State{5, 7, 9}, a, "operands must stay unmodified")
	require.Equal(t, State{1, 2, 3}, b)
}

func TestStateAddScaled(t *testing.T) {
	x := State{1, 1, 1}
	d := State{1, 2, 3}
	require.Equal(t, State{1.5, 2, 2.5}, x.AddScaled(0.5, d))
	require.Equal(t, State{1, 1, 1}, x, "receiver must stay unmodified")
}

func TestStateIsValid(t *testing.T) {
	if !(State{0, -1, 2.5}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{0, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}
