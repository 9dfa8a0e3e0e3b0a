package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_InputNameClash(t *testing.T) {
	s := NewSession()

	_, err := s.Input("x", false)
	require.NoError(t, err)

	_, err = s.Input("x", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameClash))
}

func TestSession_InputFullName(t *testing.T) {
	s := NewSession()

	x, err := s.Input("x", false)
	require.NoError(t, err)
	assert.Equal(t, "x", s.node(x.id).fullName)
	assert.Equal(t, WorldSignal, x.World())
}

func TestSession_ConstantNegative(t *testing.T) {
	s := NewSession()

	c := s.Constant(-5)
	assert.Equal(t, WorldPassthrough, c.World())
	assert.Equal(t, "-5", s.node(c.id).fullName)
}

func TestSession_UniqueNameCollision(t *testing.T) {
	s := NewSession()

	x, err := s.Input("x", false)
	require.NoError(t, err)

	y, err := s.Input("y", false)
	require.NoError(t, err)

	sum, err := x.Add(y)
	require.NoError(t, err)

	other, err := x.Add(y)
	require.NoError(t, err)

	assert.NotEqual(t, s.node(sum.id).fullName, s.node(other.id).fullName)
	assert.Equal(t, "x_plus_y__", s.node(sum.id).fullName)
	assert.Equal(t, "x_plus_y_0__", s.node(other.id).fullName)
}

func TestSession_CondRequiresSameSession(t *testing.T) {
	s1 := NewSession()
	s2 := NewSession()

	pred, _ := s1.Input("pred", false)
	a, _ := s2.Input("a", false)
	b, _ := s1.Input("b", false)

	_, err := s1.Cond(pred, a, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionMismatch))
}

func TestSession_IncludeDeduplicates(t *testing.T) {
	s := NewSession()

	s.Include("a.circom")
	s.Include("b.circom")
	s.Include("a.circom")

	assert.Equal(t, []string{"a.circom", "b.circom"}, s.includeOrder)
}

func TestSession_UniqueComponentName(t *testing.T) {
	s := NewSession()

	assert.Equal(t, "LessThan_0", s.uniqueComponentName("LessThan"))
	assert.Equal(t, "LessThan_1", s.uniqueComponentName("LessThan"))
}
