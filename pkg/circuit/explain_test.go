package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_RendersNestedForm(t *testing.T) {
	s := NewSession()

	a, _ := s.Input("a", true)
	b, _ := s.Input("b", false)

	sum, err := a.Add(b)
	require.NoError(t, err)

	out, err := s.Explain(sum)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "(Add a_plus_b__"))
	assert.Contains(t, out, "(Input a :private true)")
	assert.Contains(t, out, "(Input b :private false)")
}

func TestExplain_ConstantShowsValue(t *testing.T) {
	s := NewSession()

	c := s.Constant(42)

	out, err := s.Explain(c)
	require.NoError(t, err)

	assert.Contains(t, out, ":value 42")
}

func TestExplain_RejectsForeignSessionOutput(t *testing.T) {
	s1 := NewSession()
	s2 := NewSession()

	a, _ := s1.Input("a", false)
	_, _ = s2.Input("b", false)

	_, err := s2.Explain(a)
	require.Error(t, err)
}
