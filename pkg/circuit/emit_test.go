package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SignalAddition(t *testing.T) {
	s := NewSession()

	a, _ := s.Input("a", false)
	b, _ := s.Input("b", false)

	sum, err := a.Add(b)
	require.NoError(t, err)

	out, err := s.Generate(sum)
	require.NoError(t, err)

	assert.Contains(t, out, "signal input a;")
	assert.Contains(t, out, "signal input b;")
	assert.Contains(t, out, "a_plus_b__ <== a + b;")
	assert.Contains(t, out, "signal output a_plus_b__;")
	assert.Contains(t, out, "template Main() {")
	assert.Contains(t, out, "component main = Main();")
}

func TestGenerate_WitnessDivMod(t *testing.T) {
	s := NewSession()

	dividend, _ := s.Input("dividend", true)
	divisor, _ := s.Input("divisor", true)

	witnessDivisor := divisor.Detach()

	q, err := dividend.Div(witnessDivisor)
	require.NoError(t, err)

	r, err := dividend.Mod(witnessDivisor)
	require.NoError(t, err)

	attached, err := q.Attach()
	require.NoError(t, err)

	prod, err := divisor.Mul(attached)
	require.NoError(t, err)

	attachedR, err := r.Attach()
	require.NoError(t, err)

	sum, err := prod.Add(attachedR)
	require.NoError(t, err)

	require.NoError(t, dividend.CheckEquals(sum))

	out, err := s.Generate(attachedR)
	require.NoError(t, err)

	assert.Contains(t, out, "signal private input dividend;")
	assert.Contains(t, out, "signal private input divisor;")
	assert.Contains(t, out, "dividend_div_divisor__ <-- dividend / divisor;")
	assert.Contains(t, out, "dividend_mod_divisor__ <-- dividend % divisor;")
	assert.Contains(t, out, "dividend === ")
}

func TestGenerate_PassthroughOutputWrapsInIdentity(t *testing.T) {
	s := NewSession()

	a, _ := s.Input("a", false)
	w := a.Detach()

	back, err := w.Attach()
	require.NoError(t, err)

	out, err := s.Generate(back)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "signal input a;"))
	assert.Contains(t, out, "<== a;")
	assert.Contains(t, out, "signal output ")
}

func TestGenerate_IncludesPrecedeTemplate(t *testing.T) {
	s := NewSession()

	s.Include("circomlib/circuits/comparators.circom")

	a, _ := s.Input("a", false)

	out, err := s.Generate(a)
	require.NoError(t, err)

	incIdx := strings.Index(out, `include "circomlib/circuits/comparators.circom";`)
	tplIdx := strings.Index(out, "template Main()")

	require.GreaterOrEqual(t, incIdx, 0)
	require.Greater(t, tplIdx, incIdx)
}

func TestGenerate_BoundedDivisionWithExtern(t *testing.T) {
	s := NewSession()
	s.Include("circomlib/circuits/comparators.circom")

	dividend, _ := s.Input("dividend", true)
	divisor, _ := s.Input("divisor", true)

	divisorW := divisor.Detach()

	q, err := dividend.Div(divisorW)
	require.NoError(t, err)

	r, err := dividend.Mod(divisorW)
	require.NoError(t, err)

	qAttached, err := q.Attach()
	require.NoError(t, err)

	rAttached, err := r.Attach()
	require.NoError(t, err)

	prod, err := divisor.Mul(qAttached)
	require.NoError(t, err)

	sum, err := prod.Add(rAttached)
	require.NoError(t, err)

	require.NoError(t, dividend.CheckEquals(sum))

	lessThan, err := s.Extern("LessThan",
		[]ExternInput{{Name: "in", Shape: Vector(2)}},
		ScalarOutput("out"), 8)
	require.NoError(t, err)

	ltOut, err := lessThan.Call(map[string]ExternArg{"in": []ExternArg{rAttached, divisor}})
	require.NoError(t, err)

	require.NoError(t, ltOut.CheckEquals(s.Constant(1)))

	out, err := s.Generate(rAttached)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "include "))
	assert.Contains(t, out, "component LessThan_0 = LessThan(8);")
	assert.Contains(t, out, "LessThan_0.in[0] <== ")
	assert.Contains(t, out, "LessThan_0.in[1] <== ")
	assert.Contains(t, out, "LessThan_0.out === 1;")
}

func TestGenerate_EachNodeEmittedOnce(t *testing.T) {
	s := NewSession()

	a, _ := s.Input("a", false)
	b, _ := s.Input("b", false)

	sum, err := a.Add(b)
	require.NoError(t, err)

	diff, err := a.Sub(b)
	require.NoError(t, err)

	require.NoError(t, sum.CheckEquals(diff))

	out, err := s.Generate(sum)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "signal input a;"))
	assert.Equal(t, 1, strings.Count(out, "signal input b;"))
}

func TestGenerate_RejectsForeignSessionOutput(t *testing.T) {
	s1 := NewSession()
	s2 := NewSession()

	a, _ := s1.Input("a", false)
	_, _ = s2.Input("b", false)

	_, err := s2.Generate(a)
	require.Error(t, err)
}
