package circuit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtern_BadSignatureRejected(t *testing.T) {
	s := NewSession()

	_, err := s.Extern("LessThan", nil, ScalarOutput(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadExternSignature))

	_, err = s.Extern("Foo", []ExternInput{{Name: "in", Shape: Vector(0)}}, NoOutput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadExternSignature))
}

func TestExtern_ScalarCallBindsAndNames(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		ScalarOutput("out"))
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	out, err := sq.Call(map[string]ExternArg{"in": x})
	require.NoError(t, err)
	assert.Equal(t, kExternOutput, s.node(out.id).kind)
	assert.Equal(t, "Square_0.out", s.node(out.id).fullName)
}

func TestExtern_MissingBindingFails(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		ScalarOutput("out"))
	require.NoError(t, err)

	_, err = sq.Call(map[string]ExternArg{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestExtern_UnexpectedBindingFails(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		ScalarOutput("out"))
	require.NoError(t, err)

	x, _ := s.Input("x", false)
	y, _ := s.Input("y", false)

	_, err = sq.Call(map[string]ExternArg{"in": x, "extra": y})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestExtern_UnderscorePrefixStripped(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		ScalarOutput("out"))
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	_, err = sq.Call(map[string]ExternArg{"_in": x})
	require.NoError(t, err)
}

func TestExtern_VectorCallWithWrongWidthFails(t *testing.T) {
	s := NewSession()

	lt, err := s.Extern("LessThan",
		[]ExternInput{{Name: "in", Shape: Vector(2)}},
		ScalarOutput("out"), 8)
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	_, err = lt.Call(map[string]ExternArg{"in": []ExternArg{x}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestExtern_VectorOutputIndex(t *testing.T) {
	s := NewSession()

	out2, err := s.Extern("Out2",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		VectorOutput("outs"))
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	vec, err := out2.Call(map[string]ExternArg{"in": x})
	require.NoError(t, err)
	assert.Equal(t, kExternArray, s.node(vec.id).kind)

	elem, err := vec.Index(0)
	require.NoError(t, err)
	assert.Equal(t, "Out2_0.outs[0]", s.node(elem.id).fullName)
}

func TestExtern_IndexOnNonVectorFails(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		ScalarOutput("out"))
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	out, err := sq.Call(map[string]ExternArg{"in": x})
	require.NoError(t, err)

	_, err = out.Index(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestExtern_ArrayToArrayWiring(t *testing.T) {
	s := NewSession()

	producer, err := s.Extern("Producer", nil, VectorOutput("outs"))
	require.NoError(t, err)

	prodInst, err := producer.Call(map[string]ExternArg{})
	require.NoError(t, err)

	consumer, err := s.Extern("Consumer",
		[]ExternInput{{Name: "in", Shape: Vector(3)}},
		NoOutput())
	require.NoError(t, err)

	_, err = consumer.Call(map[string]ExternArg{"in": prodInst})
	require.NoError(t, err)
}

func TestExtern_CallInstancesRegisterAsRoots(t *testing.T) {
	s := NewSession()

	sq, err := s.Extern("Square",
		[]ExternInput{{Name: "in", Shape: Scalar()}},
		NoOutput())
	require.NoError(t, err)

	x, _ := s.Input("x", false)

	_, err = sq.Call(map[string]ExternArg{"in": x})
	require.NoError(t, err)
	assert.Len(t, s.roots, 1)
}
