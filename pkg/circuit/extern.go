// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package circuit

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Shape describes the arity of one Extern input: either a scalar, or a
// fixed-width vector.
type Shape struct {
	vector bool
	width  int
}

// Scalar constructs a scalar input shape.
func Scalar() Shape { return Shape{} }

// Vector constructs a fixed-width vector input shape of width n.
func Vector(n int) Shape { return Shape{vector: true, width: n} }

// ExternInput is one entry of an Extern's ordered input signature.
type ExternInput struct {
	Name  string
	Shape Shape
}

type outputKind uint8

const (
	outputNone outputKind = iota
	outputScalar
	outputVector
)

// Output describes an Extern's output signature: none, a named scalar
// field, or a named single-field vector.
type Output struct {
	kind  outputKind
	field string
}

// NoOutput declares a template with no output.
func NoOutput() Output { return Output{kind: outputNone} }

// ScalarOutput declares a template whose output is the scalar field.
func ScalarOutput(field string) Output { return Output{kind: outputScalar, field: field} }

// VectorOutput declares a template whose output is the single vector field.
func VectorOutput(field string) Output { return Output{kind: outputVector, field: field} }

// Extern is a typed descriptor for an externally-defined template: its
// name, ordered input signature, output signature, and template arguments.
type Extern struct {
	sess   *Session
	name   string
	inputs []ExternInput
	output Output
	args   []int64
}

// Extern constructs and validates a new Extern descriptor.
func (s *Session) Extern(name string, inputs []ExternInput, output Output, args ...int64) (*Extern, error) {
	if output.kind == outputScalar && output.field == "" {
		return nil, newError(BadExternSignature, "scalar output of %q must name a field", name)
	}

	if output.kind == outputVector && output.field == "" {
		return nil, newError(BadExternSignature, "vector output of %q must name a field", name)
	}

	for _, in := range inputs {
		if in.Shape.vector && in.Shape.width <= 0 {
			return nil, newError(BadExternSignature, "vector input %q of %q must have positive width", in.Name, name)
		}
	}

	return &Extern{s, name, inputs, output, args}, nil
}

// ExternArg is the type of one value bound to an Extern input in a Call: a
// Value, a plain int64/int (lifted to Constant), a []any of such for a
// vector input bound element-wise, or the vector-output Value returned by a
// previous Call, wiring that whole vector output.
type ExternArg = any

// Call binds the given named arguments against this Extern's input
// signature and instantiates one component. bindings keys may carry a
// leading underscore (stripped before matching), preserved from the
// reference implementation's convention for binding reserved words like
// "in".
func (e *Extern) Call(bindings map[string]ExternArg) (Value, error) {
	s := e.sess
	remaining := make(map[string]ExternArg, len(bindings))

	for k, v := range bindings {
		remaining[strings.TrimPrefix(k, "_")] = v
	}

	var (
		children    []uint32
		assignments []assignment
	)

	for _, in := range e.inputs {
		arg, ok := remaining[in.Name]
		if !ok {
			return Value{}, newError(ShapeMismatch, "missing binding for input %q of %q", in.Name, e.name)
		}

		delete(remaining, in.Name)

		if in.Shape.vector {
			a, ids, err := bindVector(s, in, arg)
			if err != nil {
				return Value{}, err
			}

			children = append(children, ids...)
			assignments = append(assignments, a)
		} else {
			val, err := s.liftExternArg(arg)
			if err != nil {
				return Value{}, newError(ShapeMismatch, "scalar input %q of %q: %s", in.Name, e.name, err)
			}

			children = append(children, val.id)
			assignments = append(assignments, assignment{name: in.Name, kind: assignScalar, scalar: val.id})
		}
	}

	if len(remaining) != 0 {
		for k := range remaining {
			return Value{}, newError(ShapeMismatch, "unexpected binding %q for %q", k, e.name)
		}
	}

	componentName := s.uniqueComponentName(e.name)
	opID := s.push(node{
		kind:           kExternOp,
		world:          WorldSignal,
		passthrough:    true,
		shortName:      componentName,
		fullName:       componentName,
		children:       children,
		externTemplate: e.name,
		externArgs:     append([]int64(nil), e.args...),
		assignments:    assignments,
		componentName:  componentName,
	})
	s.addRoot(opID)
	log.Debugf("circuit: instantiated component %s = %s(...)", componentName, e.name)

	switch e.output.kind {
	case outputScalar:
		id := s.push(node{
			kind:          kExternOutput,
			world:         WorldSignal,
			passthrough:   true,
			shortName:     componentName,
			fullName:      componentName + "." + e.output.field,
			children:      []uint32{opID},
			outputField:   e.output.field,
			componentName: componentName,
		})

		return Value{s, id}, nil
	case outputVector:
		id := s.push(node{
			kind:          kExternArray,
			world:         WorldSignal,
			passthrough:   true,
			shortName:     componentName,
			fullName:      componentName + "." + e.output.field,
			children:      []uint32{opID},
			outputField:   e.output.field,
			componentName: componentName,
		})

		return Value{s, id}, nil
	default:
		return Value{}, nil
	}
}

// Index addresses the i'th element of a vector-output Value (one returned
// by Call for a template with a VectorOutput), yielding an ExternArrayElem
// handle ("component.field[i]"). It fails if v does not wrap a vector
// output.
func (v Value) Index(i int) (Value, error) {
	n := v.sess.node(v.id)
	if n.kind != kExternArray {
		return Value{}, newError(ShapeMismatch, "value is not a vector-output handle")
	}

	id := v.sess.push(node{
		kind:        kExternArrayElem,
		world:       WorldSignal,
		passthrough: true,
		shortName:   n.shortName,
		fullName:    fmt.Sprintf("%s.%s[%d]", n.componentName, n.outputField, i),
		children:    []uint32{v.id},
		outputField: n.outputField,
		arrayIndex:  i,
	})

	return Value{v.sess, id}, nil
}

// bindVector resolves one vector-input binding, either a slice of
// Value/int64 elements or a vector-output Value wired element-wise via a
// loop.
func bindVector(s *Session, in ExternInput, arg ExternArg) (assignment, []uint32, error) {
	switch a := arg.(type) {
	case []ExternArg:
		if len(a) != in.Shape.width {
			return assignment{}, nil, newError(ShapeMismatch,
				"vector input %q expects width %d, got %d", in.Name, in.Shape.width, len(a))
		}

		ids := make([]uint32, len(a))

		for i, elem := range a {
			val, err := s.liftExternArg(elem)
			if err != nil {
				return assignment{}, nil, newError(ShapeMismatch, "vector input %q[%d]: %s", in.Name, i, err)
			}

			ids[i] = val.id
		}

		return assignment{name: in.Name, kind: assignElems, elems: ids}, ids, nil
	case Value:
		if a.sess.node(a.id).kind != kExternArray {
			return assignment{}, nil, newError(ShapeMismatch,
				"vector input %q requires a slice of operands or a vector-output handle", in.Name)
		}

		assgn := assignment{name: in.Name, kind: assignArray, array: a.id, width: in.Shape.width}

		return assgn, []uint32{a.id}, nil
	default:
		return assignment{}, nil, newError(ShapeMismatch, "vector input %q: unsupported argument type %T", in.Name, arg)
	}
}

// liftExternArg resolves a Value or plain integer into a Value; unlike
// Value.lift this has no "self" to compare sessions against, so it is a
// Session method used only inside the Extern-binding path.
func (s *Session) liftExternArg(x ExternArg) (Value, error) {
	switch t := x.(type) {
	case Value:
		if t.sess != s {
			return Value{}, newError(SessionMismatch, "operand belongs to a different session")
		}

		return t, nil
	case int64:
		return s.Constant(t), nil
	case int:
		return s.Constant(int64(t)), nil
	default:
		return Value{}, newError(ShapeMismatch, "unsupported operand type %T", x)
	}
}
