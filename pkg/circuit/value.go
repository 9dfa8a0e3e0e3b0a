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

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Value is a handle to one node in a session's DAG. It is the sole
// user-facing value type of the builder surface; signal-world and
// witness-world values share this one Go type (mirroring the teacher's
// single Expr wrapper over a tagged Term), and which world a Value
// currently occupies is determined dynamically from the underlying node.
type Value struct {
	sess *Session
	id   uint32
}

// World returns the algebraic world this value's underlying node occupies.
func (v Value) World() World {
	return v.sess.node(v.id).world
}

// lift converts x — expected to be a Value, an int64/int, or an fr.Element —
// into a Value in the same session as v, lifting plain numbers to Constant
// nodes. This is the Go analogue of the reference implementation's
// `isinstance(other, int)` literal-lifting checks at each operator.
func (v Value) lift(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		if t.sess != v.sess {
			return Value{}, newError(SessionMismatch, "operand belongs to a different session")
		}

		return t, nil
	case int64:
		return v.sess.Constant(t), nil
	case int:
		return v.sess.Constant(int64(t)), nil
	case fr.Element:
		return v.sess.ConstantElement(t), nil
	default:
		return Value{}, newError(WorldMismatch, "unsupported operand type %T", x)
	}
}

func combineWorld(a, b World) World {
	if a == WorldWitness || b == WorldWitness {
		return WorldWitness
	}

	return WorldSignal
}

func (v Value) short() string {
	return v.sess.node(v.id).shortName
}

// binary is the shared implementation behind Add/Sub/Mul: it lifts other,
// combines worlds, and allocates the correctly-tagged node.
func (v Value) binary(other any, signalKind, witnessKind kind, connector string) (Value, error) {
	rhs, err := v.lift(other)
	if err != nil {
		return Value{}, err
	}

	world := combineWorld(v.World(), rhs.World())

	k := signalKind
	if world == WorldWitness {
		k = witnessKind
	}

	shortName := fmt.Sprintf("%s_%s_%s", v.short(), connector, rhs.short())
	id := v.sess.newBinaryLike(k, world, shortName, []uint32{v.id, rhs.id})

	return Value{v.sess, id}, nil
}

// Add constructs the sum of v and other (a Value or int64). Signal plus
// signal yields a signal-world Add; any witness-world operand yields a
// witness-world VarAdd.
func (v Value) Add(other any) (Value, error) {
	return v.binary(other, kAdd, kVarAdd, "plus")
}

// Sub constructs the difference v - other.
func (v Value) Sub(other any) (Value, error) {
	return v.binary(other, kSub, kVarSub, "minus")
}

// Mul constructs the product v * other.
func (v Value) Mul(other any) (Value, error) {
	return v.binary(other, kMul, kVarMul, "times")
}

// requireWitnessDivisor implements the reference implementation's asymmetric
// assertion on a Div/Mod right-hand side: when the left-hand side is not
// itself already witness-world, the divisor may not be lifted from a plain
// literal or a signal-world value — it must already be a witness-world
// value obtained via Detach. When the left-hand side is already
// witness-world, any operand is accepted and lifted freely.
func (v Value) requireWitnessDivisor(other any) (Value, error) {
	if v.World() == WorldWitness {
		return v.lift(other)
	}

	rhs, ok := other.(Value)
	if !ok || rhs.sess != v.sess || rhs.World() != WorldWitness {
		return Value{}, newError(WorldMismatch, "division and modulo require a witness-world divisor unless the left-hand side is already witness-world")
	}

	return rhs, nil
}

// Div constructs the witness-world division v / other.
func (v Value) Div(other any) (Value, error) {
	rhs, err := v.requireWitnessDivisor(other)
	if err != nil {
		return Value{}, err
	}

	shortName := fmt.Sprintf("%s_div_%s", v.short(), rhs.short())
	id := v.sess.newBinaryLike(kVarDiv, WorldWitness, shortName, []uint32{v.id, rhs.id})

	return Value{v.sess, id}, nil
}

// Mod constructs the witness-world remainder v % other.
func (v Value) Mod(other any) (Value, error) {
	rhs, err := v.requireWitnessDivisor(other)
	if err != nil {
		return Value{}, err
	}

	shortName := fmt.Sprintf("%s_mod_%s", v.short(), rhs.short())
	id := v.sess.newBinaryLike(kVarMod, WorldWitness, shortName, []uint32{v.id, rhs.id})

	return Value{v.sess, id}, nil
}

// comparison is the shared implementation behind Eq/Neq/And: these are
// witness-only operations (they had no definition on the signal-world base
// class in the reference implementation), so v itself must already be
// witness-world.
func (v Value) comparison(other any, k kind, connector string) (Value, error) {
	if v.World() != WorldWitness {
		return Value{}, newError(WorldMismatch, "%s is only defined on a witness-world value", k)
	}

	rhs, err := v.lift(other)
	if err != nil {
		return Value{}, err
	}

	shortName := fmt.Sprintf("%s_%s_%s", v.short(), connector, rhs.short())
	id := v.sess.newBinaryLike(k, WorldWitness, shortName, []uint32{v.id, rhs.id})

	return Value{v.sess, id}, nil
}

// Eq constructs the witness-world equality test v == other.
func (v Value) Eq(other any) (Value, error) { return v.comparison(other, kVarEq, "eq") }

// Neq constructs the witness-world inequality test v != other.
func (v Value) Neq(other any) (Value, error) { return v.comparison(other, kVarNeq, "neq") }

// And constructs the witness-world logical conjunction v && other.
func (v Value) And(other any) (Value, error) { return v.comparison(other, kVarAnd, "and") }

// Detach re-labels v as witness-world, regardless of its current world. The
// result is a passthrough Detachment sharing v's full name; it adds no
// declaration or statement of its own.
func (v Value) Detach() Value {
	n := v.sess.node(v.id)
	id := v.sess.push(node{
		kind:        kDetachment,
		world:       WorldWitness,
		passthrough: true,
		shortName:   n.shortName,
		fullName:    n.fullName,
		children:    []uint32{v.id},
	})

	return Value{v.sess, id}
}

// Attach re-labels a witness-world v as signal-world. It fails with
// WorldMismatch if v is not currently witness-world (the reference
// implementation only ever defined this coercion on witness values). The
// result is a passthrough Attachment sharing v's full name.
func (v Value) Attach() (Value, error) {
	if v.World() != WorldWitness {
		return Value{}, newError(WorldMismatch, "attach requires a witness-world value")
	}

	n := v.sess.node(v.id)
	id := v.sess.push(node{
		kind:        kAttachment,
		world:       WorldSignal,
		passthrough: true,
		shortName:   n.shortName,
		fullName:    n.fullName,
		children:    []uint32{v.id},
	})

	return Value{v.sess, id}, nil
}

// CheckEquals registers a signal-world equality constraint (v === other) in
// v's session, in call order. Both operands must resolve to signal-world
// (after passthrough resolution); int64 literals are lifted to Constant.
func (v Value) CheckEquals(other any) error {
	rhs, err := v.lift(other)
	if err != nil {
		return err
	}

	if v.World() != WorldSignal && v.World() != WorldPassthrough {
		return newError(WorldMismatch, "check_equals left-hand side must be signal-world")
	}

	if rhs.World() != WorldSignal && rhs.World() != WorldPassthrough {
		return newError(WorldMismatch, "check_equals right-hand side must be signal-world")
	}

	v.sess.constraints = append(v.sess.constraints, constraintPair{v.id, rhs.id})

	return nil
}
