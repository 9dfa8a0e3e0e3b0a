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

// Package examples bundles a handful of small circuits exercising the
// circuit package's builder surface, driven by the CLI in cmd/circomdsl.
package examples

import "github.com/go-circom/dsl/pkg/circuit"

// Build constructs a named example circuit, returning the session it was
// built in and the value to pass to Generate/Explain.
type Build func() (*circuit.Session, circuit.Value, error)

// registry maps example names to their builders, in the fixed order
// reported by Names.
var registry = []struct {
	name  string
	build Build
}{
	{"divmod", DivMod},
	{"modinverse", ModInverse},
	{"boundeddiv", BoundedDiv},
	{"duplicatecalls", DuplicateCalls},
	{"arraywiring", ArrayWiring},
}

// Names returns the bundled example names, in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}

	return names
}

// Lookup returns the builder for name, or false if no such example exists.
func Lookup(name string) (Build, bool) {
	for _, e := range registry {
		if e.name == name {
			return e.build, true
		}
	}

	return nil, false
}

// DivMod builds the div/mod scenario: a public dividend split into quotient
// and remainder against the literal divisor 2, reconstructed and range
// checked algebraically, with a small additional output combining the
// remainder with a private input.
func DivMod() (*circuit.Session, circuit.Value, error) {
	s := circuit.NewSession()

	a, err := s.Input("a", false)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	b, err := s.Input("b", true)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	rawQ, err := a.Detach().Div(int64(2))
	if err != nil {
		return nil, circuit.Value{}, err
	}

	c, err := rawQ.Attach()
	if err != nil {
		return nil, circuit.Value{}, err
	}

	rawR, err := a.Detach().Mod(int64(2))
	if err != nil {
		return nil, circuit.Value{}, err
	}

	d, err := rawR.Attach()
	if err != nil {
		return nil, circuit.Value{}, err
	}

	cTimes2, err := c.Mul(int64(2))
	if err != nil {
		return nil, circuit.Value{}, err
	}

	recon, err := cTimes2.Add(d)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	if err := a.CheckEquals(recon); err != nil {
		return nil, circuit.Value{}, err
	}

	oneMinusD, err := circuitSub(s, 1, d)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	dBoolean, err := d.Mul(oneMinusD)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	if err := dBoolean.CheckEquals(int64(0)); err != nil {
		return nil, circuit.Value{}, err
	}

	dPlusB, err := d.Add(b)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	output, err := dPlusB.Add(int64(2))
	if err != nil {
		return nil, circuit.Value{}, err
	}

	return s, output, nil
}

// ModInverse builds the division-by-a-private-divisor scenario: the
// classic "c = a / b" witness shortcut, re-anchored with check_equals(a,
// b*c).
func ModInverse() (*circuit.Session, circuit.Value, error) {
	s := circuit.NewSession()

	a, err := s.Input("a", false)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	b, err := s.Input("b", true)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	rawC, err := a.Detach().Div(b)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	c, err := rawC.Attach()
	if err != nil {
		return nil, circuit.Value{}, err
	}

	bTimesC, err := b.Mul(c)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	if err := a.CheckEquals(bTimesC); err != nil {
		return nil, circuit.Value{}, err
	}

	return s, c, nil
}

// BoundedDiv builds the bounded-division scenario: quotient and remainder
// of a private dividend by a private divisor, reconstructed algebraically
// and range-checked against the divisor via a bundled LessThan extern.
func BoundedDiv() (*circuit.Session, circuit.Value, error) {
	const bits = 8

	s := circuit.NewSession()

	dividend, err := s.Input("dividend", true)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	divisor, err := s.Input("divisor", true)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	rawR, err := dividend.Detach().Mod(divisor.Detach())
	if err != nil {
		return nil, circuit.Value{}, err
	}

	remainder, err := rawR.Attach()
	if err != nil {
		return nil, circuit.Value{}, err
	}

	dividendMinusR, err := dividend.Sub(remainder)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	rawQ, err := dividendMinusR.Detach().Div(divisor.Detach())
	if err != nil {
		return nil, circuit.Value{}, err
	}

	quotient, err := rawQ.Attach()
	if err != nil {
		return nil, circuit.Value{}, err
	}

	divisorTimesQ, err := divisor.Mul(quotient)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	recon, err := divisorTimesQ.Add(remainder)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	if err := dividend.CheckEquals(recon); err != nil {
		return nil, circuit.Value{}, err
	}

	s.Include("circomlib/circuits/comparators.circom")

	lessThan, err := s.Extern("LessThan",
		[]circuit.ExternInput{{Name: "in", Shape: circuit.Vector(2)}},
		circuit.ScalarOutput("out"), bits)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	ltOut, err := lessThan.Call(map[string]circuit.ExternArg{
		"_in": []circuit.ExternArg{remainder, divisor},
	})
	if err != nil {
		return nil, circuit.Value{}, err
	}

	if err := ltOut.CheckEquals(int64(1)); err != nil {
		return nil, circuit.Value{}, err
	}

	return s, remainder, nil
}

// DuplicateCalls builds two independent LessThan instantiations in one
// session, demonstrating the component-naming collision rule (LessThan_0,
// LessThan_1).
func DuplicateCalls() (*circuit.Session, circuit.Value, error) {
	const bits = 8

	s := circuit.NewSession()

	a, err := s.Input("a", false)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	b, err := s.Input("b", false)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	s.Include("circomlib/circuits/comparators.circom")

	lessThan, err := s.Extern("LessThan",
		[]circuit.ExternInput{{Name: "in", Shape: circuit.Vector(2)}},
		circuit.ScalarOutput("out"), bits)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	first, err := lessThan.Call(map[string]circuit.ExternArg{
		"_in": []circuit.ExternArg{a, b},
	})
	if err != nil {
		return nil, circuit.Value{}, err
	}

	// The second instantiation is a session root (registered unconditionally
	// by Call) and is emitted regardless of whether anything reaches it from
	// the output below.
	_, err = lessThan.Call(map[string]circuit.ExternArg{
		"_in": []circuit.ExternArg{b, a},
	})
	if err != nil {
		return nil, circuit.Value{}, err
	}

	return s, first, nil
}

// ArrayWiring builds a producer/consumer pair of externs where the
// consumer's vector input is wired directly from the producer's vector
// output, exercising the array-to-array loop-statement path instead of
// per-element assignment.
func ArrayWiring() (*circuit.Session, circuit.Value, error) {
	s := circuit.NewSession()

	a, err := s.Input("a", false)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	producer, err := s.Extern("Splitter",
		[]circuit.ExternInput{{Name: "in", Shape: circuit.Scalar()}},
		circuit.VectorOutput("outs"), 3)
	if err != nil {
		return nil, circuit.Value{}, err
	}

	bits, err := producer.Call(map[string]circuit.ExternArg{"in": a})
	if err != nil {
		return nil, circuit.Value{}, err
	}

	consumer, err := s.Extern("Joiner",
		[]circuit.ExternInput{{Name: "in", Shape: circuit.Vector(3)}},
		circuit.ScalarOutput("out"))
	if err != nil {
		return nil, circuit.Value{}, err
	}

	joined, err := consumer.Call(map[string]circuit.ExternArg{"in": bits})
	if err != nil {
		return nil, circuit.Value{}, err
	}

	return s, joined, nil
}

// circuitSub computes lit - v by lifting lit to a Constant receiver, since
// Value.Sub only takes a literal on the right.
func circuitSub(s *circuit.Session, lit int64, v circuit.Value) (circuit.Value, error) {
	return s.Constant(lit).Sub(v)
}
