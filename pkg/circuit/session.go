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
	log "github.com/sirupsen/logrus"
)

// constraintPair is a single registered equality constraint, recorded in
// call order.
type constraintPair struct {
	left, right uint32
}

// Session is a process-local workspace owning an arena of nodes, the name
// registries, the include set, and the constraint list. A Session is never
// shared across goroutines and all nodes it births are scoped to it.
type Session struct {
	nodes           []node
	names           map[string]struct{}
	componentNames  map[string]struct{}
	includes        map[string]struct{}
	includeOrder    []string
	constraints     []constraintPair
	roots           []uint32
}

// NewSession constructs a fresh, empty session.
func NewSession() *Session {
	return &Session{
		names:          make(map[string]struct{}),
		componentNames: make(map[string]struct{}),
		includes:       make(map[string]struct{}),
	}
}

// Include records an include path. Duplicates are coalesced; the path is
// not read or validated (that is the downstream compiler's job).
func (s *Session) Include(path string) {
	if _, ok := s.includes[path]; ok {
		return
	}

	s.includes[path] = struct{}{}
	s.includeOrder = append(s.includeOrder, path)
}

// Input constructs a new signal-world input node. It fails with NameClash if
// name has already been claimed in this session.
func (s *Session) Input(name string, private bool) (Value, error) {
	if _, ok := s.names[name]; ok {
		return Value{}, newError(NameClash, "input named %q not unique in the session", name)
	}

	id := s.push(node{
		kind:      kInput,
		world:     WorldSignal,
		shortName: name,
		fullName:  name,
		private:   private,
	})
	s.names[name] = struct{}{}
	log.Debugf("circuit: declared input %q (private=%v)", name, private)

	return Value{s, id}, nil
}

// Constant constructs a passthrough constant node from a plain integer,
// lifting it into the BLS12-377 scalar field the surrounding proof system
// operates over.
func (s *Session) Constant(v int64) Value {
	var elem fr.Element

	neg := v < 0
	if neg {
		elem.SetUint64(uint64(-v))
		elem.Neg(&elem)
	} else {
		elem.SetUint64(uint64(v))
	}

	return s.constantNode(elem, fmt.Sprintf("%d", v))
}

// ConstantElement constructs a passthrough constant node from an arbitrary
// field element, for callers working directly in BLS12-377 scalars.
func (s *Session) ConstantElement(v fr.Element) Value {
	return s.constantNode(v, v.String())
}

func (s *Session) constantNode(v fr.Element, text string) Value {
	id := s.push(node{
		kind:        kConstant,
		world:       WorldPassthrough,
		passthrough: true,
		shortName:   fmt.Sprintf("c%s", text),
		fullName:    text,
		value:       v,
	})

	return Value{s, id}
}

// Cond constructs a witness-world ternary: pred, t and f must all belong to
// this session.
func (s *Session) Cond(pred, t, f Value) (Value, error) {
	if pred.sess != s || t.sess != s || f.sess != s {
		return Value{}, newError(SessionMismatch, "cond operands must all belong to the same session")
	}

	id := s.newBinaryLike(kVarCond, WorldWitness, fmt.Sprintf("if_%s", s.node(pred.id).shortName),
		[]uint32{pred.id, t.id, f.id})

	return Value{s, id}, nil
}

// push appends a node to the arena, assigning it a unique full name (unless
// it is passthrough or an input, which keeps its raw name) and returning its
// stable index.
func (s *Session) push(n node) uint32 {
	if !n.passthrough && n.kind != kInput {
		n.fullName = s.uniqueName(n.shortName)
		s.names[n.fullName] = struct{}{}
	}

	idx := uint32(len(s.nodes))
	s.nodes = append(s.nodes, n)

	return idx
}

// uniqueName appends the conventional "__" suffix to shortName and, if that
// full name already exists in this session, appends "_0", "_1", … until a
// free name is found.
func (s *Session) uniqueName(shortName string) string {
	candidate := shortName + "__"
	if _, taken := s.names[candidate]; !taken {
		return candidate
	}

	for i := 0; ; i++ {
		candidate = fmt.Sprintf("%s_%d__", shortName, i)
		if _, taken := s.names[candidate]; !taken {
			return candidate
		}
	}
}

// uniqueComponentName finds the smallest k >= 0 such that "{template}_{k}" is
// unclaimed in the component-name registry (disjoint from the signal-name
// registry), claims it, and returns it.
func (s *Session) uniqueComponentName(template string) string {
	for k := 0; ; k++ {
		candidate := fmt.Sprintf("%s_%d", template, k)
		if _, taken := s.componentNames[candidate]; !taken {
			s.componentNames[candidate] = struct{}{}
			return candidate
		}
	}
}

// node returns the arena entry for idx.
func (s *Session) node(idx uint32) *node {
	return &s.nodes[idx]
}

// addRoot registers idx as a session root: a node emitted unconditionally by
// Generate regardless of whether it is reached from the requested output or
// any constraint.
func (s *Session) addRoot(idx uint32) {
	s.roots = append(s.roots, idx)
}

// newBinaryLike allocates a non-passthrough node of the given kind/world
// with the given short name and children, the common case shared by all the
// binary and ternary arithmetic/comparison constructors.
func (s *Session) newBinaryLike(k kind, world World, shortName string, children []uint32) uint32 {
	id := s.push(node{
		kind:      k,
		world:     world,
		shortName: shortName,
		children:  children,
	})
	log.Debugf("circuit: built %v node %q", k, s.node(id).shortName)

	return id
}
