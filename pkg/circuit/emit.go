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
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"
)

// Generate lowers the session's DAG, reachable from output, every root
// registered by an Extern Call, and every CheckEquals constraint, into a
// single Circom-like template. Every reachable node is visited exactly once
// (tracked with a bitset keyed on arena index); children are always emitted
// before their parent.
func (s *Session) Generate(output Value) (string, error) {
	if output.sess != s {
		return "", newError(UnreachableOutput, "output belongs to a different session")
	}

	if s.node(output.id).passthrough {
		id := s.push(node{
			kind:      kIdentity,
			world:     WorldSignal,
			shortName: s.node(output.id).shortName,
			children:  []uint32{output.id},
		})
		output = Value{s, id}
	}

	visited := bitset.New(uint(len(s.nodes)))

	var signals, statements []string

	sig, stmt := s.walk(output.id, visited, false)
	signals = append(signals, sig...)
	statements = append(statements, stmt...)

	for _, root := range s.roots {
		sig, stmt := s.walk(root, visited, true)
		signals = append(signals, sig...)
		statements = append(statements, stmt...)
	}

	for _, c := range s.constraints {
		sig, stmt := s.walk(c.left, visited, true)
		signals = append(signals, sig...)
		statements = append(statements, stmt...)

		sig, stmt = s.walk(c.right, visited, true)
		signals = append(signals, sig...)
		statements = append(statements, stmt...)

		statements = append(statements, fmt.Sprintf("%s === %s;", s.node(c.left).fullName, s.node(c.right).fullName))
	}

	signals = append(signals, fmt.Sprintf("signal output %s;", s.node(output.id).fullName))

	main := strings.Join(signals, "\n") + "\n\n" + strings.Join(statements, "\n")

	var includes []string
	for _, path := range s.includeOrder {
		includes = append(includes, fmt.Sprintf("include %q;", path))
	}

	circom := fmt.Sprintf("%s\n\ntemplate Main() {\n%s\n}\n\ncomponent main = Main();",
		strings.Join(includes, "\n"), indentBlock(main, "    "))

	log.Debugf("circuit: generated %d signal(s), %d statement(s)", len(signals), len(statements))

	return circom, nil
}

// walk visits idx and, transitively, every child not yet in visited,
// returning the accumulated declaration and statement text in child-before-
// parent order. Detachment and Attachment nodes are transparent: walking one
// walks straight through to the wrapped node without marking the wrapper
// itself visited, mirroring their delegating generation in the reference
// implementation.
func (s *Session) walk(idx uint32, visited *bitset.BitSet, includeSelf bool) ([]string, []string) {
	n := s.node(idx)
	if n.kind == kDetachment || n.kind == kAttachment {
		return s.walk(n.children[0], visited, includeSelf)
	}

	if visited.Test(uint(idx)) {
		return nil, nil
	}

	visited.Set(uint(idx))

	var signals, statements []string

	for _, c := range n.children {
		sig, stmt := s.walk(c, visited, true)
		signals = append(signals, sig...)
		statements = append(statements, stmt...)
	}

	if includeSelf {
		if d := declText(n); d != "" {
			signals = append(signals, d)
		}
	}

	statements = append(statements, s.statementText(n)...)

	return signals, statements
}

// declText returns the "signal ...;" declaration for n, or "" if n's kind
// never declares a signal of its own (constants and every Extern-family
// node, which only ever reference a component's field).
func declText(n *node) string {
	switch n.kind {
	case kInput:
		if n.private {
			return fmt.Sprintf("signal private input %s;", n.fullName)
		}

		return fmt.Sprintf("signal input %s;", n.fullName)
	case kConstant, kExternOp, kExternOutput, kExternArray, kExternArrayElem:
		return ""
	default:
		return fmt.Sprintf("signal %s;", n.fullName)
	}
}

// statementText returns the statement(s) n contributes, if any.
func (s *Session) statementText(n *node) []string {
	switch n.kind {
	case kInput, kConstant, kExternOutput, kExternArray, kExternArrayElem:
		return nil
	case kExternOp:
		return s.externOpStatements(n)
	case kIdentity:
		child := s.node(n.children[0])
		return []string{fmt.Sprintf("%s <== %s;", n.fullName, child.fullName)}
	case kVarCond:
		pred := s.node(n.children[0])
		left := s.node(n.children[1])
		right := s.node(n.children[2])

		return []string{fmt.Sprintf("if (%s == 1) { %s <-- %s; } else { %s <-- %s; }",
			pred.fullName, n.fullName, left.fullName, n.fullName, right.fullName)}
	default:
		sym, ok := binOpSymbol[n.kind]
		if !ok {
			return nil
		}

		left := s.node(n.children[0])
		right := s.node(n.children[1])

		arrow := "<=="
		if n.world == WorldWitness {
			arrow = "<--"
		}

		return []string{fmt.Sprintf("%s %s %s %s %s;", n.fullName, arrow, left.fullName, sym, right.fullName)}
	}
}

// externOpStatements renders a component instantiation and its ordered
// input-binding statements for an ExternOp node.
func (s *Session) externOpStatements(n *node) []string {
	args := make([]string, len(n.externArgs))
	for i, a := range n.externArgs {
		args[i] = strconv.FormatInt(a, 10)
	}

	stmts := []string{fmt.Sprintf("component %s = %s(%s);", n.componentName, n.externTemplate, strings.Join(args, ", "))}

	for _, a := range n.assignments {
		switch a.kind {
		case assignScalar:
			stmts = append(stmts, fmt.Sprintf("%s.%s <== %s;", n.componentName, a.name, s.node(a.scalar).fullName))
		case assignElems:
			for i, elemID := range a.elems {
				stmts = append(stmts, fmt.Sprintf("%s.%s[%d] <== %s;", n.componentName, a.name, i, s.node(elemID).fullName))
			}
		case assignArray:
			src := s.node(a.array)
			stmts = append(stmts, fmt.Sprintf(
				"for (var i__ = 0; i__ < %d; i__++) { %s.%s[i__] <== %s.%s[i__]; }",
				a.width, n.componentName, a.name, src.componentName, src.outputField))
		}
	}

	return stmts
}

// indentBlock prefixes every non-empty line of s with prefix, matching
// Python's textwrap.indent default of leaving blank lines untouched.
func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}

		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n")
}
