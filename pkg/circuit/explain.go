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
)

// Explain renders a Lisp-style dump of the DAG rooted at output: one
// parenthesized form per node, children nested inside their parent. It never
// touches the name registries or the arena beyond reading them, and plays no
// part in Generate; it exists purely so a build can be inspected before
// emission.
func (s *Session) Explain(output Value) (string, error) {
	if output.sess != s {
		return "", newError(UnreachableOutput, "output belongs to a different session")
	}

	var b strings.Builder
	s.explainNode(&b, output.id, 0)

	return b.String(), nil
}

func (s *Session) explainNode(b *strings.Builder, idx uint32, depth int) {
	n := s.node(idx)
	pad := strings.Repeat("  ", depth)

	fmt.Fprintf(b, "%s(%s %s", pad, n.kind, n.fullName)

	switch n.kind {
	case kInput:
		fmt.Fprintf(b, " :private %v", n.private)
	case kConstant:
		fmt.Fprintf(b, " :value %s", n.value.String())
	case kExternOp:
		fmt.Fprintf(b, " :template %s :component %s", n.externTemplate, n.componentName)
	case kExternOutput, kExternArray:
		fmt.Fprintf(b, " :field %s", n.outputField)
	case kExternArrayElem:
		fmt.Fprintf(b, " :field %s :index %d", n.outputField, n.arrayIndex)
	}

	if len(n.children) == 0 {
		b.WriteString(")")
		return
	}

	b.WriteString("\n")

	for i, c := range n.children {
		s.explainNode(b, c, depth+1)

		if i < len(n.children)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString(")")
}
