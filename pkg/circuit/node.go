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

// Package circuit implements the two-world expression DAG and code generator
// at the heart of this module: a builder API for assembling arithmetic
// circuits out of constrained signals and off-circuit witness variables, and
// an emitter which lowers the resulting graph to a single Circom-like
// template.
package circuit

import "github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

// World identifies which algebraic world a node's value belongs to.
type World uint8

const (
	// WorldSignal identifies values related by quadratic constraints in the
	// emitted circuit (bound via <== and ===).
	WorldSignal World = iota
	// WorldWitness identifies off-circuit prover-only values (bound via <--).
	WorldWitness
	// WorldPassthrough identifies values with no world of their own
	// (constants); they combine freely with either world.
	WorldPassthrough
)

// kind tags the variant a node instance represents. Rather than one Go type
// per node variant (which would require an interface and a type switch
// anyway), every node is a single tagged struct stored in the session's
// arena; kind selects which of the struct's fields are meaningful and how
// the emitter should render it.
type kind uint8

const (
	kInput kind = iota
	kConstant
	kAdd
	kSub
	kMul
	kVarAdd
	kVarSub
	kVarMul
	kVarDiv
	kVarMod
	kVarEq
	kVarNeq
	kVarAnd
	kVarCond
	kDetachment
	kAttachment
	kIdentity
	kExternOp
	kExternOutput
	kExternArray
	kExternArrayElem
)

// binOpSymbol gives the infix operator text for the binary/comparison node
// kinds; kinds outside this table are not simple infix operators.
var binOpSymbol = map[kind]string{
	kAdd: "+", kSub: "-", kMul: "*",
	kVarAdd: "+", kVarSub: "-", kVarMul: "*", kVarDiv: "/", kVarMod: "%",
	kVarEq: "==", kVarNeq: "!=", kVarAnd: "&&",
}

// node is one entry in a session's arena. Its fields are a union over all
// node kinds; only the subset relevant to `kind` is populated.
type node struct {
	kind        kind
	world       World
	passthrough bool
	children    []uint32
	shortName   string
	fullName    string

	// kInput
	private bool

	// kConstant
	value fr.Element

	// kExternOp
	externTemplate string
	externArgs     []int64
	assignments    []assignment
	componentName  string

	// kExternOutput / kExternArray / kExternArrayElem
	outputField string
	arrayIndex  int
}

// assignment records one input binding of an ExternOp, in declaration order.
// Exactly one of scalar, elems, or array is meaningful, selected by kind.
type assignment struct {
	name  string
	kind  assignmentKind
	scalar uint32   // assignScalar
	elems  []uint32 // assignElems
	array  uint32   // assignArray: index of the ExternArray node supplying the loop
	width  int      // width of the vector (for assignArray's loop bound)
}

type assignmentKind uint8

const (
	assignScalar assignmentKind = iota
	assignElems
	assignArray
)

func (k kind) String() string {
	switch k {
	case kInput:
		return "Input"
	case kConstant:
		return "Constant"
	case kAdd:
		return "Add"
	case kSub:
		return "Sub"
	case kMul:
		return "Mul"
	case kVarAdd:
		return "VarAdd"
	case kVarSub:
		return "VarSub"
	case kVarMul:
		return "VarMul"
	case kVarDiv:
		return "VarDiv"
	case kVarMod:
		return "VarMod"
	case kVarEq:
		return "VarEq"
	case kVarNeq:
		return "VarNeq"
	case kVarAnd:
		return "VarAnd"
	case kVarCond:
		return "VarCond"
	case kDetachment:
		return "Detachment"
	case kAttachment:
		return "Attachment"
	case kIdentity:
		return "IdentityOp"
	case kExternOp:
		return "ExternOp"
	case kExternOutput:
		return "ExternOutput"
	case kExternArray:
		return "ExternArray"
	case kExternArrayElem:
		return "ExternArrayElem"
	default:
		return "Unknown"
	}
}
