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
	"errors"
	"fmt"
)

// Kind identifies which of the builder's error taxonomy a BuilderError
// belongs to.
type Kind uint8

const (
	// NameClash indicates a duplicate input name within a session.
	NameClash Kind = iota
	// SessionMismatch indicates an operand originated in a different
	// session than the operation it was passed to.
	SessionMismatch
	// WorldMismatch indicates a signal-world value was used where only a
	// witness-world value is valid, or vice versa, without an explicit
	// Detach/Attach coercion.
	WorldMismatch
	// ShapeMismatch indicates an Extern call was given the wrong vector
	// width, a missing input, or a scalar/vector type confusion.
	ShapeMismatch
	// BadExternSignature indicates a malformed Extern descriptor (an
	// output shape that is not scalar, a single-element vector, or
	// absent).
	BadExternSignature
	// UnreachableOutput indicates Generate was called with an output
	// belonging to a different session.
	UnreachableOutput
)

func (k Kind) String() string {
	switch k {
	case NameClash:
		return "NameClash"
	case SessionMismatch:
		return "SessionMismatch"
	case WorldMismatch:
		return "WorldMismatch"
	case ShapeMismatch:
		return "ShapeMismatch"
	case BadExternSignature:
		return "BadExternSignature"
	case UnreachableOutput:
		return "UnreachableOutput"
	default:
		return "UnknownError"
	}
}

// BuilderError is a structured error reported by the builder surface. It
// retains the error's Kind so callers can distinguish failure categories
// with errors.Is, following the same small-struct-implementing-error shape
// used elsewhere for structured diagnostics.
type BuilderError struct {
	kind Kind
	msg  string
}

// newError constructs a new BuilderError.
func newError(kind Kind, format string, args ...any) *BuilderError {
	return &BuilderError{kind, fmt.Sprintf(format, args...)}
}

// Kind returns the category of this error.
func (e *BuilderError) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *BuilderError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Is supports errors.Is against the exported sentinel values below, matched
// purely on Kind (the sentinels carry no message of their own).
func (e *BuilderError) Is(target error) bool {
	var sentinel *BuilderError
	if errors.As(target, &sentinel) {
		return e.kind == sentinel.kind
	}

	return false
}

// Sentinel errors, one per Kind, for use with errors.Is(err, circuit.ErrXxx).
var (
	ErrNameClash          = &BuilderError{kind: NameClash}
	ErrSessionMismatch    = &BuilderError{kind: SessionMismatch}
	ErrWorldMismatch      = &BuilderError{kind: WorldMismatch}
	ErrShapeMismatch      = &BuilderError{kind: ShapeMismatch}
	ErrBadExternSignature = &BuilderError{kind: BadExternSignature}
	ErrUnreachableOutput  = &BuilderError{kind: UnreachableOutput}
)
