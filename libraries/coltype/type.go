// Copyright 2025 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package coltype defines the contract between logical SQL types and
// the columnar blocks their values live in. A Type creates builders
// for its values, reads and copies values between blocks and exposes an
// operator bundle (equality, hashing, ordering) that works on raw bytes
// and on block positions alike.
//
// New types are added by composing a VariableWidthType with a
// Signature and an OperatorDeclaration, then registering a Factory
// with a Registry. See the objectid and uuidtype packages.
package coltype

import (
	"github.com/dolthub/coldata/store/block"
	"github.com/dolthub/coldata/store/page"
)

// NativeKind is the physical representation of a type's values.
type NativeKind uint8

const (
	NativeSlice NativeKind = iota
)

func (k NativeKind) String() string {
	switch k {
	case NativeSlice:
		return "Slice"
	default:
		return "Unknown"
	}
}

// Type is a logical SQL type bound to a physical encoding and an
// operator bundle. Types are immutable once constructed and safe for
// concurrent use.
type Type interface {
	Signature() Signature
	String() string
	NativeKind() NativeKind

	Comparable() bool
	Orderable() bool
	Operators() *Operators

	// CreateBuilder returns a builder sized for |expectedEntries| values
	// of about |expectedBytesPerEntry| bytes. |status| may be nil.
	CreateBuilder(status page.Status, expectedEntries, expectedBytesPerEntry int) block.Builder
	// CreateDefaultBuilder is CreateBuilder with the type's default
	// per-entry size.
	CreateDefaultBuilder(status page.Status, expectedEntries int) block.Builder

	// ReadValue materializes the value at |pos| for display, or
	// returns nil for NULL.
	ReadValue(b block.Block, pos int) any
	// Slice returns the raw bytes of the value at |pos|.
	Slice(b block.Block, pos int) []byte
	// AppendTo copies the value at |pos| into |bld| without decoding it.
	AppendTo(b block.Block, pos int, bld block.Builder)
	// WriteSlice appends |v| to |bld|.
	WriteSlice(bld block.Builder, v []byte)
	// WriteSliceRange appends v[off:off+length] to |bld|.
	WriteSliceRange(bld block.Builder, v []byte, off, length int)
}

// Validate checks that the operator bundle of |t| agrees with its
// comparable and orderable flags.
func Validate(t Type) error {
	ops := t.Operators()
	name := t.Signature().String()
	if t.Comparable() && (ops == nil || !ops.Supports(Equal) || !ops.Supports(XxHash64)) {
		return ErrMissingOperator.New(name, "comparable", Equal, "values")
	}
	if t.Orderable() && (ops == nil || !ops.Supports(ComparisonUnorderedLast)) {
		return ErrMissingOperator.New(name, "orderable", ComparisonUnorderedLast, "values")
	}
	return nil
}
