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

package coltype

import (
	"fmt"

	"github.com/dolthub/coldata/store/block"
	"github.com/dolthub/coldata/store/page"
)

// ExpectedBytesPerEntry is the per-value size hint used when a type
// does not supply its own.
const ExpectedBytesPerEntry = 32

// ExpectedCapacity computes the initial sizing of a builder for
// |expectedEntries| values of |expectedBytesPerEntry| bytes within a
// page budget of |maxBlockSizeInBytes|. The byte estimate is clamped
// to the budget; the entry estimate is clamped to the number of
// entries of that size the budget holds, unless the size is 0.
// Negative inputs are treated as 0.
func ExpectedCapacity(expectedEntries, expectedBytesPerEntry, maxBlockSizeInBytes int) (entries, bytes int) {
	expectedEntries = max(expectedEntries, 0)
	expectedBytesPerEntry = max(expectedBytesPerEntry, 0)
	maxBlockSizeInBytes = max(maxBlockSizeInBytes, 0)

	// the division guard keeps the product within int64; the clamped
	// result always fits the budget.
	e, b, m := int64(expectedEntries), int64(expectedBytesPerEntry), int64(maxBlockSizeInBytes)
	if e > 0 && b > m/e {
		bytes = int(m)
	} else {
		bytes = int(min(e*b, m))
	}

	if expectedBytesPerEntry == 0 {
		entries = expectedEntries
	} else {
		entries = min(expectedEntries, maxBlockSizeInBytes/expectedBytesPerEntry)
	}
	return
}

// VariableWidthConfig describes a variable width type.
type VariableWidthConfig struct {
	Signature  Signature
	Comparable bool
	Orderable  bool
	// Declaration supplies the operators. Nil selects
	// SliceOperatorDeclaration.
	Declaration *OperatorDeclaration
	// BytesPerEntry is the default size hint; 0 selects
	// ExpectedBytesPerEntry.
	BytesPerEntry int
	// FixedLength, when positive, is the exact length of every value.
	FixedLength int
}

// VariableWidthType implements Type for values stored in a
// VariableWidthBuilder. Concrete types embed it and override ReadValue
// to control how values are displayed.
type VariableWidthType struct {
	sig           Signature
	comparable    bool
	orderable     bool
	ops           *Operators
	bytesPerEntry int
	fixedLength   int
}

var _ Type = (*VariableWidthType)(nil)

// NewVariableWidthType binds |cfg| into a type. It fails with
// ErrMissingOperator when the declaration lacks an operator the
// comparable or orderable flag requires.
func NewVariableWidthType(cfg VariableWidthConfig) (*VariableWidthType, error) {
	decl := cfg.Declaration
	if decl == nil {
		decl = SliceOperatorDeclaration()
	}
	ops, err := NewOperators(cfg.Signature, cfg.Comparable, cfg.Orderable, *decl)
	if err != nil {
		return nil, err
	}
	bpe := cfg.BytesPerEntry
	if bpe == 0 {
		bpe = ExpectedBytesPerEntry
		if cfg.FixedLength > 0 {
			bpe = cfg.FixedLength
		}
	}
	return &VariableWidthType{
		sig:           cfg.Signature,
		comparable:    cfg.Comparable,
		orderable:     cfg.Orderable,
		ops:           ops,
		bytesPerEntry: bpe,
		fixedLength:   cfg.FixedLength,
	}, nil
}

// MustNewVariableWidthType is NewVariableWidthType for package level
// singletons; a configuration error panics at load time.
func MustNewVariableWidthType(cfg VariableWidthConfig) *VariableWidthType {
	t, err := NewVariableWidthType(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Signature implements Type.
func (t *VariableWidthType) Signature() Signature {
	return t.sig
}

// String implements Type.
func (t *VariableWidthType) String() string {
	return t.sig.String()
}

// NativeKind implements Type.
func (t *VariableWidthType) NativeKind() NativeKind {
	return NativeSlice
}

// Comparable implements Type.
func (t *VariableWidthType) Comparable() bool {
	return t.comparable
}

// Orderable implements Type.
func (t *VariableWidthType) Orderable() bool {
	return t.orderable
}

// Operators implements Type.
func (t *VariableWidthType) Operators() *Operators {
	return t.ops
}

// FixedLength returns the required value length, or 0.
func (t *VariableWidthType) FixedLength() int {
	return t.fixedLength
}

// CreateVariableWidthBuilder sizes a builder with ExpectedCapacity.
func (t *VariableWidthType) CreateVariableWidthBuilder(status page.Status, expectedEntries, expectedBytesPerEntry int) *block.VariableWidthBuilder {
	entries, bytes := ExpectedCapacity(expectedEntries, expectedBytesPerEntry, page.MaxPageSizeInBytes(status))
	return block.NewVariableWidthBuilder(status, entries, bytes)
}

// CreateBuilder implements Type.
func (t *VariableWidthType) CreateBuilder(status page.Status, expectedEntries, expectedBytesPerEntry int) block.Builder {
	return t.CreateVariableWidthBuilder(status, expectedEntries, expectedBytesPerEntry)
}

// CreateDefaultBuilder implements Type.
func (t *VariableWidthType) CreateDefaultBuilder(status page.Status, expectedEntries int) block.Builder {
	return t.CreateVariableWidthBuilder(status, expectedEntries, t.bytesPerEntry)
}

// ReadValue implements Type. It returns a copy of the value's bytes.
func (t *VariableWidthType) ReadValue(b block.Block, pos int) any {
	if b.IsNull(pos) {
		return nil
	}
	return append([]byte(nil), t.Slice(b, pos)...)
}

// Slice implements Type.
func (t *VariableWidthType) Slice(b block.Block, pos int) []byte {
	return b.Slice(pos, 0, b.SliceLength(pos))
}

// AppendTo implements Type.
func (t *VariableWidthType) AppendTo(b block.Block, pos int, bld block.Builder) {
	if b.IsNull(pos) {
		bld.AppendNull()
		return
	}
	vb := t.builder(bld)
	vb.BuildEntry(func(eb *block.EntryBuilder) {
		b.WriteSliceTo(pos, 0, b.SliceLength(pos), eb)
	})
}

// WriteSlice implements Type.
func (t *VariableWidthType) WriteSlice(bld block.Builder, v []byte) {
	t.WriteSliceRange(bld, v, 0, len(v))
}

// WriteSliceRange implements Type.
func (t *VariableWidthType) WriteSliceRange(bld block.Builder, v []byte, off, length int) {
	if t.fixedLength > 0 && length != t.fixedLength {
		panic(fmt.Sprintf("%s values are %d bytes, got %d", t.sig, t.fixedLength, length))
	}
	t.builder(bld).WriteEntryRange(v, off, length)
}

func (t *VariableWidthType) builder(bld block.Builder) *block.VariableWidthBuilder {
	vb, ok := bld.(*block.VariableWidthBuilder)
	if !ok {
		panic(fmt.Sprintf("type %s cannot write to builder %T", t.sig, bld))
	}
	return vb
}

// ValueAt returns the bytes at |pos| and whether the position is
// non-NULL.
func ValueAt(t Type, b block.Block, pos int) ([]byte, bool) {
	if b.IsNull(pos) {
		return nil, false
	}
	return t.Slice(b, pos), true
}
