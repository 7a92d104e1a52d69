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

	"github.com/cespare/xxhash/v2"

	"github.com/dolthub/coldata/store/block"
	"github.com/dolthub/coldata/store/val"
)

// OperatorType names an operator in a type's bundle.
type OperatorType uint8

const (
	Equal OperatorType = iota
	XxHash64
	ComparisonUnorderedLast
	ComparisonUnorderedFirst
)

func (o OperatorType) String() string {
	switch o {
	case Equal:
		return "EQUAL"
	case XxHash64:
		return "XX_HASH_64"
	case ComparisonUnorderedLast:
		return "COMPARISON_UNORDERED_LAST"
	case ComparisonUnorderedFirst:
		return "COMPARISON_UNORDERED_FIRST"
	default:
		return fmt.Sprintf("OperatorType(%d)", uint8(o))
	}
}

// NullOrdering places NULLs relative to every non-NULL value.
type NullOrdering uint8

const (
	NullsLast NullOrdering = iota
	NullsFirst
)

// NullHash is the hash of a NULL value.
const NullHash uint64 = 0

// EqualOperator compares two non-NULL values, either as raw bytes or
// in place within blocks.
type EqualOperator struct {
	Values    func(l, r []byte) bool
	Positions func(lb block.Block, lp int, rb block.Block, rp int) bool
}

// HashOperator hashes a non-NULL value. Values and Positions must
// agree for the same bytes.
type HashOperator struct {
	Values    func(v []byte) uint64
	Positions func(b block.Block, pos int) uint64
}

// CompareOperator orders two non-NULL values.
type CompareOperator struct {
	Values    func(l, r []byte) int
	Positions func(lb block.Block, lp int, rb block.Block, rp int) int
}

// OperatorDeclaration is the set of operators a type supplies. The
// operators only ever see non-NULL values; NULL handling is added by
// Operators.
type OperatorDeclaration struct {
	Equal      EqualOperator
	Hash       HashOperator
	Comparison CompareOperator
}

// SliceOperatorDeclaration returns operators that treat values as
// opaque byte strings: byte equality, xxHash64 and lexicographic order.
func SliceOperatorDeclaration() *OperatorDeclaration {
	return &OperatorDeclaration{
		Equal: EqualOperator{
			Values: val.EqualBytes,
			Positions: func(lb block.Block, lp int, rb block.Block, rp int) bool {
				ll, rl := lb.SliceLength(lp), rb.SliceLength(rp)
				if ll != rl {
					return false
				}
				return lb.Equals(lp, 0, rb, rp, 0, ll)
			},
		},
		Hash: HashOperator{
			Values: xxhash.Sum64,
			Positions: func(b block.Block, pos int) uint64 {
				return b.Hash(pos, 0, b.SliceLength(pos))
			},
		},
		Comparison: CompareOperator{
			Values: val.CompareBytes,
			Positions: func(lb block.Block, lp int, rb block.Block, rp int) int {
				return lb.CompareTo(lp, 0, lb.SliceLength(lp), rb, rp, 0, rb.SliceLength(rp))
			},
		},
	}
}

// Operators is the engine facing operator bundle of a type. Value
// forms take nil as NULL; an empty non-nil slice is a value. Calling an
// operator the type does not support panics.
type Operators struct {
	typeName   string
	comparable bool
	orderable  bool
	decl       OperatorDeclaration
}

// NewOperators binds |decl| to a type, checking that it declares every
// operator |comparable| and |orderable| require.
func NewOperators(sig Signature, comparable, orderable bool, decl OperatorDeclaration) (*Operators, error) {
	name := sig.String()
	if comparable {
		if decl.Equal.Values == nil {
			return nil, ErrMissingOperator.New(name, "comparable", Equal, "values")
		}
		if decl.Equal.Positions == nil {
			return nil, ErrMissingOperator.New(name, "comparable", Equal, "block positions")
		}
		if decl.Hash.Values == nil {
			return nil, ErrMissingOperator.New(name, "comparable", XxHash64, "values")
		}
		if decl.Hash.Positions == nil {
			return nil, ErrMissingOperator.New(name, "comparable", XxHash64, "block positions")
		}
	}
	if orderable {
		if decl.Comparison.Values == nil {
			return nil, ErrMissingOperator.New(name, "orderable", ComparisonUnorderedLast, "values")
		}
		if decl.Comparison.Positions == nil {
			return nil, ErrMissingOperator.New(name, "orderable", ComparisonUnorderedLast, "block positions")
		}
	}
	return &Operators{
		typeName:   name,
		comparable: comparable,
		orderable:  orderable,
		decl:       decl,
	}, nil
}

// Supports returns true if |op| can be called on this bundle.
func (o *Operators) Supports(op OperatorType) bool {
	switch op {
	case Equal, XxHash64:
		return o.comparable
	case ComparisonUnorderedLast, ComparisonUnorderedFirst:
		return o.orderable
	default:
		return false
	}
}

// Equal returns true if |l| and |r| are both NULL or hold equal values.
func (o *Operators) Equal(l, r []byte) bool {
	o.expect(Equal)
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	return o.decl.Equal.Values(l, r)
}

// EqualPositions is Equal for two block positions.
func (o *Operators) EqualPositions(lb block.Block, lp int, rb block.Block, rp int) bool {
	o.expect(Equal)
	ln, rn := lb.IsNull(lp), rb.IsNull(rp)
	if ln || rn {
		return ln && rn
	}
	return o.decl.Equal.Positions(lb, lp, rb, rp)
}

// Hash returns the xxHash64 of |v|, or NullHash if it is NULL.
func (o *Operators) Hash(v []byte) uint64 {
	o.expect(XxHash64)
	if v == nil {
		return NullHash
	}
	return o.decl.Hash.Values(v)
}

// HashPosition is Hash for a block position.
func (o *Operators) HashPosition(b block.Block, pos int) uint64 {
	o.expect(XxHash64)
	if b.IsNull(pos) {
		return NullHash
	}
	return o.decl.Hash.Positions(b, pos)
}

// Comparison returns the ordering operator for |ord|.
func (o *Operators) Comparison(ord NullOrdering) Comparison {
	op := ComparisonUnorderedLast
	if ord == NullsFirst {
		op = ComparisonUnorderedFirst
	}
	o.expect(op)
	return Comparison{ordering: ord, cmp: o.decl.Comparison}
}

func (o *Operators) expect(op OperatorType) {
	if !o.Supports(op) {
		panic(fmt.Sprintf("type %s does not support operator %s", o.typeName, op))
	}
}

// Comparison orders values with a fixed NULL placement. It returns a
// negative number, zero or a positive number.
type Comparison struct {
	ordering NullOrdering
	cmp      CompareOperator
}

// Ordering returns where NULLs sort.
func (c Comparison) Ordering() NullOrdering {
	return c.ordering
}

// Compare orders two values; nil is NULL.
func (c Comparison) Compare(l, r []byte) int {
	if cmp, ok := c.compareNulls(l == nil, r == nil); ok {
		return cmp
	}
	return c.cmp.Values(l, r)
}

// ComparePositions orders two block positions.
func (c Comparison) ComparePositions(lb block.Block, lp int, rb block.Block, rp int) int {
	if cmp, ok := c.compareNulls(lb.IsNull(lp), rb.IsNull(rp)); ok {
		return cmp
	}
	return c.cmp.Positions(lb, lp, rb, rp)
}

func (c Comparison) compareNulls(lNull, rNull bool) (int, bool) {
	if !lNull && !rNull {
		return 0, false
	}
	if lNull && rNull {
		return 0, true
	}
	cmp := 1
	if rNull {
		cmp = -1
	}
	if c.ordering == NullsFirst {
		cmp = -cmp
	}
	return cmp, true
}
