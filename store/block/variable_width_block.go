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

package block

import (
	"github.com/cespare/xxhash/v2"

	"github.com/dolthub/coldata/store/val"
)

// VariableWidthBlock is the immutable result of a VariableWidthBuilder.
// Regions share |data|, |offsets| and |nulls| with the block they were
// cut from and address them through |posOffset|.
type VariableWidthBlock struct {
	posOffset int
	count     int
	data      []byte
	offsets   val.Offsets
	nulls     val.NullMask
}

var _ Block = (*VariableWidthBlock)(nil)

func newVariableWidthBlock(posOffset, count int, data []byte, offsets val.Offsets, nulls val.NullMask) *VariableWidthBlock {
	return &VariableWidthBlock{
		posOffset: posOffset,
		count:     count,
		data:      data,
		offsets:   offsets,
		nulls:     nulls,
	}
}

// PositionCount implements Block.
func (b *VariableWidthBlock) PositionCount() int {
	return b.count
}

// IsNull implements Block.
func (b *VariableWidthBlock) IsNull(pos int) bool {
	val.CheckPosition(pos, b.count)
	return b.nulls != nil && b.nulls.IsNull(b.posOffset+pos)
}

// MayHaveNull implements Block.
func (b *VariableWidthBlock) MayHaveNull() bool {
	return b.nulls != nil
}

// SliceLength implements Block.
func (b *VariableWidthBlock) SliceLength(pos int) int {
	val.CheckPosition(pos, b.count)
	return b.offsets.Length(b.posOffset + pos)
}

// Slice implements Block.
func (b *VariableWidthBlock) Slice(pos, off, length int) []byte {
	start, stop := b.bounds(pos)
	val.CheckRange(off, length, int(stop-start))
	lo := int(start) + off
	return b.data[lo : lo+length : lo+length]
}

// Value returns the full value at |pos|, or nil if it is NULL.
func (b *VariableWidthBlock) Value(pos int) []byte {
	if b.IsNull(pos) {
		return nil
	}
	return b.Slice(pos, 0, b.SliceLength(pos))
}

// WriteSliceTo implements Block.
func (b *VariableWidthBlock) WriteSliceTo(pos, off, length int, eb *EntryBuilder) {
	_, _ = eb.Write(b.Slice(pos, off, length))
}

// Equals implements Block.
func (b *VariableWidthBlock) Equals(pos, off int, other Block, otherPos, otherOff, length int) bool {
	return val.EqualBytes(b.Slice(pos, off, length), other.Slice(otherPos, otherOff, length))
}

// Hash implements Block.
func (b *VariableWidthBlock) Hash(pos, off, length int) uint64 {
	return xxhash.Sum64(b.Slice(pos, off, length))
}

// CompareTo implements Block.
func (b *VariableWidthBlock) CompareTo(pos, off, length int, other Block, otherPos, otherOff, otherLength int) int {
	return val.CompareBytes(b.Slice(pos, off, length), other.Slice(otherPos, otherOff, otherLength))
}

// SizeInBytes implements Block.
func (b *VariableWidthBlock) SizeInBytes() int {
	if b.count == 0 {
		return 0
	}
	first, _ := b.offsets.GetBounds(b.posOffset)
	_, last := b.offsets.GetBounds(b.posOffset + b.count - 1)
	return int(last-first) + b.count*entryOverhead
}

// Region implements Block.
func (b *VariableWidthBlock) Region(posOffset, length int) Block {
	val.CheckRange(posOffset, length, b.count)
	nulls := b.nulls
	if nulls != nil && !b.hasNullIn(posOffset, length) {
		nulls = nil
	}
	return newVariableWidthBlock(b.posOffset+posOffset, length, b.data, b.offsets, nulls)
}

// CopyPositions implements Block.
func (b *VariableWidthBlock) CopyPositions(positions []int) Block {
	size := 0
	for _, pos := range positions {
		size += b.SliceLength(pos)
	}

	data := make([]byte, 0, size)
	offsets := val.MakeOffsets(len(positions))
	var nulls val.NullMask
	for i, pos := range positions {
		if b.IsNull(pos) {
			nulls = nulls.Grow(i)
			nulls.Set(i)
		} else {
			data = append(data, b.Slice(pos, 0, b.SliceLength(pos))...)
		}
		offsets = offsets.Append(val.ByteSize(len(data)))
	}
	if nulls != nil {
		nulls = nulls.Grow(len(positions) - 1)
	}
	return newVariableWidthBlock(0, len(positions), data, offsets, nulls)
}

// compact returns the data, offsets and nulls of this block rebased
// so that position 0 starts at byte 0.
func (b *VariableWidthBlock) compact() ([]byte, val.Offsets, val.NullMask) {
	offsets := b.offsets.Rebase(b.posOffset, b.count)
	first := int(b.offsets[b.posOffset])
	data := b.data[first : first+int(offsets.Last())]
	var nulls val.NullMask
	if b.nulls != nil {
		nulls = b.nulls.Slice(b.posOffset, b.count)
	}
	return data, offsets, nulls
}

func (b *VariableWidthBlock) hasNullIn(posOffset, length int) bool {
	for i := 0; i < length; i++ {
		if b.nulls.IsNull(b.posOffset + posOffset + i) {
			return true
		}
	}
	return false
}

func (b *VariableWidthBlock) bounds(pos int) (start, stop val.ByteSize) {
	val.CheckPosition(pos, b.count)
	return b.offsets.GetBounds(b.posOffset + pos)
}
