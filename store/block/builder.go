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
	"github.com/dolthub/coldata/store/page"
	"github.com/dolthub/coldata/store/val"
)

// entryOverhead is the bookkeeping cost of one position: its offset
// and its null flag.
const entryOverhead = val.SizeOfInt + val.SizeOfByte

// VariableWidthBuilder accumulates variable width values for one
// column. Values are packed back to back in a single buffer and
// located through an offsets table; NULLs are tracked in a bitmask
// and occupy no data bytes.
type VariableWidthBuilder struct {
	status page.Status

	data     []byte
	offsets  val.Offsets
	nulls    val.NullMask
	hasNulls bool

	entry   EntryBuilder
	inEntry bool
	built   bool
}

var _ Builder = (*VariableWidthBuilder)(nil)

// NewVariableWidthBuilder returns a builder whose storage is sized for
// |expectedEntries| values totalling |expectedBytes|. Both are hints;
// appends beyond them grow the storage. |status| may be nil.
func NewVariableWidthBuilder(status page.Status, expectedEntries, expectedBytes int) *VariableWidthBuilder {
	expectedEntries = max(expectedEntries, 0)
	expectedBytes = max(expectedBytes, 0)
	b := &VariableWidthBuilder{
		status:  status,
		data:    make([]byte, 0, expectedBytes),
		offsets: val.MakeOffsets(expectedEntries),
	}
	b.entry.b = b
	return b
}

// WriteEntry appends |v| as a single value.
func (b *VariableWidthBuilder) WriteEntry(v []byte) {
	b.WriteEntryRange(v, 0, len(v))
}

// WriteEntryRange appends v[off:off+length] as a single value.
func (b *VariableWidthBuilder) WriteEntryRange(v []byte, off, length int) {
	b.checkWritable()
	val.CheckRange(off, length, len(v))
	val.CheckDataSize(len(b.data) + length)
	b.data = append(b.data, v[off:off+length]...)
	b.closeEntry(false)
}

// BuildEntry appends a single value assembled by |fn| from any number
// of writes to the EntryBuilder. If |fn| panics, its partial value is
// discarded and the builder stays usable.
func (b *VariableWidthBuilder) BuildEntry(fn func(eb *EntryBuilder)) {
	b.checkWritable()
	start := len(b.data)
	b.inEntry = true
	defer func() {
		if b.inEntry {
			b.inEntry = false
			b.data = b.data[:start]
		}
	}()
	fn(&b.entry)
	b.inEntry = false
	b.closeEntry(false)
}

// AppendNull appends a NULL value.
func (b *VariableWidthBuilder) AppendNull() {
	b.checkWritable()
	b.closeEntry(true)
}

func (b *VariableWidthBuilder) closeEntry(null bool) {
	start := b.offsets.Last()
	pos := b.offsets.Count()
	if null {
		b.nulls = b.nulls.Grow(pos)
		b.nulls.Set(pos)
		b.hasNulls = true
	}
	b.offsets = b.offsets.Append(val.ByteSize(len(b.data)))
	if b.status != nil {
		b.status.AddBytes(int(val.ByteSize(len(b.data))-start) + entryOverhead)
	}
}

// PositionCount returns the number of values appended so far.
func (b *VariableWidthBuilder) PositionCount() int {
	return b.offsets.Count()
}

// SizeInBytes returns the logical size of the values appended so far.
func (b *VariableWidthBuilder) SizeInBytes() int {
	return len(b.data) + b.PositionCount()*entryOverhead
}

// RetainedSizeInBytes returns the memory held by the builder,
// including unused capacity.
func (b *VariableWidthBuilder) RetainedSizeInBytes() int {
	return cap(b.data) + cap(b.offsets)*val.SizeOfInt + cap(b.nulls)
}

// NewBuilderLike returns an empty builder for |expectedEntries| values,
// sized from the bytes this builder has accumulated so far.
func (b *VariableWidthBuilder) NewBuilderLike(status page.Status, expectedEntries int) *VariableWidthBuilder {
	return NewVariableWidthBuilder(status, expectedEntries, len(b.data))
}

// Build implements Builder.
func (b *VariableWidthBuilder) Build() Block {
	return b.BuildBlock()
}

// BuildBlock consumes the builder and returns its values as a block.
func (b *VariableWidthBuilder) BuildBlock() *VariableWidthBlock {
	b.checkWritable()
	b.built = true

	count := b.offsets.Count()
	var nulls val.NullMask
	if b.hasNulls {
		nulls = b.nulls.Grow(count - 1)
	}
	blk := newVariableWidthBlock(0, count, b.data, b.offsets, nulls)

	b.data, b.offsets, b.nulls = nil, nil, nil
	return blk
}

func (b *VariableWidthBuilder) checkWritable() {
	if b.built {
		panic("block builder has already been built")
	}
	if b.inEntry {
		panic("block builder is writing an entry")
	}
}

// EntryBuilder assembles a single value inside BuildEntry.
type EntryBuilder struct {
	b *VariableWidthBuilder
}

// Write appends |p| to the current value. It never fails.
func (eb *EntryBuilder) Write(p []byte) (int, error) {
	eb.checkOpen()
	val.CheckDataSize(len(eb.b.data) + len(p))
	eb.b.data = append(eb.b.data, p...)
	return len(p), nil
}

// WriteByte appends a single byte to the current value.
func (eb *EntryBuilder) WriteByte(c byte) error {
	eb.checkOpen()
	val.CheckDataSize(len(eb.b.data) + 1)
	eb.b.data = append(eb.b.data, c)
	return nil
}

// Len returns the bytes written to the current value so far.
func (eb *EntryBuilder) Len() int {
	return len(eb.b.data) - int(eb.b.offsets.Last())
}

func (eb *EntryBuilder) checkOpen() {
	if eb.b == nil || !eb.b.inEntry {
		panic("entry builder used outside of BuildEntry")
	}
}
