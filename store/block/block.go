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

// Package block holds the columnar containers values are written into
// while a page is built. A Builder accumulates one column of one page
// and is consumed by Build into an immutable Block, which can then be
// shared by any number of readers.
package block

// Block is an immutable column of values addressed by position.
// Positions must be in [0, PositionCount()); out of range positions
// panic. Offsets and lengths address bytes within a single position.
type Block interface {
	// PositionCount returns the number of values, NULLs included.
	PositionCount() int
	// IsNull returns true if the value at |pos| is NULL.
	IsNull(pos int) bool
	// MayHaveNull returns false when no position can be NULL.
	MayHaveNull() bool
	// SliceLength returns the byte length of the value at |pos|.
	// NULL positions have length 0.
	SliceLength(pos int) int
	// Slice returns |length| bytes of the value at |pos| starting at |off|.
	// The returned slice must not be modified.
	Slice(pos, off, length int) []byte
	// WriteSliceTo copies bytes of the value at |pos| into |eb|.
	WriteSliceTo(pos, off, length int, eb *EntryBuilder)
	// Equals compares |length| bytes of two positions.
	Equals(pos, off int, other Block, otherPos, otherOff, length int) bool
	// Hash returns the xxHash64 of |length| bytes of the value at |pos|.
	Hash(pos, off, length int) uint64
	// CompareTo orders two byte ranges lexicographically.
	CompareTo(pos, off, length int, other Block, otherPos, otherOff, otherLength int) int
	// SizeInBytes returns the logical size of the block.
	SizeInBytes() int
	// Region returns a view of positions [posOffset, posOffset+length)
	// sharing this block's memory.
	Region(posOffset, length int) Block
	// CopyPositions returns a compact block holding the listed positions.
	CopyPositions(positions []int) Block
}

// Builder is a single-writer accumulator for one column of a page.
// It is not safe for concurrent use.
type Builder interface {
	AppendNull()
	PositionCount() int
	SizeInBytes() int
	// Build consumes the builder. Any use of the builder afterwards panics.
	Build() Block
}
