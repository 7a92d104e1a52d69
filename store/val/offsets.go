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

package val

import "fmt"

// Offsets holds the byte positions of a sequence of variable width
// values packed back to back. Entry |i| spans [Offsets[i], Offsets[i+1]),
// so a table for n values has n+1 entries and starts at 0.
type Offsets []uint32

// MakeOffsets returns an empty table with room for |count| values.
func MakeOffsets(count int) Offsets {
	os := make(Offsets, 1, max(count, 0)+1)
	os[0] = 0
	return os
}

// Count returns the number of values described by |os|.
func (os Offsets) Count() int {
	return len(os) - 1
}

// Last returns the end of the final value, which is also the
// number of data bytes in use.
func (os Offsets) Last() ByteSize {
	return ByteSize(os[len(os)-1])
}

// Append records a value ending at |end|. |end| must not precede the
// previous end; offsets are monotonically non-decreasing.
func (os Offsets) Append(end ByteSize) Offsets {
	if end < os.Last() {
		panic(fmt.Sprintf("offset %d precedes previous offset %d", end, os.Last()))
	}
	return append(os, uint32(end))
}

// GetBounds returns the start and stop of the |i|th value.
func (os Offsets) GetBounds(i int) (start, stop ByteSize) {
	return ByteSize(os[i]), ByteSize(os[i+1])
}

// Length returns the size of the |i|th value.
func (os Offsets) Length(i int) int {
	return int(os[i+1] - os[i])
}

// Rebase returns a copy of os[start:start+count+1] shifted so that
// the first offset is 0.
func (os Offsets) Rebase(start, count int) Offsets {
	base := os[start]
	out := make(Offsets, count+1)
	for i := range out {
		out[i] = os[start+i] - base
	}
	return out
}

// SizeInBytes returns the encoded size of the table.
func (os Offsets) SizeInBytes() int {
	return len(os) * SizeOfInt
}

// Validate checks that |os| starts at zero, never decreases and ends
// at or before |dataLen|.
func (os Offsets) Validate(dataLen int) error {
	if len(os) == 0 {
		return fmt.Errorf("offsets table is empty")
	}
	if os[0] != 0 {
		return fmt.Errorf("first offset is %d, expected 0", os[0])
	}
	for i := 1; i < len(os); i++ {
		if os[i] < os[i-1] {
			return fmt.Errorf("offset %d (%d) precedes offset %d (%d)", i, os[i], i-1, os[i-1])
		}
	}
	if int(os.Last()) > dataLen {
		return fmt.Errorf("last offset %d exceeds data length %d", os.Last(), dataLen)
	}
	return nil
}
