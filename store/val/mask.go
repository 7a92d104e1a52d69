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

// NullMask is a bit-array encoding a NULL bitmask.
// NULLs are encoded as 1, non-NULLs as 0, so a zeroed
// mask describes a column without NULLs.
type NullMask []byte

// MakeNullMask returns a zeroed mask with room for |count| members.
func MakeNullMask(count int) NullMask {
	return make(NullMask, MaskSize(count))
}

// MaskSize returns the number of bytes needed for |count| members.
func MaskSize(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + 7) / 8
}

// Grow returns a mask that can address member |i|, reusing |nm| when
// it is already large enough.
func (nm NullMask) Grow(i int) NullMask {
	need := MaskSize(i + 1)
	if need <= len(nm) {
		return nm
	}
	if need <= cap(nm) {
		return nm[:need]
	}
	grown := make(NullMask, need, max(need, 2*cap(nm)))
	copy(grown, nm)
	return grown
}

// Set marks member |i| as NULL.
func (nm NullMask) Set(i int) {
	nm[i/8] |= uint8(1) << (i % 8)
}

// IsNull returns true if the |i|th member is NULL. Members beyond
// the end of the mask are non-NULL.
func (nm NullMask) IsNull(i int) bool {
	if i/8 >= len(nm) {
		return false
	}
	query := uint8(1) << (i % 8)
	return query&nm[i/8] == query
}

// Count returns the number of NULL members.
func (nm NullMask) Count() (n int) {
	for _, b := range nm {
		n += countBitsSet(b)
	}
	return
}

// Slice returns a new mask holding members [start, start+count).
func (nm NullMask) Slice(start, count int) NullMask {
	out := MakeNullMask(count)
	for i := 0; i < count; i++ {
		if nm.IsNull(start + i) {
			out.Set(i)
		}
	}
	return out
}

func countBitsSet(b uint8) (n int) {
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return
}
