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

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// ByteSize is a byte count within a single page. Builders refuse to
// grow past MaxDataSize, so 32 bits cover every offset and length.
type ByteSize uint32

const (
	// SizeOfByte is the per-entry cost of a null flag.
	SizeOfByte = 1
	// SizeOfInt is the per-entry cost of an offset.
	SizeOfInt = 4
)

// ReadUint32 decodes a little endian uint32 from |buf|.
func ReadUint32(buf []byte) uint32 {
	ExpectSize(buf, SizeOfInt)
	return binary.LittleEndian.Uint32(buf)
}

// AppendUint32 appends |v| to |buf| as little endian.
func AppendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

// CompareBytes orders byte strings lexicographically. When one
// string is a prefix of the other, the shorter one sorts first.
func CompareBytes(l, r []byte) int {
	return bytes.Compare(l, r)
}

// EqualBytes reports whether |l| and |r| hold the same bytes.
func EqualBytes(l, r []byte) bool {
	return bytes.Equal(l, r)
}

// ExpectSize panics if |buf| is not exactly |sz| bytes long.
func ExpectSize(buf []byte, sz int) {
	if len(buf) != sz {
		panic(fmt.Sprintf("byte slice is not of expected size: %d != %d", len(buf), sz))
	}
}

// CheckRange panics unless [off, off+length) lies within [0, size).
func CheckRange(off, length, size int) {
	if off < 0 || length < 0 || off+length > size {
		panic(fmt.Sprintf("range [%d, %d) out of bounds for size %d", off, off+length, size))
	}
}

// MaxDataSize is the largest value buffer an Offsets table can address.
const MaxDataSize = math.MaxUint32

// CheckDataSize panics if |n| bytes cannot be addressed by ByteSize offsets.
func CheckDataSize(n int) {
	if n > MaxDataSize {
		panic(fmt.Sprintf("data size %d exceeds the maximum of %d bytes", n, MaxDataSize))
	}
}

// CheckPosition panics unless 0 <= pos < count.
func CheckPosition(pos, count int) {
	if pos < 0 || pos >= count {
		panic(fmt.Sprintf("position %d out of bounds for %d positions", pos, count))
	}
}
