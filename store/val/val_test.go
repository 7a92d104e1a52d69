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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullMask(t *testing.T) {
	var nm NullMask
	for i := 0; i < 20; i++ {
		nm = nm.Grow(i)
		if i%3 == 0 {
			nm.Set(i)
		}
	}
	assert.Equal(t, 3, len(nm))
	assert.Equal(t, 7, nm.Count())
	for i := 0; i < 20; i++ {
		assert.Equal(t, i%3 == 0, nm.IsNull(i), "member %d", i)
	}
	assert.False(t, nm.IsNull(100))

	sl := nm.Slice(5, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, nm.IsNull(5+i), sl.IsNull(i))
	}
}

func TestMaskSize(t *testing.T) {
	assert.Equal(t, 0, MaskSize(0))
	assert.Equal(t, 0, MaskSize(-1))
	assert.Equal(t, 1, MaskSize(1))
	assert.Equal(t, 1, MaskSize(8))
	assert.Equal(t, 2, MaskSize(9))
}

func TestOffsets(t *testing.T) {
	os := MakeOffsets(4)
	assert.Equal(t, 0, os.Count())
	os = os.Append(3)
	os = os.Append(3)
	os = os.Append(4)
	require.Equal(t, 3, os.Count())
	assert.Equal(t, ByteSize(4), os.Last())

	start, stop := os.GetBounds(0)
	assert.Equal(t, ByteSize(0), start)
	assert.Equal(t, ByteSize(3), stop)
	assert.Equal(t, 0, os.Length(1))
	assert.Equal(t, 1, os.Length(2))
	assert.NoError(t, os.Validate(4))
	assert.Error(t, os.Validate(3))

	assert.Panics(t, func() {
		os.Append(2)
	})

	rb := os.Rebase(1, 2)
	assert.Equal(t, Offsets{0, 0, 1}, rb)
	assert.Equal(t, 12, rb.SizeInBytes())

	assert.Error(t, Offsets{1, 2}.Validate(2))
	assert.Error(t, Offsets{0, 2, 1}.Validate(2))
	assert.Error(t, Offsets{}.Validate(0))
}

func TestCompareBytes(t *testing.T) {
	tests := []struct {
		l, r []byte
		cmp  int
	}{
		{[]byte{0x01}, []byte{0x01, 0x00}, -1},
		{[]byte{0x01, 0x00}, []byte{0x01}, 1},
		{[]byte("ab"), []byte("ab"), 0},
		{[]byte{}, []byte{0x00}, -1},
		{[]byte{0xff}, []byte{0x01, 0x02}, 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.cmp, CompareBytes(test.l, test.r))
		assert.Equal(t, test.cmp == 0, EqualBytes(test.l, test.r))
	}
}

func TestPreconditions(t *testing.T) {
	assert.Panics(t, func() { ExpectSize([]byte{1, 2}, 3) })
	assert.NotPanics(t, func() { ExpectSize([]byte{1, 2}, 2) })
	assert.Panics(t, func() { CheckPosition(3, 3) })
	assert.Panics(t, func() { CheckPosition(-1, 3) })
	assert.NotPanics(t, func() { CheckPosition(2, 3) })
	assert.Panics(t, func() { CheckRange(1, 3, 3) })
	assert.NotPanics(t, func() { CheckRange(1, 2, 3) })
	assert.NotPanics(t, func() { CheckDataSize(MaxDataSize) })
	assert.Panics(t, func() { CheckDataSize(MaxDataSize + 1) })

	buf := AppendUint32([]byte{0xaa}, 0xdeadbeef)
	assert.Equal(t, []byte{0xaa, 0xef, 0xbe, 0xad, 0xde}, buf)
	assert.Equal(t, uint32(0xdeadbeef), ReadUint32(buf[1:]))
	assert.Panics(t, func() { ReadUint32(buf[2:]) })
}
