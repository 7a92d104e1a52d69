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

package uuidtype

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/coldata/libraries/coltype"
)

func TestUUIDTypeContract(t *testing.T) {
	assert.Equal(t, "uuid", UUIDType.String())
	assert.True(t, UUIDType.Comparable())
	assert.True(t, UUIDType.Orderable())
	assert.NoError(t, coltype.Validate(UUIDType))
}

func TestUUIDRoundTrip(t *testing.T) {
	us := []uuid.UUID{
		uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		uuid.New(),
		uuid.Nil,
	}

	bld := UUIDType.CreateDefaultBuilder(nil, len(us)+1)
	for _, u := range us {
		WriteUUID(bld, u)
	}
	bld.AppendNull()
	blk := bld.Build()

	require.Equal(t, len(us)+1, blk.PositionCount())
	for i, u := range us {
		got, ok := UUIDAt(blk, i)
		assert.True(t, ok)
		assert.Equal(t, u, got)
		assert.Equal(t, u.String(), UUIDType.ReadValue(blk, i))
	}
	_, ok := UUIDAt(blk, len(us))
	assert.False(t, ok)
	assert.Nil(t, UUIDType.ReadValue(blk, len(us)))
	assert.True(t, blk.MayHaveNull())
}

func TestWriteString(t *testing.T) {
	bld := UUIDType.CreateDefaultBuilder(nil, 2)
	require.NoError(t, WriteString(bld, "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"))
	require.NoError(t, WriteString(bld, "urn:uuid:6ba7b811-9dad-11d1-80b4-00c04fd430c8"))
	assert.Error(t, WriteString(bld, "not-a-uuid"))
	assert.Error(t, WriteString(bld, ""))
	blk := bld.Build()

	require.Equal(t, 2, blk.PositionCount())
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", UUIDType.ReadValue(blk, 0))
	assert.Equal(t, "6ba7b811-9dad-11d1-80b4-00c04fd430c8", UUIDType.ReadValue(blk, 1))
}

func TestUUIDFixedLength(t *testing.T) {
	bld := UUIDType.CreateDefaultBuilder(nil, 1)
	assert.Panics(t, func() {
		UUIDType.WriteSlice(bld, make([]byte, 15))
	})
	assert.Panics(t, func() {
		UUIDType.WriteSliceRange(bld, make([]byte, 32), 0, 17)
	})
	assert.NotPanics(t, func() {
		UUIDType.WriteSliceRange(bld, make([]byte, 32), 8, 16)
	})
	assert.Equal(t, 1, bld.PositionCount())
}

func TestUUIDOperators(t *testing.T) {
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	hi := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")

	bld := UUIDType.CreateDefaultBuilder(nil, 3)
	WriteUUID(bld, hi)
	bld.AppendNull()
	WriteUUID(bld, lo)
	blk := bld.Build()
	ops := UUIDType.Operators()

	assert.True(t, ops.Equal(lo[:], lo[:]))
	assert.False(t, ops.EqualPositions(blk, 0, blk, 2))
	assert.Equal(t, ops.Hash(hi[:]), ops.HashPosition(blk, 0))
	assert.Equal(t, coltype.NullHash, ops.HashPosition(blk, 1))

	last := ops.Comparison(coltype.NullsLast)
	assert.Greater(t, last.ComparePositions(blk, 0, blk, 2), 0)
	assert.Greater(t, last.ComparePositions(blk, 1, blk, 0), 0)

	first := ops.Comparison(coltype.NullsFirst)
	assert.Less(t, first.ComparePositions(blk, 1, blk, 0), 0)
	assert.Equal(t, 0, first.ComparePositions(blk, 1, blk, 1))
}

func TestUUIDCopyPositions(t *testing.T) {
	us := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	bld := UUIDType.CreateDefaultBuilder(nil, len(us))
	for _, u := range us {
		WriteUUID(bld, u)
	}
	blk := bld.Build()

	cp := blk.CopyPositions([]int{2, 0})
	got, ok := UUIDAt(cp, 0)
	assert.True(t, ok)
	assert.Equal(t, us[2], got)
	got, _ = UUIDAt(cp, 1)
	assert.Equal(t, us[0], got)
}

func TestRegister(t *testing.T) {
	r := coltype.NewDefaultRegistry()
	require.NoError(t, Register(r))

	typ, err := r.FromSignature("UUID")
	require.NoError(t, err)
	assert.Equal(t, UUIDType, typ)

	_, err = r.FromSignature("uuid(4)")
	assert.True(t, coltype.ErrInvalidTypeParams.Is(err))
}
