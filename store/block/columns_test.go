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
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsRoundTrip(t *testing.T) {
	var cols []*VariableWidthBlock
	for i := 0; i < 16; i++ {
		vals := make([][]byte, 0, i+1)
		for j := 0; j <= i; j++ {
			if j%5 == 4 {
				vals = append(vals, nil)
				continue
			}
			vals = append(vals, []byte(fmt.Sprintf("col%d-row%d", i, j)))
		}
		cols = append(cols, buildBlock(t, vals...))
	}

	ctx := context.Background()
	bufs, err := EncodeColumns(ctx, cols, EncodeOptions{Compress: true})
	require.NoError(t, err)
	require.Len(t, bufs, len(cols))

	dec, err := DecodeColumns(ctx, bufs)
	require.NoError(t, err)
	require.Len(t, dec, len(cols))
	for i := range cols {
		require.Equal(t, cols[i].PositionCount(), dec[i].PositionCount())
		for p := 0; p < cols[i].PositionCount(); p++ {
			assert.Equal(t, cols[i].Value(p), dec[i].Value(p))
		}
	}
}

func TestDecodeColumnsError(t *testing.T) {
	ctx := context.Background()
	good := Encode(buildBlock(t, []byte("a")), EncodeOptions{})
	bad := Encode(buildBlock(t, []byte("b")), EncodeOptions{})
	bad[len(bad)-1] ^= 0xff

	_, err := DecodeColumns(ctx, [][]byte{good, bad, good})
	require.Error(t, err)
	assert.True(t, ErrChecksumMismatch.Is(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = DecodeColumns(cancelled, [][]byte{good})
	assert.ErrorIs(t, err, context.Canceled)

	out, err := DecodeColumns(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
