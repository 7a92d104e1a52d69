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

	"golang.org/x/sync/errgroup"
)

// EncodeColumns encodes the column blocks of one page concurrently.
// The result is index aligned with |cols|.
func EncodeColumns(ctx context.Context, cols []*VariableWidthBlock, opts EncodeOptions) ([][]byte, error) {
	out := make([][]byte, len(cols))
	eg, ctx := errgroup.WithContext(ctx)
	for i := range cols {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Encode(cols[i], opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeColumns decodes the encoded column blocks of one page
// concurrently. The first decode error is returned unwrapped so that
// callers can test it with ErrCorruptBlock.Is and ErrChecksumMismatch.Is.
func DecodeColumns(ctx context.Context, bufs [][]byte) ([]*VariableWidthBlock, error) {
	out := make([]*VariableWidthBlock, len(bufs))
	eg, ctx := errgroup.WithContext(ctx)
	for i := range bufs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := Decode(bufs[i])
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
