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
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/coldata/store/val"
)

// Transfer format of a VariableWidthBlock:
//
//	magic[4] | flags[1] | positions[4] | body | crc[4]
//
// body is offsets[(positions+1)*4] | nulls[(positions+7)/8, if flagNulls] | data,
// snappy compressed when flagSnappy is set. The crc covers every
// byte before it and is stored big endian.
var blockMagic = [4]byte{'V', 'W', 'B', '1'}

const (
	flagNulls  byte = 1 << 0
	flagSnappy byte = 1 << 1

	headerSize   = len(blockMagic) + 1 + val.SizeOfInt
	checksumSize = 4
)

var (
	ErrCorruptBlock     = errors.NewKind("corrupt block: %s")
	ErrChecksumMismatch = errors.NewKind("block checksum mismatch: expected %08x, found %08x")
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

func crc(b []byte) uint32 {
	return crc32.Update(0, crcTable, b)
}

// EncodeOptions controls the transfer encoding of a block.
type EncodeOptions struct {
	// Compress snappy-compresses the block body.
	Compress bool
}

// Encode serializes |b| for transfer. Regions are encoded compactly.
func Encode(b *VariableWidthBlock, opts EncodeOptions) []byte {
	data, offsets, nulls := b.compact()
	hasNulls := nulls != nil && nulls.Count() > 0

	bodySz := offsets.SizeInBytes() + len(data)
	if hasNulls {
		bodySz += len(nulls)
	}
	body := make([]byte, 0, bodySz)
	for _, off := range offsets {
		body = val.AppendUint32(body, off)
	}
	if hasNulls {
		body = append(body, nulls...)
	}
	body = append(body, data...)

	var flags byte
	if hasNulls {
		flags |= flagNulls
	}
	if opts.Compress {
		flags |= flagSnappy
		body = snappy.Encode(nil, body)
	}

	buf := make([]byte, 0, headerSize+len(body)+checksumSize)
	buf = append(buf, blockMagic[:]...)
	buf = append(buf, flags)
	buf = val.AppendUint32(buf, uint32(b.PositionCount()))
	buf = append(buf, body...)
	return binary.BigEndian.AppendUint32(buf, crc(buf))
}

// Decode parses a block produced by Encode. The returned block does
// not alias |buf| when the body was compressed.
func Decode(buf []byte) (*VariableWidthBlock, error) {
	if len(buf) < headerSize+checksumSize {
		return nil, ErrCorruptBlock.New("buffer too short")
	}
	payload := buf[:len(buf)-checksumSize]
	expected := binary.BigEndian.Uint32(buf[len(payload):])
	if actual := crc(payload); actual != expected {
		return nil, ErrChecksumMismatch.New(expected, actual)
	}
	if [4]byte(payload[:4]) != blockMagic {
		return nil, ErrCorruptBlock.New("bad magic")
	}

	flags := payload[4]
	count := int(val.ReadUint32(payload[5:headerSize]))
	body := payload[headerSize:]
	if flags&flagSnappy != 0 {
		var err error
		if body, err = snappy.Decode(nil, body); err != nil {
			return nil, ErrCorruptBlock.Wrap(err, "snappy body")
		}
	}

	offSz := (count + 1) * val.SizeOfInt
	if count < 0 || len(body) < offSz {
		return nil, ErrCorruptBlock.New("offsets table truncated")
	}
	offsets := make(val.Offsets, count+1)
	for i := range offsets {
		offsets[i] = val.ReadUint32(body[i*val.SizeOfInt : (i+1)*val.SizeOfInt])
	}
	body = body[offSz:]

	var nulls val.NullMask
	if flags&flagNulls != 0 {
		maskSz := val.MaskSize(count)
		if len(body) < maskSz {
			return nil, ErrCorruptBlock.New("null mask truncated")
		}
		nulls = val.NullMask(body[:maskSz])
		body = body[maskSz:]
	}

	if err := offsets.Validate(len(body)); err != nil {
		return nil, ErrCorruptBlock.Wrap(err, "offsets")
	}
	if int(offsets.Last()) != len(body) {
		return nil, ErrCorruptBlock.New("trailing bytes after data")
	}
	if nulls != nil {
		for i := 0; i < count; i++ {
			if nulls.IsNull(i) && offsets.Length(i) != 0 {
				return nil, ErrCorruptBlock.New(fmt.Sprintf("null position %d has data", i))
			}
		}
	}
	return newVariableWidthBlock(0, count, body, offsets, nulls), nil
}
