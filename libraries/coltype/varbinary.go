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

package coltype

import (
	"encoding/hex"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dolthub/coldata/store/block"
)

// SqlVarbinary is the display form of an opaque binary value.
type SqlVarbinary []byte

const (
	varbinaryBytesPerLine  = 32
	varbinaryBytesPerGroup = 8
)

// String renders |v| as space separated hex pairs, with an extra space
// between groups of 8 bytes and 32 bytes per line.
func (v SqlVarbinary) String() string {
	var sb strings.Builder
	for i, c := range v {
		if i > 0 {
			switch {
			case i%varbinaryBytesPerLine == 0:
				sb.WriteByte('\n')
			case i%varbinaryBytesPerGroup == 0:
				sb.WriteString("  ")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}

// MarshalJSON encodes |v| as a base64 string.
func (v SqlVarbinary) MarshalJSON() ([]byte, error) {
	return json.Marshal([]byte(v))
}

type varbinaryType struct {
	*VariableWidthType
}

// VarbinaryType is the built-in type for arbitrary byte strings.
var VarbinaryType Type = &varbinaryType{
	MustNewVariableWidthType(VariableWidthConfig{
		Signature:  NewSignature("varbinary"),
		Comparable: true,
		Orderable:  true,
	}),
}

// ReadValue implements Type.
func (t *varbinaryType) ReadValue(b block.Block, pos int) any {
	if b.IsNull(pos) {
		return nil
	}
	return SqlVarbinary(append([]byte(nil), t.Slice(b, pos)...))
}

// VarbinaryFactory constructs VarbinaryType from its signature.
func VarbinaryFactory(sig Signature) (Type, error) {
	if len(sig.Params) != 0 {
		return nil, ErrInvalidTypeParams.New(sig.Base, sig.Params)
	}
	return VarbinaryType, nil
}
