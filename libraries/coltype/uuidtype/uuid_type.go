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

// Package uuidtype adds the uuid type: 16 byte RFC 4122 identifiers
// stored as raw bytes and rendered in their canonical text form.
package uuidtype

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dolthub/coldata/libraries/coltype"
	"github.com/dolthub/coldata/store/block"
)

// TypeName is the signature base name of UUIDType.
const TypeName = "uuid"

type uuidType struct {
	*coltype.VariableWidthType
}

var _ coltype.Type = (*uuidType)(nil)

// UUIDType is the singleton uuid type.
var UUIDType coltype.Type = &uuidType{
	coltype.MustNewVariableWidthType(coltype.VariableWidthConfig{
		Signature:   coltype.NewSignature(TypeName),
		Comparable:  true,
		Orderable:   true,
		Declaration: coltype.SliceOperatorDeclaration(),
		FixedLength: len(uuid.UUID{}),
	}),
}

// ReadValue implements coltype.Type. Values are returned in the
// canonical hyphenated form.
func (t *uuidType) ReadValue(b block.Block, pos int) any {
	u, ok := UUIDAt(b, pos)
	if !ok {
		return nil
	}
	return u.String()
}

// Factory constructs UUIDType from its signature.
func Factory(sig coltype.Signature) (coltype.Type, error) {
	if len(sig.Params) != 0 {
		return nil, coltype.ErrInvalidTypeParams.New(sig.Base, sig.Params)
	}
	return UUIDType, nil
}

// Register makes UUIDType resolvable through |r|.
func Register(r *coltype.Registry) error {
	return r.RegisterFactory(TypeName, Factory)
}

// WriteUUID appends |u| to |bld|.
func WriteUUID(bld block.Builder, u uuid.UUID) {
	UUIDType.WriteSlice(bld, u[:])
}

// WriteString parses |s| and appends it to |bld|. Nothing is appended
// when |s| is not a valid uuid.
func WriteString(bld block.Builder, s string) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return errors.Wrapf(err, "cannot write %q as %s", s, TypeName)
	}
	WriteUUID(bld, u)
	return nil
}

// UUIDAt returns the uuid at |pos|, and false if it is NULL.
func UUIDAt(b block.Block, pos int) (uuid.UUID, bool) {
	v, ok := coltype.ValueAt(UUIDType, b, pos)
	if !ok {
		return uuid.Nil, false
	}
	return uuid.UUID(v), true
}
