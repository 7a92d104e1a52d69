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

// Package objectid adds the ObjectId type: a 12 byte opaque document
// identifier. The engine compares, hashes and orders ObjectIds as raw
// bytes; the identifier's internal layout (timestamp, random value,
// counter) only matters when ids are generated or rendered.
package objectid

import (
	"github.com/dolthub/coldata/libraries/coltype"
	"github.com/dolthub/coldata/store/block"
)

// TypeName is the signature base name of ObjectIdType.
const TypeName = "ObjectId"

type objectIdType struct {
	*coltype.VariableWidthType
}

var _ coltype.Type = (*objectIdType)(nil)

// ObjectIdType is the singleton ObjectId type.
var ObjectIdType coltype.Type = &objectIdType{
	coltype.MustNewVariableWidthType(coltype.VariableWidthConfig{
		Signature:   coltype.NewSignature(TypeName),
		Comparable:  true,
		Orderable:   true,
		Declaration: coltype.SliceOperatorDeclaration(),
		FixedLength: Size,
	}),
}

// ReadValue implements coltype.Type. The engine has no renderer for
// ObjectIds, so values are displayed as generic binary.
func (t *objectIdType) ReadValue(b block.Block, pos int) any {
	if b.IsNull(pos) {
		return nil
	}
	return coltype.SqlVarbinary(append([]byte(nil), t.Slice(b, pos)...))
}

// Factory constructs ObjectIdType from its signature.
func Factory(sig coltype.Signature) (coltype.Type, error) {
	if len(sig.Params) != 0 {
		return nil, coltype.ErrInvalidTypeParams.New(sig.Base, sig.Params)
	}
	return ObjectIdType, nil
}

// Register makes ObjectIdType resolvable through |r|.
func Register(r *coltype.Registry) error {
	return r.RegisterFactory(TypeName, Factory)
}

// WriteObjectID appends |id| to |bld|.
func WriteObjectID(bld block.Builder, id ObjectID) {
	ObjectIdType.WriteSlice(bld, id[:])
}

// ObjectIDAt returns the id at |pos|, and false if it is NULL.
func ObjectIDAt(b block.Block, pos int) (ObjectID, bool) {
	v, ok := coltype.ValueAt(ObjectIdType, b, pos)
	if !ok {
		return NilObjectID, false
	}
	return ObjectID(v), true
}
