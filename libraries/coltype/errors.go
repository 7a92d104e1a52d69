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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrMissingOperator is returned when a type's operator bundle lacks an
	// operator required by its comparable or orderable flag.
	ErrMissingOperator = errors.NewKind("type %s is %s but does not declare a %s operator for %s")
	// ErrInvalidSignature is returned for malformed signature strings.
	ErrInvalidSignature = errors.NewKind("invalid type signature %q: %s")
	// ErrUnknownType is returned when no type or factory matches a signature.
	ErrUnknownType = errors.NewKind("unknown type: %s")
	// ErrDuplicateType is returned when a signature is registered twice.
	ErrDuplicateType = errors.NewKind("type %s is already registered")
	// ErrInvalidTypeParams is returned by factories that reject a signature's parameters.
	ErrInvalidTypeParams = errors.NewKind("type %s does not accept parameters %v")
)
