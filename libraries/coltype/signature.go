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
	"strings"

	"github.com/goccy/go-json"
)

// Signature identifies a type: a base name and optional parameters,
// written canonically as "base" or "base(p1,p2)".
type Signature struct {
	Base   string
	Params []string
}

// NewSignature returns a Signature for |base| with |params|.
func NewSignature(base string, params ...string) Signature {
	return Signature{Base: base, Params: params}
}

// ParseSignature parses the canonical form produced by String.
// Whitespace around the base name and parameters is ignored.
func ParseSignature(s string) (Signature, error) {
	str := strings.TrimSpace(s)
	base, rest, hasParams := strings.Cut(str, "(")
	base = strings.TrimSpace(base)
	if !isIdentifier(base) {
		return Signature{}, ErrInvalidSignature.New(s, "bad base name")
	}
	if !hasParams {
		return Signature{Base: base}, nil
	}

	inner, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return Signature{}, ErrInvalidSignature.New(s, "missing closing parenthesis")
	}
	if strings.ContainsAny(inner, "()") {
		return Signature{}, ErrInvalidSignature.New(s, "nested parameters")
	}

	var params []string
	for _, p := range strings.Split(inner, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			return Signature{}, ErrInvalidSignature.New(s, "empty parameter")
		}
		params = append(params, p)
	}
	return Signature{Base: base, Params: params}, nil
}

// MustParseSignature is ParseSignature for signatures known to be valid.
func MustParseSignature(s string) Signature {
	sig, err := ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return sig
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// String returns the canonical form of |sig|.
func (sig Signature) String() string {
	if len(sig.Params) == 0 {
		return sig.Base
	}
	return sig.Base + "(" + strings.Join(sig.Params, ",") + ")"
}

// Equals compares signatures. Base names are case insensitive.
func (sig Signature) Equals(other Signature) bool {
	return sig.key() == other.key()
}

func (sig Signature) key() string {
	return strings.ToLower(sig.String())
}

// MarshalJSON encodes |sig| as its canonical string.
func (sig Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(sig.String())
}

// UnmarshalJSON decodes a canonical signature string.
func (sig *Signature) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSignature(s)
	if err != nil {
		return err
	}
	*sig = parsed
	return nil
}
