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

package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/atomic"
	"gopkg.in/src-d/go-errors.v1"
)

// Size is the length of an ObjectID in bytes.
const Size = 12

// ErrInvalidObjectID is returned when text does not hold 24 hex digits.
var ErrInvalidObjectID = errors.NewKind("invalid ObjectId: %q")

// ObjectID is a 12 byte identifier: a 4 byte big endian unix timestamp,
// a 5 byte per-process random value and a 3 byte counter.
type ObjectID [Size]byte

// NilObjectID is the zero ObjectID.
var NilObjectID ObjectID

var (
	processUnique = newProcessUnique()
	counter       = newCounter()
)

func newProcessUnique() [5]byte {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return b
}

func newCounter() *atomic.Uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return atomic.NewUint32(binary.BigEndian.Uint32(b[:]))
}

// New returns an ObjectID for the current time.
func New() ObjectID {
	return NewFromTime(time.Now())
}

// NewFromTime returns an ObjectID whose timestamp is |t|.
func NewFromTime(t time.Time) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	copy(id[4:9], processUnique[:])
	c := counter.Inc()
	id[9], id[10], id[11] = byte(c>>16), byte(c>>8), byte(c)
	return id
}

// FromHex parses the 24 digit hex form produced by Hex.
func FromHex(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 2*Size {
		return NilObjectID, ErrInvalidObjectID.New(s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilObjectID, ErrInvalidObjectID.New(s)
	}
	return id, nil
}

// Timestamp returns the creation time encoded in |id|.
func (id ObjectID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0).UTC()
}

// IsZero returns true for NilObjectID.
func (id ObjectID) IsZero() bool {
	return id == NilObjectID
}

// Hex returns the 24 digit lowercase hex form of |id|.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return id.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ObjectID) UnmarshalText(text []byte) error {
	parsed, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON encodes |id| as its hex string.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON decodes a hex string.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return id.UnmarshalText([]byte(s))
}
