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
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory constructs a type from its signature. Factories are keyed by
// the signature's base name and may reject parameters with
// ErrInvalidTypeParams.
type Factory func(sig Signature) (Type, error)

// Registry is the catalog of known types. It is populated while
// plugins load and read concurrently afterwards. Every type it returns
// has passed Validate.
type Registry struct {
	mu        sync.RWMutex
	types     map[string]Type
	factories map[string]Factory
	logger    *logrus.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used to report registrations.
func WithLogger(l *logrus.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:     make(map[string]Type),
		factories: make(map[string]Factory),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry returns a Registry holding the built-in types.
func NewDefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	if err := r.RegisterFactory(VarbinaryType.Signature().Base, VarbinaryFactory); err != nil {
		panic(err)
	}
	return r
}

// Register adds |t| under its signature.
func (r *Registry) Register(t Type) error {
	if err := Validate(t); err != nil {
		r.logger.WithError(err).Errorf("rejected type %s", t.Signature())
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := t.Signature().key()
	if _, ok := r.types[key]; ok {
		return ErrDuplicateType.New(t.Signature())
	}
	r.types[key] = t
	r.logger.Debugf("registered type %s", t.Signature())
	return nil
}

// RegisterFactory adds |f| for signatures whose base name is |base|.
func (r *Registry) RegisterFactory(base string, f Factory) error {
	key := NewSignature(base).key()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return ErrDuplicateType.New(base)
	}
	r.factories[key] = f
	r.logger.Debugf("registered type factory %s", base)
	return nil
}

// Get returns the type registered under |sig|.
func (r *Registry) Get(sig Signature) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[sig.key()]
	return t, ok
}

// FromSignature resolves a canonical signature string to a type,
// constructing it through a factory on first use.
func (r *Registry) FromSignature(s string) (Type, error) {
	sig, err := ParseSignature(s)
	if err != nil {
		return nil, err
	}
	if t, ok := r.Get(sig); ok {
		return t, nil
	}

	r.mu.RLock()
	f, ok := r.factories[NewSignature(sig.Base).key()]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownType.New(sig)
	}

	t, err := f(sig)
	if err != nil {
		return nil, err
	}
	if err = Validate(t); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// another caller may have constructed it first
	if existing, ok := r.types[sig.key()]; ok {
		return existing, nil
	}
	r.types[sig.key()] = t
	return t, nil
}

// Types returns the registered types ordered by signature.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Signature().key() < out[j].Signature().key()
	})
	return out
}
