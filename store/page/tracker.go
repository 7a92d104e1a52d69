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

package page

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultMaxPageSizeInBytes is the page budget used when a builder
// is created without a Status.
const DefaultMaxPageSizeInBytes = 1024 * 1024

// Status is the view of a page budget that block builders consult.
// Builders read MaxPageSizeInBytes to size their initial allocation
// and report growth through AddBytes. A nil Status is valid and
// stands for DefaultMaxPageSizeInBytes.
type Status interface {
	MaxPageSizeInBytes() int
	AddBytes(n int)
}

// MaxPageSizeInBytes returns the budget of |s|, or the default budget
// when |s| is nil.
func MaxPageSizeInBytes(s Status) int {
	if s == nil {
		return DefaultMaxPageSizeInBytes
	}
	return s.MaxPageSizeInBytes()
}

// Tracker accumulates the bytes appended by every column builder of
// one page. The running total only ever grows. Crossing the budget is
// reported, never enforced; flushing a full page is up to the caller.
type Tracker struct {
	maxPageSize int
	size        *atomic.Int64
	full        *atomic.Bool
	metrics     *Metrics
	logger      *logrus.Logger
}

var _ Status = (*Tracker)(nil)

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMetrics reports accumulation into |m|.
func WithMetrics(m *Metrics) TrackerOption {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// WithLogger sets the logger used for page-full notifications.
func WithLogger(l *logrus.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// NewTracker returns a Tracker for a page of at most |maxPageSizeInBytes|.
func NewTracker(maxPageSizeInBytes int, opts ...TrackerOption) *Tracker {
	if maxPageSizeInBytes <= 0 {
		panic(fmt.Sprintf("max page size must be positive: %d", maxPageSizeInBytes))
	}
	t := &Tracker{
		maxPageSize: maxPageSizeInBytes,
		size:        atomic.NewInt64(0),
		full:        atomic.NewBool(false),
		logger:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewDefaultTracker returns a Tracker with DefaultMaxPageSizeInBytes.
func NewDefaultTracker(opts ...TrackerOption) *Tracker {
	return NewTracker(DefaultMaxPageSizeInBytes, opts...)
}

// MaxPageSizeInBytes implements Status.
func (t *Tracker) MaxPageSizeInBytes() int {
	return t.maxPageSize
}

// AddBytes implements Status. It is safe to call from builders of
// different columns concurrently.
func (t *Tracker) AddBytes(n int) {
	if n < 0 {
		panic(fmt.Sprintf("page size delta must not be negative: %d", n))
	}
	if n == 0 {
		return
	}
	total := t.size.Add(int64(n))
	if t.metrics != nil {
		t.metrics.bytesAccumulated.Add(float64(n))
	}
	if total >= int64(t.maxPageSize) && t.full.CompareAndSwap(false, true) {
		if t.metrics != nil {
			t.metrics.pagesFull.Inc()
		}
		t.logger.Debugf("page full: %s of %s",
			humanize.IBytes(uint64(total)), humanize.IBytes(uint64(t.maxPageSize)))
	}
}

// SizeInBytes returns the bytes accumulated so far.
func (t *Tracker) SizeInBytes() int64 {
	return t.size.Load()
}

// IsFull returns true once the accumulated size reaches the budget.
func (t *Tracker) IsFull() bool {
	return t.size.Load() >= int64(t.maxPageSize)
}

// NewBlockStatus returns a Status for one column of this page.
func (t *Tracker) NewBlockStatus() *BlockStatus {
	return &BlockStatus{tracker: t}
}

func (t *Tracker) String() string {
	return fmt.Sprintf("Tracker{size: %s, max: %s}",
		humanize.IBytes(uint64(t.SizeInBytes())), humanize.IBytes(uint64(t.maxPageSize)))
}

// BlockStatus is a per-column view of a Tracker. It keeps the
// column's own total and forwards every delta to the page. A
// BlockStatus belongs to a single builder and is not synchronized.
type BlockStatus struct {
	tracker *Tracker
	size    int
}

var _ Status = (*BlockStatus)(nil)

// MaxPageSizeInBytes implements Status.
func (s *BlockStatus) MaxPageSizeInBytes() int {
	return s.tracker.MaxPageSizeInBytes()
}

// AddBytes implements Status.
func (s *BlockStatus) AddBytes(n int) {
	s.size += n
	s.tracker.AddBytes(n)
}

// SizeInBytes returns the bytes reported by this column.
func (s *BlockStatus) SizeInBytes() int {
	return s.size
}
