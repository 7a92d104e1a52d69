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

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts page accumulation across every Tracker it is
// attached to.
type Metrics struct {
	bytesAccumulated prometheus.Counter
	pagesFull        prometheus.Counter
}

// NewMetrics returns unregistered counters carrying |labels|.
func NewMetrics(labels prometheus.Labels) *Metrics {
	return &Metrics{
		bytesAccumulated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "coldata_page_bytes_accumulated",
			Help:        "Count of bytes appended to page builders",
			ConstLabels: labels,
		}),
		pagesFull: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "coldata_pages_full",
			Help:        "Count of pages that reached their size budget",
			ConstLabels: labels,
		}),
	}
}

// Register adds the metrics to |r|.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.bytesAccumulated, m.pagesFull} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
