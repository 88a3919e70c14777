// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package connpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-ssdb/ssdbclient/common"
)

// poolMetrics are per-process prometheus.DefaultRegisterer metrics shared
// by every Pool in the process. They carry no labels, so the numbers of
// all Pools in a process are summed together.
type poolMetrics struct {
	created       gaugeInc
	inUse         gaugeInc
	poolExhausted counterInc
	reconnects    counterInc
	forkResets    counterInc
}

// gaugeInc is the subset of prometheus.Gauge that pool.go exercises.
type gaugeInc interface {
	Inc()
	Dec()
}

// counterInc is the subset of prometheus.Counter that pool.go exercises.
type counterInc interface {
	Inc()
}

var (
	connectionsCreated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "connections_created",
			Help:      "Connections created across all pools in this process",
		},
	)

	connectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "connections_in_use",
			Help:      "Connections currently leased out across all pools in this process",
		},
	)

	poolExhaustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "pool_exhausted_total",
			Help:      "Lease attempts that failed because a pool was at max_connections",
		},
	)

	reconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "reconnects_total",
			Help:      "Connections torn down and re-dialed after an idle probe found stray data",
		},
	)

	forkResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "fork_resets_total",
			Help:      "Pools that discarded their inherited connections after detecting a fork",
		},
	)
)

func newPoolMetrics() *poolMetrics {
	return &poolMetrics{
		created:       connectionsCreated,
		inUse:         connectionsInUse,
		poolExhausted: poolExhaustedTotal,
		reconnects:    reconnectsTotal,
		forkResets:    forkResetsTotal,
	}
}
