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
	"context"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-ssdb/ssdbclient/logger"
)

var tracer = trace.NewNoopTracerProvider().Tracer("ssdbclient")

func currentPID() int32 { return int32(os.Getpid()) }

func ownedByCurrentProcess(owner int32) bool { return owner == currentPID() }

// Pool is a bounded, fork-safe collection of Connections to a single SSDB
// server. Lease/Release follow a LIFO discipline: the most recently
// released connection is handed out first, since it's the most likely to
// still have a warm socket (spec 4.6).
type Pool struct {
	cfg     Config
	poolCfg PoolConfig

	mu        sync.Mutex
	fork      forkMutex
	ownerPID  int32
	created   int
	available []*Connection
	inUse     map[*Connection]struct{}

	metrics *poolMetrics
}

// NewPool constructs a Pool bound to cfg/poolCfg, both defaulted.
func NewPool(cfg Config, poolCfg PoolConfig) *Pool {
	cfg = cfg.WithDefaults()
	poolCfg = poolCfg.WithDefaults()
	return &Pool{
		cfg:      cfg,
		poolCfg:  poolCfg,
		fork:     newForkMutex(),
		ownerPID: currentPID(),
		inUse:    make(map[*Connection]struct{}),
		metrics:  newPoolMetrics(),
	}
}

// Lease returns a connected, idle-probed Connection from the pool,
// creating one if none is available and the pool has capacity. The
// caller must Release it. A connection that is dropped instead stays
// counted as in use until the next DisconnectAll; Stats does not reconcile
// it.
func (p *Pool) Lease(ctx context.Context) (*Connection, error) {
	ctx, span := tracer.Start(ctx, "ssdbclient.lease")
	defer span.End()

	if err := p.checkPID(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	conn, err := p.takeOrCreateLocked()
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("conn_id", conn.ID()))
	p.metrics.inUse.Inc()

	if err := p.prepare(ctx, conn); err != nil {
		p.Release(conn)
		return nil, err
	}
	return conn, nil
}

// prepare connects conn if it isn't already, then unconditionally probes
// it — fresh or reused — and retries exactly once if the probe finds
// stray data (spec 4.6 step 3: "connect(); then probe_idle()" applies to
// every connection handed to a caller, not just reused ones), before
// giving up with ErrConnectionNotReady.
func (p *Pool) prepare(ctx context.Context, conn *Connection) error {
	if !conn.IsConnected() {
		if err := conn.Connect(ctx); err != nil {
			return err
		}
	}

	result, err := conn.ProbeIdle()
	if err == nil && result == probeIdle {
		return nil
	}
	if err != nil && !errors.Is(err, ErrConnectionClosed) {
		return err
	}

	// Reconnect and probe once more.
	logger.Debugf("connpool: reconnecting stale connection (conn=%s)", conn.ID())
	p.metrics.reconnects.Inc()
	if err := conn.Disconnect(); err != nil {
		return err
	}
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	result, err = conn.ProbeIdle()
	if err != nil {
		return err
	}
	if result != probeIdle {
		return errors.WithStack(ErrConnectionNotReady)
	}
	return nil
}

// takeOrCreateLocked pops a connection off available, or creates a fresh
// one if the pool has capacity, and immediately marks it in_use — all
// under mutex, per spec 4.6 step (2) (the socket I/O that follows runs
// outside the lock).
func (p *Pool) takeOrCreateLocked() (*Connection, error) {
	var conn *Connection
	if n := len(p.available); n > 0 {
		conn = p.available[n-1]
		p.available = p.available[:n-1]
	} else {
		if p.created >= p.poolCfg.MaxConnections {
			p.metrics.poolExhausted.Inc()
			return nil, errors.WithStack(ErrPoolExhausted)
		}
		conn = NewConnection(p.ownerPID, p.cfg)
		p.created++
		p.metrics.created.Inc()
	}
	p.inUse[conn] = struct{}{}
	return conn, nil
}

// Release returns conn to the pool. If the calling process still owns it
// (no fork since it was created) and it is still connected, it goes back on
// the available stack for reuse. A connection that was disconnected (for
// example after an I/O error) is dropped and no longer counted as created.
// A connection that belonged to a parent process across a fork is dropped
// the same way, without closing its socket (spec 4.6).
func (p *Pool) Release(conn *Connection) {
	if err := p.checkPID(); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inUse, conn)
	p.metrics.inUse.Dec()

	if ownedByCurrentProcess(conn.owningPID) && conn.IsConnected() {
		p.available = append(p.available, conn)
		return
	}
	if p.created > 0 {
		p.created--
	}
	_ = conn.Disconnect()
}

// checkPID detects a fork since the pool was created and, on the first
// caller to notice, resets pool state so the child starts with an empty
// pool rather than inheriting the parent's sockets (spec 4.6/9).
func (p *Pool) checkPID() error {
	pid := currentPID()
	p.mu.Lock()
	same := p.ownerPID == pid
	p.mu.Unlock()
	if same {
		return nil
	}

	if !p.fork.tryLock(p.poolCfg.ForkMutexTimeout) {
		return errors.WithStack(ErrChildDeadlock)
	}
	defer p.fork.unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ownerPID == pid {
		// Another goroutine already reset while we waited.
		return nil
	}
	logger.Warnf("connpool: fork detected (was pid=%d, now pid=%d); resetting pool", p.ownerPID, pid)
	p.metrics.forkResets.Inc()
	p.resetLocked(pid)
	return nil
}

// resetLocked discards all tracked connections without attempting to
// close their sockets (the child does not own them) and clears
// accounting so the pool behaves as freshly constructed.
func (p *Pool) resetLocked(pid int32) {
	p.ownerPID = pid
	p.created = 0
	p.available = nil
	p.inUse = make(map[*Connection]struct{})
}

// DisconnectAll closes every connection currently tracked, both available
// and in use, and resets the pool's accounting, aggregating any close errors with go-multierror rather than stopping at
// the first one.
func (p *Pool) DisconnectAll() error {
	p.mu.Lock()
	conns := append([]*Connection(nil), p.available...)
	for conn := range p.inUse {
		conns = append(conns, conn)
	}
	p.available = nil
	p.inUse = make(map[*Connection]struct{})
	p.created = 0
	p.mu.Unlock()

	var result *multierror.Error
	for _, conn := range conns {
		if err := conn.Disconnect(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Stats is a point-in-time snapshot of pool occupancy.
type Stats struct {
	Created   int
	Available int
	InUse     int
}

// Stats reports the pool's current occupancy.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Created:   p.created,
		Available: len(p.available),
		InUse:     len(p.inUse),
	}
}
