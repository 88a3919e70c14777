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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolLeaseAndReleaseRoundTrip(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 2})

	conn, err := pool.Lease(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 1, Available: 0, InUse: 1}, pool.Stats())

	pool.Release(conn)
	assert.Equal(t, Stats{Created: 1, Available: 1, InUse: 0}, pool.Stats())
}

func TestPoolLeaseReusesReleasedConnectionLIFO(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 2})

	first, err := pool.Lease(context.Background())
	require.NoError(t, err)
	pool.Release(first)

	second, err := pool.Lease(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, pool.Stats().Created, "the released connection should be reused, not recreated")
}

func TestPoolLeaseFailsWhenExhausted(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 1})

	_, err := pool.Lease(context.Background())
	require.NoError(t, err)

	_, err = pool.Lease(context.Background())
	assert.ErrorIs(t, err, ErrPoolExhausted)
}

func TestPoolLeaseReconnectsOnceWhenProbeFindsStrayData(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 1})

	conn, err := pool.Lease(context.Background())
	require.NoError(t, err)

	// Leave stray, unread data behind before releasing: the next Lease
	// must reconnect to discard it rather than hand back a dirty socket.
	require.NoError(t, conn.Send("get", "mykey"))
	time.Sleep(20 * time.Millisecond)
	pool.Release(conn)

	reused, err := pool.Lease(context.Background())
	require.NoError(t, err)
	assert.Same(t, conn, reused)
}

func TestPoolReleaseFromOtherProcessDiscardsConnection(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 2})
	conn, err := pool.Lease(context.Background())
	require.NoError(t, err)

	// Simulate a fork having been detected between lease and release by
	// rewriting the connection's owner PID directly.
	conn.owningPID = currentPID() + 1
	pool.Release(conn)

	assert.Equal(t, Stats{Created: 0, Available: 0, InUse: 0}, pool.Stats())
}

func TestPoolDisconnectAllClosesEveryTrackedConnection(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 2})
	a, err := pool.Lease(context.Background())
	require.NoError(t, err)
	b, err := pool.Lease(context.Background())
	require.NoError(t, err)
	pool.Release(a)

	require.NoError(t, pool.DisconnectAll())
	assert.False(t, a.IsConnected())
	assert.False(t, b.IsConnected())
	assert.Equal(t, Stats{}, pool.Stats())
}

func TestPoolResetLockedClearsAccounting(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	pool := NewPool(Config{Host: host, Port: port}, PoolConfig{MaxConnections: 2})
	_, err := pool.Lease(context.Background())
	require.NoError(t, err)

	pool.mu.Lock()
	pool.resetLocked(currentPID() + 1)
	pool.mu.Unlock()

	assert.Equal(t, Stats{Created: 0, Available: 0, InUse: 0}, pool.Stats())
}
