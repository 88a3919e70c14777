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

// Package ssdbclient is a client library for SSDB, a Redis-like
// networked key-value store that speaks a plain-text, length-prefixed
// wire protocol over TCP.
package ssdbclient

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-ssdb/ssdbclient/connpool"
	"github.com/go-ssdb/ssdbclient/wire"
)

var tracer = trace.NewNoopTracerProvider().Tracer("ssdbclient")

// Client dispatches commands either through a bounded connection pool
// (the default) or pinned to a single connection for the lifetime of the
// Client (spec 4.7).
type Client struct {
	pool   *connpool.Pool
	single bool

	mu     sync.Mutex
	pinned *connpool.Connection
}

// New constructs a pooled Client.
func New(cfg connpool.Config, poolCfg connpool.PoolConfig) *Client {
	return &Client{pool: connpool.NewPool(cfg, poolCfg)}
}

// NewSingleConnection constructs a Client that leases exactly one
// Connection on first use and holds it for every subsequent command,
// instead of returning it to the pool between commands.
func NewSingleConnection(cfg connpool.Config) *Client {
	return &Client{
		pool:   connpool.NewPool(cfg, connpool.PoolConfig{MaxConnections: 1}),
		single: true,
	}
}

// ExecuteCommand encodes cmd+args, sends it over a leased connection,
// reads and interprets the response, and returns the pool's connection
// when this call is done (unless the Client is single-connection, in
// which case the same Connection is reused for every call).
func (c *Client) ExecuteCommand(ctx context.Context, cmd string, args ...any) (any, error) {
	ctx, span := tracer.Start(ctx, "ssdbclient.execute", trace.WithAttributes(attribute.String("command", cmd)))
	defer span.End()

	conn, pinned, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("conn_id", conn.ID()))

	result, err := c.roundTrip(conn, cmd, args...)

	if !pinned {
		c.pool.Release(conn)
	}
	return result, err
}

func (c *Client) roundTrip(conn *connpool.Connection, cmd string, args ...any) (any, error) {
	if err := conn.Send(cmd, args...); err != nil {
		return nil, err
	}
	frame, err := conn.ReadResponse()
	if err != nil {
		return nil, err
	}
	return wire.Interpret(cmd, frame)
}

// acquire returns the connection to use for the next command, and
// whether it is the Client's pinned single connection (in which case the
// caller must not release it back to the pool).
func (c *Client) acquire(ctx context.Context) (conn *connpool.Connection, pinned bool, err error) {
	if !c.single {
		conn, err = c.pool.Lease(ctx)
		return conn, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned == nil {
		c.pinned, err = c.pool.Lease(ctx)
		if err != nil {
			return nil, false, err
		}
	}
	return c.pinned, true, nil
}

// Close releases the pinned connection (if single-connection) and then
// disconnects every connection the pool still tracks.
func (c *Client) Close() error {
	c.mu.Lock()
	pinned := c.pinned
	c.pinned = nil
	c.mu.Unlock()

	if pinned != nil {
		c.pool.Release(pinned)
	}
	return c.pool.DisconnectAll()
}

// Stats exposes the pool's current occupancy, for debug/metrics surfaces.
func (c *Client) Stats() connpool.Stats {
	return c.pool.Stats()
}

// Pool exposes the underlying pool, for callers wiring a debugserver.
func (c *Client) Pool() *connpool.Pool {
	return c.pool
}
