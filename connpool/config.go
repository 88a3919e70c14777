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

// Package connpool implements the Connection and Pool subsystems: a single
// SSDB socket with handshake/probe/state-machine semantics, and a bounded,
// fork-safe pool that leases and reclaims them.
package connpool

import "time"

// Defaults, per spec section 6.
const (
	DefaultHost              = "localhost"
	DefaultPort              = 7036
	DefaultRecvChunkSize     = 65536
	DefaultDialTimeout       = 5 * time.Second
	DefaultForkMutexTimeout  = 5 * time.Second
	DefaultSocketKeepAlive   = true
	DefaultSocketKeepAliveIdle = 60 * time.Second

	// unboundedConnections is substituted for MaxConnections == 0, per
	// spec ("0 means unbounded, treated as MAX_INT32").
	unboundedConnections = 1<<31 - 1
)

// Config describes how to reach and authenticate against one SSDB server.
// It is shared by every Connection a Pool creates.
type Config struct {
	Host                string        `config:"host"`
	Port                int           `config:"port"`
	Password            string        `config:"password"`
	SocketKeepAlive     bool          `config:"socketKeepalive"`
	SocketKeepAliveIdle time.Duration `config:"socketKeepaliveIdle"`
	RecvChunkSize       int           `config:"recvChunkSize"`
	DialTimeout         time.Duration `config:"dialTimeout"`
}

// WithDefaults returns a copy of c with spec-mandated defaults filled in for
// any zero-valued field.
func (c Config) WithDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.RecvChunkSize == 0 {
		c.RecvChunkSize = DefaultRecvChunkSize
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if !c.SocketKeepAlive {
		c.SocketKeepAlive = DefaultSocketKeepAlive
	}
	if c.SocketKeepAliveIdle == 0 {
		c.SocketKeepAliveIdle = DefaultSocketKeepAliveIdle
	}
	return c
}

// PoolConfig configures a Pool's bounds and fork-safety behavior.
type PoolConfig struct {
	// MaxConnections is the ceiling on created_connections. 0 means
	// unbounded (treated as MAX_INT32, per spec section 6).
	MaxConnections int `config:"maxConnections"`
	// ForkMutexTimeout bounds how long check_pid waits to acquire the
	// fork mutex before failing with ErrChildDeadlock.
	ForkMutexTimeout time.Duration `config:"forkMutexTimeout"`
}

// WithDefaults returns a copy of c with spec-mandated defaults filled in.
func (c PoolConfig) WithDefaults() PoolConfig {
	if c.MaxConnections == 0 {
		c.MaxConnections = unboundedConnections
	}
	if c.ForkMutexTimeout == 0 {
		c.ForkMutexTimeout = DefaultForkMutexTimeout
	}
	return c
}
