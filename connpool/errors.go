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

import "github.com/pkg/errors"

// Sentinel errors forming the parts of spec section 7's taxonomy that arise
// from socket ownership and pooling, as opposed to frame shaping (which
// lives in package wire).
var (
	// ErrIO covers socket read/write failures.
	ErrIO = errors.New("connpool: i/o error")
	// ErrConnectionClosed is returned when a read returns 0 bytes
	// (orderly close), whether or not part of a frame was already buffered.
	ErrConnectionClosed = errors.New("connpool: connection closed")
	// ErrAuth is returned when the auth handshake fails, whether because
	// the server replied with a non-ok status or because the handshake
	// read/write itself failed.
	ErrAuth = errors.New("connpool: authentication failed")
	// ErrPoolExhausted is returned by Lease when max_connections has
	// already been reached.
	ErrPoolExhausted = errors.New("connpool: pool exhausted")
	// ErrConnectionNotReady is returned by Lease when, after the single
	// permitted reconnect, the idle probe still observes stray data.
	ErrConnectionNotReady = errors.New("connpool: connection not ready")
	// ErrChildDeadlock is returned by check_pid when the fork mutex
	// cannot be acquired within ForkMutexTimeout.
	ErrChildDeadlock = errors.New("connpool: timed out waiting for fork mutex")
)
