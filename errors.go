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

package ssdbclient

import (
	"github.com/go-ssdb/ssdbclient/connpool"
	"github.com/go-ssdb/ssdbclient/wire"
)

// Re-exported so callers can compare against errors.Is without importing
// connpool or wire. ErrConnectionClosed is connpool's socket-level error;
// an empty frame is reported with wire.ErrConnectionClosed, a distinct
// value that is not re-exported here.
var (
	ErrIO                 = connpool.ErrIO
	ErrConnectionClosed   = connpool.ErrConnectionClosed
	ErrAuth               = connpool.ErrAuth
	ErrPoolExhausted      = connpool.ErrPoolExhausted
	ErrConnectionNotReady = connpool.ErrConnectionNotReady
	ErrChildDeadlock      = connpool.ErrChildDeadlock

	ErrOutOfMemory    = wire.ErrOutOfMemory
	ErrBadFormat      = wire.ErrBadFormat
	ErrProtocol       = wire.ErrProtocol
	ErrUnknownCommand = wire.ErrUnknownCommand
	ErrEncoding       = wire.ErrEncoding
)

// RemoteError and Absent are referenced by their wire types directly;
// alias them so callers type-switch against *ssdbclient.RemoteError (the
// interpreter returns it as a pointer) and ssdbclient.Absent.
type RemoteError = wire.RemoteError
type Absent = wire.Absent
