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

// This package implements the blocking connection model only: Connection
// dials a real *net.TCPConn and every Send/ReadResponse/ProbeIdle call
// runs synchronously on the calling goroutine, relying on Go's scheduler
// to multiplex blocked goroutines across OS threads.
//
// A cooperative, single-threaded event-loop model (one thread polling
// many sockets, dispatching callbacks as frames complete) was considered
// and rejected; it is not implemented here. It would plug in by
// satisfying the netConn interface with a non-blocking socket and
// replacing ReadResponse's blocking read loop with a registration against
// an external poller. netConn was kept narrow (Read/Write/Close/
// SetReadDeadline) specifically so that swap stays localized to
// connection.go.
package connpool
