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
	"fmt"
	"net"
	"strings"
	"testing"
)

// frameBytes encodes parts in the same length-prefixed wire format the
// parser consumes, terminated by an empty line — a minimal stand-in for a
// real SSDB server's response writer.
func frameBytes(parts ...string) []byte {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "%d\n%s\n", len(p), p)
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// fakeServer is a minimal in-process SSDB stand-in: it accepts connections
// on loopback and, for each one, replies to every incoming request frame
// with the next entry of a scripted response queue, cycling once exhausted.
type fakeServer struct {
	t        *testing.T
	listener net.Listener
	host     string
	port     int
}

func newFakeServer(t *testing.T, responses ...[]byte) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("fakeServer: listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	s := &fakeServer{t: t, listener: ln, host: "127.0.0.1", port: addr.Port}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		idx := 0
		buf := make([]byte, 4096)
		for {
			n, err := conn.Read(buf)
			if n == 0 || err != nil {
				return
			}
			if len(responses) == 0 {
				continue
			}
			resp := responses[idx%len(responses)]
			idx++
			if _, err := conn.Write(resp); err != nil {
				return
			}
		}
	}()

	return s
}

func (s *fakeServer) Close() { _ = s.listener.Close() }

func (s *fakeServer) Addr() (string, int) { return s.host, s.port }

// closingServer accepts a single connection and closes it immediately
// without writing anything, simulating a server that dropped the socket.
func newClosingServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("closingServer: listen: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	s := &fakeServer{t: t, listener: ln, host: "127.0.0.1", port: addr.Port}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	return s
}
