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

func TestConnectionConnectSendReadResponse(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))
	assert.True(t, conn.IsConnected())

	require.NoError(t, conn.Send("set", "mykey", "myvalue"))
	frame, err := conn.ReadResponse()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("ok"), []byte("1")}, frame)
}

func TestConnectionConnectIsIdempotent(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))
	require.NoError(t, conn.Connect(context.Background()))
	assert.True(t, conn.IsConnected())
}

func TestConnectionAuthenticatesWhenPasswordSet(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port, Password: "secret"}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))
	assert.True(t, conn.IsConnected())
}

func TestConnectionAuthenticationFailureDisconnects(t *testing.T) {
	srv := newFakeServer(t, frameBytes("error"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port, Password: "secret"}.WithDefaults())
	err := conn.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
	assert.False(t, conn.IsConnected())
}

func TestConnectionReadResponseOnClosedSocketFails(t *testing.T) {
	srv := newClosingServer(t)
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))

	// The fake server closes the socket without sending anything. Depending
	// on timing the read sees an orderly close (ErrConnectionClosed) or a
	// reset (ErrIO); either way it fails and the connection is disconnected.
	_ = conn.Send("get", "mykey")
	time.Sleep(20 * time.Millisecond)
	_, err := conn.ReadResponse()
	assert.Error(t, err)
	assert.False(t, conn.IsConnected())
}

func TestConnectionProbeIdleFindsNoStrayData(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))

	require.NoError(t, conn.Send("set", "mykey", "myvalue"))
	_, err := conn.ReadResponse()
	require.NoError(t, err)

	result, err := conn.ProbeIdle()
	require.NoError(t, err)
	assert.Equal(t, probeIdle, result)
}

func TestConnectionProbeIdleFindsStrayData(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok", "1"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))

	// Send triggers the server's scripted reply, but nobody reads it
	// before the probe runs.
	require.NoError(t, conn.Send("get", "mykey"))
	time.Sleep(20 * time.Millisecond)

	result, err := conn.ProbeIdle()
	require.NoError(t, err)
	assert.Equal(t, probeDataPresent, result)

	// The probe buffered the reply's bytes; ReadResponse parses them
	// without another socket read.
	frame, err := conn.ReadResponse()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("ok"), []byte("1")}, frame)
}

func TestConnectionDisconnectIsIdempotent(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok"))
	defer srv.Close()
	host, port := srv.Addr()

	conn := NewConnection(currentPID(), Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))
	require.NoError(t, conn.Disconnect())
	require.NoError(t, conn.Disconnect())
	assert.False(t, conn.IsConnected())
}

func TestConnectionDisconnectFromOtherProcessDoesNotCloseSocket(t *testing.T) {
	srv := newFakeServer(t, frameBytes("ok"))
	defer srv.Close()
	host, port := srv.Addr()

	// owningPID deliberately doesn't match the current process, simulating
	// a forked child inspecting a connection it never created.
	conn := NewConnection(currentPID()+1, Config{Host: host, Port: port}.WithDefaults())
	require.NoError(t, conn.Connect(context.Background()))
	require.NoError(t, conn.Disconnect())
	assert.False(t, conn.IsConnected())
}
