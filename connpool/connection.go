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
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/go-ssdb/ssdbclient/internal/fasttime"
	"github.com/go-ssdb/ssdbclient/logger"
	"github.com/go-ssdb/ssdbclient/wire"
)

// state is Connection's position in the Closed -> Connecting ->
// Authenticating? -> Idle <-> InFlight machine (spec 4.5).
type state int32

const (
	stateClosed state = iota
	stateIdle
	stateInFlight
)

// probeResult is ProbeIdle's outcome.
type probeResult int

const (
	// probeIdle means no stray data was observed; the connection may be
	// leased out for a new command.
	probeIdle probeResult = iota
	// probeDataPresent means unread bytes were found — either a frame
	// that was already fully parsed (and is now held as pending) or raw
	// bytes from a non-blocking read. Treated as "previous response
	// wasn't fully drained" (spec 9's defensive-reconnect note).
	probeDataPresent
)

// netConn is the minimal byte-stream capability Connection needs. The
// blocking implementation below satisfies it with *net.TCPConn; a
// cooperative/event-loop implementation would satisfy it with a
// non-blocking, poller-backed type instead (see doc.go).
type netConn interface {
	io.Reader
	io.Writer
	io.Closer
	SetReadDeadline(t time.Time) error
}

// Connection owns at most one TCP socket to one SSDB server, plus the
// ByteBuffer/FrameParser pair that incrementally decodes its responses.
type Connection struct {
	id  string
	cfg Config

	// owningPID is the PID that created this Connection; disconnect()
	// only shuts down the real socket when the calling process still
	// matches it (spec 4.5: "a forked child must not shut down the
	// parent's socket").
	owningPID int32

	socket netConn
	buf    *wire.ByteBuffer
	parser *wire.FrameParser

	pendingFrame [][]byte
	hasPending   bool

	state      state
	lastActive int64
}

// NewConnection constructs a Connection owned by owningPID. It does not
// dial; Connect does.
func NewConnection(owningPID int32, cfg Config) *Connection {
	buf := wire.NewByteBuffer()
	return &Connection{
		id:         uuid.NewString(),
		cfg:        cfg,
		owningPID:  owningPID,
		buf:        buf,
		parser:     wire.NewFrameParser(buf),
		state:      stateClosed,
		lastActive: fasttime.UnixTimestamp(),
	}
}

// ID returns this connection's identity, used to correlate log lines and
// trace spans across its lifetime.
func (c *Connection) ID() string { return c.id }

// ActiveAt reports the last time this connection was known to carry
// traffic.
func (c *Connection) ActiveAt() time.Time {
	return time.Unix(c.lastActive, 0)
}

func (c *Connection) touch() {
	c.lastActive = fasttime.UnixTimestamp()
}

// IsConnected reports whether the socket is currently open.
func (c *Connection) IsConnected() bool {
	return c.state != stateClosed
}

// Connect is idempotent: it returns immediately if already connected.
// Otherwise it opens a TCP socket with TCP_NODELAY set, applies keepalive
// options if configured, and performs the auth handshake if a password was
// supplied.
func (c *Connection) Connect(ctx context.Context) error {
	if c.IsConnected() {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	dialer := net.Dialer{Timeout: c.cfg.DialTimeout}
	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(ErrIO, "dial %s: %v", addr, err)
	}

	if tcp, ok := raw.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
		if c.cfg.SocketKeepAlive {
			_ = tcp.SetKeepAlive(true)
			_ = tcp.SetKeepAlivePeriod(c.cfg.SocketKeepAliveIdle)
		}
	}

	c.socket = raw
	c.state = stateIdle
	c.buf.Clear()
	c.hasPending = false
	c.touch()

	if c.cfg.Password != "" {
		if err := c.authenticate(); err != nil {
			_ = c.disconnectLocked()
			return err
		}
	}

	logger.Debugf("connpool: connected %s (conn=%s)", addr, c.id)
	return nil
}

func (c *Connection) authenticate() error {
	if err := c.Send("auth", c.cfg.Password); err != nil {
		return errors.Wrap(ErrAuth, err.Error())
	}
	frame, err := c.ReadResponse()
	if err != nil {
		return errors.Wrap(ErrAuth, err.Error())
	}
	if _, err := wire.Interpret("auth", frame); err != nil {
		return errors.Wrap(ErrAuth, err.Error())
	}
	return nil
}

// Send encodes cmd+args and writes them atomically to the socket.
func (c *Connection) Send(cmd string, args ...any) error {
	encoded, err := wire.Encode(cmd, args...)
	if err != nil {
		return err
	}
	if err := c.writeAll(encoded); err != nil {
		_ = c.disconnectLocked()
		return err
	}
	c.state = stateInFlight
	c.touch()
	return nil
}

func (c *Connection) writeAll(b []byte) error {
	for len(b) > 0 {
		n, err := c.socket.Write(b)
		if err != nil {
			return errors.Wrap(ErrIO, err.Error())
		}
		b = b[n:]
	}
	return nil
}

// ReadResponse returns one complete frame. If ProbeIdle had already parsed
// and stashed one (pendingFrame), that is returned without touching the
// socket again.
func (c *Connection) ReadResponse() ([][]byte, error) {
	if c.hasPending {
		frame := c.pendingFrame
		c.pendingFrame = nil
		c.hasPending = false
		c.state = stateIdle
		return frame, nil
	}

	for {
		frame, status, err := c.parser.TryParse()
		switch status {
		case wire.Complete:
			c.state = stateIdle
			c.touch()
			return frame, nil
		case wire.BadFormat:
			_ = c.disconnectLocked()
			return nil, err
		}

		n, err := c.readChunk()
		if err != nil {
			_ = c.disconnectLocked()
			return nil, err
		}
		if n == 0 {
			_ = c.disconnectLocked()
			return nil, errors.WithStack(ErrConnectionClosed)
		}
	}
}

func (c *Connection) readChunk() (int, error) {
	if c.socket == nil {
		// Already disconnected (e.g. by a failed Send): report it as closed.
		return 0, nil
	}
	chunkSize := c.cfg.RecvChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultRecvChunkSize
	}
	tmp := make([]byte, chunkSize)
	n, err := c.socket.Read(tmp)
	if n > 0 {
		if appendErr := c.buf.Append(tmp[:n]); appendErr != nil {
			return n, appendErr
		}
	}
	if err != nil {
		if err == io.EOF {
			return n, nil
		}
		return n, errors.Wrap(ErrIO, err.Error())
	}
	return n, nil
}

// ProbeIdle detects a stale, half-closed socket (or a previous response
// that wasn't fully drained) before the pool hands this connection out
// again.
func (c *Connection) ProbeIdle() (probeResult, error) {
	if !c.hasPending {
		frame, status, err := c.parser.TryParse()
		if status == wire.BadFormat {
			_ = c.disconnectLocked()
			return probeIdle, err
		}
		if status == wire.Complete {
			c.pendingFrame = frame
			c.hasPending = true
		}
	}
	if c.hasPending {
		return probeDataPresent, nil
	}

	// Non-blocking read: an immediate deadline forces Read to return
	// right away with data, EOF, or a timeout error.
	_ = c.socket.SetReadDeadline(time.Now())
	defer func() { _ = c.socket.SetReadDeadline(time.Time{}) }()

	tmp := make([]byte, 4096)
	n, err := c.socket.Read(tmp)
	if n > 0 {
		if appendErr := c.buf.Append(tmp[:n]); appendErr != nil {
			return probeIdle, appendErr
		}
		return probeDataPresent, nil
	}
	if err == nil {
		return probeIdle, nil
	}
	if err == io.EOF {
		_ = c.disconnectLocked()
		return probeIdle, errors.WithStack(ErrConnectionClosed)
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return probeIdle, nil
	}
	_ = c.disconnectLocked()
	return probeIdle, errors.Wrap(ErrIO, err.Error())
}

// Disconnect is idempotent. It only attempts an orderly socket shutdown if
// the calling process is the one that created this Connection; either way
// the socket handle is always cleared.
func (c *Connection) Disconnect() error {
	return c.disconnectLocked()
}

func (c *Connection) disconnectLocked() error {
	if c.state == stateClosed && c.socket == nil {
		return nil
	}

	var closeErr error
	if c.socket != nil && ownedByCurrentProcess(c.owningPID) {
		closeErr = c.socket.Close()
	}
	c.socket = nil
	c.state = stateClosed
	c.buf.Clear()
	c.pendingFrame = nil
	c.hasPending = false

	logger.Debugf("connpool: disconnected (conn=%s)", c.id)

	if closeErr != nil {
		return errors.Wrap(ErrIO, closeErr.Error())
	}
	return nil
}
