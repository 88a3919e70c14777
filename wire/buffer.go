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

// Package wire implements the SSDB wire protocol: an append-fed byte buffer,
// an incremental frame parser, a command encoder and a response interpreter.
package wire

import (
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

const (
	// InitialBufferSize is the capacity a fresh ByteBuffer starts with.
	InitialBufferSize = 8 * 1024

	// MaxBufferSize is the hard cap a ByteBuffer will never grow past.
	MaxBufferSize = 16 * 1024 * 1024
)

// ErrOutOfMemory is returned by Append when growing the buffer would exceed
// MaxBufferSize.
var ErrOutOfMemory = errors.New("wire: buffer would exceed 16MiB limit")

// arenas pools the backing arrays ByteBuffer grows into, so a long-lived
// Connection's read loop doesn't allocate a fresh arena on every frame.
var arenas bytebufferpool.Pool

// ByteBuffer is a contiguous growable byte arena fed by Connection.Read and
// scanned in place by FrameParser. It owns its storage exclusively: callers
// must not retain slices returned by Bytes() past the next Append/Consume.
type ByteBuffer struct {
	bb *bytebufferpool.ByteBuffer
}

// NewByteBuffer returns a ByteBuffer with InitialBufferSize capacity, backed
// by a pooled arena.
func NewByteBuffer() *ByteBuffer {
	b := &ByteBuffer{bb: arenas.Get()}
	b.reserve(InitialBufferSize)
	return b
}

// Len returns the number of unconsumed bytes currently buffered.
func (b *ByteBuffer) Len() int {
	return len(b.bb.B)
}

// Cap returns the current backing capacity.
func (b *ByteBuffer) Cap() int {
	return cap(b.bb.B)
}

// Bytes returns the unconsumed bytes. The slice is only valid until the next
// Append, Consume or Clear call.
func (b *ByteBuffer) Bytes() []byte {
	return b.bb.B
}

// Append copies p onto the end of the buffer, growing the backing array by
// doubling until it is large enough. It fails with ErrOutOfMemory if the
// required capacity would exceed MaxBufferSize.
func (b *ByteBuffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	need := len(b.bb.B) + len(p)
	if need > MaxBufferSize {
		return errors.WithStack(ErrOutOfMemory)
	}
	if need > cap(b.bb.B) {
		if err := b.reserve(need); err != nil {
			return err
		}
	}
	b.bb.B = append(b.bb.B, p...)
	return nil
}

// reserve grows the backing array (geometric doubling) so that it can hold
// at least need bytes, without exceeding MaxBufferSize.
func (b *ByteBuffer) reserve(need int) error {
	if need > MaxBufferSize {
		return errors.WithStack(ErrOutOfMemory)
	}
	newCap := cap(b.bb.B)
	if newCap == 0 {
		newCap = InitialBufferSize
	}
	for newCap < need {
		newCap *= 2
	}
	if newCap > MaxBufferSize {
		newCap = MaxBufferSize
	}
	if newCap <= cap(b.bb.B) {
		return nil
	}
	grown := make([]byte, len(b.bb.B), newCap)
	copy(grown, b.bb.B)
	b.bb.B = grown
	return nil
}

// Consume removes the first n bytes by shifting the remaining suffix down to
// offset 0, keeping the read cursor at 0 for the next parse attempt. n >=
// Len() empties the buffer.
func (b *ByteBuffer) Consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.bb.B) {
		b.bb.B = b.bb.B[:0]
		return
	}
	copy(b.bb.B, b.bb.B[n:])
	b.bb.B = b.bb.B[:len(b.bb.B)-n]
}

// Clear releases the backing storage back to the shared pool. The next
// Append reallocates (or borrows a fresh pooled arena).
func (b *ByteBuffer) Clear() {
	b.bb.Reset()
	arenas.Put(b.bb)
	b.bb = arenas.Get()
}
