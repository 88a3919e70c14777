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

package wire

import (
	"bytes"

	"github.com/pkg/errors"
)

// maxHeaderDigits bounds how many ASCII digits a length header may carry
// before it is rejected as malformed (spec 4.2 step 5).
const maxHeaderDigits = 19

// ErrBadFormat is returned by TryParse when the buffered bytes do not match
// the length-prefixed blob grammar. The connection that produced this data
// must be disconnected; the buffer is left in an undefined state.
var ErrBadFormat = errors.New("wire: malformed frame")

// Status describes the outcome of a single TryParse call.
type Status int

const (
	// Incomplete means the buffer holds a (possibly empty) prefix of a
	// frame; the buffer is left untouched and more bytes are needed.
	Incomplete Status = iota
	// Complete means a full frame was extracted and consumed from the
	// buffer.
	Complete
	// BadFormat means the buffered bytes violate the grammar; the
	// connection must be dropped.
	BadFormat
)

// FrameParser extracts complete response frames from a ByteBuffer. It is
// stateless beyond the buffer: every TryParse call re-scans from offset 0.
type FrameParser struct {
	buf *ByteBuffer
}

// NewFrameParser wraps buf. A FrameParser owns exactly one ByteBuffer for its
// whole lifetime.
func NewFrameParser(buf *ByteBuffer) *FrameParser {
	return &FrameParser{buf: buf}
}

// Buffer returns the ByteBuffer this parser scans.
func (p *FrameParser) Buffer() *ByteBuffer {
	return p.buf
}

// TryParse attempts to extract one complete frame from the buffered bytes.
//
// On Complete, the bytes belonging to the frame have been consumed from the
// buffer and frame holds the ordered blobs (status + payload). On
// Incomplete, the buffer is unchanged. On BadFormat, the buffer must be
// treated as poisoned.
func (p *FrameParser) TryParse() (frame [][]byte, status Status, err error) {
	b := p.buf.Bytes()
	cursor := 0
	var blobs [][]byte

	for {
		nl := bytes.IndexByte(b[cursor:], '\n')
		if nl == -1 {
			return nil, Incomplete, nil
		}
		nl += cursor

		// content is the line up to (but excluding) the '\n' itself: ""
		// for a bare "\n" terminator, "\r" for a "\r\n" terminator, or
		// the (optionally \r-suffixed) decimal length header.
		content := b[cursor:nl]
		if isTerminatorLine(content) {
			total := nl + 1
			p.buf.Consume(total)
			return blobs, Complete, nil
		}

		digits := content
		if len(digits) > 0 && digits[len(digits)-1] == '\r' {
			digits = digits[:len(digits)-1]
		}
		if len(digits) == 0 || !isAllDigits(digits) {
			return nil, BadFormat, errors.WithStack(ErrBadFormat)
		}
		if len(digits) > maxHeaderDigits {
			return nil, BadFormat, errors.WithStack(ErrBadFormat)
		}

		sz, ok := parseNonNegativeInt(digits)
		if !ok {
			return nil, BadFormat, errors.WithStack(ErrBadFormat)
		}

		payloadStart := nl + 1
		payloadEnd := payloadStart + sz
		if payloadEnd > len(b) {
			return nil, Incomplete, nil
		}

		termLen, bad, incomplete := terminatorAt(b, payloadEnd)
		if incomplete {
			return nil, Incomplete, nil
		}
		if bad {
			return nil, BadFormat, errors.WithStack(ErrBadFormat)
		}

		blob := make([]byte, sz)
		copy(blob, b[payloadStart:payloadEnd])
		blobs = append(blobs, blob)

		cursor = payloadEnd + termLen
	}
}

// isTerminatorLine reports whether content (the bytes of a line up to but
// excluding its trailing '\n') is a bare empty-line terminator: "" (plain
// "\n") or "\r" (a "\r\n" terminator).
func isTerminatorLine(content []byte) bool {
	return len(content) == 0 || len(content) == 1 && content[0] == '\r'
}

func isAllDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseNonNegativeInt decodes digits as a non-negative decimal integer,
// reporting false on overflow (a 19-digit header can exceed the range of a
// machine int, which must be treated as BadFormat rather than wrapping
// negative).
func parseNonNegativeInt(digits []byte) (int, bool) {
	const maxInt = int(^uint(0) >> 1)
	n := 0
	for _, c := range digits {
		d := int(c - '0')
		if n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// terminatorAt reports the length of the terminator ("\n" or "\r\n")
// starting at offset in b. incomplete means more bytes must arrive before a
// verdict can be reached; bad means the bytes present rule out a terminator
// ever starting there.
func terminatorAt(b []byte, offset int) (length int, bad bool, incomplete bool) {
	if offset >= len(b) {
		return 0, false, true
	}
	if b[offset] == '\n' {
		return 1, false, false
	}
	if b[offset] == '\r' {
		if offset+1 >= len(b) {
			return 0, false, true
		}
		if b[offset+1] == '\n' {
			return 2, false, false
		}
		return 0, true, false
	}
	return 0, true, false
}
