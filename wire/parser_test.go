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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser() *FrameParser {
	return NewFrameParser(NewByteBuffer())
}

func TestTryParseCompleteFrame(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("2\nok\n3\nbar\n\n")))

	frame, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Equal(t, [][]byte{[]byte("ok"), []byte("bar")}, frame)
	assert.Equal(t, 0, p.Buffer().Len(), "consumed bytes must be removed from the buffer")
}

func TestTryParseToleratesCRLFTerminators(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("2\r\nok\r\n\r\n")))

	frame, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Equal(t, [][]byte{[]byte("ok")}, frame)
}

func TestTryParseIncompleteAcrossReads(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("2\nok\n3\nba")))

	_, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Incomplete, status)
	assert.Equal(t, "2\nok\n3\nba", string(p.Buffer().Bytes()), "incomplete parse must not consume anything")

	require.NoError(t, p.Buffer().Append([]byte("r\n\n")))
	frame, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Equal(t, [][]byte{[]byte("ok"), []byte("bar")}, frame)
}

func TestTryParseEmptyFrame(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("\n")))

	frame, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Empty(t, frame)
}

func TestTryParseBadFormatNonDigitHeader(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("abc\nxyz\n\n")))

	_, status, err := p.TryParse()
	assert.Equal(t, BadFormat, status)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestTryParseBadFormatMissingTerminatorAfterBlob(t *testing.T) {
	p := newParser()
	// After consuming the 3-byte blob "foo", the next byte must be \r or \n.
	require.NoError(t, p.Buffer().Append([]byte("3\nfooX\n\n")))

	_, status, err := p.TryParse()
	assert.Equal(t, BadFormat, status)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestTryParseRejectsOverlongHeader(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("12345678901234567890\nx\n\n")))

	_, status, err := p.TryParse()
	assert.Equal(t, BadFormat, status)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestTryParseMultipleFramesOneAtATime(t *testing.T) {
	p := newParser()
	require.NoError(t, p.Buffer().Append([]byte("2\nok\n\n2\nok\n\n")))

	frame, status, err := p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Equal(t, [][]byte{[]byte("ok")}, frame)

	frame, status, err = p.TryParse()
	require.NoError(t, err)
	assert.Equal(t, Complete, status)
	assert.Equal(t, [][]byte{[]byte("ok")}, frame)
}
