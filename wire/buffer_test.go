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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferAppendAndConsume(t *testing.T) {
	b := NewByteBuffer()
	require.NoError(t, b.Append([]byte("hello")))
	require.NoError(t, b.Append([]byte("world")))
	assert.Equal(t, "helloworld", string(b.Bytes()))
	assert.Equal(t, 10, b.Len())

	b.Consume(5)
	assert.Equal(t, "world", string(b.Bytes()))

	b.Consume(100)
	assert.Equal(t, 0, b.Len())
}

func TestByteBufferGrowsGeometrically(t *testing.T) {
	b := NewByteBuffer()
	assert.Equal(t, InitialBufferSize, b.Cap())

	require.NoError(t, b.Append(bytes.Repeat([]byte("x"), InitialBufferSize+1)))
	assert.GreaterOrEqual(t, b.Cap(), InitialBufferSize+1)
	assert.Equal(t, 0, b.Cap()&(b.Cap()-1), "capacity should remain a power of two after doubling")
}

func TestByteBufferRejectsOversizedAppend(t *testing.T) {
	b := NewByteBuffer()
	err := b.Append(make([]byte, MaxBufferSize+1))
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestByteBufferClearReleasesAndResets(t *testing.T) {
	b := NewByteBuffer()
	require.NoError(t, b.Append([]byte("stale")))
	b.Clear()
	assert.Equal(t, 0, b.Len())
}

func TestByteBufferEmptyAppendIsNoop(t *testing.T) {
	b := NewByteBuffer()
	require.NoError(t, b.Append(nil))
	assert.Equal(t, 0, b.Len())
}
