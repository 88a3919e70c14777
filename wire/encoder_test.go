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

func TestEncodeTextAndIntArguments(t *testing.T) {
	b, err := Encode("set", "mykey", "myvalue")
	require.NoError(t, err)
	assert.Equal(t, "3\nset\n5\nmykey\n7\nmyvalue\n\n", string(b))

	b, err = Encode("expire", "mykey", 60)
	require.NoError(t, err)
	assert.Equal(t, "6\nexpire\n5\nmykey\n2\n60\n\n", string(b))
}

func TestEncodeBytesArgument(t *testing.T) {
	b, err := Encode("set", "mykey", []byte{0x00, 0x01, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "3\nset\n5\nmykey\n3\n\x00\x01\xff\n\n", string(b))
}

func TestEncodeNoArguments(t *testing.T) {
	b, err := Encode("ping")
	require.NoError(t, err)
	assert.Equal(t, "4\nping\n\n", string(b))
}

func TestEncodeRenamesDeleteToDel(t *testing.T) {
	b, err := Encode("delete", "mykey")
	require.NoError(t, err)
	assert.Equal(t, "3\ndel\n5\nmykey\n\n", string(b))
}

func TestEncodeRejectsUnsupportedArgument(t *testing.T) {
	_, err := Encode("set", "mykey", 3.14)
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = Encode("set", "mykey", true)
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = Encode("set", "mykey", nil)
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestEncodeUintArgument(t *testing.T) {
	b, err := Encode("setbit", "mykey", uint32(7))
	require.NoError(t, err)
	assert.Equal(t, "6\nsetbit\n5\nmykey\n1\n7\n\n", string(b))
}
