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
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/valyala/bytebufferpool"
)

// ErrEncoding is returned when a command argument cannot be coerced to a
// wire token (spec 4.3: "Other types: reject with EncodingError").
var ErrEncoding = errors.New("wire: argument cannot be encoded")

// renamedCommands rewrites a command name to the server's native spelling
// on the wire. "delete" is SSDB's legacy client-side alias for "del".
var renamedCommands = map[string]string{
	"delete": "del",
}

// Encode serializes name and args into the SSDB request framing:
//
//	<len(name)>\n<name>\n<len(arg1)>\n<arg1>\n ... <len(argN)>\n<argN>\n\n
//
// Each token is coerced to a byte string: strings/[]byte pass through (UTF-8
// text, raw bytes), integers render as decimal ASCII, anything else fails
// with ErrEncoding.
func Encode(name string, args ...any) ([]byte, error) {
	if wire, ok := renamedCommands[name]; ok {
		name = wire
	}

	out := bufferPool.Get()
	defer bufferPool.Put(out)

	if err := writeToken(out, []byte(name)); err != nil {
		return nil, errors.Wrapf(err, "encode command name %q", name)
	}
	for i, arg := range args {
		token, err := coerceToken(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "encode argument %d of %q", i, name)
		}
		if err := writeToken(out, token); err != nil {
			return nil, errors.Wrapf(err, "encode argument %d of %q", i, name)
		}
	}
	out.B = append(out.B, '\n')

	encoded := make([]byte, len(out.B))
	copy(encoded, out.B)
	return encoded, nil
}

var bufferPool bytebufferpool.Pool

func writeToken(out *bytebufferpool.ByteBuffer, token []byte) error {
	out.B = strconv.AppendInt(out.B, int64(len(token)), 10)
	out.B = append(out.B, '\n')
	out.B = append(out.B, token...)
	out.B = append(out.B, '\n')
	return nil
}

// coerceToken implements spec 4.3's argument coercion: text as-is, integers
// as decimal ASCII, raw bytes passed through, everything else rejected.
func coerceToken(v any) ([]byte, error) {
	if v == nil {
		return nil, errors.Wrap(ErrEncoding, "nil argument")
	}

	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := cast.ToInt64E(v)
		return []byte(strconv.FormatInt(n, 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := cast.ToUint64E(v)
		return []byte(strconv.FormatUint(n, 10)), nil
	}

	return nil, errors.Wrapf(ErrEncoding, "unsupported argument type %T", v)
}
