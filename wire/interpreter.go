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
	"strconv"

	"github.com/pkg/errors"
)

const (
	statusOK       = "ok"
	statusNotFound = "not_found"
)

// Sentinel errors making up the taxonomy in spec 7 that ResponseInterpreter
// can surface. Connection-level errors (IoError, ConnectionClosed as a
// socket event, AuthError) live in connpool; these are the ones that arise
// purely from shaping an already-received frame.
var (
	// ErrConnectionClosed is returned when the server sent an empty frame.
	ErrConnectionClosed = errors.New("wire: connection closed (empty frame)")
	// ErrProtocol covers malformed response bodies: odd-length map and
	// scan bodies, and INT/FLOAT/BYTES bodies that are empty or (for
	// INT/FLOAT) do not parse as a number.
	ErrProtocol = errors.New("wire: protocol error")
	// ErrUnknownCommand is returned when cmd is not a member of any
	// response class.
	ErrUnknownCommand = errors.New("wire: unknown command")
)

// RemoteError wraps a non-ok, non-not_found status string returned by the
// server (spec 6: "Status values").
type RemoteError struct {
	Status string
}

func (e *RemoteError) Error() string {
	return "ssdb: remote error: " + e.Status
}

// Absent is the absent-value sentinel returned for NO_RESPONSE commands and
// for any command whose status is "not_found".
type Absent struct{}

// ScanResult is the shape STR_MAP_SCAN/INT_MAP_SCAN commands return: the
// cursor to resume scanning from (nil if the result set was empty) plus the
// ordered key/value pairs decoded under the matching map rules. A
// STR_MAP_SCAN result populates Pairs; an INT_MAP_SCAN result populates
// IntPairs.
type ScanResult struct {
	NextStart []byte
	Pairs     []KV
	IntPairs  []IntKV
}

// KV is one ordered key/value pair as returned by a *_MAP class.
type KV struct {
	Key   []byte
	Value []byte
}

// IntKV is one ordered key/value pair under INT_MAP rules: the value is
// parsed as an integer when all-digit, else -1 (spec 9's preserved legacy
// coercion).
type IntKV struct {
	Key   []byte
	Value int64
}

// Interpret shapes frame's body according to cmd's response class (spec
// 4.4). The returned value's concrete type depends on the class:
//
//	NO_RESPONSE              Absent
//	INT                       int64
//	FLOAT                     float64
//	BYTES                     []byte
//	LIST                      [][]byte
//	STR_MAP                   []KV
//	INT_MAP                   []IntKV
//	STR_MAP_SCAN              ScanResult (string-valued pairs, Pairs as []KV)
//	INT_MAP_SCAN              ScanResult (int-valued pairs; Pairs is nil, IntPairs set)
func Interpret(cmd string, frame [][]byte) (any, error) {
	if len(frame) == 0 {
		return nil, errors.WithStack(ErrConnectionClosed)
	}

	status := string(frame[0])
	body := frame[1:]

	if status == statusNotFound {
		return Absent{}, nil
	}
	if status != statusOK {
		return nil, &RemoteError{Status: status}
	}

	class, ok := ClassOf(cmd)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%q", cmd)
	}

	switch class {
	case NoResponse:
		return Absent{}, nil
	case Int:
		return interpretInt(body)
	case Float:
		return interpretFloat(body)
	case Bytes:
		return interpretBytes(body)
	case List:
		return body, nil
	case StrMap:
		return interpretStrMap(body)
	case IntMap:
		return interpretIntMap(body)
	case StrMapScan:
		return interpretStrMapScan(body)
	case IntMapScan:
		return interpretIntMapScan(body)
	default:
		return nil, errors.Wrapf(ErrUnknownCommand, "%q", cmd)
	}
}

func interpretInt(body [][]byte) (int64, error) {
	if len(body) == 0 {
		return 0, errors.Wrap(ErrProtocol, "INT response has no body")
	}
	n, err := strconv.ParseInt(string(body[0]), 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrProtocol, "INT response is not a valid integer")
	}
	return n, nil
}

func interpretFloat(body [][]byte) (float64, error) {
	if len(body) == 0 {
		return 0, errors.Wrap(ErrProtocol, "FLOAT response has no body")
	}
	f, err := strconv.ParseFloat(string(body[0]), 64)
	if err != nil {
		return 0, errors.Wrap(ErrProtocol, "FLOAT response is not a valid float")
	}
	return f, nil
}

func interpretBytes(body [][]byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, errors.Wrap(ErrProtocol, "BYTES response has no body")
	}
	return body[0], nil
}

func interpretStrMap(body [][]byte) ([]KV, error) {
	if len(body)%2 != 0 {
		return nil, errors.Wrap(ErrProtocol, "STR_MAP response has odd-length body")
	}
	pairs := make([]KV, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		pairs = append(pairs, KV{Key: body[i], Value: body[i+1]})
	}
	return pairs, nil
}

func interpretIntMap(body [][]byte) ([]IntKV, error) {
	if len(body)%2 != 0 {
		return nil, errors.Wrap(ErrProtocol, "INT_MAP response has odd-length body")
	}
	pairs := make([]IntKV, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		pairs = append(pairs, IntKV{Key: body[i], Value: coerceLegacyInt(body[i+1])})
	}
	return pairs, nil
}

// coerceLegacyInt implements spec 9's preserved legacy coercion: an
// all-digit value parses as an integer, anything else becomes -1 rather
// than surfacing a protocol error.
func coerceLegacyInt(v []byte) int64 {
	if !isAllDigits(v) || len(v) == 0 {
		return -1
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return -1
	}
	return n
}

func interpretStrMapScan(body [][]byte) (ScanResult, error) {
	if len(body) == 0 {
		return ScanResult{}, nil
	}
	if len(body)%2 != 0 {
		return ScanResult{}, errors.Wrap(ErrProtocol, "STR_MAP_SCAN response has odd-length body")
	}
	pairs, err := interpretStrMap(body)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{NextStart: body[len(body)-2], Pairs: pairs}, nil
}

func interpretIntMapScan(body [][]byte) (ScanResult, error) {
	if len(body) == 0 {
		return ScanResult{}, nil
	}
	if len(body)%2 != 0 {
		return ScanResult{}, errors.Wrap(ErrProtocol, "INT_MAP_SCAN response has odd-length body")
	}
	pairs, err := interpretIntMap(body)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{NextStart: body[len(body)-2], IntPairs: pairs}, nil
}
