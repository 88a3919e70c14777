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
	_ "embed"
	"fmt"
	"strings"
)

// Class is one of the nine disjoint response shapes a command's frame body
// is interpreted under (spec 4.4/6).
type Class string

const (
	NoResponse Class = "NO_RESPONSE"
	Int        Class = "INT"
	Float      Class = "FLOAT"
	Bytes      Class = "BYTES"
	List       Class = "LIST"
	StrMap     Class = "STR_MAP"
	IntMap     Class = "INT_MAP"
	StrMapScan Class = "STR_MAP_SCAN"
	IntMapScan Class = "INT_MAP_SCAN"
)

//go:embed commands.csv
var commandTable string

// classOf maps a command name to its response Class, built once at package
// init from the embedded authoritative table (spec 6). Duplicate entries in
// the table are a programmer error and panic at init, not at call time.
var classOf map[string]Class

func init() {
	classOf = make(map[string]Class)
	for _, line := range strings.Split(strings.TrimSpace(commandTable), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, ",", 2)
		if len(fields) != 2 {
			panic(fmt.Sprintf("wire: malformed command table line %q", line))
		}
		cmd, class := fields[0], Class(fields[1])
		if _, dup := classOf[cmd]; dup {
			panic(fmt.Sprintf("wire: duplicate command classification for %q", cmd))
		}
		classOf[cmd] = class
	}
}

// ClassOf looks up cmd's response class. ok is false if cmd is not a member
// of any of the nine closed classes (spec 4.4: fail with UnknownCommand).
func ClassOf(cmd string) (Class, bool) {
	c, ok := classOf[cmd]
	return c, ok
}
