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

package ssdbclient

import (
	"github.com/go-ssdb/ssdbclient/confengine"
	"github.com/go-ssdb/ssdbclient/connpool"
	"github.com/go-ssdb/ssdbclient/internal/debugserver"
	"github.com/go-ssdb/ssdbclient/logger"
)

// FileConfig is the top-level shape of a YAML configuration file for a
// standalone ssdb-backed process (see cmd/ssdb-cli). Programmatic callers
// that embed this module as a library can skip it entirely and construct
// connpool.Config/connpool.PoolConfig directly.
type FileConfig struct {
	Connection  connpool.Config     `config:"connection"`
	Pool        connpool.PoolConfig `config:"pool"`
	Single      bool                `config:"single"`
	Logging     logger.Options      `config:"logging"`
	DebugServer debugserver.Config  `config:"debugServer"`
}

// LoadConfig reads and unpacks a YAML configuration file at path.
func LoadConfig(path string) (FileConfig, error) {
	cfg, err := confengine.LoadConfigPath(path)
	if err != nil {
		return FileConfig{}, err
	}
	return unpackFileConfig(cfg)
}

// LoadConfigBytes unpacks YAML configuration already held in memory,
// useful for tests and embedders that assemble configuration
// programmatically rather than from a file on disk.
func LoadConfigBytes(b []byte) (FileConfig, error) {
	cfg, err := confengine.LoadContent(b)
	if err != nil {
		return FileConfig{}, err
	}
	return unpackFileConfig(cfg)
}

func unpackFileConfig(cfg *confengine.Config) (FileConfig, error) {
	var fc FileConfig
	if err := cfg.Unpack(&fc); err != nil {
		return FileConfig{}, err
	}
	fc.Connection = fc.Connection.WithDefaults()
	fc.Pool = fc.Pool.WithDefaults()
	return fc, nil
}
