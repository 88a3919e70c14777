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

// Package debugserver exposes a process's pool occupancy, prometheus
// metrics, and pprof profiles over HTTP. It is entirely optional: a
// library consumer embedding a Client never needs it, it only serves the
// standalone ssdb-cli demo binary.
package debugserver

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-ssdb/ssdbclient/common"
	"github.com/go-ssdb/ssdbclient/connpool"
	"github.com/go-ssdb/ssdbclient/logger"
)

// Config controls whether the debug server runs and how.
type Config struct {
	Enabled bool          `config:"enabled"`
	Address string        `config:"address"`
	Pprof   bool          `config:"pprof"`
	Timeout time.Duration `config:"timeout"`
}

// Server is an HTTP server exposing /metrics, optional pprof routes, and
// a pool occupancy endpoint.
type Server struct {
	config Config
	router *mux.Router
	server *http.Server
	pool   *connpool.Pool
}

// New returns nil if config.Enabled is false; callers must check before
// calling ListenAndServe.
func New(config Config, pool *connpool.Pool) *Server {
	if !config.Enabled {
		return nil
	}

	router := mux.NewRouter()
	s := &Server{
		config: config,
		router: router,
		pool:   pool,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
		},
	}

	s.RegisterGetRoute("/metrics", promhttp.Handler().ServeHTTP)
	s.RegisterGetRoute("/debug/pool", s.handlePoolStats)
	if config.Pprof {
		s.registerPprofRoutes()
	}
	return s
}

// ListenAndServe blocks, serving until the listener fails.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	logger.Infof("debugserver listening on %s", s.config.Address)
	return s.server.Serve(l)
}

func (s *Server) RegisterGetRoute(path string, f http.HandlerFunc) {
	s.router.Methods(http.MethodGet).Path(path).HandlerFunc(f)
}

// poolStatsResponse augments the pool's bare occupancy counters with the
// process's uptime, so a caller polling /debug/pool can tell a freshly
// restarted process from one that's been up for days.
type poolStatsResponse struct {
	connpool.Stats
	StartedAt int64 `json:"startedAt"`
}

func (s *Server) handlePoolStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(poolStatsResponse{Stats: s.pool.Stats(), StartedAt: common.Started()})
}

func (s *Server) registerPprofRoutes() {
	s.RegisterGetRoute("/debug/pprof/cmdline", pprof.Cmdline)
	s.RegisterGetRoute("/debug/pprof/profile", pprof.Profile)
	s.RegisterGetRoute("/debug/pprof/symbol", pprof.Symbol)
	s.RegisterGetRoute("/debug/pprof/trace", pprof.Trace)
	s.RegisterGetRoute("/debug/pprof/{other}", pprof.Index)
}
