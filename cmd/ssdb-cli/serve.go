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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ssdbclient "github.com/go-ssdb/ssdbclient"
	"github.com/go-ssdb/ssdbclient/internal/debugserver"
	"github.com/go-ssdb/ssdbclient/internal/rescue"
	"github.com/go-ssdb/ssdbclient/internal/sigs"
	"github.com/go-ssdb/ssdbclient/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Hold a connection pool open and expose its /metrics and /debug/pool endpoints",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := ssdbclient.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger.SetOptions(cfg.Logging)

		client := ssdbclient.New(cfg.Connection, cfg.Pool)
		defer client.Close()

		srv := debugserver.New(cfg.DebugServer, client.Pool())
		if srv != nil {
			go func() {
				defer rescue.HandleCrash()
				if err := srv.ListenAndServe(); err != nil {
					logger.Errorf("debug server stopped: %v", err)
				}
			}()
		}

		logger.Infof("ssdb-cli serve started")
		<-sigs.Terminate()
	},
	Example: "# ssdb-cli serve --config ssdb.yaml",
}

var configPath string

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "ssdb.yaml", "Configuration file path")
	rootCmd.AddCommand(serveCmd)
}
