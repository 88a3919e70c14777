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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ssdbclient "github.com/go-ssdb/ssdbclient"
	"github.com/go-ssdb/ssdbclient/connpool"
)

var execHost string
var execPort int

var execCmd = &cobra.Command{
	Use:   "exec [command] [args...]",
	Short: "Execute a single SSDB command against a server and print the result",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := ssdbclient.NewSingleConnection(connpool.Config{
			Host: execHost,
			Port: execPort,
		})
		defer client.Close()

		cmdArgs := make([]any, len(args)-1)
		for i, a := range args[1:] {
			cmdArgs[i] = a
		}

		result, err := client.ExecuteCommand(context.Background(), args[0], cmdArgs...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%v\n", result)
	},
	Example: "# ssdb-cli exec get mykey",
}

func init() {
	execCmd.Flags().StringVar(&execHost, "host", connpool.DefaultHost, "SSDB server host")
	execCmd.Flags().IntVar(&execPort, "port", connpool.DefaultPort, "SSDB server port")
	rootCmd.AddCommand(execCmd)
}
