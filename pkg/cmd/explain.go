// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/go-circom/dsl/pkg/examples"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [example]",
	Short: "dump the S-expression form of a bundled example circuit's DAG",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		build, ok := examples.Lookup(args[0])
		if !ok {
			fmt.Printf("unknown example %q (see \"circomdsl list\")\n", args[0])
			os.Exit(1)
		}

		sess, output, err := build()
		if err != nil {
			fmt.Printf("error building %q: %s\n", args[0], err)
			os.Exit(1)
		}

		dump, err := sess.Explain(output)
		if err != nil {
			fmt.Printf("error explaining %q: %s\n", args[0], err)
			os.Exit(1)
		}

		fmt.Println(dump)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
