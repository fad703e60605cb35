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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/zkir2circom/pkg/lower"
	"github.com/consensys/zkir2circom/pkg/render"
)

var lowerCmd = &cobra.Command{
	Use:   "lower [flags]",
	Short: "lower a single IR function into an arithmetic-circuit template.",
	Long: "Translate one function, selected by a substring of its name, from an IR module " +
		"into a single arithmetic-circuit template and print (or write) the result.",
	Run: func(cmd *cobra.Command, args []string) {
		runLowerCmd(cmd, args)
	},
}

// The `lower` command takes as input an IR module file and a substring
// identifying exactly one of its functions, and writes the translated
// circuit to stdout or, with -o, to a file. It performs no lowering logic
// itself: loading, function selection, translation and rendering are each
// delegated to their own package (pkg/cmd, pkg/lower, pkg/render).
func runLowerCmd(cmd *cobra.Command, args []string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	irFile := GetString(cmd, "ir")
	function := GetString(cmd, "function")
	output := GetString(cmd, "output")

	mod, err := LoadModule(irFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	match, err := FindFunction(mod, function)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fn, err := ToFunction(match)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := lower.DefaultConfig()
	opts.Verbose = GetFlag(cmd, "verbose")

	circuitModule, err := lower.Translate(fn, function, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	text := render.String(circuitModule)

	if output == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

//nolint:errcheck
func init() {
	lowerCmd.Flags().StringP("ir", "i", "", "path to the IR module file (required)")
	lowerCmd.Flags().StringP("function", "f", "", "substring matching exactly one function in the IR module (required)")
	lowerCmd.Flags().StringP("output", "o", "", "write the circuit here instead of stdout")
	lowerCmd.MarkFlagRequired("ir")
	lowerCmd.MarkFlagRequired("function")
	rootCmd.AddCommand(lowerCmd)
}
