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
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ir2circuit",
	Short: "Lower an IR function into an arithmetic-circuit template.",
	Long:  "A translator (and toolbox) lowering a single IR function into an arithmetic-circuit template.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion()
		}
	},
}

// printVersion reports the build version, decorated with a TTY-only
// banner when stdout is an interactive terminal (teacher:
// pkg/util/termio/terminal.go's term.IsTerminal check) and as plain text
// otherwise, e.g. when piped.
func printVersion() {
	var version string

	if Version != "" {
		// Built via "make"
		version = Version
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		version = info.Main.Version
	} else {
		// Unknown, perhaps "go run"
		version = "(unknown version)"
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("ir2circuit \033[1m%s\033[0m\n", version)
	} else {
		fmt.Printf("ir2circuit %s\n", version)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
