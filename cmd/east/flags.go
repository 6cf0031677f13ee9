// Copyright 2024 The East Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import "github.com/spf13/pflag"

// addTypeFlag registers the --type flag every subcommand that reads or
// writes a value needs, the same shared-flag-set pattern the teacher's
// cmd/cue uses for its own addOutFlags/addGlobalFlags helpers.
func addTypeFlag(f *pflag.FlagSet, dest *string) {
	f.StringVar(dest, "type", "", "path to a type file (required)")
}

// addIOFlags registers --in/--out, both defaulting to "-" (stdin/stdout),
// with the given help text,
// shared between encode and decode so the two commands' flag sets stay
// in lockstep.
func addIOFlags(f *pflag.FlagSet, inDest, outDest *string, inHelp, outHelp string) {
	f.StringVar(inDest, "in", "-", inHelp)
	f.StringVar(outDest, "out", "-", outHelp)
}

// addPlatformFlag registers the --platform flag shared by every
// subcommand that may need to resolve Function/AsyncFunction values
// against a manifest.
func addPlatformFlag(f *pflag.FlagSet, dest *string) {
	f.StringVar(dest, "platform", "", "path to a platform-function manifest (YAML)")
}
