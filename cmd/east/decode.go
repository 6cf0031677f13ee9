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

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elaraai/east/codec/beast2"
	ejson "github.com/elaraai/east/codec/json"
)

// newDecodeCmd implements `east decode --type=<typefile> --in=<bin>
// --out=<json> [--platform=<manifest.yaml>]` (spec §8.1): parse a Beast2
// value and re-emit it as self-describing JSON. --platform is only
// needed when the decoded value's type carries a Function/AsyncFunction
// somewhere in its shape.
func newDecodeCmd() *cobra.Command {
	var typeFile, inFile, outFile, platformFile string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "decode a Beast2 value to its JSON form",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTypeFile(typeFile)
			if err != nil {
				return err
			}
			table, err := loadManifest(platformFile)
			if err != nil {
				return err
			}
			data, err := readInput(inFile)
			if err != nil {
				return err
			}
			v, err := beast2.Decode(t, data, table)
			if err != nil {
				return fmt.Errorf("decoding Beast2 value: %w", err)
			}
			out, err := ejson.Encode(t, v)
			if err != nil {
				return fmt.Errorf("encoding JSON value: %w", err)
			}
			return writeOutput(outFile, out)
		},
	}
	addTypeFlag(cmd.Flags(), &typeFile)
	addIOFlags(cmd.Flags(), &inFile, &outFile, "path to the input Beast2 bytes, - for stdin", "path to write the JSON output, - for stdout")
	addPlatformFlag(cmd.Flags(), &platformFile)
	cmd.MarkFlagRequired("type")
	return cmd
}
