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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elaraai/east/codec/beast2"
	ejson "github.com/elaraai/east/codec/json"
	"github.com/elaraai/east/types"
)

// newEncodeCmd implements `east encode --type=<typefile> --in=<json>
// --out=<bin>` (spec §8.1): read a value as self-describing JSON,
// validate it against the typefile, and write its Beast2 encoding.
func newEncodeCmd() *cobra.Command {
	var typeFile, inFile, outFile string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "encode a JSON-form value as Beast2",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTypeFile(typeFile)
			if err != nil {
				return err
			}
			data, err := readInput(inFile)
			if err != nil {
				return err
			}
			v, err := ejson.Decode(t, data, nil)
			if err != nil {
				return fmt.Errorf("decoding JSON value: %w", err)
			}
			out, err := beast2.Encode(t, v)
			if err != nil {
				return fmt.Errorf("encoding Beast2 value: %w", err)
			}
			return writeOutput(outFile, out)
		},
	}
	addTypeFlag(cmd.Flags(), &typeFile)
	addIOFlags(cmd.Flags(), &inFile, &outFile, "path to the input JSON value, - for stdin", "path to write the Beast2 output, - for stdout")
	cmd.MarkFlagRequired("type")
	return cmd
}

// readTypeFile loads the `--type` flag's argument: a type file in the
// JSON shape codec/json.EncodeType/DecodeType produce and consume.
func readTypeFile(path string) (types.Type, error) {
	data, err := readInput(path)
	if err != nil {
		return types.Type{}, err
	}
	t, err := ejson.DecodeType(data)
	if err != nil {
		return types.Type{}, fmt.Errorf("parsing type file %q: %w", path, err)
	}
	return t, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" || path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
