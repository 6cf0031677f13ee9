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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ejson "github.com/elaraai/east/codec/json"
	"github.com/elaraai/east/compile"
	"github.com/elaraai/east/values"
)

// newEvalCmd implements `east eval --type=<typefile> --ir=<json>
// --platform=<manifest.yaml> --args=<json>` (spec §8.1): compile an IR
// function against a platform manifest and call it with the given
// arguments, printing the JSON-form result.
func newEvalCmd() *cobra.Command {
	var typeFile, irFile, platformFile, argsFile string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate a compiled IR function against its arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			declared, err := readTypeFile(typeFile)
			if err != nil {
				return err
			}
			table, err := loadManifest(platformFile)
			if err != nil {
				return err
			}
			irData, err := readInput(irFile)
			if err != nil {
				return err
			}
			var rawIR any
			if err := json.Unmarshal(irData, &rawIR); err != nil {
				return fmt.Errorf("parsing IR JSON: %w", err)
			}
			fn, err := ejson.DecodeFunctionIR(rawIR, table)
			if err != nil {
				return fmt.Errorf("decoding IR: %w", err)
			}
			if fn.DeclaredType.Kind != declared.Kind {
				return fmt.Errorf("IR's declared type does not match --type")
			}
			prog, err := compile.Compile(fn, table)
			if err != nil {
				return fmt.Errorf("compiling function: %w", err)
			}

			argsData, err := readInput(argsFile)
			if err != nil {
				return err
			}
			var rawArgs []json.RawMessage
			if err := json.Unmarshal(argsData, &rawArgs); err != nil {
				return fmt.Errorf("parsing --args JSON array: %w", err)
			}
			if len(rawArgs) != len(fn.Params) {
				return fmt.Errorf("function declares %d parameters, got %d arguments", len(fn.Params), len(rawArgs))
			}
			callArgs := make([]values.Value, len(rawArgs))
			for i, raw := range rawArgs {
				v, err := ejson.Decode(fn.Params[i].Type, raw, table)
				if err != nil {
					return fmt.Errorf("decoding argument %d: %w", i, err)
				}
				callArgs[i] = v
			}

			result, err := prog.Call(callArgs)
			if err != nil {
				return fmt.Errorf("evaluating function: %w", err)
			}
			out, err := ejson.Encode(*declared.Out, result)
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			return writeOutput("-", out)
		},
	}
	addTypeFlag(cmd.Flags(), &typeFile)
	cmd.Flags().StringVar(&irFile, "ir", "", "path to the function's IR JSON (required)")
	addPlatformFlag(cmd.Flags(), &platformFile)
	cmd.Flags().StringVar(&argsFile, "args", "", "path to a JSON array of arguments (required)")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("ir")
	cmd.MarkFlagRequired("args")
	return cmd
}
