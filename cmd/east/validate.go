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
	"strings"

	"github.com/spf13/cobra"

	"github.com/elaraai/east/datetimefmt"
)

// newValidateFormatCmd implements `east validate-format
// <token,token,...>` (spec §8.1): check a comma-separated datetime-format
// token sequence against the contiguous-prefix invariant (spec §4.6).
func newValidateFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-format <token,token,...>",
		Short: "validate a datetime-format token sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := strings.Split(args[0], ",")
			if err := datetimefmt.ValidateNames(names); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
