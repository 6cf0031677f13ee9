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

// Package types implements East's closed type algebra (spec §3.1, §4.1):
// construction of each type variant, structural equality, a canonical hash,
// the total order over TypeType inhabitants, subtyping predicates, and
// canonical/descriptive string rendering.
//
// Types are themselves values of type [TypeType], usable by the codecs
// (spec §3.1), so this package has no dependency on the value model or the
// IR — both depend on it.
package types

import "fmt"

// Kind tags the variant of a [Type]. It is a closed enumeration: East never
// discovers a new Kind at runtime.
type Kind uint8

const (
	Never Kind = iota
	Null
	Boolean
	Integer
	Float
	String
	DateTime
	Blob
	Ref
	Array
	Set
	Dict
	Struct
	Variant
	Recursive
	RecursiveVar // bound occurrence of the fix-point variable inside a Recursive body
	Function
	AsyncFunction
	TypeType // the type of Type values themselves
)

var kindNames = [...]string{
	Never:         "Never",
	Null:          "Null",
	Boolean:       "Boolean",
	Integer:       "Integer",
	Float:         "Float",
	String:        "String",
	DateTime:      "DateTime",
	Blob:          "Blob",
	Ref:           "Ref",
	Array:         "Array",
	Set:           "Set",
	Dict:          "Dict",
	Struct:        "Struct",
	Variant:       "Variant",
	Recursive:     "Recursive",
	RecursiveVar:  "RecursiveVar",
	Function:      "Function",
	AsyncFunction: "AsyncFunction",
	TypeType:      "Type",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsScalar reports whether k has no child types (Never, Null, Boolean,
// Integer, Float, String, DateTime, Blob, and the built-in TypeType).
func (k Kind) IsScalar() bool {
	switch k {
	case Never, Null, Boolean, Integer, Float, String, DateTime, Blob, TypeType:
		return true
	}
	return false
}
