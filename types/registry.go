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

package types

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Registry is a handle onto the type algebra's derived operations. Its
// only state is a memo of canonical strings, filled by CanonicalString;
// the algebra itself is closed and every Type is self-describing. Build
// one with NewRegistry: the memo map of a zero Registry is nil.
type Registry struct {
	cache map[string]string // canonical-string memoization, keyed by the rendering before NFC normalization
}

// NewRegistry returns a ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]string)}
}

// Equal reports whether a and b have the same shape (spec §4.1:
// "Structural identity"): struct field order is significant, variant tag
// set order is not (tags are addressed by name).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Never, Null, Boolean, Integer, Float, String, DateTime, Blob, TypeType:
		return true
	case Ref, Array, Set:
		return Equal(*a.Elem, *b.Elem)
	case Dict:
		return Equal(*a.Key, *b.Key) && Equal(*a.Value, *b.Value)
	case Struct:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !Equal(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}
		return true
	case Variant:
		if len(a.Tags) != len(b.Tags) {
			return false
		}
		bm := make(map[string]Type, len(b.Tags))
		for _, t := range b.Tags {
			bm[t.Name] = t.Type
		}
		for _, t := range a.Tags {
			bt, ok := bm[t.Name]
			if !ok || !Equal(t.Type, bt) {
				return false
			}
		}
		return true
	case Recursive:
		return Equal(*a.Body, renameRecursiveVar(*b.Body, b.Var, a.Var))
	case RecursiveVar:
		return a.Var == b.Var
	case Function, AsyncFunction:
		if len(a.In) != len(b.In) || a.HasAllowlist != b.HasAllowlist {
			return false
		}
		for i := range a.In {
			if !Equal(a.In[i], b.In[i]) {
				return false
			}
		}
		if !Equal(*a.Out, *b.Out) {
			return false
		}
		if a.HasAllowlist {
			if len(a.PlatformAllowlist) != len(b.PlatformAllowlist) {
				return false
			}
			as := append([]string(nil), a.PlatformAllowlist...)
			bs := append([]string(nil), b.PlatformAllowlist...)
			sort.Strings(as)
			sort.Strings(bs)
			for i := range as {
				if as[i] != bs[i] {
					return false
				}
			}
		}
		return true
	}
	return false
}

func renameRecursiveVar(t Type, from, to string) Type {
	if from == to {
		return t
	}
	return substRecursiveVar(t, from, RecursiveVarType(to))
}

// CanonicalString renders t deterministically: identical shapes always
// render identically, independent of how the Type value was built. Variant
// tags are sorted by name so that tag-set order (insignificant to
// equality) does not perturb the string. The result is NFC-normalized so
// that two hosts whose source text used different, canonically-equivalent
// Unicode forms for a field/tag/recursive-variable name still agree.
func (r *Registry) CanonicalString(t Type) string {
	var b strings.Builder
	writeCanonical(&b, t)
	s := b.String()
	if r != nil {
		if cached, ok := r.cache[s]; ok {
			return cached
		}
	}
	normalized := norm.NFC.String(s)
	if r != nil {
		r.cache[s] = normalized
	}
	return normalized
}

func writeCanonical(b *strings.Builder, t Type) {
	switch t.Kind {
	case Never, Null, Boolean, Integer, Float, String, DateTime, Blob, TypeType:
		b.WriteString(t.Kind.String())
	case Ref, Array, Set:
		b.WriteString(t.Kind.String())
		b.WriteByte('(')
		writeCanonical(b, *t.Elem)
		b.WriteByte(')')
	case Dict:
		b.WriteString("Dict(")
		writeCanonical(b, *t.Key)
		b.WriteByte(',')
		writeCanonical(b, *t.Value)
		b.WriteByte(')')
	case Struct:
		b.WriteString("Struct{")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(f.Name))
			b.WriteByte(':')
			writeCanonical(b, f.Type)
		}
		b.WriteByte('}')
	case Variant:
		tags := append([]Tag(nil), t.Tags...)
		sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
		b.WriteString("Variant{")
		for i, tg := range tags {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(tg.Name))
			b.WriteByte(':')
			writeCanonical(b, tg.Type)
		}
		b.WriteByte('}')
	case Recursive:
		b.WriteString("Recursive(mu ")
		b.WriteString(strconv.Quote(t.Var))
		b.WriteByte('.')
		writeCanonical(b, *t.Body)
		b.WriteByte(')')
	case RecursiveVar:
		b.WriteString("Var(")
		b.WriteString(strconv.Quote(t.Var))
		b.WriteByte(')')
	case Function, AsyncFunction:
		b.WriteString(t.Kind.String())
		b.WriteByte('(')
		for i, it := range t.In {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, it)
		}
		b.WriteString(")->")
		writeCanonical(b, *t.Out)
		if t.HasAllowlist {
			allow := append([]string(nil), t.PlatformAllowlist...)
			sort.Strings(allow)
			b.WriteString("[")
			b.WriteString(strings.Join(allow, ","))
			b.WriteString("]")
		}
	default:
		b.WriteString(fmt.Sprintf("<invalid kind %d>", t.Kind))
	}
}

// Describe returns a short, human-facing rendering of t for diagnostics
// (error messages); it is not guaranteed stable across versions and must
// never be used for hashing or wire purposes — use CanonicalString.
func (r *Registry) Describe(t Type) string {
	return r.CanonicalString(t)
}

// Hash derives a 64-bit structural hash from t's canonical form (spec
// §4.1). Two structurally equal types always hash equal; hash collisions
// between unequal types are possible and callers must still confirm with
// Equal.
func (r *Registry) Hash(t Type) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(r.CanonicalString(t)))
	return h.Sum64()
}

// IsSubtype reports whether every value of sub is a value of super under
// East's (non-coercing) subtyping rules (spec §4.1): Never is a subtype of
// everything; Null is not implicitly coerced to/from anything else;
// numeric types do not interconvert; struct/variant widening is not
// automatic (so subtyping besides Never reduces to structural equality,
// with Recursive types compared after one level of fold/unfold).
func IsSubtype(sub, super Type) bool {
	if sub.Kind == Never {
		return true
	}
	if sub.Kind == Recursive && super.Kind != Recursive {
		return IsSubtype(Unfold(sub), super)
	}
	if super.Kind == Recursive && sub.Kind != Recursive {
		return IsSubtype(sub, Unfold(super))
	}
	return Equal(sub, super)
}

// IsAssignable reports whether a value of type from may be used where a
// value of type to is expected — identical to IsSubtype for East, which
// has no implicit widening.
func IsAssignable(from, to Type) bool {
	return IsSubtype(from, to)
}

// Compare gives East's total order over TypeType inhabitants (spec §3.1
// requires every type, including TypeType, to support a total order on its
// values). Types are ordered by their canonical string, which is itself
// deterministic and collision-free for distinct shapes (it fully
// determines the shape, unlike Hash).
func (r *Registry) Compare(a, b Type) int {
	return strings.Compare(r.CanonicalString(a), r.CanonicalString(b))
}
