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

// Package ir defines East's tagged intermediate-representation tree (spec
// §3.3): one Go type per node kind, each carrying its inferred result
// type and a source position, following the same one-interface-many-
// structs shape as cuelang.org/go/internal/core/adt's Expr hierarchy. A
// compiled [Function] pairs a Body expression with its declared type and
// the ordered platform-function references the body depends on.
package ir

import (
	"github.com/elaraai/east/token"
	"github.com/elaraai/east/types"
	"github.com/elaraai/east/values"
)

// NodeKind tags the concrete Go type of a Node for fast dispatch (codec
// switches, debug dumps) without a type switch's linear type assertions.
type NodeKind uint8

const (
	KindLiteral NodeKind = iota
	KindVarRef
	KindLet
	KindAssign
	KindBlock
	KindIf
	KindFor
	KindCall
	KindPlatformCall
	KindFieldAccess
	KindConstruct
	KindVariantConstruct
	KindMatch
	KindReturn
	KindLoop
	KindBreak
	KindContinue
	KindBinaryOp
	KindUnaryOp
)

var kindNames = [...]string{
	KindLiteral: "literal", KindVarRef: "var", KindLet: "let", KindAssign: "assign",
	KindBlock: "block", KindIf: "if", KindFor: "for", KindCall: "call",
	KindPlatformCall: "platform_call", KindFieldAccess: "field", KindConstruct: "construct",
	KindVariantConstruct: "variant_construct", KindMatch: "match", KindReturn: "return",
	KindLoop: "loop", KindBreak: "break", KindContinue: "continue",
	KindBinaryOp: "binop", KindUnaryOp: "unop",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is any IR node. Every concrete node type carries its inferred
// result type and a source position (spec §3.3).
type Node interface {
	Kind() NodeKind
	Type() types.Type
	Pos() token.Position
}

// base is embedded by every concrete node type.
type base struct {
	ResultType types.Type
	Position   token.Position
}

func (b base) Type() types.Type    { return b.ResultType }
func (b base) Pos() token.Position { return b.Position }

// Literal is a constant value node.
type Literal struct {
	base
	Value values.Value
}

func (*Literal) Kind() NodeKind { return KindLiteral }

// NewLiteral builds a Literal node of the given type carrying value.
func NewLiteral(pos token.Position, t types.Type, value values.Value) *Literal {
	return &Literal{base: base{ResultType: t, Position: pos}, Value: value}
}

// VarRef reads a bound variable by name (a function parameter, a let
// binding, or a for/match arm binder).
type VarRef struct {
	base
	Name string
}

func (*VarRef) Kind() NodeKind { return KindVarRef }

func NewVarRef(pos token.Position, t types.Type, name string) *VarRef {
	return &VarRef{base: base{ResultType: t, Position: pos}, Name: name}
}

// Let introduces a fresh binding, visible to Body, which is the remainder
// of the enclosing Block.
type Let struct {
	base
	Name  string
	Value Node
	Body  Node
}

func (*Let) Kind() NodeKind { return KindLet }

// NewLet builds a Let node of result type t (Body's type).
func NewLet(pos token.Position, t types.Type, name string, value, body Node) *Let {
	return &Let{base: base{ResultType: t, Position: pos}, Name: name, Value: value, Body: body}
}

// Assign writes through a Ref cell.
type Assign struct {
	base
	Target Node // must evaluate to a Ref(T) value
	Value  Node
}

func (*Assign) Kind() NodeKind { return KindAssign }

// NewAssign builds an Assign node of result type t (Null, per spec §4.2).
func NewAssign(pos token.Position, t types.Type, target, value Node) *Assign {
	return &Assign{base: base{ResultType: t, Position: pos}, Target: target, Value: value}
}

// Block sequences statements, evaluating to the last one (or to Null if
// Stmts is empty).
type Block struct {
	base
	Stmts []Node
}

func (*Block) Kind() NodeKind { return KindBlock }

// NewBlock builds a Block node of result type t (its last statement's type).
func NewBlock(pos token.Position, t types.Type, stmts []Node) *Block {
	return &Block{base: base{ResultType: t, Position: pos}, Stmts: stmts}
}

// If evaluates Cond and takes Then or Else.
type If struct {
	base
	Cond Node
	Then Node
	Else Node // nil if there is no else branch (result type must be Null)
}

func (*If) Kind() NodeKind { return KindIf }

// NewIf builds an If node of result type t.
func NewIf(pos token.Position, t types.Type, cond, then, els Node) *If {
	return &If{base: base{ResultType: t, Position: pos}, Cond: cond, Then: then, Else: els}
}

// For iterates Iterable in the container's defined order, binding Var for
// each element in turn while evaluating Body.
type For struct {
	base
	Var      string
	Iterable Node
	Body     Node
}

func (*For) Kind() NodeKind { return KindFor }

// NewFor builds a For node of result type t (Null, per spec §4.2, unless
// the loop is value-producing via Break).
func NewFor(pos token.Position, t types.Type, v string, iterable, body Node) *For {
	return &For{base: base{ResultType: t, Position: pos}, Var: v, Iterable: iterable, Body: body}
}

// Loop repeats Body until a Break is evaluated within it.
type Loop struct {
	base
	Body Node
}

func (*Loop) Kind() NodeKind { return KindLoop }

// NewLoop builds a Loop node of result type t (the type carried by its Break
// values).
func NewLoop(pos token.Position, t types.Type, body Node) *Loop {
	return &Loop{base: base{ResultType: t, Position: pos}, Body: body}
}

// Break exits the innermost enclosing For or Loop, optionally carrying a
// value (the For/Loop's own result type).
type Break struct {
	base
	Value Node // nil for a bare break
}

func (*Break) Kind() NodeKind { return KindBreak }

// NewBreak builds a Break node of result type t (Null, per spec §4.2).
func NewBreak(pos token.Position, t types.Type, value Node) *Break {
	return &Break{base: base{ResultType: t, Position: pos}, Value: value}
}

// Continue advances the innermost enclosing For or Loop to its next
// iteration.
type Continue struct {
	base
}

func (*Continue) Kind() NodeKind { return KindContinue }

// NewContinue builds a Continue node of result type t (Null, per spec §4.2).
func NewContinue(pos token.Position, t types.Type) *Continue {
	return &Continue{base: base{ResultType: t, Position: pos}}
}

// Return exits the enclosing function body with Value.
type Return struct {
	base
	Value Node
}

func (*Return) Kind() NodeKind { return KindReturn }

// NewReturn builds a Return node of result type t (Never, since control
// never flows past a Return to a sibling expression).
func NewReturn(pos token.Position, t types.Type, value Node) *Return {
	return &Return{base: base{ResultType: t, Position: pos}, Value: value}
}

// Call invokes a Function/AsyncFunction value produced by Callee.
type Call struct {
	base
	Callee Node
	Args   []Node
}

func (*Call) Kind() NodeKind { return KindCall }

// NewCall builds a Call node of result type t (the callee's declared Out).
func NewCall(pos token.Position, t types.Type, callee Node, args []Node) *Call {
	return &Call{base: base{ResultType: t, Position: pos}, Callee: callee, Args: args}
}

// PlatformCall invokes a named platform function (spec §4.3). Name is
// resolved against the platform table at compile time, not at runtime.
type PlatformCall struct {
	base
	Name string
	Args []Node
}

func (*PlatformCall) Kind() NodeKind { return KindPlatformCall }

// NewPlatformCall builds a PlatformCall node of result type t (the
// platform function's declared result type).
func NewPlatformCall(pos token.Position, t types.Type, name string, args []Node) *PlatformCall {
	return &PlatformCall{base: base{ResultType: t, Position: pos}, Name: name, Args: args}
}

// FieldAccess projects a named field out of a Struct value.
type FieldAccess struct {
	base
	Object Node
	Field  string
}

func (*FieldAccess) Kind() NodeKind { return KindFieldAccess }

// NewFieldAccess builds a FieldAccess node of result type t (the named
// field's declared type).
func NewFieldAccess(pos token.Position, t types.Type, object Node, field string) *FieldAccess {
	return &FieldAccess{base: base{ResultType: t, Position: pos}, Object: object, Field: field}
}

// Construct builds a Struct value from field expressions, in the order
// the Struct type declares (not necessarily the order given here).
type Construct struct {
	base
	Fields []ConstructField
}

// ConstructField is one Name: Value entry of a Construct node.
type ConstructField struct {
	Name  string
	Value Node
}

func (*Construct) Kind() NodeKind { return KindConstruct }

// NewConstruct builds a Construct node of result type t (a Struct type).
func NewConstruct(pos token.Position, t types.Type, fields []ConstructField) *Construct {
	return &Construct{base: base{ResultType: t, Position: pos}, Fields: fields}
}

// VariantConstruct builds a Variant value under a single declared tag.
type VariantConstruct struct {
	base
	Tag     string
	Payload Node
}

func (*VariantConstruct) Kind() NodeKind { return KindVariantConstruct }

// NewVariantConstruct builds a VariantConstruct node of result type t (a
// Variant type carrying Tag among its declared Tags).
func NewVariantConstruct(pos token.Position, t types.Type, tag string, payload Node) *VariantConstruct {
	return &VariantConstruct{base: base{ResultType: t, Position: pos}, Tag: tag, Payload: payload}
}

// MatchArm is one tag -> body arm of a Match node. Bind names the variable
// bound to the tag's payload within Body (no variable is bound when Bind
// is empty). A Wildcard arm ignores Tag, covers every tag not otherwise
// listed, and binds Bind to the payload of whichever tag it matched.
type MatchArm struct {
	Tag      string
	Wildcard bool
	Bind     string
	Body     Node
}

// Match dispatches on a Variant's tag (spec §4.3): the arms must cover
// every declared tag of Subject's type unless a wildcard arm is present.
type Match struct {
	base
	Subject Node
	Arms    []MatchArm
}

func (*Match) Kind() NodeKind { return KindMatch }

// NewMatch builds a Match node of result type t (the arms' common type).
func NewMatch(pos token.Position, t types.Type, subject Node, arms []MatchArm) *Match {
	return &Match{base: base{ResultType: t, Position: pos}, Subject: subject, Arms: arms}
}

// BinaryOperator enumerates the arithmetic, comparison, string and
// container binary operators the IR carries as one node kind (spec §3.3:
// "arithmetic/comparison/string/container operators").
type BinaryOperator string

const (
	OpAdd      BinaryOperator = "add"
	OpSub      BinaryOperator = "sub"
	OpMul      BinaryOperator = "mul"
	OpDiv      BinaryOperator = "div"
	OpMod      BinaryOperator = "mod"
	OpEq       BinaryOperator = "eq"
	OpNeq      BinaryOperator = "neq"
	OpLt       BinaryOperator = "lt"
	OpLte      BinaryOperator = "lte"
	OpGt       BinaryOperator = "gt"
	OpGte      BinaryOperator = "gte"
	OpAnd      BinaryOperator = "and"
	OpOr       BinaryOperator = "or"
	OpConcat   BinaryOperator = "concat"   // String + String
	OpIndex    BinaryOperator = "index"    // Array(T), Integer -> T
	OpContains BinaryOperator = "contains" // Set(K)|Dict(K,_), K -> Boolean
	OpAppend   BinaryOperator = "append"   // Array(T), T -> Array(T)
)

type BinaryOp struct {
	base
	Op    BinaryOperator
	Left  Node
	Right Node
}

func (*BinaryOp) Kind() NodeKind { return KindBinaryOp }

// NewBinaryOp builds a BinaryOp node of result type t.
func NewBinaryOp(pos token.Position, t types.Type, op BinaryOperator, left, right Node) *BinaryOp {
	return &BinaryOp{base: base{ResultType: t, Position: pos}, Op: op, Left: left, Right: right}
}

// UnaryOperator enumerates unary operators.
type UnaryOperator string

const (
	OpNeg UnaryOperator = "neg"
	OpNot UnaryOperator = "not"
	OpLen UnaryOperator = "len" // String|Blob|Array|Set|Dict -> Integer
)

type UnaryOp struct {
	base
	Op      UnaryOperator
	Operand Node
}

func (*UnaryOp) Kind() NodeKind { return KindUnaryOp }

// NewUnaryOp builds a UnaryOp node of result type t.
func NewUnaryOp(pos token.Position, t types.Type, op UnaryOperator, operand Node) *UnaryOp {
	return &UnaryOp{base: base{ResultType: t, Position: pos}, Op: op, Operand: operand}
}
