// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package delta

import (
	"fmt"
	"slices"
	"strings"
)

// Operation is an enum used for constants to define what operation a given
// predicate is going to execute.
type Operation int

const (
	// do not change the order of these enum constants.
	// comparison operations are grouped so that OpEQ <= op <= OpGTEQ
	// identifies a leaf comparison.

	OpEQ Operation = iota
	OpNEQ
	OpLT
	OpLTEQ
	OpGT
	OpGTEQ
	// junction ops
	OpAnd
	OpOr
)

func (op Operation) String() string {
	switch op {
	case OpEQ:
		return "Equal"
	case OpNEQ:
		return "NotEqual"
	case OpLT:
		return "LessThan"
	case OpLTEQ:
		return "LessThanEqual"
	case OpGT:
		return "GreaterThan"
	case OpGTEQ:
		return "GreaterThanEqual"
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	}

	return fmt.Sprintf("Operation(%d)", int(op))
}

// Negate returns the inverse operation for a given op
func (op Operation) Negate() Operation {
	switch op {
	case OpEQ:
		return OpNEQ
	case OpNEQ:
		return OpEQ
	case OpLT:
		return OpGTEQ
	case OpLTEQ:
		return OpGT
	case OpGT:
		return OpLTEQ
	case OpGTEQ:
		return OpLT
	case OpAnd:
		return OpOr
	case OpOr:
		return OpAnd
	default:
		panic("no negation for operation " + op.String())
	}
}

// Predicate represents a boolean expression tree handed off to the scan
// planning engine: leaf comparisons of a column against a literal scalar,
// combined by N-ary And/Or junctions.
type Predicate interface {
	fmt.Stringer

	Op() Operation
	Negate() Predicate
	Equals(Predicate) bool
}

// Column is a reference to a root-level field by name.
type Column struct {
	name string
}

// NewColumn creates a reference to the named column.
func NewColumn(name string) Column { return Column{name: name} }

func (c Column) Name() string   { return c.name }
func (c Column) String() string { return "Column(name='" + c.name + "')" }

// Eq constructs an equality comparison of this column against lit.
func (c Column) Eq(lit Scalar) ComparisonPredicate { return newComparison(OpEQ, c, lit) }

// Ne constructs an inequality comparison of this column against lit.
func (c Column) Ne(lit Scalar) ComparisonPredicate { return newComparison(OpNEQ, c, lit) }

// Lt constructs a less-than comparison of this column against lit.
func (c Column) Lt(lit Scalar) ComparisonPredicate { return newComparison(OpLT, c, lit) }

// Le constructs a less-than-or-equal comparison of this column against lit.
func (c Column) Le(lit Scalar) ComparisonPredicate { return newComparison(OpLTEQ, c, lit) }

// Gt constructs a greater-than comparison of this column against lit.
func (c Column) Gt(lit Scalar) ComparisonPredicate { return newComparison(OpGT, c, lit) }

// Ge constructs a greater-than-or-equal comparison of this column against lit.
func (c Column) Ge(lit Scalar) ComparisonPredicate { return newComparison(OpGTEQ, c, lit) }

func newComparison(op Operation, col Column, lit Scalar) ComparisonPredicate {
	if lit == nil {
		panic(fmt.Errorf("%w: cannot construct comparison with nil literal",
			ErrInvalidArgument))
	}

	return ComparisonPredicate{op: op, col: col, lit: lit}
}

// ComparisonPredicate is a leaf of the predicate tree: one column compared
// against one literal scalar.
type ComparisonPredicate struct {
	op  Operation
	col Column
	lit Scalar
}

func (c ComparisonPredicate) Op() Operation   { return c.op }
func (c ComparisonPredicate) Column() Column  { return c.col }
func (c ComparisonPredicate) Literal() Scalar { return c.lit }

func (c ComparisonPredicate) String() string {
	return fmt.Sprintf("%s(column='%s', literal=%s)",
		c.op, c.col.name, c.lit)
}

func (c ComparisonPredicate) Negate() Predicate {
	return ComparisonPredicate{op: c.op.Negate(), col: c.col, lit: c.lit}
}

func (c ComparisonPredicate) Equals(other Predicate) bool {
	rhs, ok := other.(ComparisonPredicate)
	if !ok {
		return false
	}

	return c.op == rhs.op && c.col == rhs.col && c.lit.Equals(rhs.lit)
}

// NewJunction constructs an N-ary And/Or node over the given predicates,
// preserving their order. A junction over zero predicates is well formed:
// an empty And is vacuously true and an empty Or is vacuously false.
//
// Will panic if op is not OpAnd or OpOr, or if any child is nil.
func NewJunction(op Operation, preds ...Predicate) JunctionPredicate {
	if op != OpAnd && op != OpOr {
		panic(fmt.Errorf("%w: junction requires OpAnd or OpOr, got %s",
			ErrInvalidArgument, op))
	}
	for _, p := range preds {
		if p == nil {
			panic(fmt.Errorf("%w: cannot construct junction with nil child",
				ErrInvalidArgument))
		}
	}

	return JunctionPredicate{op: op, preds: slices.Clone(preds)}
}

// JunctionPredicate is an internal node of the predicate tree: an ordered
// And/Or combination of sub-predicates.
type JunctionPredicate struct {
	op    Operation
	preds []Predicate
}

func (j JunctionPredicate) Op() Operation { return j.op }

// Predicates returns the ordered children of this junction.
func (j JunctionPredicate) Predicates() []Predicate {
	return slices.Clone(j.preds)
}

func (j JunctionPredicate) String() string {
	var b strings.Builder
	b.WriteString(j.op.String())
	b.WriteByte('(')
	for i, p := range j.preds {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')

	return b.String()
}

func (j JunctionPredicate) Negate() Predicate {
	negated := make([]Predicate, len(j.preds))
	for i, p := range j.preds {
		negated[i] = p.Negate()
	}

	return JunctionPredicate{op: j.op.Negate(), preds: negated}
}

func (j JunctionPredicate) Equals(other Predicate) bool {
	rhs, ok := other.(JunctionPredicate)
	if !ok {
		return false
	}

	return j.op == rhs.op && slices.EqualFunc(j.preds, rhs.preds,
		func(a, b Predicate) bool { return a.Equals(b) })
}
