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

package delta_test

import (
	"testing"

	"github.com/delta-incubator/delta-go"
	"github.com/stretchr/testify/assert"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op       delta.Operation
		expected string
	}{
		{delta.OpEQ, "Equal"},
		{delta.OpNEQ, "NotEqual"},
		{delta.OpLT, "LessThan"},
		{delta.OpLTEQ, "LessThanEqual"},
		{delta.OpGT, "GreaterThan"},
		{delta.OpGTEQ, "GreaterThanEqual"},
		{delta.OpAnd, "And"},
		{delta.OpOr, "Or"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.op.String())
	}
}

func TestOperationNegate(t *testing.T) {
	tests := []struct {
		op       delta.Operation
		expected delta.Operation
	}{
		{delta.OpEQ, delta.OpNEQ},
		{delta.OpNEQ, delta.OpEQ},
		{delta.OpLT, delta.OpGTEQ},
		{delta.OpLTEQ, delta.OpGT},
		{delta.OpGT, delta.OpLTEQ},
		{delta.OpGTEQ, delta.OpLT},
		{delta.OpAnd, delta.OpOr},
		{delta.OpOr, delta.OpAnd},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.op.Negate())
		assert.Equal(t, tt.op, tt.expected.Negate())
	}

	assert.Panics(t, func() { delta.Operation(42).Negate() })
}

func TestComparisonPredicate(t *testing.T) {
	year := delta.NewColumn("year")
	eq := year.Eq(delta.IntegerScalar(2021))

	assert.Equal(t, delta.OpEQ, eq.Op())
	assert.Equal(t, "year", eq.Column().Name())
	assert.True(t, delta.IntegerScalar(2021).Equals(eq.Literal()))
	assert.Equal(t, "Equal(column='year', literal=2021)", eq.String())

	assert.True(t, eq.Equals(year.Eq(delta.IntegerScalar(2021))))
	assert.False(t, eq.Equals(year.Eq(delta.IntegerScalar(2020))))
	assert.False(t, eq.Equals(year.Ne(delta.IntegerScalar(2021))))
	assert.False(t, eq.Equals(delta.NewColumn("month").Eq(delta.IntegerScalar(2021))))

	assert.True(t, eq.Negate().Equals(year.Ne(delta.IntegerScalar(2021))))
	assert.True(t, eq.Negate().Negate().Equals(eq))
	assert.True(t, year.Lt(delta.IntegerScalar(5)).Negate().
		Equals(year.Ge(delta.IntegerScalar(5))))
}

func TestComparisonNilLiteralPanics(t *testing.T) {
	assert.Panics(t, func() { delta.NewColumn("year").Eq(nil) })
}

func TestJunctionPredicate(t *testing.T) {
	year := delta.NewColumn("year").Eq(delta.IntegerScalar(2021))
	month := delta.NewColumn("month").Gt(delta.IntegerScalar(6))

	and := delta.NewJunction(delta.OpAnd, year, month)
	assert.Equal(t, delta.OpAnd, and.Op())
	assert.Len(t, and.Predicates(), 2)
	assert.Equal(t,
		"And(Equal(column='year', literal=2021), GreaterThan(column='month', literal=6))",
		and.String())

	assert.True(t, and.Equals(delta.NewJunction(delta.OpAnd, year, month)))
	// junction equality is order sensitive
	assert.False(t, and.Equals(delta.NewJunction(delta.OpAnd, month, year)))
	assert.False(t, and.Equals(delta.NewJunction(delta.OpOr, year, month)))
	assert.False(t, and.Equals(year))

	// De Morgan
	negated := delta.NewJunction(delta.OpOr, year.Negate(), month.Negate())
	assert.True(t, negated.Equals(and.Negate()))
}

func TestJunctionEmpty(t *testing.T) {
	empty := delta.NewJunction(delta.OpOr)
	assert.Equal(t, delta.OpOr, empty.Op())
	assert.Empty(t, empty.Predicates())
	assert.Equal(t, "Or()", empty.String())
	assert.Equal(t, delta.OpAnd, empty.Negate().Op())
}

func TestJunctionInvalid(t *testing.T) {
	leaf := delta.NewColumn("year").Eq(delta.IntegerScalar(2021))

	assert.Panics(t, func() { delta.NewJunction(delta.OpEQ, leaf) })
	assert.Panics(t, func() { delta.NewJunction(delta.OpAnd, leaf, nil) })
}
