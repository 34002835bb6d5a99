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
	"math"
	"testing"

	"github.com/delta-incubator/delta-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, pt delta.PrimitiveType, raw string) delta.Scalar {
	t.Helper()
	s, err := pt.ParseScalar(raw)
	require.NoError(t, err)

	return s
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		typ      delta.PrimitiveType
		raw      string
		expected delta.Scalar
	}{
		{delta.PrimitiveTypes.Boolean, "true", delta.BooleanScalar(true)},
		{delta.PrimitiveTypes.Boolean, "false", delta.BooleanScalar(false)},
		{delta.PrimitiveTypes.Byte, "-12", delta.ByteScalar(-12)},
		{delta.PrimitiveTypes.Short, "1000", delta.ShortScalar(1000)},
		{delta.PrimitiveTypes.Integer, "2020", delta.IntegerScalar(2020)},
		{delta.PrimitiveTypes.Long, "1234567890123", delta.LongScalar(1234567890123)},
		{delta.PrimitiveTypes.Float, "3.5", delta.FloatScalar(3.5)},
		{delta.PrimitiveTypes.Double, "-0.25", delta.DoubleScalar(-0.25)},
		{delta.PrimitiveTypes.String, "hello", delta.StringScalar("hello")},
		{delta.PrimitiveTypes.String, "", delta.StringScalar("")},
		{delta.PrimitiveTypes.Binary, "ab", delta.BinaryScalar("ab")},
		{delta.PrimitiveTypes.Date, "1970-01-02", delta.DateScalar(1)},
		{delta.PrimitiveTypes.Date, "2021-01-01", delta.DateScalar(18628)},
		{delta.PrimitiveTypes.Timestamp, "1970-01-01 00:00:01", delta.TimestampScalar(1_000_000)},
		{delta.PrimitiveTypes.Timestamp, "1970-01-01T00:00:01.500000Z", delta.TimestampScalar(1_500_000)},
		{delta.PrimitiveTypes.TimestampNtz, "1970-01-01 00:00:01.5", delta.TimestampNtzScalar(1_500_000)},
	}

	for _, tt := range tests {
		t.Run(tt.typ.Type()+"/"+tt.raw, func(t *testing.T) {
			s, err := tt.typ.ParseScalar(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equals(s), "expected %s, got %s", tt.expected, s)
		})
	}
}

func TestParseScalarInvalid(t *testing.T) {
	tests := []struct {
		typ delta.PrimitiveType
		raw string
	}{
		{delta.PrimitiveTypes.Boolean, "TRUE"},
		{delta.PrimitiveTypes.Boolean, "1"},
		{delta.PrimitiveTypes.Byte, "300"},
		{delta.PrimitiveTypes.Short, "not_a_number"},
		{delta.PrimitiveTypes.Integer, "12.5"},
		{delta.PrimitiveTypes.Integer, ""},
		{delta.PrimitiveTypes.Long, "abc"},
		{delta.PrimitiveTypes.Double, "zero"},
		{delta.PrimitiveTypes.Date, "01/02/2021"},
		{delta.PrimitiveTypes.Timestamp, "not-a-timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.Type()+"/"+tt.raw, func(t *testing.T) {
			_, err := tt.typ.ParseScalar(tt.raw)
			assert.ErrorIs(t, err, delta.ErrInvalidScalarValue)
		})
	}
}

func TestScalarSerialization(t *testing.T) {
	dec, err := delta.DecimalTypeOf(10, 2).ParseScalar("123.45")
	require.NoError(t, err)

	tests := []struct {
		scalar   delta.Scalar
		expected string
	}{
		{delta.NewNullScalar(delta.PrimitiveTypes.String), "null"},
		{delta.BooleanScalar(true), "true"},
		{delta.IntegerScalar(2020), "2020"},
		{delta.LongScalar(-7), "-7"},
		{delta.FloatScalar(3.5), "3.5"},
		{delta.DoubleScalar(-0.25), "-0.25"},
		{delta.StringScalar("2021"), "2021"},
		{delta.DateScalar(18628), "2021-01-01"},
		{delta.TimestampScalar(1_500_000), "1970-01-01 00:00:01.500000"},
		{delta.TimestampNtzScalar(0), "1970-01-01 00:00:00.000000"},
		{dec, "123.45"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scalar.String())
		})
	}
}

func TestCompareScalarsSameKind(t *testing.T) {
	tests := []struct {
		name     string
		lhs, rhs delta.Scalar
		expected int
	}{
		{"integer", delta.IntegerScalar(1), delta.IntegerScalar(2), -1},
		{"long", delta.LongScalar(5), delta.LongScalar(5), 0},
		{"short", delta.ShortScalar(3), delta.ShortScalar(-3), 1},
		{"byte", delta.ByteScalar(-1), delta.ByteScalar(1), -1},
		{"float", delta.FloatScalar(1.5), delta.FloatScalar(1.25), 1},
		{"double", delta.DoubleScalar(2.5), delta.DoubleScalar(2.5), 0},
		{"string", delta.StringScalar("2019"), delta.StringScalar("2020"), -1},
		{"boolean", delta.BooleanScalar(false), delta.BooleanScalar(true), -1},
		{"date", delta.DateScalar(10), delta.DateScalar(9), 1},
		{"timestamp", delta.TimestampScalar(100), delta.TimestampScalar(200), -1},
		{"timestamp_ntz", delta.TimestampNtzScalar(100), delta.TimestampNtzScalar(100), 0},
		{"binary", delta.BinaryScalar("ab"), delta.BinaryScalar("ac"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, ok := delta.CompareScalars(tt.lhs, tt.rhs)
			require.True(t, ok)
			assert.Equal(t, tt.expected, order)
		})
	}
}

func TestCompareScalarsNulls(t *testing.T) {
	null := delta.NewNullScalar(delta.PrimitiveTypes.Integer)

	order, ok := delta.CompareScalars(null, delta.NewNullScalar(delta.PrimitiveTypes.String))
	require.True(t, ok)
	assert.Zero(t, order)

	order, ok = delta.CompareScalars(null, delta.IntegerScalar(0))
	require.True(t, ok)
	assert.Negative(t, order)

	order, ok = delta.CompareScalars(delta.IntegerScalar(0), null)
	require.True(t, ok)
	assert.Positive(t, order)
}

func TestCompareScalarsDecimals(t *testing.T) {
	parseDec := func(prec, scale int, raw string) delta.Scalar {
		return mustParse(t, delta.DecimalTypeOf(prec, scale), raw)
	}

	order, ok := delta.CompareScalars(parseDec(10, 2, "1.25"), parseDec(10, 2, "1.50"))
	require.True(t, ok)
	assert.Negative(t, order)

	order, ok = delta.CompareScalars(parseDec(10, 2, "1.25"), parseDec(10, 2, "1.25"))
	require.True(t, ok)
	assert.Zero(t, order)

	// mismatched scale or precision is incomparable, rescaling is not done
	_, ok = delta.CompareScalars(parseDec(10, 2, "1.25"), parseDec(10, 3, "1.250"))
	assert.False(t, ok)

	_, ok = delta.CompareScalars(parseDec(10, 2, "1.25"), parseDec(12, 2, "1.25"))
	assert.False(t, ok)
}

func TestCompareScalarsIncomparable(t *testing.T) {
	tests := []struct {
		name     string
		lhs, rhs delta.Scalar
	}{
		{"integer-string", delta.IntegerScalar(1), delta.StringScalar("1")},
		{"integer-long", delta.IntegerScalar(1), delta.LongScalar(1)},
		{"float-double", delta.FloatScalar(1), delta.DoubleScalar(1)},
		{"timestamp-ntz", delta.TimestampScalar(1), delta.TimestampNtzScalar(1)},
		{"nan", delta.DoubleScalar(math.NaN()), delta.DoubleScalar(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := delta.CompareScalars(tt.lhs, tt.rhs)
			assert.False(t, ok)
		})
	}
}

func TestScalarEquals(t *testing.T) {
	assert.True(t, delta.IntegerScalar(1).Equals(delta.IntegerScalar(1)))
	assert.False(t, delta.IntegerScalar(1).Equals(delta.IntegerScalar(2)))
	assert.False(t, delta.IntegerScalar(1).Equals(delta.LongScalar(1)))
	assert.True(t, delta.BinaryScalar("ab").Equals(delta.BinaryScalar("ab")))
	assert.True(t, delta.NewNullScalar(delta.PrimitiveTypes.Integer).
		Equals(delta.NewNullScalar(delta.PrimitiveTypes.Integer)))
	assert.False(t, delta.NewNullScalar(delta.PrimitiveTypes.Integer).
		Equals(delta.NewNullScalar(delta.PrimitiveTypes.String)))
	assert.False(t, delta.NewNullScalar(delta.PrimitiveTypes.String).
		Equals(delta.StringScalar("null")))
}
