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
	"bytes"
	"cmp"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

const (
	dateLayout = "2006-01-02"
	// timestamps serialize with full microsecond precision, the format the
	// transaction log uses for timestamp partition values.
	timestampLayout = "2006-01-02 15:04:05.000000"

	secondsPerDay = 24 * 60 * 60
)

// Scalar is a single immutable partition value. Its String method returns the
// serialized text representation used for partition values, which is also the
// representation the matcher's text-equality path compares against.
type Scalar interface {
	fmt.Stringer

	Type() DataType
	IsNull() bool
	Equals(Scalar) bool
}

// convenience to avoid repeating this pattern for the comparable variants
func scalarEq[L comparable, T interface {
	Scalar
	Value() L
}](lhs T, other Scalar) bool {
	rhs, ok := other.(T)
	if !ok {
		return false
	}

	return lhs.Value() == rhs.Value()
}

// NewNullScalar returns the null value of the given data type.
func NewNullScalar(dt DataType) NullScalar { return NullScalar{dataType: dt} }

type NullScalar struct {
	dataType DataType
}

func (n NullScalar) Type() DataType { return n.dataType }
func (NullScalar) IsNull() bool     { return true }
func (NullScalar) String() string   { return "null" }
func (n NullScalar) Equals(other Scalar) bool {
	rhs, ok := other.(NullScalar)
	if !ok {
		return false
	}

	return n.dataType.Equals(rhs.dataType)
}

type BooleanScalar bool

func (b BooleanScalar) Value() bool          { return bool(b) }
func (BooleanScalar) Type() DataType         { return PrimitiveTypes.Boolean }
func (BooleanScalar) IsNull() bool           { return false }
func (b BooleanScalar) String() string       { return strconv.FormatBool(bool(b)) }
func (b BooleanScalar) Equals(o Scalar) bool { return scalarEq(b, o) }

type ByteScalar int8

func (s ByteScalar) Value() int8          { return int8(s) }
func (ByteScalar) Type() DataType         { return PrimitiveTypes.Byte }
func (ByteScalar) IsNull() bool           { return false }
func (s ByteScalar) String() string       { return strconv.FormatInt(int64(s), 10) }
func (s ByteScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type ShortScalar int16

func (s ShortScalar) Value() int16         { return int16(s) }
func (ShortScalar) Type() DataType         { return PrimitiveTypes.Short }
func (ShortScalar) IsNull() bool           { return false }
func (s ShortScalar) String() string       { return strconv.FormatInt(int64(s), 10) }
func (s ShortScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type IntegerScalar int32

func (s IntegerScalar) Value() int32         { return int32(s) }
func (IntegerScalar) Type() DataType         { return PrimitiveTypes.Integer }
func (IntegerScalar) IsNull() bool           { return false }
func (s IntegerScalar) String() string       { return strconv.FormatInt(int64(s), 10) }
func (s IntegerScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type LongScalar int64

func (s LongScalar) Value() int64         { return int64(s) }
func (LongScalar) Type() DataType         { return PrimitiveTypes.Long }
func (LongScalar) IsNull() bool           { return false }
func (s LongScalar) String() string       { return strconv.FormatInt(int64(s), 10) }
func (s LongScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type FloatScalar float32

func (s FloatScalar) Value() float32 { return float32(s) }
func (FloatScalar) Type() DataType   { return PrimitiveTypes.Float }
func (FloatScalar) IsNull() bool     { return false }
func (s FloatScalar) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 32)
}
func (s FloatScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type DoubleScalar float64

func (s DoubleScalar) Value() float64 { return float64(s) }
func (DoubleScalar) Type() DataType   { return PrimitiveTypes.Double }
func (DoubleScalar) IsNull() bool     { return false }
func (s DoubleScalar) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}
func (s DoubleScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type StringScalar string

func (s StringScalar) Value() string        { return string(s) }
func (StringScalar) Type() DataType         { return PrimitiveTypes.String }
func (StringScalar) IsNull() bool           { return false }
func (s StringScalar) String() string       { return string(s) }
func (s StringScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

type BinaryScalar []byte

func (s BinaryScalar) Value() []byte { return []byte(s) }
func (BinaryScalar) Type() DataType  { return PrimitiveTypes.Binary }
func (BinaryScalar) IsNull() bool    { return false }
func (s BinaryScalar) String() string { return string(s) }
func (s BinaryScalar) Equals(o Scalar) bool {
	rhs, ok := o.(BinaryScalar)
	if !ok {
		return false
	}

	return bytes.Equal(s, rhs)
}

// DateScalar is a date stored as days since the unix epoch.
type DateScalar int32

func (s DateScalar) Value() int32 { return int32(s) }
func (DateScalar) Type() DataType { return PrimitiveTypes.Date }
func (DateScalar) IsNull() bool   { return false }
func (s DateScalar) String() string {
	return time.Unix(int64(s)*secondsPerDay, 0).UTC().Format(dateLayout)
}
func (s DateScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

// TimestampScalar is a zoned timestamp stored as microseconds since the unix
// epoch, normalized to UTC.
type TimestampScalar int64

func (s TimestampScalar) Value() int64 { return int64(s) }
func (TimestampScalar) Type() DataType { return PrimitiveTypes.Timestamp }
func (TimestampScalar) IsNull() bool   { return false }
func (s TimestampScalar) String() string {
	return time.UnixMicro(int64(s)).UTC().Format(timestampLayout)
}
func (s TimestampScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

// TimestampNtzScalar is an unzoned timestamp stored as microseconds since the
// unix epoch.
type TimestampNtzScalar int64

func (s TimestampNtzScalar) Value() int64 { return int64(s) }
func (TimestampNtzScalar) Type() DataType { return PrimitiveTypes.TimestampNtz }
func (TimestampNtzScalar) IsNull() bool   { return false }
func (s TimestampNtzScalar) String() string {
	return time.UnixMicro(int64(s)).UTC().Format(timestampLayout)
}
func (s TimestampNtzScalar) Equals(o Scalar) bool { return scalarEq(s, o) }

// DecimalScalar is a fixed precision decimal value, stored as a 128-bit
// unscaled integer plus the precision and scale of its type.
type DecimalScalar struct {
	Unscaled  decimal128.Num
	Precision int
	Scale     int
}

func (s DecimalScalar) Type() DataType {
	return DecimalTypeOf(s.Precision, s.Scale)
}
func (DecimalScalar) IsNull() bool { return false }
func (s DecimalScalar) String() string {
	return s.Unscaled.ToString(int32(s.Scale))
}
func (s DecimalScalar) Equals(o Scalar) bool {
	rhs, ok := o.(DecimalScalar)
	if !ok {
		return false
	}

	return s.Unscaled == rhs.Unscaled &&
		s.Precision == rhs.Precision && s.Scale == rhs.Scale
}

// CompareScalars establishes a partial ordering over scalars, returning a
// negative/zero/positive value in the manner of cmp.Compare along with true
// when the two values are ordered, and ok=false when they are incomparable.
//
// Null compares equal to null and below any non-null value. This is an
// internal convention for partition pruning, not SQL null semantics. Two
// decimals only compare when precision and scale match exactly; rescaling is
// not implemented. Any remaining mixed-kind pair is incomparable.
func CompareScalars(a, b Scalar) (order int, ok bool) {
	switch {
	case a.IsNull() && b.IsNull():
		return 0, true
	case a.IsNull():
		return -1, true
	case b.IsNull():
		return 1, true
	}

	switch lhs := a.(type) {
	case BooleanScalar:
		if rhs, ok := b.(BooleanScalar); ok {
			return cmpBool(bool(lhs), bool(rhs)), true
		}
	case ByteScalar:
		if rhs, ok := b.(ByteScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case ShortScalar:
		if rhs, ok := b.(ShortScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case IntegerScalar:
		if rhs, ok := b.(IntegerScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case LongScalar:
		if rhs, ok := b.(LongScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case FloatScalar:
		if rhs, ok := b.(FloatScalar); ok {
			return cmpFloat(float64(lhs), float64(rhs))
		}
	case DoubleScalar:
		if rhs, ok := b.(DoubleScalar); ok {
			return cmpFloat(float64(lhs), float64(rhs))
		}
	case StringScalar:
		if rhs, ok := b.(StringScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case BinaryScalar:
		if rhs, ok := b.(BinaryScalar); ok {
			return bytes.Compare(lhs, rhs), true
		}
	case DateScalar:
		if rhs, ok := b.(DateScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case TimestampScalar:
		if rhs, ok := b.(TimestampScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case TimestampNtzScalar:
		if rhs, ok := b.(TimestampNtzScalar); ok {
			return cmp.Compare(lhs, rhs), true
		}
	case DecimalScalar:
		if rhs, ok := b.(DecimalScalar); ok {
			if lhs.Precision != rhs.Precision || lhs.Scale != rhs.Scale {
				return 0, false
			}

			return lhs.Unscaled.BigInt().Cmp(rhs.Unscaled.BigInt()), true
		}
	}

	return 0, false
}

func cmpBool(v1, v2 bool) int {
	if v1 == v2 {
		return 0
	}
	if v2 {
		return -1
	}

	return 1
}

// NaN is unordered, mirroring the partial ordering of IEEE floats.
func cmpFloat(v1, v2 float64) (int, bool) {
	if math.IsNaN(v1) || math.IsNaN(v2) {
		return 0, false
	}

	return cmp.Compare(v1, v2), true
}

func invalidScalarErr(raw string, dt DataType) error {
	return fmt.Errorf("%w: cannot parse %q as %s", ErrInvalidScalarValue, raw, dt)
}

func (t BooleanType) ParseScalar(raw string) (Scalar, error) {
	switch raw {
	case "true":
		return BooleanScalar(true), nil
	case "false":
		return BooleanScalar(false), nil
	}

	return nil, invalidScalarErr(raw, t)
}

func (t ByteType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseInt(raw, 10, 8)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return ByteScalar(v), nil
}

func (t ShortType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return ShortScalar(v), nil
}

func (t IntegerType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return IntegerScalar(v), nil
}

func (t LongType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return LongScalar(v), nil
}

func (t FloatType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return FloatScalar(v), nil
}

func (t DoubleType) ParseScalar(raw string) (Scalar, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return DoubleScalar(v), nil
}

func (StringType) ParseScalar(raw string) (Scalar, error) {
	return StringScalar(raw), nil
}

// The protocol has no canonical string encoding for binary partition values,
// so the raw bytes are taken verbatim. This keeps serialization an exact
// inverse of parsing.
func (BinaryType) ParseScalar(raw string) (Scalar, error) {
	return BinaryScalar(raw), nil
}

func (t DateType) ParseScalar(raw string) (Scalar, error) {
	v, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return DateScalar(v.Unix() / secondsPerDay), nil
}

// the fractional digits are optional when parsing, as is the 'T' separator
var timestampParseLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func parseTimestampMicros(raw string) (int64, error) {
	for _, layout := range timestampParseLayouts {
		if v, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return v.UnixMicro(), nil
		}
	}

	v, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return 0, err
	}

	return v.UnixMicro(), nil
}

func (t TimestampType) ParseScalar(raw string) (Scalar, error) {
	v, err := parseTimestampMicros(raw)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return TimestampScalar(v), nil
}

func (t TimestampNtzType) ParseScalar(raw string) (Scalar, error) {
	v, err := parseTimestampMicros(raw)
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return TimestampNtzScalar(v), nil
}

func (t DecimalType) ParseScalar(raw string) (Scalar, error) {
	v, err := decimal128.FromString(raw, int32(t.precision), int32(t.scale))
	if err != nil {
		return nil, invalidScalarErr(raw, t)
	}

	return DecimalScalar{
		Unscaled:  v,
		Precision: t.precision,
		Scale:     t.scale,
	}, nil
}
