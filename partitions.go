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
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// NullPartitionValueDataPath is the special value used in Hive to represent
// the null partition in partitioned tables.
const NullPartitionValueDataPath = "__HIVE_DEFAULT_PARTITION__"

// PartitionValue describes the operator and raw operand(s) of a partition
// filter. Operands stay raw text until they are compared against a concrete
// primitive type, so the same filter works before a schema is known.
//
// It is a closed set: the only implementations are the variants in this
// package, dispatched exhaustively by type switch.
type PartitionValue interface {
	isPartitionValue()
}

// EqualValue matches partitions equal to the operand. The empty operand is
// special cased by the matcher as a test for the null partition.
type EqualValue string

// NotEqualValue matches partitions not equal to the operand.
type NotEqualValue string

// GreaterThanValue matches partitions ordered strictly above the operand.
type GreaterThanValue string

// GreaterThanOrEqualValue matches partitions ordered at or above the operand.
type GreaterThanOrEqualValue string

// LessThanValue matches partitions ordered strictly below the operand.
type LessThanValue string

// LessThanOrEqualValue matches partitions ordered at or below the operand.
type LessThanOrEqualValue string

// InValues matches partitions whose serialized value equals one of the
// operands.
type InValues []string

// NotInValues matches partitions whose serialized value equals none of the
// operands.
type NotInValues []string

func (EqualValue) isPartitionValue()              {}
func (NotEqualValue) isPartitionValue()           {}
func (GreaterThanValue) isPartitionValue()        {}
func (GreaterThanOrEqualValue) isPartitionValue() {}
func (LessThanValue) isPartitionValue()           {}
func (LessThanOrEqualValue) isPartitionValue()    {}
func (InValues) isPartitionValue()                {}
func (NotInValues) isPartitionValue()             {}

// PartitionFilter is a predicate over a single partition column, by key and
// raw operand value(s). The key is never empty.
type PartitionFilter struct {
	Key   string
	Value PartitionValue
}

// NewPartitionFilter creates a PartitionFilter from a (key, operator, value)
// tuple. Recognized operators are "=", "!=", ">", ">=", "<" and "<=". Any
// other operator, or an empty key, fails with ErrInvalidPartitionFilter.
func NewPartitionFilter(key, op, value string) (PartitionFilter, error) {
	if key == "" {
		return PartitionFilter{}, fmt.Errorf("%w: (%q, %q, %q)",
			ErrInvalidPartitionFilter, key, op, value)
	}

	var pv PartitionValue
	switch op {
	case "=":
		pv = EqualValue(value)
	case "!=":
		pv = NotEqualValue(value)
	case ">":
		pv = GreaterThanValue(value)
	case ">=":
		pv = GreaterThanOrEqualValue(value)
	case "<":
		pv = LessThanValue(value)
	case "<=":
		pv = LessThanOrEqualValue(value)
	default:
		return PartitionFilter{}, fmt.Errorf("%w: (%q, %q, %q)",
			ErrInvalidPartitionFilter, key, op, value)
	}

	return PartitionFilter{Key: key, Value: pv}, nil
}

// NewPartitionFilterWithValues creates a PartitionFilter from a
// (key, operator, values) tuple with a list operand. Recognized operators are
// exactly "in" and "not in". Any other operator, or an empty key, fails with
// ErrInvalidPartitionFilter.
func NewPartitionFilterWithValues(key, op string, values []string) (PartitionFilter, error) {
	if key == "" {
		return PartitionFilter{}, fmt.Errorf("%w: (%q, %q, %q)",
			ErrInvalidPartitionFilter, key, op, values)
	}

	switch op {
	case "in":
		return PartitionFilter{Key: key, Value: InValues(slices.Clone(values))}, nil
	case "not in":
		return PartitionFilter{Key: key, Value: NotInValues(slices.Clone(values))}, nil
	}

	return PartitionFilter{}, fmt.Errorf("%w: (%q, %q, %q)",
		ErrInvalidPartitionFilter, key, op, values)
}

// String renders the filter in its canonical SQL-like form, e.g.
// "date = '2022-05-22'" or "date IN ('2023-11-04', '2023-06-07')". List
// operands preserve their input order. Operand text is not escaped; values
// are assumed not to contain the quote character.
func (f PartitionFilter) String() string {
	switch v := f.Value.(type) {
	case EqualValue:
		return fmt.Sprintf("%s = '%s'", f.Key, string(v))
	case NotEqualValue:
		return fmt.Sprintf("%s != '%s'", f.Key, string(v))
	case GreaterThanValue:
		return fmt.Sprintf("%s > '%s'", f.Key, string(v))
	case GreaterThanOrEqualValue:
		return fmt.Sprintf("%s >= '%s'", f.Key, string(v))
	case LessThanValue:
		return fmt.Sprintf("%s < '%s'", f.Key, string(v))
	case LessThanOrEqualValue:
		return fmt.Sprintf("%s <= '%s'", f.Key, string(v))
	// upper case for IN and NOT IN, similar to SQL
	case InValues:
		return fmt.Sprintf("%s IN (%s)", f.Key, quoteJoin(v))
	case NotInValues:
		return fmt.Sprintf("%s NOT IN (%s)", f.Key, quoteJoin(v))
	}

	panic(fmt.Errorf("%w: unknown partition value variant %T",
		ErrInvalidArgument, f.Value))
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}

	return strings.Join(quoted, ", ")
}

// MarshalJSON serializes the filter as its canonical string form, the
// representation recorded in operation metadata.
func (f PartitionFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// MatchPartition reports whether the given partition satisfies this filter,
// with the partition column declared as dataType.
//
// An equality filter with an empty operand is a test for the null partition
// and matches iff the partition value is null, regardless of declared type.
// Equality against any type except timestamp compares the serialized text of
// the partition value directly against the operand; timestamps go through
// typed parse-and-compare because their textual form is not canonical.
// Ordering operators always parse the operand as the declared type; an
// unparseable operand or incomparable pair is a non-match, never an error.
func (f PartitionFilter) MatchPartition(partition DeltaTablePartition, dataType DataType) bool {
	if f.Key != partition.Key {
		return false
	}
	if v, ok := f.Value.(EqualValue); ok && v == "" {
		return partition.Value.IsNull()
	}

	switch v := f.Value.(type) {
	case EqualValue:
		if _, ok := dataType.(TimestampType); ok {
			order, ok := compareTypedValue(partition.Value, string(v), dataType)

			return ok && order == 0
		}

		return partition.Value.String() == string(v)
	case NotEqualValue:
		if _, ok := dataType.(TimestampType); ok {
			order, ok := compareTypedValue(partition.Value, string(v), dataType)

			return ok && order != 0
		}

		return partition.Value.String() != string(v)
	case GreaterThanValue:
		order, ok := compareTypedValue(partition.Value, string(v), dataType)

		return ok && order > 0
	case GreaterThanOrEqualValue:
		order, ok := compareTypedValue(partition.Value, string(v), dataType)

		return ok && order >= 0
	case LessThanValue:
		order, ok := compareTypedValue(partition.Value, string(v), dataType)

		return ok && order < 0
	case LessThanOrEqualValue:
		order, ok := compareTypedValue(partition.Value, string(v), dataType)

		return ok && order <= 0
	case InValues:
		return slices.Contains(v, partition.Value.String())
	case NotInValues:
		return !slices.Contains(v, partition.Value.String())
	}

	return false
}

// MatchPartitions reports whether any partition among the given list
// satisfies this filter. The type map must contain an entry for the filter's
// key; a missing entry is a contract violation and panics.
func (f PartitionFilter) MatchPartitions(partitions []DeltaTablePartition, partitionColDataTypes map[string]DataType) bool {
	dataType, ok := partitionColDataTypes[f.Key]
	if !ok {
		panic(fmt.Errorf("%w: no data type for partition column %q",
			ErrInvalidArgument, f.Key))
	}

	return slices.ContainsFunc(partitions, func(p DeltaTablePartition) bool {
		return f.MatchPartition(p, dataType)
	})
}

// compareTypedValue parses filterValue as the given data type and orders the
// partition value against the result. Complex types are not supported as
// partition columns, so they never order. Parse failures surface as
// incomparable rather than as errors.
func compareTypedValue(partitionValue Scalar, filterValue string, dataType DataType) (int, bool) {
	primitive, ok := dataType.(PrimitiveType)
	if !ok {
		return 0, false
	}

	other, err := primitive.ParseScalar(filterValue)
	if err != nil {
		return 0, false
	}

	return CompareScalars(partitionValue, other)
}

// DeltaTablePartition represents one column's value for one physical
// partition of a Delta table.
type DeltaTablePartition struct {
	Key   string
	Value Scalar
}

// NewPartitionFromHivePath parses a hive-style partition path segment of the
// form "key=value" into a DeltaTablePartition. The value side is kept as an
// untyped string scalar; type resolution, if needed, happens later during
// matching. Anything other than exactly one "=" fails with
// ErrInvalidPartitionPath.
func NewPartitionFromHivePath(segment string) (DeltaTablePartition, error) {
	parts := strings.Split(segment, "=")
	if len(parts) != 2 {
		return DeltaTablePartition{}, fmt.Errorf("%w: %q",
			ErrInvalidPartitionPath, segment)
	}

	return DeltaTablePartition{
		Key:   parts[0],
		Value: StringScalar(parts[1]),
	}, nil
}

// HivePartitionPath renders the partition as a hive-style path segment,
// using the hive default partition sentinel for null values.
func HivePartitionPath(p DeltaTablePartition) string {
	if p.Value.IsNull() {
		return p.Key + "=" + NullPartitionValueDataPath
	}

	return p.Key + "=" + p.Value.String()
}
