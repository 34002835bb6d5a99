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

import "fmt"

// ToPredicate compiles the given filters against a table schema into a
// push-down predicate tree, ANDing all filters together. Unlike the local
// matcher, compilation always resolves operands as typed scalars and fails
// loudly on unknown fields, non-primitive fields and unparseable operands:
// a malformed push-down predicate is worse than no push-down.
func ToPredicate(filters []PartitionFilter, tableSchema *StructType) (Predicate, error) {
	predicates := make([]Predicate, 0, len(filters))
	for _, filter := range filters {
		p, err := filterToPredicate(filter, tableSchema)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, p)
	}

	return NewJunction(OpAnd, predicates...), nil
}

func filterToPredicate(filter PartitionFilter, tableSchema *StructType) (Predicate, error) {
	field, ok := tableSchema.Field(filter.Key)
	if !ok {
		return nil, fmt.Errorf("%w: field '%s' is not a root table field",
			ErrSchemaMismatch, filter.Key)
	}

	dt, ok := field.DataType.(PrimitiveType)
	if !ok {
		return nil, fmt.Errorf("%w: field '%s' is not a primitive type",
			ErrSchemaMismatch, field.Name)
	}

	column := NewColumn(field.Name)
	switch v := filter.Value.(type) {
	case EqualValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Eq(s), nil
	case NotEqualValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Ne(s), nil
	case LessThanValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Lt(s), nil
	case LessThanOrEqualValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Le(s), nil
	case GreaterThanValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Gt(s), nil
	case GreaterThanOrEqualValue:
		s, err := dt.ParseScalar(string(v))
		if err != nil {
			return nil, err
		}

		return column.Ge(s), nil
	case InValues:
		return listToJunction(column, dt, v, OpEQ, OpOr)
	case NotInValues:
		return listToJunction(column, dt, v, OpNEQ, OpAnd)
	}

	return nil, fmt.Errorf("%w: unknown partition value variant %T",
		ErrInvalidArgument, filter.Value)
}

// listToJunction compiles a list operand into a junction of per-value leaf
// comparisons: In becomes an Or of equalities, NotIn an And of inequalities.
// An empty operand list yields a junction with zero children, which is
// vacuously false for Or and vacuously true for And.
func listToJunction(column Column, dt PrimitiveType, rawValues []string, cmpOp, junctionOp Operation) (Predicate, error) {
	predicates := make([]Predicate, 0, len(rawValues))
	for _, raw := range rawValues {
		s, err := dt.ParseScalar(raw)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, newComparison(cmpOp, column, s))
	}

	return NewJunction(junctionOp, predicates...), nil
}
