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

import "errors"

var (
	// ErrInvalidPartitionFilter is returned when constructing a PartitionFilter
	// from a malformed (key, operator, value) tuple, such as an unrecognized
	// operator string or an empty key.
	ErrInvalidPartitionFilter = errors.New("invalid partition filter")
	// ErrInvalidPartitionPath is returned when a hive-style partition path
	// segment does not have the "key=value" shape.
	ErrInvalidPartitionPath = errors.New("invalid partition path")
	// ErrSchemaMismatch is returned when compiling a filter whose key does not
	// resolve to a primitive root-level field of the table schema.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrInvalidScalarValue is returned when raw operand text cannot be parsed
	// as a scalar of the requested primitive type.
	ErrInvalidScalarValue = errors.New("invalid scalar value")

	ErrInvalidSchema     = errors.New("invalid schema")
	ErrInvalidTypeString = errors.New("invalid type string")
	ErrInvalidArgument   = errors.New("invalid argument")
)
