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
	"regexp"
	"slices"
	"strconv"
)

var decimalTypeRegex = regexp.MustCompile(`^decimal\(\s*(\d+)\s*,\s*(\d+)\s*\)$`)

// DataType is an interface representing any of the data types defined by the
// Delta table protocol, either primitive (string/long/date/etc.) or nested
// (struct/array/map).
type DataType interface {
	fmt.Stringer
	// Type returns the type name used in the schema serialization format,
	// e.g. "string" or "timestamp_ntz".
	Type() string
	Equals(DataType) bool
}

// PrimitiveType is a DataType with no nested structure. Only primitive types
// are valid partition column types, and only primitive types can resolve raw
// partition value text into a Scalar.
type PrimitiveType interface {
	DataType

	// ParseScalar parses the raw string representation of a value, as found
	// in partition values of the transaction log or in user supplied filters,
	// into a Scalar of this type.
	ParseScalar(raw string) (Scalar, error)
}

// ParseDataType resolves a serialized type name, e.g. "long" or
// "decimal(10,2)", into the corresponding primitive DataType.
func ParseDataType(name string) (DataType, error) {
	var t typeIFace
	if err := t.UnmarshalJSON([]byte(`"` + name + `"`)); err != nil {
		return nil, err
	}

	return t.DataType, nil
}

type typeIFace struct {
	DataType
}

func (t *typeIFace) MarshalJSON() ([]byte, error) {
	if _, ok := t.DataType.(PrimitiveType); ok {
		return json.Marshal(t.DataType.Type())
	}

	return json.Marshal(t.DataType)
}

func (t *typeIFace) UnmarshalJSON(b []byte) error {
	var typename string
	err := json.Unmarshal(b, &typename)
	if err == nil {
		switch typename {
		case "boolean":
			t.DataType = BooleanType{}
		case "byte":
			t.DataType = ByteType{}
		case "short":
			t.DataType = ShortType{}
		case "integer":
			t.DataType = IntegerType{}
		case "long":
			t.DataType = LongType{}
		case "float":
			t.DataType = FloatType{}
		case "double":
			t.DataType = DoubleType{}
		case "string":
			t.DataType = StringType{}
		case "binary":
			t.DataType = BinaryType{}
		case "date":
			t.DataType = DateType{}
		case "timestamp":
			t.DataType = TimestampType{}
		case "timestamp_ntz":
			t.DataType = TimestampNtzType{}
		default:
			matches := decimalTypeRegex.FindStringSubmatch(typename)
			if len(matches) != 3 {
				return fmt.Errorf("%w: %s", ErrInvalidTypeString, typename)
			}

			prec, _ := strconv.Atoi(matches[1])
			scale, _ := strconv.Atoi(matches[2])
			t.DataType = DecimalType{precision: prec, scale: scale}
		}

		return nil
	}

	aux := struct {
		TypeName string `json:"type"`
	}{}
	if err = json.Unmarshal(b, &aux); err != nil {
		return err
	}

	switch aux.TypeName {
	case "struct":
		t.DataType = &StructType{}
	case "array":
		t.DataType = &ArrayType{}
	case "map":
		t.DataType = &MapType{}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTypeString, aux.TypeName)
	}

	return json.Unmarshal(b, t.DataType)
}

type BooleanType struct{}

func (BooleanType) Type() string   { return "boolean" }
func (BooleanType) String() string { return "boolean" }
func (BooleanType) Equals(other DataType) bool {
	_, ok := other.(BooleanType)

	return ok
}

type ByteType struct{}

func (ByteType) Type() string   { return "byte" }
func (ByteType) String() string { return "byte" }
func (ByteType) Equals(other DataType) bool {
	_, ok := other.(ByteType)

	return ok
}

type ShortType struct{}

func (ShortType) Type() string   { return "short" }
func (ShortType) String() string { return "short" }
func (ShortType) Equals(other DataType) bool {
	_, ok := other.(ShortType)

	return ok
}

type IntegerType struct{}

func (IntegerType) Type() string   { return "integer" }
func (IntegerType) String() string { return "integer" }
func (IntegerType) Equals(other DataType) bool {
	_, ok := other.(IntegerType)

	return ok
}

type LongType struct{}

func (LongType) Type() string   { return "long" }
func (LongType) String() string { return "long" }
func (LongType) Equals(other DataType) bool {
	_, ok := other.(LongType)

	return ok
}

type FloatType struct{}

func (FloatType) Type() string   { return "float" }
func (FloatType) String() string { return "float" }
func (FloatType) Equals(other DataType) bool {
	_, ok := other.(FloatType)

	return ok
}

type DoubleType struct{}

func (DoubleType) Type() string   { return "double" }
func (DoubleType) String() string { return "double" }
func (DoubleType) Equals(other DataType) bool {
	_, ok := other.(DoubleType)

	return ok
}

type StringType struct{}

func (StringType) Type() string   { return "string" }
func (StringType) String() string { return "string" }
func (StringType) Equals(other DataType) bool {
	_, ok := other.(StringType)

	return ok
}

type BinaryType struct{}

func (BinaryType) Type() string   { return "binary" }
func (BinaryType) String() string { return "binary" }
func (BinaryType) Equals(other DataType) bool {
	_, ok := other.(BinaryType)

	return ok
}

type DateType struct{}

func (DateType) Type() string   { return "date" }
func (DateType) String() string { return "date" }
func (DateType) Equals(other DataType) bool {
	_, ok := other.(DateType)

	return ok
}

// TimestampType is a microsecond precision timestamp with time zone,
// normalized to UTC.
type TimestampType struct{}

func (TimestampType) Type() string   { return "timestamp" }
func (TimestampType) String() string { return "timestamp" }
func (TimestampType) Equals(other DataType) bool {
	_, ok := other.(TimestampType)

	return ok
}

// TimestampNtzType is a microsecond precision timestamp with no time zone.
type TimestampNtzType struct{}

func (TimestampNtzType) Type() string   { return "timestamp_ntz" }
func (TimestampNtzType) String() string { return "timestamp_ntz" }
func (TimestampNtzType) Equals(other DataType) bool {
	_, ok := other.(TimestampNtzType)

	return ok
}

// DecimalTypeOf returns a DecimalType with the given precision and scale.
func DecimalTypeOf(prec, scale int) DecimalType {
	return DecimalType{precision: prec, scale: scale}
}

type DecimalType struct {
	precision int
	scale     int
}

func (d DecimalType) Precision() int { return d.precision }
func (d DecimalType) Scale() int     { return d.scale }
func (d DecimalType) Type() string {
	return fmt.Sprintf("decimal(%d,%d)", d.precision, d.scale)
}
func (d DecimalType) String() string { return d.Type() }
func (d DecimalType) Equals(other DataType) bool {
	rhs, ok := other.(DecimalType)
	if !ok {
		return false
	}

	return d.precision == rhs.precision && d.scale == rhs.scale
}

// PrimitiveTypes is a set of convenience instances of each of the primitive
// data types, to avoid repeating the construction of them.
var PrimitiveTypes = struct {
	Boolean      BooleanType
	Byte         ByteType
	Short        ShortType
	Integer      IntegerType
	Long         LongType
	Float        FloatType
	Double       DoubleType
	String       StringType
	Binary       BinaryType
	Date         DateType
	Timestamp    TimestampType
	TimestampNtz TimestampNtzType
}{}

// StructField describes one named column of a StructType.
type StructField struct {
	DataType `json:"-"`

	Name     string            `json:"name"`
	Nullable bool              `json:"nullable"`
	Metadata map[string]string `json:"metadata"`
}

func (f StructField) String() string {
	return fmt.Sprintf("%s: %s nullable=%t", f.Name, f.DataType, f.Nullable)
}

func (f *StructField) Equals(other StructField) bool {
	return f.Name == other.Name &&
		f.Nullable == other.Nullable &&
		f.DataType.Equals(other.DataType)
}

func (f StructField) MarshalJSON() ([]byte, error) {
	type Alias StructField

	if f.Metadata == nil {
		f.Metadata = map[string]string{}
	}

	return json.Marshal(struct {
		Type *typeIFace `json:"type"`
		*Alias
	}{Type: &typeIFace{f.DataType}, Alias: (*Alias)(&f)})
}

func (f *StructField) UnmarshalJSON(b []byte) error {
	type Alias StructField
	aux := struct {
		Type typeIFace `json:"type"`
		*Alias
	}{
		Alias: (*Alias)(f),
	}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	f.DataType = aux.Type.DataType

	return nil
}

// NewStructType constructs a StructType from the given fields, preserving
// their order.
func NewStructType(fields ...StructField) *StructType {
	return &StructType{FieldList: fields}
}

// StructType is an ordered collection of named fields. The root schema of a
// Delta table is always a StructType.
type StructType struct {
	FieldList []StructField `json:"fields"`
}

// Field returns the root-level field with the given name, if one exists.
func (s *StructType) Field(name string) (StructField, bool) {
	for _, f := range s.FieldList {
		if f.Name == name {
			return f, true
		}
	}

	return StructField{}, false
}

func (s *StructType) Fields() []StructField { return s.FieldList }

func (s *StructType) Equals(other DataType) bool {
	st, ok := other.(*StructType)
	if !ok {
		return false
	}

	return slices.EqualFunc(s.FieldList, st.FieldList, func(a, b StructField) bool {
		return a.Equals(b)
	})
}

func (s *StructType) MarshalJSON() ([]byte, error) {
	type Alias StructType

	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
	}{Type: s.Type(), Alias: (*Alias)(s)})
}

func (*StructType) Type() string { return "struct" }
func (s *StructType) String() string {
	out := "struct<"
	for i, f := range s.FieldList {
		if i != 0 {
			out += ", "
		}
		out += f.Name + ": " + f.DataType.String()
	}

	return out + ">"
}

// ArrayType is an ordered collection of elements sharing one element type.
type ArrayType struct {
	Element      DataType `json:"-"`
	ContainsNull bool     `json:"containsNull"`
}

func (a *ArrayType) MarshalJSON() ([]byte, error) {
	type Alias ArrayType

	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
		Element *typeIFace `json:"elementType"`
	}{Type: a.Type(), Alias: (*Alias)(a), Element: &typeIFace{a.Element}})
}

func (a *ArrayType) UnmarshalJSON(b []byte) error {
	aux := struct {
		Element      typeIFace `json:"elementType"`
		ContainsNull bool      `json:"containsNull"`
	}{}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	a.Element = aux.Element.DataType
	a.ContainsNull = aux.ContainsNull

	return nil
}

func (a *ArrayType) Equals(other DataType) bool {
	rhs, ok := other.(*ArrayType)
	if !ok {
		return false
	}

	return a.ContainsNull == rhs.ContainsNull && a.Element.Equals(rhs.Element)
}

func (*ArrayType) Type() string     { return "array" }
func (a *ArrayType) String() string { return fmt.Sprintf("array<%s>", a.Element) }

// MapType is a collection of key value pairs with one key type and one value
// type.
type MapType struct {
	KeyType           DataType `json:"-"`
	ValueType         DataType `json:"-"`
	ValueContainsNull bool     `json:"valueContainsNull"`
}

func (m *MapType) MarshalJSON() ([]byte, error) {
	type Alias MapType

	return json.Marshal(struct {
		Type string `json:"type"`
		*Alias
		KeyType   *typeIFace `json:"keyType"`
		ValueType *typeIFace `json:"valueType"`
	}{
		Type: m.Type(), Alias: (*Alias)(m),
		KeyType: &typeIFace{m.KeyType}, ValueType: &typeIFace{m.ValueType},
	})
}

func (m *MapType) UnmarshalJSON(b []byte) error {
	aux := struct {
		KeyType           typeIFace `json:"keyType"`
		ValueType         typeIFace `json:"valueType"`
		ValueContainsNull bool      `json:"valueContainsNull"`
	}{}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	m.KeyType = aux.KeyType.DataType
	m.ValueType = aux.ValueType.DataType
	m.ValueContainsNull = aux.ValueContainsNull

	return nil
}

func (m *MapType) Equals(other DataType) bool {
	rhs, ok := other.(*MapType)
	if !ok {
		return false
	}

	return m.ValueContainsNull == rhs.ValueContainsNull &&
		m.KeyType.Equals(rhs.KeyType) &&
		m.ValueType.Equals(rhs.ValueType)
}

func (*MapType) Type() string { return "map" }
func (m *MapType) String() string {
	return fmt.Sprintf("map<%s, %s>", m.KeyType, m.ValueType)
}
