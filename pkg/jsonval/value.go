package jsonval

import (
	"encoding/json"
	"math"
)

// ValueType identifies which JSON shape a Value holds.
type ValueType int

const (
	// NullType is the type of the null value and of the zero Value.
	NullType ValueType = iota
	// BoolType is the type of boolean values.
	BoolType
	// NumberType is the type of numeric values. All numbers are float64.
	NumberType
	// StringType is the type of string values.
	StringType
	// ArrayType is the type of array values.
	ArrayType
	// ObjectType is the type of object values.
	ObjectType
)

// String returns the name of the type, for diagnostics.
func (t ValueType) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable representation of any JSON value.
//
// The zero Value is null. Values are safe for concurrent use once
// constructed; nothing in this package mutates a Value after it is built.
type Value struct {
	valueType   ValueType
	boolValue   bool
	numberValue float64
	stringValue string
	arrayValue  []Value
	objectValue map[string]Value
}

// Null returns the null value. Equivalent to the zero Value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{valueType: BoolType, boolValue: b}
}

// Int returns a numeric value from an int.
//
// Numbers are stored as float64; integers with magnitude above 2^53 may
// lose precision.
func Int(n int) Value {
	return Float64(float64(n))
}

// Float64 returns a numeric value.
func Float64(n float64) Value {
	return Value{valueType: NumberType, numberValue: n}
}

// String returns a string value.
func String(s string) Value {
	return Value{valueType: StringType, stringValue: s}
}

// CopyArbitraryValue converts an arbitrary Go value to a Value.
//
// It handles nil, booleans, all built-in numeric types, strings, []any,
// map[string]any, []Value, map[string]Value, and Value itself. Slices and
// maps are deep-copied. Any other type is converted through its JSON
// encoding; values that cannot be encoded become null.
func CopyArbitraryValue(data any) Value {
	switch o := data.(type) {
	case nil:
		return Null()
	case Value:
		return o
	case bool:
		return Bool(o)
	case int:
		return Float64(float64(o))
	case int8:
		return Float64(float64(o))
	case int16:
		return Float64(float64(o))
	case int32:
		return Float64(float64(o))
	case int64:
		return Float64(float64(o))
	case uint:
		return Float64(float64(o))
	case uint8:
		return Float64(float64(o))
	case uint16:
		return Float64(float64(o))
	case uint32:
		return Float64(float64(o))
	case uint64:
		return Float64(float64(o))
	case float32:
		return Float64(float64(o))
	case float64:
		return Float64(o)
	case string:
		return String(o)
	case []any:
		items := make([]Value, 0, len(o))
		for _, item := range o {
			items = append(items, CopyArbitraryValue(item))
		}
		return Value{valueType: ArrayType, arrayValue: items}
	case []Value:
		items := make([]Value, len(o))
		copy(items, o)
		return Value{valueType: ArrayType, arrayValue: items}
	case map[string]any:
		obj := make(map[string]Value, len(o))
		for k, v := range o {
			obj[k] = CopyArbitraryValue(v)
		}
		return Value{valueType: ObjectType, objectValue: obj}
	case map[string]Value:
		obj := make(map[string]Value, len(o))
		for k, v := range o {
			obj[k] = v
		}
		return Value{valueType: ObjectType, objectValue: obj}
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return Null()
		}
		v, err := Parse(encoded)
		if err != nil {
			return Null()
		}
		return v
	}
}

// Type returns the JSON shape of the value.
func (v Value) Type() ValueType {
	return v.valueType
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.valueType == NullType
}

// IsBool reports whether the value is a boolean.
func (v Value) IsBool() bool {
	return v.valueType == BoolType
}

// IsNumber reports whether the value is a number.
func (v Value) IsNumber() bool {
	return v.valueType == NumberType
}

// IsInt reports whether the value is a number with no fractional part.
func (v Value) IsInt() bool {
	return v.valueType == NumberType &&
		!math.IsInf(v.numberValue, 0) &&
		v.numberValue == math.Trunc(v.numberValue)
}

// IsString reports whether the value is a string.
func (v Value) IsString() bool {
	return v.valueType == StringType
}

// BoolValue returns the boolean content, or false for any other type.
func (v Value) BoolValue() bool {
	return v.valueType == BoolType && v.boolValue
}

// IntValue returns the numeric content truncated toward zero, or 0 for any
// other type.
func (v Value) IntValue() int {
	if v.valueType == NumberType {
		return int(v.numberValue)
	}
	return 0
}

// Float64Value returns the numeric content, or 0 for any other type.
func (v Value) Float64Value() float64 {
	if v.valueType == NumberType {
		return v.numberValue
	}
	return 0
}

// StringValue returns the string content, or "" for any other type.
func (v Value) StringValue() string {
	if v.valueType == StringType {
		return v.stringValue
	}
	return ""
}

// Count returns the number of elements of an array, the number of
// properties of an object, and 0 for anything else.
func (v Value) Count() int {
	switch v.valueType {
	case ArrayType:
		return len(v.arrayValue)
	case ObjectType:
		return len(v.objectValue)
	default:
		return 0
	}
}

// Keys returns the property names of an object in sorted order, or nil for
// any other type. The returned slice is a copy.
func (v Value) Keys() []string {
	if v.valueType != ObjectType || len(v.objectValue) == 0 {
		return nil
	}
	return sortedKeys(v.objectValue)
}

// GetByIndex returns the array element at the given index, or Null if the
// value is not an array or the index is out of range.
func (v Value) GetByIndex(index int) Value {
	if v.valueType != ArrayType || index < 0 || index >= len(v.arrayValue) {
		return Null()
	}
	return v.arrayValue[index]
}

// GetByKey returns the object property with the given name, or Null if the
// value is not an object or the property does not exist.
func (v Value) GetByKey(name string) Value {
	if v.valueType != ObjectType {
		return Null()
	}
	return v.objectValue[name]
}

// AsArbitraryValue converts the value to its natural Go representation:
// nil, bool, float64, string, []any, or map[string]any. Slices and maps
// are deep copies; mutating them does not affect the Value.
func (v Value) AsArbitraryValue() any {
	switch v.valueType {
	case BoolType:
		return v.boolValue
	case NumberType:
		return v.numberValue
	case StringType:
		return v.stringValue
	case ArrayType:
		items := make([]any, 0, len(v.arrayValue))
		for _, item := range v.arrayValue {
			items = append(items, item.AsArbitraryValue())
		}
		return items
	case ObjectType:
		obj := make(map[string]any, len(v.objectValue))
		for k, item := range v.objectValue {
			obj[k] = item.AsArbitraryValue()
		}
		return obj
	default:
		return nil
	}
}

// Equal performs a deep structural comparison. Object comparison ignores
// property order; array comparison does not.
func (v Value) Equal(other Value) bool {
	if v.valueType != other.valueType {
		return false
	}
	switch v.valueType {
	case NullType:
		return true
	case BoolType:
		return v.boolValue == other.boolValue
	case NumberType:
		return v.numberValue == other.numberValue
	case StringType:
		return v.stringValue == other.stringValue
	case ArrayType:
		if len(v.arrayValue) != len(other.arrayValue) {
			return false
		}
		for i, item := range v.arrayValue {
			if !item.Equal(other.arrayValue[i]) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(v.objectValue) != len(other.objectValue) {
			return false
		}
		for k, item := range v.objectValue {
			otherItem, ok := other.objectValue[k]
			if !ok || !item.Equal(otherItem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
