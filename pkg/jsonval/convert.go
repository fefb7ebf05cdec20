package jsonval

// Converter pairs a Go type with its Value representation. Both functions
// must be pure; they are applied element-wise when building or reading
// typed arrays and maps, without an intermediate []any pass.
type Converter[T any] struct {
	// ToValue converts a T to its Value representation.
	ToValue func(T) Value
	// FromValue converts a Value back to T, applying the same
	// wrong-type-degrades-to-zero semantics as the typed accessors.
	FromValue func(Value) T
}

// Predefined converters for the scalar types and for Value itself.
var (
	ConvertBool    = Converter[bool]{ToValue: Bool, FromValue: Value.BoolValue}
	ConvertInt     = Converter[int]{ToValue: Int, FromValue: Value.IntValue}
	ConvertFloat64 = Converter[float64]{ToValue: Float64, FromValue: Value.Float64Value}
	ConvertString  = Converter[string]{ToValue: String, FromValue: Value.StringValue}
	ConvertValue   = Converter[Value]{
		ToValue:   func(v Value) Value { return v },
		FromValue: func(v Value) Value { return v },
	}
)

// ArrayOf returns an array Value whose elements are the converted items.
func (c Converter[T]) ArrayOf(items ...T) Value {
	converted := make([]Value, 0, len(items))
	for _, item := range items {
		converted = append(converted, c.ToValue(item))
	}
	return Value{valueType: ArrayType, arrayValue: converted}
}

// ObjectOf returns an object Value whose properties are the converted
// entries of the map.
func (c Converter[T]) ObjectOf(properties map[string]T) Value {
	obj := make(map[string]Value, len(properties))
	for k, item := range properties {
		obj[k] = c.ToValue(item)
	}
	return Value{valueType: ObjectType, objectValue: obj}
}

// ToSlice converts an array Value to a typed slice. It returns nil if the
// value is not an array.
func (c Converter[T]) ToSlice(v Value) []T {
	if v.valueType != ArrayType {
		return nil
	}
	result := make([]T, 0, len(v.arrayValue))
	for _, item := range v.arrayValue {
		result = append(result, c.FromValue(item))
	}
	return result
}

// ToMap converts an object Value to a typed map. It returns nil if the
// value is not an object.
func (c Converter[T]) ToMap(v Value) map[string]T {
	if v.valueType != ObjectType {
		return nil
	}
	result := make(map[string]T, len(v.objectValue))
	for k, item := range v.objectValue {
		result[k] = c.FromValue(item)
	}
	return result
}
