package jsonval

import (
	"encoding/json"
	"fmt"
)

// Parse decodes a JSON document into a Value. All JSON numbers become
// float64, matching the Value number representation.
func Parse(data []byte) (Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return v, nil
}

// JSONString returns the canonical JSON encoding of the value. Object
// properties are encoded in sorted key order, so the output is
// deterministic for equal values.
func (v Value) JSONString() string {
	data, err := json.Marshal(v)
	if err != nil {
		// Marshaling cannot fail: the value graph contains only
		// JSON-representable shapes.
		return "null"
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler using the direct JSON type mapping.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.valueType {
	case NullType:
		return []byte("null"), nil
	case BoolType:
		return json.Marshal(v.boolValue)
	case NumberType:
		return json.Marshal(v.numberValue)
	case StringType:
		return json.Marshal(v.stringValue)
	case ArrayType:
		if v.arrayValue == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arrayValue)
	case ObjectType:
		if v.objectValue == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.objectValue)
	default:
		return nil, fmt.Errorf("%w: unknown value type %d", ErrInvalidJSON, v.valueType)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromDecoded(raw)
	return nil
}

// fromDecoded converts the output of encoding/json (nil, bool, float64,
// string, []any, map[string]any) without the extra type cases that
// CopyArbitraryValue handles for caller-supplied data.
func fromDecoded(raw any) Value {
	switch o := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(o)
	case float64:
		return Float64(o)
	case string:
		return String(o)
	case []any:
		items := make([]Value, 0, len(o))
		for _, item := range o {
			items = append(items, fromDecoded(item))
		}
		return Value{valueType: ArrayType, arrayValue: items}
	case map[string]any:
		obj := make(map[string]Value, len(o))
		for k, item := range o {
			obj[k] = fromDecoded(item)
		}
		return Value{valueType: ObjectType, objectValue: obj}
	default:
		return Null()
	}
}
