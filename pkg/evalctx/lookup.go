package evalctx

import (
	"github.com/dmitrymomot/flagkit/pkg/attrref"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

// Attribute names with dedicated fields; they never appear in the custom
// attribute map.
const (
	attrKind      = "kind"
	attrKey       = "key"
	attrName      = "name"
	attrAnonymous = "anonymous"
	attrMeta      = "_meta"
)

// GetValue resolves an attribute by path string, equivalent to
// GetValueForRef(attrref.New(name)).
func (c Context) GetValue(name string) jsonval.Value {
	return c.GetValueForRef(attrref.New(name))
}

// GetValueForRef resolves an attribute reference against the context.
//
// Lookup is total: an invalid reference, a missing attribute, or a path
// that descends through the wrong shape all yield the null value, never an
// error. On a multi-kind context only the depth-1 reference "kind"
// resolves (to "multi"); individual attributes must be looked up on a
// constituent selected with IndividualContextByKind.
//
// Path components beyond the first descend into object properties by name
// and into array elements by integer index.
func (c Context) GetValueForRef(ref attrref.Ref) jsonval.Value {
	if !ref.Valid() || !c.Valid() {
		return jsonval.Null()
	}

	first := ref.Component(0)
	if c.Multiple() {
		if ref.Depth() == 1 && first == attrKind {
			return jsonval.String(string(c.kind))
		}
		return jsonval.Null()
	}

	value := c.topLevelAttribute(first)
	for i := 1; i < ref.Depth(); i++ {
		switch value.Type() {
		case jsonval.ObjectType:
			value = value.GetByKey(ref.Component(i))
		case jsonval.ArrayType:
			index, ok := ref.ComponentAsInt(i)
			if !ok {
				return jsonval.Null()
			}
			value = value.GetByIndex(index)
		default:
			return jsonval.Null()
		}
		if value.IsNull() {
			break
		}
	}
	return value
}

func (c Context) topLevelAttribute(name string) jsonval.Value {
	switch name {
	case attrKind:
		return jsonval.String(string(c.kind))
	case attrKey:
		return jsonval.String(c.key)
	case attrName:
		if c.hasName {
			return jsonval.String(c.name)
		}
		return jsonval.Null()
	case attrAnonymous:
		return jsonval.Bool(c.anonymous)
	default:
		// The zero Value is null, so a missing attribute needs no
		// special case.
		return c.attributes[name]
	}
}
