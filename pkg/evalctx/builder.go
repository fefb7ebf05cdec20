package evalctx

import (
	"github.com/dmitrymomot/flagkit/pkg/attrref"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

// Builder accumulates the properties of a single-kind Context.
//
// A Builder is scoped to one construction call-stack: it is not safe for
// concurrent use and carries no locking. Build copies the accumulated
// state into the immutable Context, so the builder can be reused or
// mutated afterward without affecting anything already built.
type Builder struct {
	kind          Kind
	key           string
	name          string
	hasName       bool
	anonymous     bool
	attributes    map[string]jsonval.Value
	privateAttrs  []attrref.Ref
	allowEmptyKey bool
}

// NewBuilder creates a Builder for a single-kind Context of the default
// kind with the given key.
func NewBuilder(key string) *Builder {
	return &Builder{kind: DefaultKind, key: key}
}

// NewBuilderFromContext creates a Builder pre-populated with the
// properties of an existing single-kind Context. The context's collections
// are copied, never aliased, so building from the result cannot affect the
// source. A multi-kind or invalid source produces a builder equivalent to
// NewBuilder("").
func NewBuilderFromContext(c Context) *Builder {
	b := NewBuilder(c.key)
	if !c.Valid() || c.Multiple() {
		return b
	}
	b.kind = c.kind
	b.name = c.name
	b.hasName = c.hasName
	b.anonymous = c.anonymous
	b.allowEmptyKey = c.key == ""
	if len(c.attributes) > 0 {
		b.attributes = make(map[string]jsonval.Value, len(c.attributes))
		for name, value := range c.attributes {
			b.attributes[name] = value
		}
	}
	if len(c.privateAttrs) > 0 {
		b.privateAttrs = make([]attrref.Ref, len(c.privateAttrs))
		copy(b.privateAttrs, c.privateAttrs)
	}
	return b
}

// Kind sets the context kind. An empty kind is replaced with DefaultKind;
// validation happens in Build.
func (b *Builder) Kind(kind Kind) *Builder {
	if kind == "" {
		kind = DefaultKind
	}
	b.kind = kind
	return b
}

// Key sets the context key.
func (b *Builder) Key(key string) *Builder {
	b.key = key
	return b
}

// Name sets the optional name attribute.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	b.hasName = true
	return b
}

// ClearName removes the optional name attribute.
func (b *Builder) ClearName() *Builder {
	b.name = ""
	b.hasName = false
	return b
}

// Anonymous sets the anonymous flag.
func (b *Builder) Anonymous(anonymous bool) *Builder {
	b.anonymous = anonymous
	return b
}

// Set sets an attribute by name and returns the builder for chaining. It
// is TrySet without the success result: a rejected value (wrong type for a
// reserved name, empty name, "_meta") leaves the builder unchanged.
func (b *Builder) Set(name string, value jsonval.Value) *Builder {
	_ = b.TrySet(name, value)
	return b
}

// TrySet sets an attribute by name, reporting whether the value was
// accepted.
//
// The reserved names dispatch to their dedicated fields with type
// enforcement: "kind" and "key" require a string, "name" requires a string
// or null (null clears it), "anonymous" requires a boolean. "_meta" and
// the empty name are always rejected. Any other name sets a custom
// attribute; setting a custom attribute to null removes it, since a null
// attribute and an absent attribute are indistinguishable.
//
// A rejected value is a no-op reported only through the return value,
// never a panic.
func (b *Builder) TrySet(name string, value jsonval.Value) bool {
	switch name {
	case "":
		return false
	case attrKind:
		if !value.IsString() {
			return false
		}
		b.Kind(Kind(value.StringValue()))
	case attrKey:
		if !value.IsString() {
			return false
		}
		b.key = value.StringValue()
	case attrName:
		switch {
		case value.IsString():
			b.Name(value.StringValue())
		case value.IsNull():
			b.ClearName()
		default:
			return false
		}
	case attrAnonymous:
		if !value.IsBool() {
			return false
		}
		b.anonymous = value.BoolValue()
	case attrMeta:
		return false
	default:
		if value.IsNull() {
			delete(b.attributes, name)
			return true
		}
		if b.attributes == nil {
			b.attributes = make(map[string]jsonval.Value)
		}
		b.attributes[name] = value
	}
	return true
}

// SetBool sets a boolean attribute.
func (b *Builder) SetBool(name string, value bool) *Builder {
	return b.Set(name, jsonval.Bool(value))
}

// SetInt sets an integer attribute.
func (b *Builder) SetInt(name string, value int) *Builder {
	return b.Set(name, jsonval.Int(value))
}

// SetFloat64 sets a numeric attribute.
func (b *Builder) SetFloat64(name string, value float64) *Builder {
	return b.Set(name, jsonval.Float64(value))
}

// SetString sets a string attribute.
func (b *Builder) SetString(name string, value string) *Builder {
	return b.Set(name, jsonval.String(value))
}

// Private marks attributes as private by reference path, parsed with
// attrref.New. References accumulate without de-duplication.
func (b *Builder) Private(refPaths ...string) *Builder {
	for _, path := range refPaths {
		b.privateAttrs = append(b.privateAttrs, attrref.New(path))
	}
	return b
}

// PrivateRef marks attributes as private by pre-built reference.
// References accumulate without de-duplication.
func (b *Builder) PrivateRef(refs ...attrref.Ref) *Builder {
	b.privateAttrs = append(b.privateAttrs, refs...)
	return b
}

// Build snapshots the builder state into an immutable Context. Build never
// panics: invalid state produces an invalid Context describing the
// problem. The builder remains usable; later mutation does not affect the
// returned Context.
func (b *Builder) Build() Context {
	var attributes map[string]jsonval.Value
	if len(b.attributes) > 0 {
		attributes = make(map[string]jsonval.Value, len(b.attributes))
		for name, value := range b.attributes {
			attributes[name] = value
		}
	}
	var privateAttrs []attrref.Ref
	if len(b.privateAttrs) > 0 {
		privateAttrs = make([]attrref.Ref, len(b.privateAttrs))
		copy(privateAttrs, b.privateAttrs)
	}
	return makeSingle(b.kind, b.key, b.name, b.hasName, b.anonymous,
		attributes, privateAttrs, b.allowEmptyKey)
}
