package jsonval

// ArrayBuilder accumulates elements for an array Value.
//
// A builder is not safe for concurrent use. Build copies the accumulated
// elements, so a builder may be reused after Build without affecting
// previously built values.
type ArrayBuilder struct {
	items []Value
}

// NewArrayBuilder creates an empty array builder.
func NewArrayBuilder() *ArrayBuilder {
	return &ArrayBuilder{}
}

// NewArrayBuilderWithCapacity creates an array builder with preallocated
// capacity for the expected number of elements.
func NewArrayBuilderWithCapacity(capacity int) *ArrayBuilder {
	return &ArrayBuilder{items: make([]Value, 0, capacity)}
}

// Add appends an element and returns the builder for chaining.
func (b *ArrayBuilder) Add(value Value) *ArrayBuilder {
	b.items = append(b.items, value)
	return b
}

// Build returns an immutable array Value with the elements added so far.
func (b *ArrayBuilder) Build() Value {
	items := make([]Value, len(b.items))
	copy(items, b.items)
	return Value{valueType: ArrayType, arrayValue: items}
}

// ObjectBuilder accumulates properties for an object Value.
//
// A builder is not safe for concurrent use. Build copies the accumulated
// properties, so a builder may be reused after Build without affecting
// previously built values.
type ObjectBuilder struct {
	obj map[string]Value
}

// NewObjectBuilder creates an empty object builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{obj: make(map[string]Value)}
}

// Set adds or replaces a property and returns the builder for chaining.
func (b *ObjectBuilder) Set(name string, value Value) *ObjectBuilder {
	if b.obj == nil {
		b.obj = make(map[string]Value)
	}
	b.obj[name] = value
	return b
}

// Remove deletes a property if present and returns the builder for chaining.
func (b *ObjectBuilder) Remove(name string) *ObjectBuilder {
	delete(b.obj, name)
	return b
}

// Build returns an immutable object Value with the properties set so far.
func (b *ObjectBuilder) Build() Value {
	obj := make(map[string]Value, len(b.obj))
	for k, v := range b.obj {
		obj[k] = v
	}
	return Value{valueType: ObjectType, objectValue: obj}
}

// ArrayOf returns an array Value containing the given elements.
// ArrayOf() with no arguments returns an empty array, not null.
func ArrayOf(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{valueType: ArrayType, arrayValue: copied}
}

// CopyObject returns an object Value with a copy of the given properties.
// A nil map produces an empty object, not null.
func CopyObject(properties map[string]Value) Value {
	obj := make(map[string]Value, len(properties))
	for k, v := range properties {
		obj[k] = v
	}
	return Value{valueType: ObjectType, objectValue: obj}
}
