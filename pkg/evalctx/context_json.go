package evalctx

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrymomot/flagkit/pkg/attrref"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

// jsonMeta is the "_meta" object of the context JSON schema.
type jsonMeta struct {
	PrivateAttributes []attrref.Ref `json:"privateAttributes,omitempty"`
}

// MarshalJSON encodes the context in the standard context JSON schema: a
// flat object for a single-kind context, or a "kind":"multi" object with
// one nested object per constituent kind. Optional properties are omitted
// when absent ("name") or false ("anonymous"). Marshaling an invalid or
// uninitialized context is an error.
func (c Context) MarshalJSON() ([]byte, error) {
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid context: %w", err)
	}
	if c.Multiple() {
		out := make(map[string]any, len(c.multiContexts)+1)
		out[attrKind] = string(MultiKind)
		for _, sub := range c.multiContexts {
			out[string(sub.kind)] = sub.jsonProperties(false)
		}
		return json.Marshal(out)
	}
	return json.Marshal(c.jsonProperties(true))
}

func (c Context) jsonProperties(includeKind bool) map[string]any {
	m := make(map[string]any, len(c.attributes)+5)
	if includeKind {
		m[attrKind] = string(c.kind)
	}
	m[attrKey] = c.key
	if c.hasName {
		m[attrName] = c.name
	}
	if c.anonymous {
		m[attrAnonymous] = true
	}
	for name, value := range c.attributes {
		m[name] = value
	}
	if len(c.privateAttrs) > 0 {
		m[attrMeta] = jsonMeta{PrivateAttributes: c.privateAttrs}
	}
	return m
}

// UnmarshalJSON decodes either schema accepted by the SDK: the context
// schema (with a "kind" property) or the legacy user schema (without
// one), which is converted through FromUser. Decoding malformed or
// invalid context data is an error; parse(serialize(c)) reproduces a
// Context equal to c for every valid c.
func (c *Context) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	kindRaw, hasKind := fields[attrKind]
	if !hasKind {
		return c.unmarshalOldUserSchema(fields)
	}
	var kindStr string
	if err := json.Unmarshal(kindRaw, &kindStr); err != nil {
		return fmt.Errorf(`%w: "kind" must be a string`, ErrJSONInvalidProperty)
	}

	if kindStr == string(MultiKind) {
		b := NewMultiBuilder()
		kinds := make([]string, 0, len(fields)-1)
		for name := range fields {
			if name != attrKind {
				kinds = append(kinds, name)
			}
		}
		sort.Strings(kinds)
		for _, name := range kinds {
			var sub map[string]json.RawMessage
			if err := json.Unmarshal(fields[name], &sub); err != nil {
				return fmt.Errorf("%w: %q must be an object", ErrJSONInvalidProperty, name)
			}
			single, err := unmarshalSingleKind(sub, name)
			if err != nil {
				return err
			}
			b.Add(single)
		}
		built := b.Build()
		if err := built.Err(); err != nil {
			return err
		}
		*c = built
		return nil
	}

	built, err := unmarshalSingleKind(fields, kindStr)
	if err != nil {
		return err
	}
	*c = built
	return nil
}

func unmarshalSingleKind(fields map[string]json.RawMessage, kind string) (Context, error) {
	b := NewBuilder("").Kind(Kind(kind))
	hasKey := false
	for name, raw := range fields {
		switch name {
		case attrKind:
			// Consumed by the caller.
		case attrKey:
			var key *string
			if err := json.Unmarshal(raw, &key); err != nil {
				return Context{}, fmt.Errorf(`%w: "key" must be a string`, ErrJSONInvalidProperty)
			}
			if key == nil {
				// A null key is the same as no key.
				continue
			}
			b.Key(*key)
			hasKey = true
		case attrName:
			var optName *string
			if err := json.Unmarshal(raw, &optName); err != nil {
				return Context{}, fmt.Errorf(`%w: "name" must be a string or null`, ErrJSONInvalidProperty)
			}
			if optName != nil {
				b.Name(*optName)
			}
		case attrAnonymous:
			var anonymous bool
			if err := json.Unmarshal(raw, &anonymous); err != nil {
				return Context{}, fmt.Errorf(`%w: "anonymous" must be a boolean`, ErrJSONInvalidProperty)
			}
			b.Anonymous(anonymous)
		case attrMeta:
			var meta jsonMeta
			if err := json.Unmarshal(raw, &meta); err != nil {
				return Context{}, fmt.Errorf(`%w: "_meta" must be an object`, ErrJSONInvalidProperty)
			}
			b.PrivateRef(meta.PrivateAttributes...)
		default:
			var value jsonval.Value
			if err := json.Unmarshal(raw, &value); err != nil {
				return Context{}, fmt.Errorf("%w: attribute %q", ErrJSONInvalidProperty, name)
			}
			b.Set(name, value)
		}
	}
	if !hasKey {
		return Context{}, ErrJSONMissingKey
	}
	// A key that is present but empty is the serialized form of a context
	// converted from a keyless legacy user; accept it so such contexts
	// round-trip.
	b.allowEmptyKey = true
	built := b.Build()
	if err := built.Err(); err != nil {
		return Context{}, err
	}
	return built, nil
}

// unmarshalOldUserSchema decodes the legacy user JSON schema, converting
// the result through FromUser.
func (c *Context) unmarshalOldUserSchema(fields map[string]json.RawMessage) error {
	var u User
	hasKey := false
	for name, raw := range fields {
		var target *string
		switch name {
		case attrKey:
			target = &u.Key
			hasKey = string(raw) != "null"
		case "secondary":
			target = &u.Secondary
		case "ip":
			target = &u.IPAddress
		case "email":
			target = &u.Email
		case attrName:
			target = &u.Name
		case "avatar":
			target = &u.Avatar
		case "firstName":
			target = &u.FirstName
		case "lastName":
			target = &u.LastName
		case "country":
			target = &u.Country
		case attrAnonymous:
			if err := json.Unmarshal(raw, &u.Anonymous); err != nil {
				return fmt.Errorf(`%w: "anonymous" must be a boolean`, ErrJSONInvalidProperty)
			}
			continue
		case "custom":
			if err := json.Unmarshal(raw, &u.Custom); err != nil {
				return fmt.Errorf(`%w: "custom" must be an object`, ErrJSONInvalidProperty)
			}
			continue
		case "privateAttributeNames":
			if err := json.Unmarshal(raw, &u.PrivateAttributeNames); err != nil {
				return fmt.Errorf(`%w: "privateAttributeNames" must be an array of strings`, ErrJSONInvalidProperty)
			}
			continue
		default:
			// Unknown legacy properties are ignored.
			continue
		}
		var optValue *string
		if err := json.Unmarshal(raw, &optValue); err != nil {
			return fmt.Errorf("%w: %q must be a string or null", ErrJSONInvalidProperty, name)
		}
		if optValue != nil {
			*target = *optValue
		}
	}
	if !hasKey {
		return ErrJSONMissingKey
	}
	built := FromUser(&u)
	if err := built.Err(); err != nil {
		return err
	}
	*c = built
	return nil
}
