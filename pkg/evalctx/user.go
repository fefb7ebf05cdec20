package evalctx

import (
	"github.com/dmitrymomot/flagkit/pkg/attrref"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

// User is the flat subject record that predates the context model. It
// exists only as an input format: FromUser converts it into a single-kind
// Context, and the legacy user JSON schema decodes through it.
//
// An empty string in any optional field means the attribute is absent.
type User struct {
	Key                   string
	Secondary             string
	IPAddress             string
	Email                 string
	Name                  string
	Avatar                string
	FirstName             string
	LastName              string
	Country               string
	Anonymous             bool
	Custom                map[string]jsonval.Value
	PrivateAttributeNames []string
}

// FromUser converts a legacy User into a single-kind Context of the
// default kind.
//
// A nil user produces an invalid Context. An empty key does not: this is
// the one construction path that permits it, because legacy user records
// with empty keys exist in the wild and must remain representable.
//
// Optional built-in string attributes other than Name become custom
// attributes under their legacy names; Name maps to the dedicated name
// attribute. Custom entries with empty names or null values are dropped,
// and custom entries that collide with reserved attribute names follow the
// same dispatch rules as Builder.Set but cannot displace the record's own
// fields: the result always has the default kind and the record's Key,
// Name, and Anonymous. Private attribute names are taken literally, with
// no path syntax.
func FromUser(u *User) Context {
	if u == nil {
		return invalidContext(ErrFromNilUser)
	}
	b := NewBuilder(u.Key)
	b.allowEmptyKey = true

	for name, value := range u.Custom {
		if name == "" || value.IsNull() {
			continue
		}
		b.Set(name, value)
	}
	// Custom entries named "kind" or "key" go through the reserved-name
	// dispatch above; the record's own identity always wins.
	b.Kind(DefaultKind).Key(u.Key)

	optional := []struct {
		name  string
		value string
	}{
		{"secondary", u.Secondary},
		{"ip", u.IPAddress},
		{"email", u.Email},
		{"avatar", u.Avatar},
		{"firstName", u.FirstName},
		{"lastName", u.LastName},
		{"country", u.Country},
	}
	for _, attr := range optional {
		if attr.value != "" {
			b.SetString(attr.name, attr.value)
		}
	}

	if u.Name != "" {
		b.Name(u.Name)
	} else {
		b.ClearName()
	}
	b.Anonymous(u.Anonymous)

	for _, name := range u.PrivateAttributeNames {
		b.PrivateRef(attrref.NewLiteral(name))
	}
	return b.Build()
}
