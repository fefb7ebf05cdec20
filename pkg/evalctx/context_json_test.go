package evalctx_test

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/evalctx"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

func TestContextMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		context  evalctx.Context
		expected string
	}{
		{
			"minimal",
			evalctx.New("k"),
			`{"key":"k","kind":"user"}`,
		},
		{
			"name and anonymous present",
			evalctx.NewBuilder("k").Name("Alice").Anonymous(true).Build(),
			`{"anonymous":true,"key":"k","kind":"user","name":"Alice"}`,
		},
		{
			"false anonymous omitted",
			evalctx.NewBuilder("k").Anonymous(false).Build(),
			`{"key":"k","kind":"user"}`,
		},
		{
			"custom attributes are top level siblings",
			evalctx.NewBuilder("k").SetString("country", "us").SetInt("age", 30).Build(),
			`{"age":30,"country":"us","key":"k","kind":"user"}`,
		},
		{
			"private attributes in meta",
			evalctx.NewBuilder("k").Private("email", "/address/street").Build(),
			`{"_meta":{"privateAttributes":["email","/address/street"]},"key":"k","kind":"user"}`,
		},
		{
			"multi kind",
			evalctx.NewMulti(
				evalctx.NewBuilder("u1").Name("Alice").Build(),
				evalctx.NewWithKind("org", "o1"),
			),
			`{"kind":"multi","org":{"key":"o1"},"user":{"key":"u1","name":"Alice"}}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(tt.context)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}

	t.Run("InvalidContextIsAnError", func(t *testing.T) {
		t.Parallel()
		_, err := json.Marshal(evalctx.New(""))
		require.Error(t, err)

		_, err = (evalctx.Context{}).MarshalJSON()
		require.Error(t, err)
	})
}

func TestContextUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("SingleKind", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		input := `{"kind":"org","key":"o1","name":"Acme","anonymous":true,` +
			`"tier":"gold","_meta":{"privateAttributes":["tier"]}}`
		require.NoError(t, json.Unmarshal([]byte(input), &c))
		require.NoError(t, c.Err())
		assert.Equal(t, evalctx.Kind("org"), c.Kind())
		assert.Equal(t, "o1", c.Key())
		name, hasName := c.Name()
		assert.True(t, hasName)
		assert.Equal(t, "Acme", name)
		assert.True(t, c.Anonymous())
		assert.Equal(t, "gold", c.GetValue("tier").StringValue())
		require.Len(t, c.PrivateAttributes(), 1)
		assert.Equal(t, "tier", c.PrivateAttributes()[0].String())
	})

	t.Run("NullNameMeansAbsent", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(`{"kind":"user","key":"k","name":null}`), &c))
		_, hasName := c.Name()
		assert.False(t, hasName)
	})

	t.Run("MultiKind", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		input := `{"kind":"multi","user":{"key":"u1"},"org":{"key":"o1","tier":"gold"}}`
		require.NoError(t, json.Unmarshal([]byte(input), &c))
		require.NoError(t, c.Err())
		assert.True(t, c.Multiple())
		assert.Equal(t, 2, c.IndividualContextCount())
		org, ok := c.IndividualContextByKind("org")
		require.True(t, ok)
		assert.Equal(t, "gold", org.GetValue("tier").StringValue())
	})

	t.Run("Errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			input string
			check func(t *testing.T, err error)
		}{
			{"not an object", `[]`, func(t *testing.T, err error) {}},
			{"kind not a string", `{"kind":42,"key":"k"}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"missing key", `{"kind":"user"}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONMissingKey)
			}},
			{"null key", `{"kind":"user","key":null}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONMissingKey)
			}},
			{"key not a string", `{"kind":"user","key":7}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"invalid kind", `{"kind":"no spaces","key":"k"}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrKindInvalidChars)
			}},
			{"name wrong type", `{"kind":"user","key":"k","name":7}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"anonymous wrong type", `{"kind":"user","key":"k","anonymous":"yes"}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"meta wrong type", `{"kind":"user","key":"k","_meta":3}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"multi constituent not object", `{"kind":"multi","user":3}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONInvalidProperty)
			}},
			{"multi with no kinds", `{"kind":"multi"}`, func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "no kinds")
			}},
			{"multi constituent missing key", `{"kind":"multi","user":{}}`, func(t *testing.T, err error) {
				assert.ErrorIs(t, err, evalctx.ErrJSONMissingKey)
			}},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				var c evalctx.Context
				err := json.Unmarshal([]byte(tt.input), &c)
				require.Error(t, err)
				tt.check(t, err)
			})
		}
	})

	t.Run("ExplicitEmptyKeyRoundTrips", func(t *testing.T) {
		t.Parallel()
		// Contexts converted from keyless legacy users serialize with an
		// empty key; parsing that form back must succeed.
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(`{"kind":"user","key":""}`), &c))
		require.NoError(t, c.Err())
		assert.Equal(t, "", c.Key())
	})
}

func TestContextUnmarshalOldUserSchema(t *testing.T) {
	t.Parallel()

	t.Run("FullRecord", func(t *testing.T) {
		t.Parallel()
		input := `{"key":"u1","name":"Alice","anonymous":true,"email":"a@example.com",` +
			`"firstName":"Alice","custom":{"tier":"gold"},"privateAttributeNames":["email"]}`
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(input), &c))
		require.NoError(t, c.Err())
		assert.Equal(t, evalctx.DefaultKind, c.Kind())
		assert.Equal(t, "u1", c.Key())
		name, hasName := c.Name()
		assert.True(t, hasName)
		assert.Equal(t, "Alice", name)
		assert.True(t, c.Anonymous())
		assert.Equal(t, "a@example.com", c.GetValue("email").StringValue())
		assert.Equal(t, "Alice", c.GetValue("firstName").StringValue())
		assert.Equal(t, "gold", c.GetValue("tier").StringValue())
		require.Len(t, c.PrivateAttributes(), 1)
		assert.Equal(t, "email", c.PrivateAttributes()[0].String())
	})

	t.Run("EmptyKeyAllowed", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(`{"key":""}`), &c))
		require.NoError(t, c.Err())
		assert.Equal(t, "", c.Key())
	})

	t.Run("MissingKeyRejected", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		err := json.Unmarshal([]byte(`{"name":"Alice"}`), &c)
		assert.ErrorIs(t, err, evalctx.ErrJSONMissingKey)
	})

	t.Run("UnknownPropertiesIgnored", func(t *testing.T) {
		t.Parallel()
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(`{"key":"k","legacyJunk":[1,2]}`), &c))
		require.NoError(t, c.Err())
		assert.True(t, c.GetValue("legacyJunk").IsNull())
	})

	t.Run("ReservedCustomNamesCannotDisplaceIdentity", func(t *testing.T) {
		t.Parallel()
		input := `{"key":"real-key","custom":{"kind":"org","key":"hijacked-key"}}`
		var c evalctx.Context
		require.NoError(t, json.Unmarshal([]byte(input), &c))
		require.NoError(t, c.Err())
		assert.Equal(t, evalctx.DefaultKind, c.Kind())
		assert.Equal(t, "real-key", c.Key())
	})
}

func TestContextJSONRoundTrip(t *testing.T) {
	t.Parallel()

	contexts := []evalctx.Context{
		evalctx.New("k"),
		evalctx.NewWithKind("org", "key with %:% chars"),
		evalctx.NewBuilder("k").
			Name("Alice").
			Anonymous(true).
			SetString("country", "us").
			SetInt("age", 30).
			Set("address", jsonval.NewObjectBuilder().Set("city", jsonval.String("Berlin")).Build()).
			Set("tags", jsonval.ConvertString.ArrayOf("a", "b")).
			Private("email", "/address/city").
			Build(),
		evalctx.NewMulti(
			evalctx.NewBuilder("u").SetBool("beta", true).Build(),
			evalctx.NewWithKind("org", "o"),
			evalctx.NewBuilder("d").Kind("device").Private("serial").Build(),
		),
		evalctx.FromUser(&evalctx.User{Key: "", Name: "keyless"}),
	}

	for _, original := range contexts {
		require.NoError(t, original.Err())
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded evalctx.Context
		require.NoError(t, json.Unmarshal(data, &decoded), "input: %s", data)
		assert.True(t, decoded.Equal(original), "round trip changed context: %s", data)
		assert.Equal(t, original.Hash(), decoded.Hash())
		assert.Equal(t, original.FullyQualifiedKey(), decoded.FullyQualifiedKey())
	}
}

func genContextKey() gopter.Gen {
	return gen.OneGenOf(
		gen.Identifier(),
		gen.RegexMatch(`[a-z%:]{1,8}`),
	)
}

// Round-trip property over generated single- and multi-kind contexts.
func TestContextJSONRoundTripProperty(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	roundTrips := func(c evalctx.Context) bool {
		data, err := json.Marshal(c)
		if err != nil {
			return false
		}
		var decoded evalctx.Context
		if err := json.Unmarshal(data, &decoded); err != nil {
			return false
		}
		return decoded.Equal(c) && decoded.Hash() == c.Hash()
	}

	properties.Property("single-kind contexts round trip", prop.ForAll(
		func(key, name, attr string, anonymous bool, age int) bool {
			c := evalctx.NewBuilder(key).
				Name(name).
				Anonymous(anonymous).
				SetInt("age", age).
				SetString("attr", attr).
				Build()
			return c.Err() == nil && roundTrips(c)
		},
		genContextKey(),
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
		gen.Int(),
	))

	properties.Property("multi-kind contexts round trip", prop.ForAll(
		func(userKey, orgKey string) bool {
			c := evalctx.NewMulti(
				evalctx.New(userKey),
				evalctx.NewWithKind("org", orgKey),
			)
			return c.Err() == nil && roundTrips(c)
		},
		genContextKey(),
		genContextKey(),
	))

	properties.TestingRun(t)
}
