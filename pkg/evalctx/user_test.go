package evalctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/evalctx"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

func TestFromUser(t *testing.T) {
	t.Parallel()

	t.Run("NilUser", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(nil)
		assert.False(t, c.Valid())
		assert.ErrorIs(t, c.Err(), evalctx.ErrFromNilUser)
	})

	t.Run("FullRecord", func(t *testing.T) {
		t.Parallel()
		u := &evalctx.User{
			Key:       "u1",
			Secondary: "shard-2",
			IPAddress: "10.0.0.1",
			Email:     "a@example.com",
			Name:      "Alice",
			Avatar:    "http://example.com/a.png",
			FirstName: "Alice",
			LastName:  "Liddell",
			Country:   "us",
			Anonymous: true,
			Custom: map[string]jsonval.Value{
				"tier":  jsonval.String("gold"),
				"score": jsonval.Int(9),
			},
			PrivateAttributeNames: []string{"email", "/not/a/path"},
		}
		c := evalctx.FromUser(u)
		require.NoError(t, c.Err())

		assert.Equal(t, evalctx.DefaultKind, c.Kind())
		assert.Equal(t, "u1", c.Key())
		name, hasName := c.Name()
		assert.True(t, hasName)
		assert.Equal(t, "Alice", name)
		assert.True(t, c.Anonymous())

		// Optional built-ins become custom attributes under their legacy
		// names; Name does not.
		assert.Equal(t, "shard-2", c.GetValue("secondary").StringValue())
		assert.Equal(t, "10.0.0.1", c.GetValue("ip").StringValue())
		assert.Equal(t, "a@example.com", c.GetValue("email").StringValue())
		assert.Equal(t, "http://example.com/a.png", c.GetValue("avatar").StringValue())
		assert.Equal(t, "Alice", c.GetValue("firstName").StringValue())
		assert.Equal(t, "Liddell", c.GetValue("lastName").StringValue())
		assert.Equal(t, "us", c.GetValue("country").StringValue())

		assert.Equal(t, "gold", c.GetValue("tier").StringValue())
		assert.Equal(t, 9, c.GetValue("score").IntValue())

		// Private names are literal, not parsed as paths.
		refs := c.PrivateAttributes()
		require.Len(t, refs, 2)
		byRaw := map[string]int{}
		for _, ref := range refs {
			byRaw[ref.Component(0)] = ref.Depth()
		}
		assert.Equal(t, 1, byRaw["email"])
		assert.Equal(t, 1, byRaw["/not/a/path"], "literal name keeps slashes in one component")
	})

	t.Run("EmptyKeyPermitted", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{})
		require.NoError(t, c.Err())
		assert.Equal(t, "", c.Key())
		assert.Equal(t, "", c.FullyQualifiedKey())
	})

	t.Run("AbsentOptionalsNotCreated", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{Key: "k"})
		require.NoError(t, c.Err())
		_, hasName := c.Name()
		assert.False(t, hasName)
		assert.Nil(t, c.CustomAttributeNames())
	})

	t.Run("CustomEntriesFiltered", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{
			Key: "k",
			Custom: map[string]jsonval.Value{
				"":     jsonval.String("dropped"),
				"null": jsonval.Null(),
				"kept": jsonval.Int(1),
			},
		})
		require.NoError(t, c.Err())
		assert.Equal(t, []string{"kept"}, c.CustomAttributeNames())
	})

	t.Run("BuiltinsWinOverCustomCollisions", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{
			Key:     "k",
			Country: "us",
			Custom:  map[string]jsonval.Value{"country": jsonval.String("de")},
		})
		require.NoError(t, c.Err())
		assert.Equal(t, "us", c.GetValue("country").StringValue())
	})

	t.Run("ReservedCustomNamesCannotDisplaceRecordFields", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{
			Key:  "real-key",
			Name: "Real Name",
			Custom: map[string]jsonval.Value{
				"kind":      jsonval.String("org"),
				"key":       jsonval.String("hijacked-key"),
				"name":      jsonval.String("Fake Name"),
				"anonymous": jsonval.Bool(true),
			},
		})
		require.NoError(t, c.Err())

		assert.Equal(t, evalctx.DefaultKind, c.Kind())
		assert.Equal(t, "real-key", c.Key())
		assert.Equal(t, "real-key", c.FullyQualifiedKey())
		name, hasName := c.Name()
		assert.True(t, hasName)
		assert.Equal(t, "Real Name", name)
		assert.False(t, c.Anonymous())
		assert.Nil(t, c.CustomAttributeNames())
	})

	t.Run("ReservedCustomNameAbsentFromRecordIsDropped", func(t *testing.T) {
		t.Parallel()
		c := evalctx.FromUser(&evalctx.User{
			Key:    "k",
			Custom: map[string]jsonval.Value{"name": jsonval.String("Fake Name")},
		})
		require.NoError(t, c.Err())
		_, hasName := c.Name()
		assert.False(t, hasName)
	})
}
