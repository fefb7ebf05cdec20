// Package evalctx provides the evaluation context model: an immutable,
// validated description of who or what a feature flag is being evaluated
// for.
//
// A Context is either single-kind (one subject, such as a user or an
// organization, identified by a Kind and a Key) or multi-kind (a
// composite of several single-kind contexts with distinct kinds). Contexts
// are built with factory functions or builders and are immutable once
// built, so they can be shared freely between goroutines.
//
// # Construction is total
//
// No construction path returns an error or panics. Invalid input produces
// an invalid Context whose Err method explains the problem; callers check
// Valid or Err before using a Context for evaluation. The zero Context is
// "uninitialized", which is reported as its own error condition.
//
//	c := evalctx.NewBuilder("user-key").
//		Name("Alice").
//		SetString("country", "us").
//		Build()
//	if err := c.Err(); err != nil {
//		// invalid input, c is unusable
//	}
//
// Multi-kind contexts combine subjects:
//
//	user := evalctx.New("user-key")
//	org := evalctx.NewBuilder("org-key").Kind("organization").Build()
//	both := evalctx.NewMulti(user, org)
//
// # Attribute lookup
//
// Flag rules address attributes by name or by attrref path; GetValue and
// GetValueForRef resolve them to jsonval values. A missing attribute is
// not an error: lookup always succeeds and returns the null value for
// anything that does not exist.
//
// # Canonical keys
//
// Every valid Context has a FullyQualifiedKey, a canonical string derived
// from its kind(s) and key(s). The rest of the SDK uses it as a cache and
// de-duplication identifier; two contexts with the same fully-qualified
// key refer to the same subject.
//
// # Builders and concurrency
//
// Builder and MultiBuilder are mutable accumulators scoped to a single
// construction; they are not safe for concurrent use and deliberately
// carry no locking. Build snapshots the builder state, so mutating a
// builder after Build never affects previously built contexts.
//
// # Legacy users
//
// The flat User record predates the context model. FromUser converts one
// to a single-kind Context; it is the only construction path that permits
// an empty key, for backward compatibility.
package evalctx
