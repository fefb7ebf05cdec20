// Package jsonval provides an immutable, JSON-compatible value type used
// throughout the SDK for flag variations and context attributes.
//
// The central type is Value, a tagged union over the six JSON shapes:
// null, boolean, number, string, array, and object. A Value is immutable
// after construction and safe to share between goroutines without
// synchronization.
//
// # Construction
//
// Scalar values are created with typed constructors:
//
//	v := jsonval.String("hello")
//	n := jsonval.Int(42)
//	b := jsonval.Bool(true)
//
// Arrays and objects are created either with variadic helpers or with
// one-shot builders that copy their contents on Build, so reusing a builder
// never mutates a previously built Value:
//
//	arr := jsonval.ArrayOf(jsonval.Int(1), jsonval.Int(2))
//
//	obj := jsonval.NewObjectBuilder().
//		Set("name", jsonval.String("Alice")).
//		Set("age", jsonval.Int(30)).
//		Build()
//
// # Access
//
// All accessors are total: reading a value with the wrong type returns the
// zero value for the requested type, and indexed access out of range or on
// the wrong shape returns Null. No accessor ever panics or returns an error.
//
//	obj.GetByKey("name").StringValue() // "Alice"
//	obj.GetByKey("missing").IsNull()   // true
//
// # Numbers
//
// All numbers are stored as float64, matching JSON semantics. Int and
// IntValue are views over the float64 representation; integers beyond 2^53
// may lose precision when round-tripped through this type.
//
// # Equality and hashing
//
// Equal performs deep structural comparison. Object comparison is
// order-independent; array comparison is order-dependent. Hash is
// deterministic and consistent with Equal: equal values always produce
// equal hashes.
//
// # Typed conversion
//
// Converter pairs a Go type with its Value representation, allowing typed
// slices and maps to be built and read without an intermediate []any pass:
//
//	v := jsonval.ConvertString.ArrayOf("a", "b")
//	s := jsonval.ConvertString.ToSlice(v) // []string{"a", "b"}
package jsonval
