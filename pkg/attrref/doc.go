// Package attrref provides attribute references: parsed attribute names or
// slash-delimited path expressions used to address a value within an
// evaluation context.
//
// A reference is either a plain attribute name or a path in a JSON-Pointer-
// like syntax. Input that does not start with "/" is always a single
// literal component, with no escaping applied:
//
//	attrref.New("name")     // the "name" attribute
//	attrref.New("a/b")      // the attribute literally named "a/b"
//
// Input starting with "/" is split into components on "/", with "~1"
// unescaping to "/" and "~0" to "~" within each component:
//
//	attrref.New("/address/city") // "city" within the "address" object
//	attrref.New("/a~1b")         // the attribute named "a/b"
//
// Construction is total: malformed input produces a Ref whose Valid method
// returns false and whose Err method describes the problem, never a panic
// or an error return. The original input string is preserved verbatim and
// returned by String regardless of validity.
//
// Equality and hashing are defined on the raw input string, not on the
// parsed form: New("key") and New("/key") resolve to the same attribute
// but are not equal. This preserves compatibility with how references are
// serialized and compared elsewhere in the SDK; callers that want
// normalized comparison should compare components instead.
package attrref
