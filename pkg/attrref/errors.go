package attrref

import "errors"

// Predefined errors for the attrref package. These are carried by invalid
// Ref values rather than returned from constructors.
var (
	// ErrEmpty indicates an empty reference: an empty string, a lone "/",
	// or an undefined (zero value) Ref.
	ErrEmpty = errors.New("attribute reference is empty")

	// ErrExtraSlash indicates a path with a double slash or a trailing
	// slash, which would produce an empty component.
	ErrExtraSlash = errors.New("attribute reference contains a double or trailing slash")

	// ErrInvalidEscape indicates a "~" not followed by "0" or "1" within a
	// path component.
	ErrInvalidEscape = errors.New(`attribute reference contained an escape character "~" that was not followed by "0" or "1"`)
)
