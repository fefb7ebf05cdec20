package evalctx

import "errors"

// Predefined errors for the evalctx package. Construction never returns
// these directly; they are carried by invalid Context values and exposed
// through Context.Err.
var (
	// ErrKindInvalidChars indicates a context kind containing characters
	// outside ASCII letters, digits, ".", "_", and "-", or an empty kind.
	ErrKindInvalidChars = errors.New(`context kind must be non-empty and use only letters, digits, ".", "_", and "-"`)

	// ErrKindCannotBeKind indicates the literal kind "kind", which is
	// reserved in the context JSON schema.
	ErrKindCannotBeKind = errors.New(`"kind" is not a valid context kind`)

	// ErrKindMultiForSingle indicates the kind "multi" used for a
	// single-kind context; "multi" is reserved for composite contexts.
	ErrKindMultiForSingle = errors.New(`single-kind context cannot have the kind "multi"`)

	// ErrNoKey indicates a missing or empty context key.
	ErrNoKey = errors.New("context key must not be empty")

	// ErrMultiWithNoKinds indicates a multi-kind context built from no
	// contexts at all.
	ErrMultiWithNoKinds = errors.New("multi-kind context contains no kinds")

	// ErrMultiDuplicateKinds indicates two contexts of the same kind in
	// one multi-kind context.
	ErrMultiDuplicateKinds = errors.New("multi-kind context cannot have duplicate kinds")

	// ErrUninitialized indicates use of an uninitialized (zero value)
	// Context.
	ErrUninitialized = errors.New("tried to use uninitialized Context")

	// ErrFromNilUser indicates a conversion from a nil legacy User.
	ErrFromNilUser = errors.New("cannot convert nil User to Context")

	// ErrJSONMissingKey indicates context JSON with no "key" property.
	ErrJSONMissingKey = errors.New(`context JSON must contain a "key" property`)

	// ErrJSONInvalidProperty indicates a context JSON property whose value
	// has the wrong type for its schema position.
	ErrJSONInvalidProperty = errors.New("invalid property value in context JSON")
)
