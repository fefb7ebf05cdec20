package evalctx

// Kind is the validated category of a context subject, such as "user" or
// "organization".
type Kind string

const (
	// DefaultKind is the kind assumed when none is specified.
	DefaultKind Kind = "user"

	// MultiKind is the synthetic kind of a multi-kind context. It is not a
	// valid kind for a single-kind context.
	MultiKind Kind = "multi"
)

// KindOf returns the kind for a string, substituting DefaultKind for the
// empty string. It does not validate; see Validate.
func KindOf(s string) Kind {
	if s == "" {
		return DefaultKind
	}
	return Kind(s)
}

// Validate reports why the kind is unusable for a single-kind context, or
// nil if it is valid. The kind must be non-empty, must not be the reserved
// words "kind" or "multi", and may contain only ASCII letters, digits,
// ".", "_", and "-".
func (k Kind) Validate() error {
	switch k {
	case "kind":
		return ErrKindCannotBeKind
	case MultiKind:
		return ErrKindMultiForSingle
	}
	if len(k) == 0 {
		return ErrKindInvalidChars
	}
	for i := 0; i < len(k); i++ {
		if !isKindChar(k[i]) {
			return ErrKindInvalidChars
		}
	}
	return nil
}

// IsDefault reports whether the kind is DefaultKind.
func (k Kind) IsDefault() bool {
	return k == DefaultKind
}

func isKindChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '.' || c == '_' || c == '-'
}
