package attrref

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Ref is an immutable attribute reference: either a single attribute name
// or a parsed path expression. The zero value is an undefined reference
// that behaves like an invalid one.
//
// Refs are created with New or NewLiteral and never mutated afterward, so
// they are safe to share between goroutines.
type Ref struct {
	err             error
	rawPath         string
	singleComponent string
	components      []string
}

// New parses an attribute reference from a path string.
//
// Input not starting with "/" is a single literal component equal to the
// whole string. Input starting with "/" is split on "/" with "~1" and "~0"
// unescaping to "/" and "~" respectively.
//
// New is total: it always returns a Ref, recording the original string for
// String regardless of validity. Check Valid or Err before relying on the
// parsed components.
func New(path string) Ref {
	if path == "" || path == "/" {
		return Ref{err: ErrEmpty, rawPath: path}
	}
	if path[0] != '/' {
		return Ref{rawPath: path, singleComponent: path}
	}
	parts := strings.Split(path[1:], "/")
	if len(parts) == 1 {
		component, ok := unescapeComponent(parts[0])
		if !ok {
			return Ref{err: ErrInvalidEscape, rawPath: path}
		}
		return Ref{rawPath: path, singleComponent: component}
	}
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Ref{err: ErrExtraSlash, rawPath: path}
		}
		component, ok := unescapeComponent(part)
		if !ok {
			return Ref{err: ErrInvalidEscape, rawPath: path}
		}
		components = append(components, component)
	}
	return Ref{rawPath: path, components: components}
}

// NewLiteral creates a reference to an attribute name taken literally, with
// no path syntax or escaping applied.
//
// If name starts with "/", the reference's raw path is the escaped path
// spelling of the name, so that New(ref.String()) reproduces the same
// logical reference.
func NewLiteral(name string) Ref {
	if name == "" {
		return Ref{err: ErrEmpty}
	}
	if name[0] != '/' {
		return Ref{rawPath: name, singleComponent: name}
	}
	escaped := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Ref{rawPath: "/" + escaped, singleComponent: name}
}

// Valid reports whether the reference parsed successfully.
func (r Ref) Valid() bool {
	return r.err == nil && r.rawPath != ""
}

// Err returns nil for a valid reference, or the reason it is invalid. An
// undefined (zero value) Ref reports ErrEmpty.
func (r Ref) Err() error {
	if r.err == nil && r.rawPath == "" {
		return ErrEmpty
	}
	return r.err
}

// Depth returns the number of path components: 1 for a plain attribute
// name, the component count for a path, and 0 for an invalid reference.
func (r Ref) Depth() int {
	switch {
	case !r.Valid():
		return 0
	case r.components != nil:
		return len(r.components)
	default:
		return 1
	}
}

// Component returns the unescaped path component at the given index, or ""
// if the index is out of range or the reference is invalid.
func (r Ref) Component(index int) string {
	if !r.Valid() {
		return ""
	}
	if r.components == nil {
		if index == 0 {
			return r.singleComponent
		}
		return ""
	}
	if index < 0 || index >= len(r.components) {
		return ""
	}
	return r.components[index]
}

// ComponentAsInt returns the component at the given index interpreted as a
// decimal integer, for addressing array elements. The boolean result is
// false if the component does not exist or is not an integer.
func (r Ref) ComponentAsInt(index int) (int, bool) {
	component := r.Component(index)
	if component == "" {
		return 0, false
	}
	n, err := strconv.Atoi(component)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the original input string verbatim, valid or not.
func (r Ref) String() string {
	return r.rawPath
}

// Equal reports whether two references were built from the same raw
// string. Two different escaped spellings of the same logical path are not
// equal; compare components for normalized comparison.
func (r Ref) Equal(other Ref) bool {
	return r.rawPath == other.rawPath
}

// Hash returns a hash of the raw path string, consistent with Equal.
func (r Ref) Hash() uint64 {
	return xxhash.Sum64String(r.rawPath)
}

// MarshalJSON encodes the reference as its raw path string.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.rawPath)
}

// UnmarshalJSON decodes a JSON string through New. A malformed reference
// string is not a decode error; it produces an invalid Ref, matching the
// totality of the constructors.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return err
	}
	*r = New(path)
	return nil
}

// unescapeComponent resolves "~0" and "~1" sequences. It reports false for
// a "~" followed by anything else, including end of input.
func unescapeComponent(s string) (string, bool) {
	if !strings.ContainsRune(s, '~') {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 == len(s) {
			return "", false
		}
		switch s[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", false
		}
		i++
	}
	return b.String(), true
}
