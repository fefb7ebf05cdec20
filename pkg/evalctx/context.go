package evalctx

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flagkit/pkg/attrref"
	"github.com/dmitrymomot/flagkit/pkg/jsonval"
)

// Context is an immutable evaluation context: a single subject identified
// by kind and key, or a multi-kind composite of several subjects.
//
// The zero Context is uninitialized; it is invalid and reports
// ErrUninitialized. All other invalid inputs produce a defined but invalid
// Context carrying the reason in Err. A valid Context is safe to share
// between goroutines without synchronization.
type Context struct {
	defined           bool
	err               error
	kind              Kind
	multiContexts     []Context
	key               string
	fullyQualifiedKey string
	name              string
	hasName           bool
	anonymous         bool
	attributes        map[string]jsonval.Value
	privateAttrs      []attrref.Ref
}

// New creates a single-kind Context of the default kind with the given
// key. An empty key produces an invalid Context.
func New(key string) Context {
	return NewWithKind(DefaultKind, key)
}

// NewWithKind creates a single-kind Context with the given kind and key.
// An empty kind is replaced with DefaultKind; an invalid kind or an empty
// key produces an invalid Context.
func NewWithKind(kind Kind, key string) Context {
	return makeSingle(kind, key, "", false, false, nil, nil, false)
}

// NewAnonymous creates an anonymous single-kind Context with a randomly
// generated UUID key, for subjects that have no stable identifier of
// their own. An empty kind is replaced with DefaultKind.
func NewAnonymous(kind Kind) Context {
	return makeSingle(kind, uuid.NewString(), "", false, true, nil, nil, false)
}

// NewMulti creates a multi-kind Context from the given contexts.
//
// With no arguments the result is invalid ("no kinds"); with exactly one
// argument that context is returned unchanged. Any argument that is itself
// multi-kind is flattened into its constituent single-kind contexts first.
// Duplicate kinds or invalid constituents produce an invalid Context whose
// error lists every problem found.
func NewMulti(contexts ...Context) Context {
	b := NewMultiBuilder()
	for _, c := range contexts {
		b.Add(c)
	}
	return b.Build()
}

func invalidContext(err error) Context {
	return Context{defined: true, err: err}
}

// makeSingle is the single-kind construction path shared by the factory
// functions, Builder.Build, and FromUser. The attributes map and private
// slice must be owned by the caller; they are stored without copying.
func makeSingle(
	kind Kind,
	key string,
	name string,
	hasName bool,
	anonymous bool,
	attributes map[string]jsonval.Value,
	privateAttrs []attrref.Ref,
	allowEmptyKey bool,
) Context {
	if kind == "" {
		kind = DefaultKind
	}
	if err := kind.Validate(); err != nil {
		return invalidContext(err)
	}
	if key == "" && !allowEmptyKey {
		return invalidContext(ErrNoKey)
	}
	return Context{
		defined:           true,
		kind:              kind,
		key:               key,
		fullyQualifiedKey: singleQualifiedKey(kind, key),
		name:              name,
		hasName:           hasName,
		anonymous:         anonymous,
		attributes:        attributes,
		privateAttrs:      privateAttrs,
	}
}

// makeMulti is the multi-kind construction path. The caller guarantees at
// least two contexts, none of them multi-kind, and ownership of the slice.
func makeMulti(contexts []Context) Context {
	var problems []string
	for _, c := range contexts {
		if err := c.Err(); err != nil {
			problems = append(problems, fmt.Sprintf("(%s) %s", c.kind, err))
		}
	}
	duplicate := false
	for i := 0; i < len(contexts) && !duplicate; i++ {
		for j := i + 1; j < len(contexts); j++ {
			if contexts[i].kind == contexts[j].kind {
				duplicate = true
				break
			}
		}
	}
	if duplicate {
		problems = append(problems, ErrMultiDuplicateKinds.Error())
	}
	if len(problems) > 0 {
		return invalidContext(errors.New(strings.Join(problems, ", ")))
	}

	sort.SliceStable(contexts, func(i, j int) bool {
		return contexts[i].kind < contexts[j].kind
	})
	segments := make([]string, 0, len(contexts))
	for _, c := range contexts {
		segments = append(segments, string(c.kind)+":"+escapeKeySegment(c.key))
	}
	return Context{
		defined:           true,
		kind:              MultiKind,
		multiContexts:     contexts,
		fullyQualifiedKey: strings.Join(segments, ":"),
	}
}

// singleQualifiedKey renders the canonical key of a single-kind context.
// The default kind uses the bare key; any other kind prefixes it and
// escapes the key.
func singleQualifiedKey(kind Kind, key string) string {
	if kind == DefaultKind {
		return key
	}
	return string(kind) + ":" + escapeKeySegment(key)
}

// escapeKeySegment escapes "%" and ":" so keys cannot be confused with
// the separators of a fully-qualified key. "%" must be escaped first.
func escapeKeySegment(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "%", "%25"), ":", "%3A")
}

// Valid reports whether the Context can be used for evaluation.
func (c Context) Valid() bool {
	return c.defined && c.err == nil
}

// Err returns nil for a valid Context, the construction error for an
// invalid one, and ErrUninitialized for the zero Context.
func (c Context) Err() error {
	if !c.defined {
		return ErrUninitialized
	}
	return c.err
}

// Kind returns the context's kind: MultiKind for a multi-kind context,
// the subject kind for a single-kind one, and "" if invalid.
func (c Context) Kind() Kind {
	return c.kind
}

// Multiple reports whether the Context is multi-kind.
func (c Context) Multiple() bool {
	return len(c.multiContexts) != 0
}

// Key returns the subject key of a single-kind context, or "" for
// multi-kind and invalid contexts.
func (c Context) Key() string {
	return c.key
}

// Name returns the optional name attribute and whether it is set.
func (c Context) Name() (string, bool) {
	return c.name, c.hasName
}

// Anonymous reports whether the subject is marked anonymous.
func (c Context) Anonymous() bool {
	return c.anonymous
}

// FullyQualifiedKey returns the canonical string identifying this context,
// used elsewhere in the SDK as a cache and de-duplication key. It is ""
// for invalid contexts.
func (c Context) FullyQualifiedKey() string {
	return c.fullyQualifiedKey
}

// IndividualContextCount returns the number of single-kind contexts: the
// constituent count for multi-kind, 1 for a valid single-kind context,
// and 0 otherwise.
func (c Context) IndividualContextCount() int {
	switch {
	case c.Multiple():
		return len(c.multiContexts)
	case c.Valid():
		return 1
	default:
		return 0
	}
}

// IndividualContextByIndex returns the single-kind context at the given
// position, in ascending kind order for multi-kind contexts. The boolean
// result is false if the index is out of range.
func (c Context) IndividualContextByIndex(index int) (Context, bool) {
	if c.Multiple() {
		if index < 0 || index >= len(c.multiContexts) {
			return Context{}, false
		}
		return c.multiContexts[index], true
	}
	if c.Valid() && index == 0 {
		return c, true
	}
	return Context{}, false
}

// IndividualContextByKind returns the single-kind context with the given
// kind, from a multi-kind context or from the context itself. An empty
// kind is replaced with DefaultKind before matching.
func (c Context) IndividualContextByKind(kind Kind) (Context, bool) {
	if kind == "" {
		kind = DefaultKind
	}
	if c.Multiple() {
		for _, sub := range c.multiContexts {
			if sub.kind == kind {
				return sub, true
			}
		}
		return Context{}, false
	}
	if c.Valid() && c.kind == kind {
		return c, true
	}
	return Context{}, false
}

// IndividualContexts returns all single-kind contexts as a new slice: the
// constituents of a multi-kind context, or the context itself.
func (c Context) IndividualContexts() []Context {
	if c.Multiple() {
		out := make([]Context, len(c.multiContexts))
		copy(out, c.multiContexts)
		return out
	}
	if c.Valid() {
		return []Context{c}
	}
	return nil
}

// CustomAttributeNames returns the names of all custom attributes in
// sorted order, for deterministic enumeration by the event pipeline.
func (c Context) CustomAttributeNames() []string {
	if len(c.attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.attributes))
	for name := range c.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrivateAttributes returns a copy of the attribute references marked
// private. Private marking is metadata for analytics redaction; it does
// not affect attribute lookup.
func (c Context) PrivateAttributes() []attrref.Ref {
	if len(c.privateAttrs) == 0 {
		return nil
	}
	out := make([]attrref.Ref, len(c.privateAttrs))
	copy(out, c.privateAttrs)
	return out
}

// Equal performs a deep comparison. Uninitialized contexts are equal only
// to each other. Multi-kind comparison is order-independent over the
// constituent kinds; attribute and private-reference comparison is
// order-independent as well.
func (c Context) Equal(other Context) bool {
	if !c.defined || !other.defined {
		return c.defined == other.defined
	}
	if c.kind != other.kind {
		return false
	}
	if (c.err == nil) != (other.err == nil) {
		return false
	}
	if c.err != nil {
		return c.err.Error() == other.err.Error()
	}
	if c.Multiple() != other.Multiple() {
		return false
	}
	if c.Multiple() {
		if len(c.multiContexts) != len(other.multiContexts) {
			return false
		}
		// Constituents are stored sorted by kind, so positional
		// comparison is order-independent with respect to inputs.
		for i, sub := range c.multiContexts {
			if !sub.Equal(other.multiContexts[i]) {
				return false
			}
		}
		return true
	}
	if c.key != other.key || c.hasName != other.hasName || c.name != other.name ||
		c.anonymous != other.anonymous {
		return false
	}
	if len(c.attributes) != len(other.attributes) {
		return false
	}
	for name, value := range c.attributes {
		otherValue, ok := other.attributes[name]
		if !ok || !value.Equal(otherValue) {
			return false
		}
	}
	return equalRefSets(c.privateAttrs, other.privateAttrs)
}

// equalRefSets compares two private-reference lists as unordered
// multisets of raw path strings.
func equalRefSets(a, b []attrref.Ref) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	as := make([]string, 0, len(a))
	bs := make([]string, 0, len(b))
	for _, ref := range a {
		as = append(as, ref.String())
	}
	for _, ref := range b {
		bs = append(bs, ref.String())
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// String returns the JSON representation of a valid Context, or a
// diagnostic description of an invalid one.
func (c Context) String() string {
	if err := c.Err(); err != nil {
		return fmt.Sprintf("invalid context (%s)", err)
	}
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("invalid context (%s)", err)
	}
	return string(data)
}
