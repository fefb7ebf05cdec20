package evalctx

// MultiBuilder accumulates single-kind contexts for a multi-kind Context.
//
// Like Builder, it is scoped to one construction and is not safe for
// concurrent use. Build copies the accumulated contexts, so the builder
// can be reused afterward.
type MultiBuilder struct {
	contexts []Context
}

// NewMultiBuilder creates an empty MultiBuilder.
func NewMultiBuilder() *MultiBuilder {
	return &MultiBuilder{}
}

// Add appends a context. A multi-kind context is flattened into its
// constituent single-kind contexts, as if each had been added
// individually. Invalid contexts are accepted here and reported by Build.
func (m *MultiBuilder) Add(c Context) *MultiBuilder {
	if c.Multiple() {
		m.contexts = append(m.contexts, c.multiContexts...)
		return m
	}
	m.contexts = append(m.contexts, c)
	return m
}

// Build snapshots the accumulated contexts into a Context. With nothing
// added the result is invalid ("no kinds"); with exactly one context that
// context is returned unchanged rather than wrapped. Otherwise the result
// is a multi-kind Context, invalid if any constituent is invalid or if two
// constituents share a kind.
func (m *MultiBuilder) Build() Context {
	switch len(m.contexts) {
	case 0:
		return invalidContext(ErrMultiWithNoKinds)
	case 1:
		return m.contexts[0]
	default:
		contexts := make([]Context, len(m.contexts))
		copy(contexts, m.contexts)
		return makeMulti(contexts)
	}
}
