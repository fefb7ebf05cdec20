package evalctx

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a deterministic 64-bit hash consistent with Equal: equal
// contexts always produce the same hash. Attribute, private-reference,
// and constituent-kind contributions are folded in sorted order so that
// construction order never affects the result.
func (c Context) Hash() uint64 {
	if !c.defined {
		return 0
	}
	d := xxhash.New()
	c.hashInto(d)
	return d.Sum64()
}

func (c Context) hashInto(d *xxhash.Digest) {
	writeHashString(d, string(c.kind))
	if c.err != nil {
		writeHashString(d, c.err.Error())
		return
	}
	if c.Multiple() {
		// Constituents are stored sorted by kind.
		for _, sub := range c.multiContexts {
			sub.hashInto(d)
		}
		return
	}
	writeHashString(d, c.key)
	if c.hasName {
		writeHashString(d, c.name)
	} else {
		writeHashString(d, "")
	}
	if c.anonymous {
		d.Write([]byte{1})
	} else {
		d.Write([]byte{0})
	}

	names := make([]string, 0, len(c.attributes))
	for name := range c.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeHashString(d, name)
		writeHashUint64(d, c.attributes[name].Hash())
	}

	privates := make([]string, 0, len(c.privateAttrs))
	for _, ref := range c.privateAttrs {
		privates = append(privates, ref.String())
	}
	sort.Strings(privates)
	for _, raw := range privates {
		writeHashString(d, raw)
	}
}

func writeHashString(d *xxhash.Digest, s string) {
	writeHashUint64(d, uint64(len(s)))
	d.WriteString(s)
}

func writeHashUint64(d *xxhash.Digest, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	d.Write(buf[:])
}
