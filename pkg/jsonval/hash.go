package jsonval

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Tag bytes written ahead of each value's content so that, for example,
// the number 0 and the boolean false hash differently.
const (
	hashTagNull byte = iota
	hashTagBool
	hashTagNumber
	hashTagString
	hashTagArray
	hashTagObject
)

// Hash returns a deterministic 64-bit hash of the value, consistent with
// Equal: values that compare equal always produce the same hash. Object
// properties contribute in sorted key order, so property insertion order
// does not affect the result.
func (v Value) Hash() uint64 {
	d := xxhash.New()
	v.hashInto(d)
	return d.Sum64()
}

func (v Value) hashInto(d *xxhash.Digest) {
	var buf [8]byte
	switch v.valueType {
	case BoolType:
		d.Write([]byte{hashTagBool})
		if v.boolValue {
			d.Write([]byte{1})
		} else {
			d.Write([]byte{0})
		}
	case NumberType:
		d.Write([]byte{hashTagNumber})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.numberValue))
		d.Write(buf[:])
	case StringType:
		d.Write([]byte{hashTagString})
		hashString(d, v.stringValue)
	case ArrayType:
		d.Write([]byte{hashTagArray})
		binary.LittleEndian.PutUint64(buf[:], uint64(len(v.arrayValue)))
		d.Write(buf[:])
		for _, item := range v.arrayValue {
			item.hashInto(d)
		}
	case ObjectType:
		d.Write([]byte{hashTagObject})
		binary.LittleEndian.PutUint64(buf[:], uint64(len(v.objectValue)))
		d.Write(buf[:])
		for _, k := range sortedKeys(v.objectValue) {
			hashString(d, k)
			v.objectValue[k].hashInto(d)
		}
	default:
		d.Write([]byte{hashTagNull})
	}
}

// hashString writes a length-prefixed string so adjacent strings cannot
// collide by concatenation.
func hashString(d *xxhash.Digest, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	d.Write(buf[:])
	d.WriteString(s)
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
