package migration

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded tag/value pair. Only varint and length-delimited
// values are kept; other wire types are consumed and reported with an empty
// value.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

// fieldReader walks the tagged fields of a single message. The same reader
// serves the outer payload and each nested record.
//
//	r := newFieldReader(buf)
//	for r.Next() {
//		f := r.Field()
//		...
//	}
//	if err := r.Err(); err != nil { ... }
type fieldReader struct {
	buf []byte
	cur field
	err error
}

func newFieldReader(buf []byte) *fieldReader {
	return &fieldReader{buf: buf}
}

// Next advances to the next field. It returns false at the end of the buffer
// or on the first framing error.
func (r *fieldReader) Next() bool {
	if r.err != nil || len(r.buf) == 0 {
		return false
	}

	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		r.fail(n)
		return false
	}
	r.buf = r.buf[n:]

	r.cur = field{num: num, typ: typ}
	switch typ {
	case protowire.VarintType:
		r.cur.varint, n = protowire.ConsumeVarint(r.buf)
	case protowire.BytesType:
		r.cur.bytes, n = protowire.ConsumeBytes(r.buf)
	case protowire.Fixed32Type:
		_, n = protowire.ConsumeFixed32(r.buf)
	case protowire.Fixed64Type:
		_, n = protowire.ConsumeFixed64(r.buf)
	default:
		n = protowire.ConsumeFieldValue(num, typ, r.buf)
	}
	if n < 0 {
		r.fail(n)
		return false
	}
	r.buf = r.buf[n:]
	return true
}

// Field returns the field read by the last successful Next.
func (r *fieldReader) Field() field {
	return r.cur
}

// Err returns the framing error that stopped the reader, if any.
func (r *fieldReader) Err() error {
	return r.err
}

func (r *fieldReader) fail(n int) {
	r.err = errors.Join(ErrTruncated, protowire.ParseError(n))
}
