package migration

import (
	"encoding/base64"
	"net/url"

	"google.golang.org/protobuf/encoding/protowire"
)

// Encode serializes p in the migration wire format. Zero-valued fields are
// omitted, as proto3 does.
func Encode(p Payload) []byte {
	var b []byte
	for _, r := range p.Records {
		b = protowire.AppendTag(b, fieldOTPParameters, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeRecord(r))
	}
	b = appendVarint(b, fieldVersion, uint64(p.Version))
	b = appendVarint(b, fieldBatchSize, uint64(p.BatchSize))
	b = appendVarint(b, fieldBatchIndex, uint64(p.BatchIndex))
	b = appendVarint(b, fieldBatchID, uint64(p.BatchID))
	return b
}

func encodeRecord(r Record) []byte {
	var b []byte
	if len(r.Secret) > 0 {
		b = protowire.AppendTag(b, fieldSecret, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Secret)
	}
	if r.Name != "" {
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, r.Name)
	}
	if r.Issuer != "" {
		b = protowire.AppendTag(b, fieldIssuer, protowire.BytesType)
		b = protowire.AppendString(b, r.Issuer)
	}
	b = appendVarint(b, fieldAlgorithm, uint64(r.Algorithm))
	b = appendVarint(b, fieldDigits, uint64(r.Digits))
	b = appendVarint(b, fieldType, uint64(r.Type))
	b = appendVarint(b, fieldCounter, r.Counter)
	return b
}

// appendVarint writes a varint field unless v is zero. Negative int32 values
// are sign-extended to ten bytes, matching protobuf int32 encoding.
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// URI wraps the encoded payload in a migration URI that authenticator apps
// can import. The data parameter is standard base64, query-escaped.
func URI(p Payload) string {
	return URIPrefix + url.QueryEscape(base64.StdEncoding.EncodeToString(Encode(p)))
}
