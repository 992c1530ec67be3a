package migration

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/basen"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
)

// URIPrefix starts every migration URI. The base64url payload follows it.
const URIPrefix = "otpauth-migration://offline?data="

// Outer message fields.
const (
	fieldOTPParameters protowire.Number = 1
	fieldVersion       protowire.Number = 2
	fieldBatchSize     protowire.Number = 3
	fieldBatchIndex    protowire.Number = 4
	fieldBatchID       protowire.Number = 5
)

// otp_parameters fields.
const (
	fieldSecret    protowire.Number = 1
	fieldName      protowire.Number = 2
	fieldIssuer    protowire.Number = 3
	fieldAlgorithm protowire.Number = 4
	fieldDigits    protowire.Number = 5
	fieldType      protowire.Number = 6
	fieldCounter   protowire.Number = 7
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used to report dropped records and unknown
// enum codes.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// Decoder parses migration payloads. The zero value is not usable; create
// one with NewDecoder. A Decoder is safe for concurrent use.
type Decoder struct {
	log *slog.Logger
}

// NewDecoder creates a Decoder. Without WithLogger it logs nothing.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: logger.Noop()}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(logger.Component("migration"))
	return d
}

var defaultDecoder = NewDecoder()

// Decode parses data with a Decoder that does not log.
func Decode(data []byte) (Payload, error) {
	return defaultDecoder.Decode(context.Background(), data)
}

// Decode parses a migration message.
//
// Unknown fields are skipped at both levels. A record whose framing is broken
// or that carries no secret is dropped and logged at warn level; the other
// records are still returned in wire order. Only a broken top-level frame
// fails the whole decode, with ErrTruncated.
//
// ctx is used for log correlation only.
func (d *Decoder) Decode(ctx context.Context, data []byte) (Payload, error) {
	var p Payload

	r := newFieldReader(data)
	index := 0
	for r.Next() {
		f := r.Field()
		switch {
		case f.num == fieldOTPParameters && f.typ == protowire.BytesType:
			rec, err := d.decodeRecord(ctx, index, f.bytes)
			if err != nil {
				d.log.WarnContext(ctx, "dropping migration record",
					logger.RecordIndex(index),
					logger.Error(err),
				)
			} else {
				p.Records = append(p.Records, rec)
			}
			index++
		case f.typ != protowire.VarintType:
			// header fields are varints; anything else is skipped
		case f.num == fieldVersion:
			p.Version = int32(f.varint)
		case f.num == fieldBatchSize:
			p.BatchSize = int32(f.varint)
		case f.num == fieldBatchIndex:
			p.BatchIndex = int32(f.varint)
		case f.num == fieldBatchID:
			p.BatchID = int32(f.varint)
		}
	}
	if err := r.Err(); err != nil {
		return Payload{}, err
	}

	d.log.DebugContext(ctx, "migration payload decoded",
		logger.Count(len(p.Records)),
		slog.Int("batch_index", int(p.BatchIndex)),
		slog.Int("batch_size", int(p.BatchSize)),
	)
	return p, nil
}

func (d *Decoder) decodeRecord(ctx context.Context, index int, buf []byte) (Record, error) {
	var rec Record

	r := newFieldReader(buf)
	for r.Next() {
		f := r.Field()
		switch f.typ {
		case protowire.BytesType:
			switch f.num {
			case fieldSecret:
				rec.Secret = append([]byte(nil), f.bytes...)
			case fieldName:
				rec.Name = string(f.bytes)
			case fieldIssuer:
				rec.Issuer = string(f.bytes)
			}
		case protowire.VarintType:
			switch f.num {
			case fieldAlgorithm:
				rec.Algorithm = Algorithm(int32(f.varint))
			case fieldDigits:
				rec.Digits = DigitCount(int32(f.varint))
			case fieldType:
				rec.Type = Type(int32(f.varint))
			case fieldCounter:
				rec.Counter = f.varint
			}
		}
	}
	if err := r.Err(); err != nil {
		return Record{}, err
	}
	if len(rec.Secret) == 0 {
		return Record{}, errMissingSecret
	}

	if !rec.Algorithm.known() || !rec.Digits.known() || !rec.Type.known() {
		d.log.DebugContext(ctx, "unknown enum code, using defaults",
			logger.RecordIndex(index),
			slog.Int("algorithm", int(rec.Algorithm)),
			slog.Int("digits", int(rec.Digits)),
			slog.Int("type", int(rec.Type)),
		)
	}
	return rec, nil
}

// Data extracts and decodes the base64url payload of a migration URI.
// Anything after an '&' following the data parameter is ignored.
func Data(uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, URIPrefix) {
		return nil, ErrNotMigration
	}
	data, _, _ := strings.Cut(strings.TrimPrefix(uri, URIPrefix), "&")
	return basen.DecodeBase64URL(data)
}

// IsMigration reports whether text is a migration URI.
func IsMigration(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), URIPrefix)
}
