// Package migration decodes and encodes the binary payload carried by
// authenticator export QR codes:
//
//	otpauth-migration://offline?data={base64url message}
//
// The message is a protobuf-framed bundle of OTP parameter records. It is
// read with a small tagged-field reader on top of protowire rather than
// generated types, so unknown fields and unknown enum codes never fail a
// decode.
//
// # Usage
//
//	data, err := migration.Data(raw)
//	if err != nil {
//		return err
//	}
//	payload, err := migration.NewDecoder(migration.WithLogger(log)).Decode(ctx, data)
//	if err != nil {
//		return err // ErrTruncated
//	}
//	for _, rec := range payload.Records {
//		cred, err := rec.Credential()
//		...
//	}
//
// Going the other way, NewPayload and URI produce a migration URI for a set
// of credentials.
//
// # Error Handling
//
// Failures are isolated per record: a record with broken framing or without
// a secret is dropped and logged. Decode fails only when the outer frame is
// inconsistent with the buffer, returning ErrTruncated joined with the
// protowire cause. Data returns ErrNotMigration or basen.ErrMalformed.
package migration
