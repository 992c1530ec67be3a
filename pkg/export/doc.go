// Package export turns scanned credentials into files.
//
// Marshal and Unmarshal handle the JSON and YAML document, which holds one
// object for a single credential or an array for several. Each record keeps
// the structured fields next to the rendered otpauth URI.
//
// Exporter writes into a directory:
//
//   - json and yaml: one document per credential, named by FileName
//   - png: one QR image per credential encoding its otpauth URI
//   - migration: a single migration.png that authenticator apps can import
//
// Documents can be sealed with a passphrase. Seal derives a key with
// Argon2id and encrypts with AES-256-GCM; Open reverses it.
//
// # Usage
//
//	exp := export.NewExporter(export.WithLogger(log), export.WithPassphrase(pass))
//	paths, err := exp.Write(ctx, "out", export.FormatJSON, creds)
//
// # Error Handling
//
// Errors wrap ErrUnknownFormat, ErrEmptyDocument, ErrInvalidDocument,
// ErrFailedToSeal, ErrFailedToOpen or ErrFailedToWrite and can be matched
// with errors.Is.
package export
