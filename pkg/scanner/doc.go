// Package scanner wires the decode pipeline together: scanned text goes
// through the normalize probe chain and otpauth.Parse, or, for migration
// exports, through the base64url codec and the migration decoder.
//
// # Usage
//
//	s := scanner.New(scanner.WithLogger(log))
//	creds, err := s.Scan(ctx, text)
//	switch {
//	case errors.Is(err, scanner.ErrNotOTP):
//		fmt.Println("not an OTP code:", text)
//	case errors.Is(err, scanner.ErrInvalidPayload):
//		fmt.Println("broken export:", err)
//	}
//
// Each scan gets a UUID scan id stored in its context. Build the logger with
// logger.WithContextExtractors(scanner.ScanIDExtractor) to tag every record
// of a scan, including the ones written by the migration decoder.
package scanner
