// Package logger builds the *slog.Logger used across the scanner, the CLI
// and the HTTP API.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the handler with LogHandlerDecorator, which
// copies values out of context.Context into every record. The scanner puts a
// scan id into the context of each scan; registering ScanIDExtractor makes
// every log line of that scan carry it.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "otpscan"),
//	    logger.WithContextExtractors(scanner.ScanIDExtractor),
//	)
//	log.InfoContext(ctx, "scan finished", logger.Count(len(creds)))
//
// Attribute helpers in attr.go keep key names consistent. They never accept
// secret material: credentials are logged by kind and issuer only.
//
// Packages that take an optional logger default to Noop, which discards all
// records.
package logger
