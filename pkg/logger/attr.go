package logger

import (
	"log/slog"
	"strconv"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups multiple non-nil errors under the key "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ScanID records the scan correlation id under the key "scan_id".
func ScanID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("scan_id", id)
}

// Kind records the credential kind (totp or hotp).
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

// Issuer records the credential issuer. Secrets never go through here.
func Issuer(issuer string) slog.Attr {
	return slog.String("issuer", issuer)
}

// RecordIndex records the zero-based position of a migration record.
func RecordIndex(i int) slog.Attr {
	return slog.Int("record_index", i)
}

// Probe records the name of the normalizer rule that matched.
func Probe(name string) slog.Attr {
	return slog.String("probe", name)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
