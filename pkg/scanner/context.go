package scanner

import (
	"context"
	"log/slog"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/logger"
)

type scanIDKey struct{}

// WithScanID stores id in ctx. Scan reuses it instead of generating one,
// which lets an HTTP request id double as the scan id.
func WithScanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, scanIDKey{}, id)
}

// ScanIDFromContext returns the scan id stored in ctx, or "".
func ScanIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(scanIDKey{}).(string)
	return id
}

// ScanIDExtractor adds the scan id to log records when one is present.
// Register it with logger.WithContextExtractors.
func ScanIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := ScanIDFromContext(ctx); id != "" {
		return logger.ScanID(id), true
	}
	return slog.Attr{}, false
}
