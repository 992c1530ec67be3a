// Package api exposes the scan pipeline over HTTP.
//
// Routes:
//
//	POST /v1/scan    body: scanned text or a QR image; returns the export document
//	POST /v1/codes   same body; returns the current code of each credential (?at=unix)
//	POST /v1/qrcode  same body; returns a PNG of the canonical URI (?size=px)
//	GET  /healthz    liveness probe, body "ALIVE"
//	GET  /metrics    Prometheus metrics
//
// Text that holds no credential is answered with 422 and echoes the text back.
// A migration URI whose payload cannot be decoded is answered with 400.
//
// Every request gets an X-Request-ID, taken from the request when well formed.
// The id doubles as the scan id, so it shows up in all scan log records.
//
// # Usage
//
//	h := api.NewHandler(api.WithLogger(log))
//	srv := api.NewServerFromConfig(cfg, api.WithServerLogger(log))
//	if err := srv.Run(ctx, h); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down within the configured timeout.
package api
