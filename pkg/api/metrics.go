package api

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Scan outcomes used as the "outcome" label.
const (
	outcomeOK      = "ok"
	outcomeNotOTP  = "not_otp"
	outcomeInvalid = "invalid_payload"
	outcomeError   = "error"
)

type metrics struct {
	scans *prometheus.CounterVec
	codes *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		// Scans by outcome: ok | not_otp | invalid_payload | error.
		scans: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otpscan_scans_total",
				Help: "Total number of scanned texts by outcome.",
			},
			[]string{"outcome"},
		)),
		// Generated codes by credential kind and result (ok | error).
		codes: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otpscan_codes_total",
				Help: "Total number of code generation attempts.",
			},
			[]string{"kind", "result"},
		)),
	}
}

// register adds c to reg. When an identical collector is already registered,
// that one is returned so handlers sharing a registry share their counters.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	panic(err)
}
