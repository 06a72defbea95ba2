// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decode outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"  // well-formed JSON that broke the schema or policy
	OutcomeMalformed = "malformed" // not JSON at all
)

var (
	mediaDecodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nestx_media_decode_total",
		Help: "Media documents decoded by outcome",
	}, []string{"outcome"}) // outcome=success|rejected|malformed

	mediaDecodeFieldErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nestx_media_decode_field_errors_total",
		Help: "Field-level decode problems by field and rule",
	}, []string{"field", "rule"})

	mediaValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nestx_media_validation_errors_total",
		Help: "Decoded media records rejected by boundary validation",
	})
)

// RecordDecode counts one decode attempt.
func RecordDecode(outcome string) {
	mediaDecodeTotal.WithLabelValues(outcome).Inc()
}

// RecordFieldError counts one field-level problem found while decoding.
func RecordFieldError(field, rule string) {
	mediaDecodeFieldErrors.WithLabelValues(field, rule).Inc()
}

// RecordValidationError counts one record rejected by boundary validation.
func RecordValidationError() {
	mediaValidationErrors.Inc()
}
