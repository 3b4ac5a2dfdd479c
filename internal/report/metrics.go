// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package report

import (
	"errors"

	"github.com/creachadair/jvalue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records counts and timings of the inputs checked by a Reporter.
type Metrics struct {
	inputsTotal   *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	bytesTotal    prometheus.Counter
	parseDuration prometheus.Histogram
}

// Values of the "result" label of the inputs counter.
const (
	resultOK   = "ok"
	resultFail = "fail"
)

// NewMetrics constructs a Metrics whose collectors are registered with r.
func NewMetrics(r prometheus.Registerer) *Metrics {
	return &Metrics{
		inputsTotal: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "jcheck_inputs_total",
			Help: "Total number of inputs checked, by result.",
		}, []string{"result"}),
		failuresTotal: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "jcheck_parse_failures_total",
			Help: "Total number of parse failures, by error kind.",
		}, []string{"kind"}),
		bytesTotal: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "jcheck_input_bytes_total",
			Help: "Total number of bytes of input checked.",
		}),
		parseDuration: promauto.With(r).NewHistogram(prometheus.HistogramOpts{
			Name:    "jcheck_parse_duration_seconds",
			Help:    "Time taken to parse each input.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}
}

// observe records the outcome of res. It is a no-op if m == nil.
func (m *Metrics) observe(res Result) {
	if m == nil {
		return
	}
	m.bytesTotal.Add(float64(res.Size))
	m.parseDuration.Observe(res.Elapsed.Seconds())
	if res.OK() {
		m.inputsTotal.WithLabelValues(resultOK).Inc()
		return
	}
	m.inputsTotal.WithLabelValues(resultFail).Inc()
	var pe *jvalue.ParseError
	if errors.As(res.Err, &pe) {
		m.failuresTotal.WithLabelValues(pe.Kind.String()).Inc()
	}
}
