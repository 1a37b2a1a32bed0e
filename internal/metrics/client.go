package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Client-side Prometheus metrics for the marketplace API transport. Defined in a
// standalone package to avoid import cycles between api and feature packages.

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "patitas_client_requests_total",
		Help: "Requests HTTP emitidos por el SDK, por método y resultado",
	}, []string{"method", "outcome"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "patitas_client_request_duration_ms",
		Help:    "Latencia de los requests del SDK en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method"})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "patitas_client_cache_hits_total",
		Help: "Hits del cache de respuestas GET",
	})
)

// RegisterClient registers the client metrics on the given registry (or default if nil).
func RegisterClient(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{RequestsTotal, RequestDuration, CacheHits} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
