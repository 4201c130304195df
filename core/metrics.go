package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	annotations *prometheus.CounterVec
	watchEvents prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "svgurl_requests_total",
			Help: "SVG requests served, by HTTP status",
		}, []string{"status"}),
		annotations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "svgurl_annotations_total",
			Help: "Annotation attempts, by result",
		}, []string{"result"}),
		watchEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "svgurl_watch_events_total",
			Help: "SVG change events that launched an annotation",
		}),
	}
}

func (m *Metrics) ObserveRequest(status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveAnnotation(result string) {
	if m == nil {
		return
	}
	m.annotations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveWatchEvent() {
	if m == nil {
		return
	}
	m.watchEvents.Inc()
}
