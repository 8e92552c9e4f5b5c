package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Simulation outcomes.
const (
	OutcomeComputed = "computed"
	OutcomeFallback = "period_fallback"
	OutcomeNoData   = "no_data"
)

// Substituted inputs.
const (
	InputCapital = "capital"
	InputPeriod  = "period"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	simulationsTotal   *prometheus.CounterVec
	substitutionsTotal *prometheus.CounterVec
	profileLookups     *prometheus.CounterVec
	profilesLoaded     prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowintel_simulations_total",
			Help: "Total number of return-gap simulations by period and outcome",
		},
		[]string{"period", "outcome"},
	)
	r.substitutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowintel_simulation_substitutions_total",
			Help: "Simulation inputs replaced by a fallback value",
		},
		[]string{"input"},
	)
	r.profileLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowintel_profile_lookups_total",
			Help: "Total number of profile lookups by result",
		},
		[]string{"result"},
	)
	r.profilesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flowintel_profiles_loaded",
			Help: "Number of profiles currently served",
		},
	)

	reg.MustRegister(r.simulationsTotal)
	reg.MustRegister(r.substitutionsTotal)
	reg.MustRegister(r.profileLookups)
	reg.MustRegister(r.profilesLoaded)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordSimulation records a simulation for period with the given outcome.
func (r *Registry) RecordSimulation(period, outcome string) {
	r.simulationsTotal.WithLabelValues(period, outcome).Inc()
}

// RecordSubstitution records an input replaced by its fallback.
func (r *Registry) RecordSubstitution(input string) {
	r.substitutionsTotal.WithLabelValues(input).Inc()
}

// RecordProfileLookup records a profile lookup result ("hit" or "miss").
func (r *Registry) RecordProfileLookup(result string) {
	r.profileLookups.WithLabelValues(result).Inc()
}

// SetProfilesLoaded sets the catalogue size.
func (r *Registry) SetProfilesLoaded(n int) {
	r.profilesLoaded.Set(float64(n))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
