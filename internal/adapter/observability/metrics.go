package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15, 30, 60},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)
	AIFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_failures_total",
			Help: "Total number of failed AI requests by provider and reason",
		},
		[]string{"provider", "reason"},
	)
	AITokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_total",
			Help: "Approximate tokens sent to and received from the AI provider",
		},
		[]string{"provider", "direction"},
	)

	AssessmentTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_turns_total",
			Help: "Conversational turns by incoming phase and outcome",
		},
		[]string{"phase", "outcome"},
	)
	ReportsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_reports_total",
			Help: "Reports produced by the pipeline, by assessment type",
		},
		[]string{"assessment_type"},
	)
	ReportLayerFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_report_layer_failures_total",
			Help: "Report pipeline layer failures that fell through to the next layer",
		},
		[]string{"layer"},
	)
	EmployabilityScoreHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_employability_score",
			Help:    "Distribution of employability scores ([0,100])",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"assessment_type"},
	)

	QuestionSetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "static_question_sets_total",
			Help: "Static question sets served, by source",
		},
		[]string{"source"},
	)
	QuestionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "static_question_cache_total",
			Help: "Question cache lookups by result",
		},
		[]string{"result"},
	)
	GatewayBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ai_circuit_breaker_state",
			Help: "LLM gateway circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"gateway"},
	)
	StaticScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "static_assessment_score",
			Help:    "Distribution of static assessment scores ([0,100])",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

var initOnce sync.Once

// InitMetrics registers every collector with the default registry. It is safe
// to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AIRequestsTotal)
		prometheus.MustRegister(AIRequestDuration)
		prometheus.MustRegister(AIFailuresTotal)
		prometheus.MustRegister(AITokensTotal)
		prometheus.MustRegister(AssessmentTurnsTotal)
		prometheus.MustRegister(ReportsGeneratedTotal)
		prometheus.MustRegister(ReportLayerFailuresTotal)
		prometheus.MustRegister(EmployabilityScoreHistogram)
		prometheus.MustRegister(QuestionSetsTotal)
		prometheus.MustRegister(QuestionCacheTotal)
		prometheus.MustRegister(StaticScoreHistogram)
		prometheus.MustRegister(GatewayBreakerState)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one gateway call. reason is empty on success.
func ObserveAIRequest(provider, operation string, dur time.Duration, reason string) {
	AIRequestsTotal.WithLabelValues(provider, operation).Inc()
	AIRequestDuration.WithLabelValues(provider, operation).Observe(dur.Seconds())
	if reason != "" {
		AIFailuresTotal.WithLabelValues(provider, reason).Inc()
	}
}

// ObserveAITokens adds prompt and completion token counts for provider.
func ObserveAITokens(provider string, prompt, completion int) {
	if prompt > 0 {
		AITokensTotal.WithLabelValues(provider, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		AITokensTotal.WithLabelValues(provider, "completion").Add(float64(completion))
	}
}

// ObserveTurn counts a conversational turn.
func ObserveTurn(phase, outcome string) {
	AssessmentTurnsTotal.WithLabelValues(phase, outcome).Inc()
}

// ObserveReport records a finished report and its score.
func ObserveReport(assessmentType string, score int) {
	ReportsGeneratedTotal.WithLabelValues(assessmentType).Inc()
	if score >= 0 && score <= 100 {
		EmployabilityScoreHistogram.WithLabelValues(assessmentType).Observe(float64(score))
	}
}

// ObserveReportLayerFailure counts a pipeline layer that did not produce a report.
func ObserveReportLayerFailure(layer string) {
	ReportLayerFailuresTotal.WithLabelValues(layer).Inc()
}

// ObserveQuestionSet counts a served question set by source.
func ObserveQuestionSet(source string) {
	QuestionSetsTotal.WithLabelValues(source).Inc()
}

// ObserveQuestionCache counts a cache lookup: hit, miss or error.
func ObserveQuestionCache(result string) {
	QuestionCacheTotal.WithLabelValues(result).Inc()
}

// ObserveStaticScore records a static assessment score.
func ObserveStaticScore(score int) {
	if score >= 0 && score <= 100 {
		StaticScoreHistogram.Observe(float64(score))
	}
}

// ObserveBreakerState records the circuit breaker state of a gateway.
func ObserveBreakerState(gateway string, state int) {
	GatewayBreakerState.WithLabelValues(gateway).Set(float64(state))
}
