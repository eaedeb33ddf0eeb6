package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "board",
			Name:      "mutations_total",
			Help:      "Board mutations applied (add, delete, move).",
		},
		[]string{"op"},
	)
	noops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "board",
			Name:      "noops_total",
			Help:      "Board operations ignored as logical no-ops.",
		},
		[]string{"op"},
	)
	persistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "store",
			Name:      "failures_total",
			Help:      "Persistence failures recovered locally.",
		},
		[]string{"stage"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kanban",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kanban",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(mutations, noops, persistFailures, httpRequests, httpDuration)
	})
}

func Mutation(op string) {
	Register()
	mutations.WithLabelValues(op).Inc()
}

func Noop(op string) {
	Register()
	noops.WithLabelValues(op).Inc()
}

func PersistFailure(stage string) {
	Register()
	persistFailures.WithLabelValues(stage).Inc()
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
