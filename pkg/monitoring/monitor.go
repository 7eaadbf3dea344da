package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// BackendRequests 对 BrainForge 后端的出站调用
	BackendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brainforge_backend_requests_total",
			Help: "Total number of outbound requests to the BrainForge backend",
		},
		[]string{"method", "endpoint", "outcome"},
	)

	BackendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brainforge_backend_request_duration_seconds",
			Help:    "Duration of outbound requests to the BrainForge backend",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 30},
		},
		[]string{"method", "endpoint"},
	)

	// FallbackServed 使用 mock 数据代替后端数据的次数
	FallbackServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brainforge_fallback_served_total",
			Help: "Number of times mock data was substituted for backend data",
		},
		[]string{"kind"},
	)

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(BackendRequests)
		prometheus.MustRegister(BackendDuration)
		prometheus.MustRegister(FallbackServed)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveBackendCall 记录一次出站调用，outcome: ok | http_error | network_error
func ObserveBackendCall(method, endpoint, outcome string, elapsed time.Duration) {
	BackendRequests.WithLabelValues(method, endpoint, outcome).Inc()
	BackendDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
