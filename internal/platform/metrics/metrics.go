// Package metrics は外部 API 呼び出しの Prometheus メトリクスを提供します。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UpstreamRequests は外部 API 呼び出しの件数です。
var UpstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "coin",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Total number of upstream API requests",
	},
	[]string{"service", "endpoint", "status"},
)

// UpstreamLatency は外部 API 呼び出しの所要時間（秒）です。
var UpstreamLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "coin",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream API request latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
	[]string{"service", "endpoint"},
)

// ObserveUpstream は 1 回の呼び出し結果を記録します。err が nil でなく status が 0 の場合は "error" とします。
func ObserveUpstream(service, endpoint string, start time.Time, status int, err error) {
	label := strconv.Itoa(status)
	if err != nil && status == 0 {
		label = "error"
	}
	UpstreamRequests.WithLabelValues(service, endpoint, label).Inc()
	UpstreamLatency.WithLabelValues(service, endpoint).Observe(time.Since(start).Seconds())
}

// Handler は /metrics 用の gin ハンドラーです。
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// InstrumentedTransport は RoundTrip ごとに ObserveUpstream を呼びます。
type InstrumentedTransport struct {
	Service string
	Base    http.RoundTripper
}

func (t *InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	start := time.Now()
	resp, err := base.RoundTrip(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	ObserveUpstream(t.Service, req.URL.Path, start, status, err)
	return resp, err
}
