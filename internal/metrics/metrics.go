// Package metrics 提供 Prometheus 指标，通过 GET /metrics 暴露
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests 按方法、路由、状态码统计请求数
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "topmovies_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

// HTTPDuration 请求耗时
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "topmovies_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

// ProviderRequests TMDB 调用次数，result 为 ok / error
var ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "topmovies_provider_requests_total",
	Help: "Outbound metadata provider calls by operation and result.",
}, []string{"op", "result"})

// MovieImports 导入结果，outcome 为 created / existing / error
var MovieImports = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "topmovies_movie_imports_total",
	Help: "Movie import attempts by outcome.",
}, []string{"outcome"})

// Handler 返回 Prometheus 抓取端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// Result 把 error 转换为 result 标签
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
