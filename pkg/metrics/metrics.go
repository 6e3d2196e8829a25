// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型：
//   - Counter：只增不减的累计值（请求数、写操作数、跳过的记录数）
//   - Gauge：可增可减的瞬时值（处理中的请求数、熔断器状态）
//   - Histogram：观测值分布（请求耗时、候选集大小）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.CatalogWritesTotal, map[string]string{
//	    "resource": "product",
//	    "action":   "create",
//	})
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值（method、resource、result），不要用slug、ID做标签。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/rods/:slug）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 目录业务指标

	// CatalogWritesTotal 目录写操作总数（Counter）
	// 标签：resource（category/brand/product/reel/rod/lure）、action（create/update/delete）
	CatalogWritesTotal *prometheus.CounterVec

	// RangeFilterCandidates 进入区间过滤的候选集大小（Histogram）
	// 标签：attribute（casting_weight/working_depth）
	RangeFilterCandidates *prometheus.HistogramVec

	// RangeFilterSkippedTotal 区间文本无法解析而被排除的记录数（Counter）
	RangeFilterSkippedTotal *prometheus.CounterVec

	// 缓存指标

	// CacheRequestsTotal 缓存访问总数（Counter）
	// 标签：cache（product/stats）、result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标，注册到默认Registry
// 可重复调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_writes_total",
			Help: "目录写操作总数",
		},
		[]string{"resource", "action"},
	)

	RangeFilterCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "catalog_range_filter_candidates",
			Help: "区间过滤的候选集大小",
			// 候选集是结构化条件过滤后的结果，通常在几十到几千之间
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"attribute"},
	)

	RangeFilterSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_range_filter_skipped_total",
			Help: "区间文本缺失或无法解析而被排除的记录数",
		},
		[]string{"attribute"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "缓存访问总数",
		},
		[]string{"cache", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
// 指标未初始化时忽略，便于在单元测试中直接调用业务代码
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// AddCounterVec 给CounterVec加上n
func AddCounterVec(counter *prometheus.CounterVec, labels map[string]string, n float64) {
	if counter == nil {
		return
	}
	counter.With(labels).Add(n)
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
