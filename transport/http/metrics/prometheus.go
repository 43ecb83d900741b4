package metrics

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "eccd"

var (
	Prom = New()
)

// Prometheus 持有独立的 registry 以及 HTTP 与 ECC 运算指标
type Prometheus struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	operations      *prometheus.CounterVec
	opDuration      *prometheus.HistogramVec
}

func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ecc",
			Name:      "operations_total",
			Help:      "ECC operations by kind, curve and result.",
		}, []string{"op", "curve", "result"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ecc",
			Name:      "operation_duration_seconds",
			Help:      "ECC operation latency by kind and curve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"op", "curve"}),
	}

	p.registry.MustRegister(p.requests, p.requestDuration, p.operations, p.opDuration)
	return p
}

func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	p.register(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
	))
}

func (p *Prometheus) WithBuildInfoCollector() {
	p.register(collectors.NewBuildInfoCollector())
}

// register 忽略重复注册, 服务器可能被多次创建
func (p *Prometheus) register(c prometheus.Collector) {
	if err := p.registry.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
	}
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveOperation 记录一次 ECC 运算, err 非空时 result 为 error
func (p *Prometheus) ObserveOperation(op, curve string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.operations.WithLabelValues(op, curve, result).Inc()
	p.opDuration.WithLabelValues(op, curve).Observe(time.Since(start).Seconds())
}

// CountOperation 记录一次带自定义结果的 ECC 运算, 例如验签的 valid/invalid
func (p *Prometheus) CountOperation(op, curve, result string) {
	p.operations.WithLabelValues(op, curve, result).Inc()
}

// GinMiddleware 采集请求数与耗时, 路由取注册时的模板避免标签爆炸
func (p *Prometheus) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		p.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		p.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
