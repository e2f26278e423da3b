package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 录入流水线指标
	ScansTotal         prometheus.Counter   // 扫描请求总数
	ExtractionFailures prometheus.Counter   // 提取失败（走回退路径）总数
	ScanDuration       prometheus.Histogram // 单次扫描耗时

	// 登记册指标
	CommitsTotal      prometheus.Counter // 成功提交的信件总数
	CommitsRejected   prometheus.Counter // 校验失败被拒的提交总数
	RegistrySize      prometheus.Gauge   // 登记册当前记录数
	ArchivedCommitted prometheus.Counter // 提交即归档（PDF）的信件总数

	// 错误指标
	PanicsTotal prometheus.Counter
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courrier_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courrier_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ScansTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_scans_total",
				Help: "Total number of document scan requests",
			},
		),

		ExtractionFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_extraction_failures_total",
				Help: "Total number of extractions absorbed by the fallback path",
			},
		),

		ScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "courrier_scan_duration_seconds",
				Help:    "Document scan pipeline duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		CommitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_commits_total",
				Help: "Total number of mail records committed",
			},
		),

		CommitsRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_commits_rejected_total",
				Help: "Total number of commits rejected by validation",
			},
		),

		RegistrySize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "courrier_registry_size",
				Help: "Current number of mail records in the registry",
			},
		),

		ArchivedCommitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_archived_commits_total",
				Help: "Total number of commits forced to ARCHIVED by a PDF payload",
			},
		),

		PanicsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "courrier_panics_total",
				Help: "Total number of recovered panics",
			},
		),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordScan 记录一次扫描及其耗时
func (m *Metrics) RecordScan(duration time.Duration) {
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(duration.Seconds())
}

// RecordExtractionFailure 记录一次提取失败
func (m *Metrics) RecordExtractionFailure() {
	m.ExtractionFailures.Inc()
}

// RecordCommit 记录一次成功提交
func (m *Metrics) RecordCommit(archived bool, registrySize int) {
	m.CommitsTotal.Inc()
	if archived {
		m.ArchivedCommitted.Inc()
	}
	m.RegistrySize.Set(float64(registrySize))
}

// RecordCommitRejected 记录一次被校验拒绝的提交
func (m *Metrics) RecordCommitRejected() {
	m.CommitsRejected.Inc()
}

// RecordPanic 记录一次 panic 恢复
func (m *Metrics) RecordPanic() {
	m.PanicsTotal.Inc()
}

// HTTPHandler 返回 Prometheus 指标端点处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
