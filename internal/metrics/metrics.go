// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はメトリクス収集のインターフェース。
// ミドルウェアとサービス層から利用する。
type Collector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordAuthRejection(reason string)
	RecordDuplicateWishlist()
	RecordCascadePurge(deleted int64)
	RecordCascadePurgeFailure()
}

// PrometheusCollector はPrometheusメトリクスを収集する実装。
type PrometheusCollector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	authRejections  *prometheus.CounterVec
	duplicateEntry  prometheus.Counter
	cascadePurged   prometheus.Counter
	cascadeFailures prometheus.Counter
}

// NewCollector は新しいPrometheusCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogsphere_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogsphere_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogsphere_auth_rejections_total",
			Help: "認可ガードによる拒否数（理由別）",
		}, []string{"reason"}),
		duplicateEntry: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogsphere_wishlist_duplicates_total",
			Help: "重複ガードが拒否したウィッシュリスト挿入の合計数",
		}),
		cascadePurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogsphere_wishlist_cascade_purged_total",
			Help: "ブログ削除時にカスケード削除されたウィッシュリストエントリ数",
		}),
		cascadeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogsphere_wishlist_cascade_failures_total",
			Help: "カスケード削除の失敗数（孤児エントリが残る可能性がある）",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.authRejections,
		c.duplicateEntry,
		c.cascadePurged,
		c.cascadeFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *PrometheusCollector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *PrometheusCollector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordAuthRejection は認可拒否を理由別に記録する。
// reason: "missing_credential" | "invalid_credential" | "ownership_mismatch"
func (c *PrometheusCollector) RecordAuthRejection(reason string) {
	c.authRejections.WithLabelValues(reason).Inc()
}

// RecordDuplicateWishlist は重複ガードの発動を記録する。
func (c *PrometheusCollector) RecordDuplicateWishlist() {
	c.duplicateEntry.Inc()
}

// RecordCascadePurge はカスケード削除されたエントリ数を記録する。
func (c *PrometheusCollector) RecordCascadePurge(deleted int64) {
	c.cascadePurged.Add(float64(deleted))
}

// RecordCascadePurgeFailure はカスケード削除の失敗を記録する。
func (c *PrometheusCollector) RecordCascadePurgeFailure() {
	c.cascadeFailures.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
