// Package metrics 提供 Prometheus 指标模板与暴露端点
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// GraphQL 操作计数（按操作类型区分 query/mutation）
	GraphQLRequestsTotal *prometheus.CounterVec
	// GraphQL 操作耗时
	GraphQLRequestDuration prometheus.Histogram
	// GraphQL 顶层错误计数（意外错误，不含业务校验失败）
	GraphQLErrorsTotal prometheus.Counter

	// 业务指标
	CustomersCreated prometheus.Counter
	ProductsCreated  prometheus.Counter
	OrdersCreated    prometheus.Counter
}

// New 创建并注册指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphQLRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "graphql_requests_total",
			Help:      "Total GraphQL operations",
		}, []string{"operation"}),
		GraphQLRequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "graphql_request_duration_seconds",
			Help:      "GraphQL operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		GraphQLErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "graphql_errors_total",
			Help:      "Total GraphQL operations that returned top-level errors",
		}),
		CustomersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "customers_created_total",
			Help:      "Total customers created",
		}),
		ProductsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "products_created_total",
			Help:      "Total products created",
		}),
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "crm",
			Subsystem: serviceName,
			Name:      "orders_created_total",
			Help:      "Total orders created",
		}),
	}
}

// Handler 返回 Prometheus 暴露端点的 HTTP Handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve 在独立端口暴露指标端点
func Serve(port int, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	return &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
}
