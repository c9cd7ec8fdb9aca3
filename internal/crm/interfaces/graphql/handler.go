package graphql

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"
	"github.com/wyfcoding/crm/pkg/metrics"
)

// Handler GraphQL HTTP 入口。业务校验失败与执行期错误均返回 200，
// 仅请求体不合法时返回 400。
type Handler struct {
	schema  gql.Schema
	metrics *metrics.Metrics
}

// NewHandler 创建 Handler 实例，metrics 可为 nil
func NewHandler(schema gql.Schema, m *metrics.Metrics) *Handler {
	return &Handler{schema: schema, metrics: m}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/graphql", h.Serve)
	r.GET("/healthz", h.Health)
}

type graphqlRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve 执行一次 GraphQL 请求
func (h *Handler) Serve(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result := gql.Do(gql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})

	if h.metrics != nil {
		h.metrics.GraphQLRequestsTotal.WithLabelValues(operationLabel(req.Query)).Inc()
		h.metrics.GraphQLRequestDuration.Observe(time.Since(start).Seconds())
		if len(result.Errors) > 0 {
			h.metrics.GraphQLErrorsTotal.Inc()
		}
	}

	c.JSON(http.StatusOK, result)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func operationLabel(query string) string {
	if strings.HasPrefix(strings.TrimSpace(query), "mutation") {
		return "mutation"
	}
	return "query"
}
