package graphql

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// parseID 解析 GraphQL ID 参数。无法解析时返回 0——主键从 1 起，
// 0 必然解析不到记录，从而走常规的"不存在"分支而非额外的错误路径。
func parseID(v interface{}) uint {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0
		}
		return uint(n)
	case int:
		if t < 0 {
			return 0
		}
		return uint(t)
	case float64:
		if t < 0 {
			return 0
		}
		return uint(t)
	}
	return 0
}

// stringArg 取可选字符串参数，未提供时返回 nil（区别于空串）
func stringArg(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

// intArg 取可选整型参数
func intArg(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

// boolArg 取可选布尔参数
func boolArg(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

// timeArg 取可选时间参数
func timeArg(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

// decimalArg 取可选金额参数
func decimalArg(args map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := args[key].(decimal.Decimal); ok {
		return &v
	}
	return nil
}
