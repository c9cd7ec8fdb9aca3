package graphql

import (
	gql "github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// decimalType 精确金额标量，序列化为十进制字符串，避免浮点误差
var decimalType = gql.NewScalar(gql.ScalarConfig{
	Name:        "Decimal",
	Description: "Arbitrary-precision decimal amount serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.String()
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.String()
		default:
			return nil
		}
	},
	ParseValue: parseDecimalValue,
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			return parseDecimalValue(v.Value)
		case *ast.IntValue:
			return parseDecimalValue(v.Value)
		case *ast.FloatValue:
			return parseDecimalValue(v.Value)
		}
		return nil
	},
})

func parseDecimalValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	return nil
}
