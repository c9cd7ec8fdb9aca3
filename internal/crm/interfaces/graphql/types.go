// Package graphql 组装 CRM 的 GraphQL 模式：实体类型到 API 字段的映射
// 全部显式声明，不做运行时反射推导。
package graphql

import (
	gql "github.com/graphql-go/graphql"
	"github.com/wyfcoding/crm/internal/crm/domain"
)

var customerType = gql.NewObject(gql.ObjectConfig{
	Name: "Customer",
	Fields: gql.Fields{
		"id": &gql.Field{
			Type: gql.NewNonNull(gql.ID),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(*domain.Customer); ok {
					return c.ID, nil
				}
				return nil, nil
			},
		},
		"name": &gql.Field{
			Type: gql.NewNonNull(gql.String),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(*domain.Customer); ok {
					return c.Name, nil
				}
				return nil, nil
			},
		},
		"email": &gql.Field{
			Type: gql.NewNonNull(gql.String),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(*domain.Customer); ok {
					return c.Email, nil
				}
				return nil, nil
			},
		},
		"phone": &gql.Field{
			Type: gql.String,
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(*domain.Customer); ok && c.Phone != "" {
					return c.Phone, nil
				}
				return nil, nil
			},
		},
		"createdAt": &gql.Field{
			Type: gql.NewNonNull(gql.DateTime),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(*domain.Customer); ok {
					return c.CreatedAt, nil
				}
				return nil, nil
			},
		},
	},
})

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"id": &gql.Field{
			Type: gql.NewNonNull(gql.ID),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok {
					return pr.ID, nil
				}
				return nil, nil
			},
		},
		"name": &gql.Field{
			Type: gql.NewNonNull(gql.String),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok {
					return pr.Name, nil
				}
				return nil, nil
			},
		},
		"description": &gql.Field{
			Type: gql.String,
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok && pr.Description != "" {
					return pr.Description, nil
				}
				return nil, nil
			},
		},
		"price": &gql.Field{
			Type: gql.NewNonNull(decimalType),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok {
					return pr.Price, nil
				}
				return nil, nil
			},
		},
		"stock": &gql.Field{
			Type: gql.NewNonNull(gql.Int),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok {
					return pr.Stock, nil
				}
				return nil, nil
			},
		},
		"createdAt": &gql.Field{
			Type: gql.NewNonNull(gql.DateTime),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if pr, ok := p.Source.(*domain.Product); ok {
					return pr.CreatedAt, nil
				}
				return nil, nil
			},
		},
	},
})

var orderType = gql.NewObject(gql.ObjectConfig{
	Name: "Order",
	Fields: gql.Fields{
		"id": &gql.Field{
			Type: gql.NewNonNull(gql.ID),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(*domain.Order); ok {
					return o.ID, nil
				}
				return nil, nil
			},
		},
		"customer": &gql.Field{
			Type: gql.NewNonNull(customerType),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(*domain.Order); ok {
					return &o.Customer, nil
				}
				return nil, nil
			},
		},
		"products": &gql.Field{
			Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(productType))),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				o, ok := p.Source.(*domain.Order)
				if !ok {
					return nil, nil
				}
				products := make([]*domain.Product, 0, len(o.Products))
				for i := range o.Products {
					products = append(products, &o.Products[i])
				}
				return products, nil
			},
		},
		"orderDate": &gql.Field{
			Type: gql.NewNonNull(gql.DateTime),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(*domain.Order); ok {
					return o.OrderDate, nil
				}
				return nil, nil
			},
		},
		"totalAmount": &gql.Field{
			Type: gql.NewNonNull(decimalType),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(*domain.Order); ok {
					return o.TotalAmount, nil
				}
				return nil, nil
			},
		},
		"createdAt": &gql.Field{
			Type: gql.NewNonNull(gql.DateTime),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(*domain.Order); ok {
					return o.CreatedAt, nil
				}
				return nil, nil
			},
		},
	},
})

// 集合查询统一返回 items + totalCount
func connectionType(name string, itemType *gql.Object) *gql.Object {
	return gql.NewObject(gql.ObjectConfig{
		Name: name,
		Fields: gql.Fields{
			"items":      &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(itemType)))},
			"totalCount": &gql.Field{Type: gql.NewNonNull(gql.Int)},
		},
	})
}

var (
	customerConnectionType = connectionType("CustomerConnection", customerType)
	productConnectionType  = connectionType("ProductConnection", productType)
	orderConnectionType    = connectionType("OrderConnection", orderType)
)

var customerInputType = gql.NewInputObject(gql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: gql.InputObjectConfigFieldMap{
		"name":  &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
		"email": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
	},
})

var customerFilterInput = gql.NewInputObject(gql.InputObjectConfig{
	Name: "CustomerFilter",
	Fields: gql.InputObjectConfigFieldMap{
		"nameContains":  &gql.InputObjectFieldConfig{Type: gql.String},
		"emailContains": &gql.InputObjectFieldConfig{Type: gql.String},
		"phonePrefix":   &gql.InputObjectFieldConfig{Type: gql.String},
		"createdAtGte":  &gql.InputObjectFieldConfig{Type: gql.DateTime},
		"createdAtLte":  &gql.InputObjectFieldConfig{Type: gql.DateTime},
		"hasOrders":     &gql.InputObjectFieldConfig{Type: gql.Boolean},
	},
})

var productFilterInput = gql.NewInputObject(gql.InputObjectConfig{
	Name: "ProductFilter",
	Fields: gql.InputObjectConfigFieldMap{
		"nameContains": &gql.InputObjectFieldConfig{Type: gql.String},
		"priceGte":     &gql.InputObjectFieldConfig{Type: decimalType},
		"priceLte":     &gql.InputObjectFieldConfig{Type: decimalType},
		"stockGte":     &gql.InputObjectFieldConfig{Type: gql.Int},
		"stockLte":     &gql.InputObjectFieldConfig{Type: gql.Int},
		"lowStock":     &gql.InputObjectFieldConfig{Type: gql.Boolean},
	},
})

var orderFilterInput = gql.NewInputObject(gql.InputObjectConfig{
	Name: "OrderFilter",
	Fields: gql.InputObjectConfigFieldMap{
		"totalAmountGte":      &gql.InputObjectFieldConfig{Type: decimalType},
		"totalAmountLte":      &gql.InputObjectFieldConfig{Type: decimalType},
		"orderDateGte":        &gql.InputObjectFieldConfig{Type: gql.DateTime},
		"orderDateLte":        &gql.InputObjectFieldConfig{Type: gql.DateTime},
		"customerId":          &gql.InputObjectFieldConfig{Type: gql.ID},
		"productId":           &gql.InputObjectFieldConfig{Type: gql.ID},
		"productNameContains": &gql.InputObjectFieldConfig{Type: gql.String},
	},
})

// 变更结果统一携带 ok 与 error 字段，业务校验失败不触发传输层错误
var createCustomerPayload = gql.NewObject(gql.ObjectConfig{
	Name: "CreateCustomerPayload",
	Fields: gql.Fields{
		"ok":       &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"error":    &gql.Field{Type: gql.String},
		"customer": &gql.Field{Type: customerType},
	},
})

var updateCustomerPayload = gql.NewObject(gql.ObjectConfig{
	Name: "UpdateCustomerPayload",
	Fields: gql.Fields{
		"ok":       &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"error":    &gql.Field{Type: gql.String},
		"customer": &gql.Field{Type: customerType},
	},
})

var deleteCustomerPayload = gql.NewObject(gql.ObjectConfig{
	Name: "DeleteCustomerPayload",
	Fields: gql.Fields{
		"ok":    &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"error": &gql.Field{Type: gql.String},
	},
})

var bulkCreateCustomersPayload = gql.NewObject(gql.ObjectConfig{
	Name: "BulkCreateCustomersPayload",
	Fields: gql.Fields{
		"createdCustomers": &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(customerType)))},
		"errors":           &gql.Field{Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(gql.String)))},
	},
})

var createProductPayload = gql.NewObject(gql.ObjectConfig{
	Name: "CreateProductPayload",
	Fields: gql.Fields{
		"ok":      &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"error":   &gql.Field{Type: gql.String},
		"product": &gql.Field{Type: productType},
	},
})

var createOrderPayload = gql.NewObject(gql.ObjectConfig{
	Name: "CreateOrderPayload",
	Fields: gql.Fields{
		"ok":    &gql.Field{Type: gql.NewNonNull(gql.Boolean)},
		"error": &gql.Field{Type: gql.String},
		"order": &gql.Field{Type: orderType},
	},
})
