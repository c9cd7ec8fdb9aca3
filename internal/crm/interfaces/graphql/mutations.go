package graphql

import (
	"fmt"

	gql "github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/crm/internal/crm/application"
	"github.com/wyfcoding/crm/internal/crm/domain"
)

// mutationError 将业务校验错误转换为 ok=false 结果；
// 其余错误原样上抛，由 GraphQL 顶层 errors 承载。
func mutationError(err error) (interface{}, error) {
	if domain.IsValidation(err) {
		return map[string]interface{}{"ok": false, "error": err.Error()}, nil
	}
	return nil, err
}

func (r *Resolver) resolveCreateCustomer(p gql.ResolveParams) (interface{}, error) {
	cmd := application.CreateCustomerCommand{
		Name:  p.Args["name"].(string),
		Email: p.Args["email"].(string),
	}

	customer, err := r.customerCmd.CreateCustomer(p.Context, cmd)
	if err != nil {
		return mutationError(err)
	}

	if r.metrics != nil {
		r.metrics.CustomersCreated.Inc()
	}
	return map[string]interface{}{"ok": true, "customer": customer}, nil
}

func (r *Resolver) resolveUpdateCustomer(p gql.ResolveParams) (interface{}, error) {
	cmd := application.UpdateCustomerCommand{
		ID:    parseID(p.Args["id"]),
		Name:  stringArg(p.Args, "name"),
		Email: stringArg(p.Args, "email"),
	}

	customer, err := r.customerCmd.UpdateCustomer(p.Context, cmd)
	if err != nil {
		return mutationError(err)
	}
	return map[string]interface{}{"ok": true, "customer": customer}, nil
}

func (r *Resolver) resolveDeleteCustomer(p gql.ResolveParams) (interface{}, error) {
	if err := r.customerCmd.DeleteCustomer(p.Context, parseID(p.Args["id"])); err != nil {
		return mutationError(err)
	}
	return map[string]interface{}{"ok": true}, nil
}

func (r *Resolver) resolveBulkCreateCustomers(p gql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["customers"].([]interface{})
	inputs := make([]application.CustomerInput, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		in := application.CustomerInput{}
		if v, ok := m["name"].(string); ok {
			in.Name = v
		}
		if v, ok := m["email"].(string); ok {
			in.Email = v
		}
		inputs = append(inputs, in)
	}

	created, errs := r.customerCmd.BulkCreateCustomers(p.Context, inputs)
	if r.metrics != nil {
		r.metrics.CustomersCreated.Add(float64(len(created)))
	}
	return map[string]interface{}{"createdCustomers": created, "errors": errs}, nil
}

func (r *Resolver) resolveCreateProduct(p gql.ResolveParams) (interface{}, error) {
	price, ok := p.Args["price"].(decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("invalid price value: %v", p.Args["price"])
	}

	cmd := application.CreateProductCommand{
		Name:  p.Args["name"].(string),
		Price: price,
	}
	if v := stringArg(p.Args, "description"); v != nil {
		cmd.Description = *v
	}
	if v := intArg(p.Args, "stock"); v != nil {
		cmd.Stock = *v
	}

	product, err := r.productCmd.CreateProduct(p.Context, cmd)
	if err != nil {
		return mutationError(err)
	}

	if r.metrics != nil {
		r.metrics.ProductsCreated.Inc()
	}
	return map[string]interface{}{"ok": true, "product": product}, nil
}

func (r *Resolver) resolveCreateOrder(p gql.ResolveParams) (interface{}, error) {
	cmd := application.CreateOrderCommand{
		CustomerID: parseID(p.Args["customerId"]),
		OrderDate:  timeArg(p.Args, "orderDate"),
	}

	// 无法解析的商品 ID 解析为 0，由存在性数量比对统一拦截
	raw, _ := p.Args["productIds"].([]interface{})
	cmd.ProductIDs = make([]uint, 0, len(raw))
	for _, v := range raw {
		cmd.ProductIDs = append(cmd.ProductIDs, parseID(v))
	}

	order, err := r.orderCmd.CreateOrder(p.Context, cmd)
	if err != nil {
		return mutationError(err)
	}

	if r.metrics != nil {
		r.metrics.OrdersCreated.Inc()
	}
	return map[string]interface{}{"ok": true, "order": order}, nil
}
