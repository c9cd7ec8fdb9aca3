package graphql

import (
	gql "github.com/graphql-go/graphql"
	"github.com/wyfcoding/crm/internal/crm/application"
	"github.com/wyfcoding/crm/internal/crm/domain"
	"github.com/wyfcoding/crm/pkg/metrics"
)

// Resolver 将 GraphQL 字段绑定到应用服务
type Resolver struct {
	customerCmd *application.CustomerCommandService
	productCmd  *application.ProductCommandService
	orderCmd    *application.OrderCommandService
	queries     *application.QueryService
	metrics     *metrics.Metrics
}

// NewResolver 创建 Resolver 实例，metrics 可为 nil
func NewResolver(
	customerCmd *application.CustomerCommandService,
	productCmd *application.ProductCommandService,
	orderCmd *application.OrderCommandService,
	queries *application.QueryService,
	m *metrics.Metrics,
) *Resolver {
	return &Resolver{
		customerCmd: customerCmd,
		productCmd:  productCmd,
		orderCmd:    orderCmd,
		queries:     queries,
		metrics:     m,
	}
}

// NewSchema 组装查询与变更根类型
func NewSchema(r *Resolver) (gql.Schema, error) {
	pagingArgs := gql.FieldConfigArgument{
		"orderBy":  &gql.ArgumentConfig{Type: gql.String},
		"page":     &gql.ArgumentConfig{Type: gql.Int},
		"pageSize": &gql.ArgumentConfig{Type: gql.Int},
	}

	allCustomersArgs := gql.FieldConfigArgument{"filter": &gql.ArgumentConfig{Type: customerFilterInput}}
	allProductsArgs := gql.FieldConfigArgument{"filter": &gql.ArgumentConfig{Type: productFilterInput}}
	allOrdersArgs := gql.FieldConfigArgument{"filter": &gql.ArgumentConfig{Type: orderFilterInput}}
	for k, v := range pagingArgs {
		allCustomersArgs[k] = v
		allProductsArgs[k] = v
		allOrdersArgs[k] = v
	}

	queryType := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"allCustomers": &gql.Field{
				Type:    gql.NewNonNull(customerConnectionType),
				Args:    allCustomersArgs,
				Resolve: r.resolveAllCustomers,
			},
			"allProducts": &gql.Field{
				Type:    gql.NewNonNull(productConnectionType),
				Args:    allProductsArgs,
				Resolve: r.resolveAllProducts,
			},
			"allOrders": &gql.Field{
				Type:    gql.NewNonNull(orderConnectionType),
				Args:    allOrdersArgs,
				Resolve: r.resolveAllOrders,
			},
			"customerById": &gql.Field{
				Type:    customerType,
				Args:    gql.FieldConfigArgument{"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)}},
				Resolve: r.resolveCustomerByID,
			},
			"productById": &gql.Field{
				Type:    productType,
				Args:    gql.FieldConfigArgument{"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)}},
				Resolve: r.resolveProductByID,
			},
			"orderById": &gql.Field{
				Type:    orderType,
				Args:    gql.FieldConfigArgument{"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)}},
				Resolve: r.resolveOrderByID,
			},
		},
	})

	mutationType := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"createCustomer": &gql.Field{
				Type: gql.NewNonNull(createCustomerPayload),
				Args: gql.FieldConfigArgument{
					"name":  &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"email": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: r.resolveCreateCustomer,
			},
			"updateCustomer": &gql.Field{
				Type: gql.NewNonNull(updateCustomerPayload),
				Args: gql.FieldConfigArgument{
					"id":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"name":  &gql.ArgumentConfig{Type: gql.String},
					"email": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: r.resolveUpdateCustomer,
			},
			"deleteCustomer": &gql.Field{
				Type: gql.NewNonNull(deleteCustomerPayload),
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: r.resolveDeleteCustomer,
			},
			"bulkCreateCustomers": &gql.Field{
				Type: gql.NewNonNull(bulkCreateCustomersPayload),
				Args: gql.FieldConfigArgument{
					"customers": &gql.ArgumentConfig{
						Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(customerInputType))),
					},
				},
				Resolve: r.resolveBulkCreateCustomers,
			},
			"createProduct": &gql.Field{
				Type: gql.NewNonNull(createProductPayload),
				Args: gql.FieldConfigArgument{
					"name":        &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"description": &gql.ArgumentConfig{Type: gql.String},
					"price":       &gql.ArgumentConfig{Type: gql.NewNonNull(decimalType)},
					"stock":       &gql.ArgumentConfig{Type: gql.Int, DefaultValue: 0},
				},
				Resolve: r.resolveCreateProduct,
			},
			"createOrder": &gql.Field{
				Type: gql.NewNonNull(createOrderPayload),
				Args: gql.FieldConfigArgument{
					"customerId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
					"productIds": &gql.ArgumentConfig{
						Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(gql.ID))),
					},
					"orderDate": &gql.ArgumentConfig{Type: gql.DateTime},
				},
				Resolve: r.resolveCreateOrder,
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{Query: queryType, Mutation: mutationType})
}

func (r *Resolver) resolveCustomerByID(p gql.ResolveParams) (interface{}, error) {
	customer, err := r.queries.CustomerByID(p.Context, parseID(p.Args["id"]))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return customer, nil
}

func (r *Resolver) resolveProductByID(p gql.ResolveParams) (interface{}, error) {
	product, err := r.queries.ProductByID(p.Context, parseID(p.Args["id"]))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return product, nil
}

func (r *Resolver) resolveOrderByID(p gql.ResolveParams) (interface{}, error) {
	order, err := r.queries.OrderByID(p.Context, parseID(p.Args["id"]))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return order, nil
}

func (r *Resolver) resolveAllCustomers(p gql.ResolveParams) (interface{}, error) {
	filter := domain.CustomerFilter{}
	if ob := stringArg(p.Args, "orderBy"); ob != nil {
		filter.OrderBy = *ob
	}
	if m, ok := p.Args["filter"].(map[string]interface{}); ok {
		if v := stringArg(m, "nameContains"); v != nil {
			filter.NameContains = *v
		}
		if v := stringArg(m, "emailContains"); v != nil {
			filter.EmailContains = *v
		}
		if v := stringArg(m, "phonePrefix"); v != nil {
			filter.PhonePrefix = *v
		}
		filter.CreatedAt = domain.TimeRange{From: timeArg(m, "createdAtGte"), To: timeArg(m, "createdAtLte")}
		filter.HasOrders = boolArg(m, "hasOrders")
	}

	customers, total, err := r.queries.ListCustomers(p.Context, filter, pageFromArgs(p.Args))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"items": customers, "totalCount": int(total)}, nil
}

func (r *Resolver) resolveAllProducts(p gql.ResolveParams) (interface{}, error) {
	filter := domain.ProductFilter{}
	if ob := stringArg(p.Args, "orderBy"); ob != nil {
		filter.OrderBy = *ob
	}
	if m, ok := p.Args["filter"].(map[string]interface{}); ok {
		if v := stringArg(m, "nameContains"); v != nil {
			filter.NameContains = *v
		}
		filter.Price = domain.DecimalRange{Min: decimalArg(m, "priceGte"), Max: decimalArg(m, "priceLte")}
		filter.Stock = domain.IntRange{Min: intArg(m, "stockGte"), Max: intArg(m, "stockLte")}
		filter.LowStock = boolArg(m, "lowStock")
	}

	products, total, err := r.queries.ListProducts(p.Context, filter, pageFromArgs(p.Args))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"items": products, "totalCount": int(total)}, nil
}

func (r *Resolver) resolveAllOrders(p gql.ResolveParams) (interface{}, error) {
	filter := domain.OrderFilter{}
	if ob := stringArg(p.Args, "orderBy"); ob != nil {
		filter.OrderBy = *ob
	}
	if m, ok := p.Args["filter"].(map[string]interface{}); ok {
		filter.TotalAmount = domain.DecimalRange{Min: decimalArg(m, "totalAmountGte"), Max: decimalArg(m, "totalAmountLte")}
		filter.OrderDate = domain.TimeRange{From: timeArg(m, "orderDateGte"), To: timeArg(m, "orderDateLte")}
		if v, ok := m["customerId"]; ok {
			id := parseID(v)
			filter.CustomerID = &id
		}
		if v, ok := m["productId"]; ok {
			id := parseID(v)
			filter.ProductID = &id
		}
		if v := stringArg(m, "productNameContains"); v != nil {
			filter.ProductNameContains = *v
		}
	}

	orders, total, err := r.queries.ListOrders(p.Context, filter, pageFromArgs(p.Args))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"items": orders, "totalCount": int(total)}, nil
}

func pageFromArgs(args map[string]interface{}) domain.Page {
	page := domain.Page{}
	if v := intArg(args, "page"); v != nil {
		page.Page = *v
	}
	if v := intArg(args, "pageSize"); v != nil {
		page.PageSize = *v
	}
	return page
}
