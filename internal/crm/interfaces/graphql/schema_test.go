package graphql_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/crm/internal/crm/application"
	"github.com/wyfcoding/crm/internal/crm/domain"
	"github.com/wyfcoding/crm/internal/crm/domain/domaintest"
	graphqlapi "github.com/wyfcoding/crm/internal/crm/interfaces/graphql"
)

type fixture struct {
	store       *domaintest.Store
	schema      gql.Schema
	customerCmd *application.CustomerCommandService
	productCmd  *application.ProductCommandService
	orderCmd    *application.OrderCommandService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := domaintest.NewStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	customerCmd := application.NewCustomerCommandService(store.Customers(), nil, log)
	productCmd := application.NewProductCommandService(store.Products(), nil, log)
	orderCmd := application.NewOrderCommandService(store.Orders(), store.Customers(), store.Products(), nil, log)
	queries := application.NewQueryService(store.Customers(), store.Products(), store.Orders())

	resolver := graphqlapi.NewResolver(customerCmd, productCmd, orderCmd, queries, nil)
	schema, err := graphqlapi.NewSchema(resolver)
	require.NoError(t, err)

	return &fixture{
		store:       store,
		schema:      schema,
		customerCmd: customerCmd,
		productCmd:  productCmd,
		orderCmd:    orderCmd,
	}
}

// exec 执行一次请求并断言无顶层错误
func (f *fixture) exec(t *testing.T, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	result := gql.Do(gql.Params{
		Schema:         f.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
	require.Empty(t, result.Errors, "unexpected graphql errors: %v", result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func (f *fixture) createCustomer(t *testing.T, name, email string) *domain.Customer {
	t.Helper()
	customer, err := f.customerCmd.CreateCustomer(context.Background(), application.CreateCustomerCommand{Name: name, Email: email})
	require.NoError(t, err)
	return customer
}

func (f *fixture) createProduct(t *testing.T, name, price string, stock int) *domain.Product {
	t.Helper()
	product, err := f.productCmd.CreateProduct(context.Background(), application.CreateProductCommand{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return product
}

func payload(t *testing.T, data map[string]interface{}, field string) map[string]interface{} {
	t.Helper()
	p, ok := data[field].(map[string]interface{})
	require.True(t, ok, "missing payload %q in %v", field, data)
	return p
}

func TestCreateCustomerMutation(t *testing.T) {
	f := newFixture(t)

	const mutation = `
		mutation ($name: String!, $email: String!) {
			createCustomer(name: $name, email: $email) {
				ok
				error
				customer { id name email phone }
			}
		}`

	data := f.exec(t, mutation, map[string]interface{}{"name": "Alice", "email": "alice@example.com"})
	p := payload(t, data, "createCustomer")

	assert.Equal(t, true, p["ok"])
	assert.Nil(t, p["error"])
	customer := p["customer"].(map[string]interface{})
	assert.Equal(t, "1", customer["id"])
	assert.Equal(t, "Alice", customer["name"])
	assert.Equal(t, "alice@example.com", customer["email"])
	assert.Nil(t, customer["phone"])

	// 重复邮箱返回 ok=false，不进入顶层 errors
	data = f.exec(t, mutation, map[string]interface{}{"name": "Clone", "email": "alice@example.com"})
	p = payload(t, data, "createCustomer")
	assert.Equal(t, false, p["ok"])
	assert.Equal(t, "Email already exists.", p["error"])
	assert.Nil(t, p["customer"])
	assert.Equal(t, 1, f.store.CustomerCount())
}

func TestCreateCustomerUnexpectedErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.store.FailEmail = "broken@example.com"

	result := gql.Do(gql.Params{
		Schema: f.schema,
		RequestString: `mutation {
			createCustomer(name: "Broken", email: "broken@example.com") { ok error }
		}`,
		Context: context.Background(),
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "storage unavailable")
}

func TestUpdateCustomerMutation(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, "Alice", "alice@example.com")

	// 只传 name，email 不受影响
	data := f.exec(t, fmt.Sprintf(`
		mutation {
			updateCustomer(id: "%d", name: "Alice Cooper") {
				ok
				customer { name email }
			}
		}`, customer.ID), nil)
	p := payload(t, data, "updateCustomer")

	assert.Equal(t, true, p["ok"])
	updated := p["customer"].(map[string]interface{})
	assert.Equal(t, "Alice Cooper", updated["name"])
	assert.Equal(t, "alice@example.com", updated["email"])
}

func TestUpdateCustomerNotFound(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `
		mutation {
			updateCustomer(id: "42", name: "Nobody") { ok error }
		}`, nil)
	p := payload(t, data, "updateCustomer")

	assert.Equal(t, false, p["ok"])
	assert.Equal(t, "Customer not found", p["error"])
}

func TestDeleteCustomerMutation(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, "Alice", "alice@example.com")
	product := f.createProduct(t, "Laptop", "10.00", 5)
	_, err := f.orderCmd.CreateOrder(context.Background(), application.CreateOrderCommand{
		CustomerID: customer.ID,
		ProductIDs: []uint{product.ID},
	})
	require.NoError(t, err)

	data := f.exec(t, fmt.Sprintf(`mutation { deleteCustomer(id: "%d") { ok error } }`, customer.ID), nil)
	p := payload(t, data, "deleteCustomer")
	assert.Equal(t, true, p["ok"])
	assert.Equal(t, 0, f.store.OrderCount())

	data = f.exec(t, fmt.Sprintf(`query { customerById(id: "%d") { id } }`, customer.ID), nil)
	assert.Nil(t, data["customerById"])

	// 二次删除按校验错误返回
	data = f.exec(t, fmt.Sprintf(`mutation { deleteCustomer(id: "%d") { ok error } }`, customer.ID), nil)
	p = payload(t, data, "deleteCustomer")
	assert.Equal(t, false, p["ok"])
	assert.Equal(t, "Customer not found", p["error"])
}

func TestBulkCreateCustomersMutation(t *testing.T) {
	f := newFixture(t)
	f.createCustomer(t, "Bob", "bob@example.com")

	data := f.exec(t, `
		mutation ($customers: [CustomerInput!]!) {
			bulkCreateCustomers(customers: $customers) {
				createdCustomers { name email }
				errors
			}
		}`, map[string]interface{}{
		"customers": []interface{}{
			map[string]interface{}{"name": "Carol", "email": "carol@example.com"},
			map[string]interface{}{"name": "Bob Clone", "email": "bob@example.com"},
			map[string]interface{}{"name": "Dave", "email": "dave@example.com"},
		},
	})
	p := payload(t, data, "bulkCreateCustomers")

	created := p["createdCustomers"].([]interface{})
	require.Len(t, created, 2)
	assert.Equal(t, "Carol", created[0].(map[string]interface{})["name"])
	assert.Equal(t, "Dave", created[1].(map[string]interface{})["name"])

	errs := p["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, "Error at index 1: Email 'bob@example.com' already exists.", errs[0])
}

func TestCreateProductMutation(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `
		mutation {
			createProduct(name: "Laptop", description: "High-performance laptop", price: "999.99", stock: 15) {
				ok
				product { id name price stock }
			}
		}`, nil)
	p := payload(t, data, "createProduct")

	assert.Equal(t, true, p["ok"])
	product := p["product"].(map[string]interface{})
	assert.Equal(t, "Laptop", product["name"])
	assert.True(t, decimal.RequireFromString(product["price"].(string)).Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, 15, product["stock"])
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name     string
		mutation string
		wantErr  string
	}{
		{
			name:     "non-positive price",
			mutation: `mutation { createProduct(name: "Bad", price: "0") { ok error } }`,
			wantErr:  "Price must be positive.",
		},
		{
			name:     "negative stock",
			mutation: `mutation { createProduct(name: "Bad", price: "9.99", stock: -1) { ok error } }`,
			wantErr:  "Stock cannot be negative.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := f.exec(t, tc.mutation, nil)
			p := payload(t, data, "createProduct")
			assert.Equal(t, false, p["ok"])
			assert.Equal(t, tc.wantErr, p["error"])
		})
	}
	assert.Equal(t, 0, f.store.ProductCount())
}

func TestCreateProductDefaultStock(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `mutation { createProduct(name: "Mouse", price: "29.99") { ok product { stock } } }`, nil)
	p := payload(t, data, "createProduct")
	assert.Equal(t, true, p["ok"])
	assert.Equal(t, 0, p["product"].(map[string]interface{})["stock"])
}

func TestCreateOrderMutation(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, "Alice", "alice@example.com")
	laptop := f.createProduct(t, "Laptop", "10.00", 5)
	mouse := f.createProduct(t, "Mouse", "20.00", 5)

	data := f.exec(t, fmt.Sprintf(`
		mutation {
			createOrder(customerId: "%d", productIds: ["%d", "%d"]) {
				ok
				order {
					id
					totalAmount
					orderDate
					customer { name }
					products { name }
				}
			}
		}`, customer.ID, laptop.ID, mouse.ID), nil)
	p := payload(t, data, "createOrder")

	assert.Equal(t, true, p["ok"])
	order := p["order"].(map[string]interface{})
	assert.True(t, decimal.RequireFromString(order["totalAmount"].(string)).Equal(decimal.RequireFromString("30.00")))
	assert.NotNil(t, order["orderDate"])
	assert.Equal(t, "Alice", order["customer"].(map[string]interface{})["name"])
	assert.Len(t, order["products"].([]interface{}), 2)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	customer := f.createCustomer(t, "Alice", "alice@example.com")
	laptop := f.createProduct(t, "Laptop", "10.00", 5)

	cases := []struct {
		name     string
		mutation string
		wantErr  string
	}{
		{
			name:     "empty product list",
			mutation: fmt.Sprintf(`mutation { createOrder(customerId: "%d", productIds: []) { ok error } }`, customer.ID),
			wantErr:  "At least one product must be selected.",
		},
		{
			name:     "unknown customer",
			mutation: fmt.Sprintf(`mutation { createOrder(customerId: "999", productIds: ["%d"]) { ok error } }`, laptop.ID),
			wantErr:  "Invalid customer ID.",
		},
		{
			name:     "unparseable customer id",
			mutation: fmt.Sprintf(`mutation { createOrder(customerId: "abc", productIds: ["%d"]) { ok error } }`, laptop.ID),
			wantErr:  "Invalid customer ID.",
		},
		{
			name:     "unknown product",
			mutation: fmt.Sprintf(`mutation { createOrder(customerId: "%d", productIds: ["%d", "999"]) { ok error } }`, customer.ID, laptop.ID),
			wantErr:  "One or more product IDs are invalid.",
		},
		{
			name:     "unparseable product id",
			mutation: fmt.Sprintf(`mutation { createOrder(customerId: "%d", productIds: ["abc"]) { ok error } }`, customer.ID),
			wantErr:  "One or more product IDs are invalid.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := f.exec(t, tc.mutation, nil)
			p := payload(t, data, "createOrder")
			assert.Equal(t, false, p["ok"])
			assert.Equal(t, tc.wantErr, p["error"])
		})
	}
	assert.Equal(t, 0, f.store.OrderCount())
}

func TestQueryByIDMissingReturnsNull(t *testing.T) {
	f := newFixture(t)

	data := f.exec(t, `
		query {
			customerById(id: "1") { id }
			productById(id: "1") { id }
			orderById(id: "1") { id }
		}`, nil)

	assert.Nil(t, data["customerById"])
	assert.Nil(t, data["productById"])
	assert.Nil(t, data["orderById"])
}

func TestAllCustomersQuery(t *testing.T) {
	f := newFixture(t)
	f.createCustomer(t, "Alice", "alice@example.com")
	f.createCustomer(t, "Bob", "bob@example.com")
	f.createCustomer(t, "Alina", "alina@test.org")

	data := f.exec(t, `
		query {
			allCustomers(filter: { nameContains: "Ali" }) {
				totalCount
				items { name }
			}
		}`, nil)
	conn := payload(t, data, "allCustomers")

	assert.Equal(t, 2, conn["totalCount"])
	items := conn["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Alice", items[0].(map[string]interface{})["name"])
	assert.Equal(t, "Alina", items[1].(map[string]interface{})["name"])
}

func TestAllCustomersPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.createCustomer(t, fmt.Sprintf("Customer %d", i), fmt.Sprintf("c%d@example.com", i))
	}

	data := f.exec(t, `
		query {
			allCustomers(page: 2, pageSize: 2) {
				totalCount
				items { name }
			}
		}`, nil)
	conn := payload(t, data, "allCustomers")

	assert.Equal(t, 5, conn["totalCount"])
	items := conn["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Customer 2", items[0].(map[string]interface{})["name"])
	assert.Equal(t, "Customer 3", items[1].(map[string]interface{})["name"])
}

func TestAllProductsLowStockFilter(t *testing.T) {
	f := newFixture(t)
	f.createProduct(t, "Laptop", "999.99", 15)
	f.createProduct(t, "Headphones", "199.99", 5)
	f.createProduct(t, "Webcam", "89.99", 3)

	data := f.exec(t, `
		query {
			allProducts(filter: { lowStock: true }) {
				totalCount
				items { name stock }
			}
		}`, nil)
	conn := payload(t, data, "allProducts")

	assert.Equal(t, 2, conn["totalCount"])
	for _, item := range conn["items"].([]interface{}) {
		assert.Less(t, item.(map[string]interface{})["stock"], 10)
	}
}

func TestAllOrdersCustomerFilter(t *testing.T) {
	f := newFixture(t)
	alice := f.createCustomer(t, "Alice", "alice@example.com")
	bob := f.createCustomer(t, "Bob", "bob@example.com")
	laptop := f.createProduct(t, "Laptop", "10.00", 5)
	ctx := context.Background()

	_, err := f.orderCmd.CreateOrder(ctx, application.CreateOrderCommand{CustomerID: alice.ID, ProductIDs: []uint{laptop.ID}})
	require.NoError(t, err)
	_, err = f.orderCmd.CreateOrder(ctx, application.CreateOrderCommand{CustomerID: bob.ID, ProductIDs: []uint{laptop.ID}})
	require.NoError(t, err)

	data := f.exec(t, fmt.Sprintf(`
		query {
			allOrders(filter: { customerId: "%d" }) {
				totalCount
				items { customer { name } }
			}
		}`, alice.ID), nil)
	conn := payload(t, data, "allOrders")

	assert.Equal(t, 1, conn["totalCount"])
	items := conn["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Alice", items[0].(map[string]interface{})["customer"].(map[string]interface{})["name"])
}
