package application_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/crm/internal/crm/application"
	"github.com/wyfcoding/crm/internal/crm/domain"
	"github.com/wyfcoding/crm/internal/crm/domain/domaintest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strptr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	store := domaintest.NewStore()
	publisher := &domaintest.RecordingPublisher{}
	svc := application.NewCustomerCommandService(store.Customers(), publisher, testLogger())

	customer, err := svc.CreateCustomer(context.Background(), application.CreateCustomerCommand{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, customer)

	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Alice", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Empty(t, customer.Phone)
	assert.False(t, customer.CreatedAt.IsZero())

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, application.TopicCustomers, publisher.Events[0].Topic)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Other Alice", Email: "alice@example.com"})
	require.ErrorIs(t, err, domain.ErrEmailExists)
	assert.Equal(t, "Email already exists.", err.Error())
	assert.Equal(t, 1, store.CustomerCount())
}

func TestBulkCreateCustomersPartialFailure(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	created, errs := svc.BulkCreateCustomers(ctx, []application.CustomerInput{
		{Name: "Carol", Email: "carol@example.com"},
		{Name: "Bob Clone", Email: "bob@example.com"},
		{Name: "Dave", Email: "dave@example.com"},
	})

	require.Len(t, created, 2)
	assert.Equal(t, "Carol", created[0].Name)
	assert.Equal(t, "Dave", created[1].Name)

	require.Len(t, errs, 1)
	assert.Equal(t, "Error at index 1: Email 'bob@example.com' already exists.", errs[0])

	// 失败条目不影响批次内其余条目落库
	assert.Equal(t, 3, store.CustomerCount())
}

func TestBulkCreateCustomersUnexpectedError(t *testing.T) {
	store := domaintest.NewStore()
	store.FailEmail = "broken@example.com"
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())

	created, errs := svc.BulkCreateCustomers(context.Background(), []application.CustomerInput{
		{Name: "Broken", Email: "broken@example.com"},
		{Name: "Eve", Email: "eve@example.com"},
	})

	require.Len(t, created, 1)
	assert.Equal(t, "Eve", created[0].Name)
	require.Len(t, errs, 1)
	assert.Equal(t, "Error at index 0: storage unavailable", errs[0])
}

func TestBulkCreateCustomersAllSucceed(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())

	created, errs := svc.BulkCreateCustomers(context.Background(), []application.CustomerInput{
		{Name: "Frank", Email: "frank@example.com"},
		{Name: "Grace", Email: "grace@example.com"},
	})

	assert.Len(t, created, 2)
	assert.Empty(t, errs)
}

func TestUpdateCustomerPartialFields(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// 只改名字，邮箱保持原值
	updated, err := svc.UpdateCustomer(ctx, application.UpdateCustomerCommand{
		ID:   customer.ID,
		Name: strptr("Alice Cooper"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// 两个字段都不提供时是合法的空操作
	updated, err = svc.UpdateCustomer(ctx, application.UpdateCustomerCommand{ID: customer.ID})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())

	_, err := svc.UpdateCustomer(context.Background(), application.UpdateCustomerCommand{
		ID:   42,
		Name: strptr("Nobody"),
	})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	store := domaintest.NewStore()
	svc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(ctx, application.UpdateCustomerCommand{
		ID:    bob.ID,
		Email: strptr("alice@example.com"),
	})
	require.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestDeleteCustomerCascadesOrders(t *testing.T) {
	store := domaintest.NewStore()
	customerSvc := application.NewCustomerCommandService(store.Customers(), nil, testLogger())
	productSvc := application.NewProductCommandService(store.Products(), nil, testLogger())
	orderSvc := application.NewOrderCommandService(store.Orders(), store.Customers(), store.Products(), nil, testLogger())
	ctx := context.Background()

	customer, err := customerSvc.CreateCustomer(ctx, application.CreateCustomerCommand{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	product := mustCreateProduct(t, productSvc, "Laptop", "999.99", 4)

	for i := 0; i < 2; i++ {
		_, err := orderSvc.CreateOrder(ctx, application.CreateOrderCommand{
			CustomerID: customer.ID,
			ProductIDs: []uint{product.ID},
		})
		require.NoError(t, err)
	}
	require.Equal(t, 2, store.OrderCount())

	require.NoError(t, customerSvc.DeleteCustomer(ctx, customer.ID))
	assert.Equal(t, 0, store.CustomerCount())
	assert.Equal(t, 0, store.OrderCount())

	err = customerSvc.DeleteCustomer(ctx, customer.ID)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateCustomerPublishFailureDoesNotBlock(t *testing.T) {
	store := domaintest.NewStore()
	publisher := &domaintest.RecordingPublisher{Err: domaintest.ErrStorageDown}
	svc := application.NewCustomerCommandService(store.Customers(), publisher, testLogger())

	customer, err := svc.CreateCustomer(context.Background(), application.CreateCustomerCommand{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, 1, store.CustomerCount())
}
