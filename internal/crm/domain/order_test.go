package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/crm/internal/crm/domain"
)

func product(t *testing.T, name, price string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, "", decimal.RequireFromString(price), 1)
	require.NoError(t, err)
	return p
}

func TestNewOrderTotalSnapshot(t *testing.T) {
	customer := domain.NewCustomer("Alice", "alice@example.com")
	customer.ID = 1
	laptop := product(t, "Laptop", "10.00")
	mouse := product(t, "Mouse", "20.00")

	order := domain.NewOrder(customer, []*domain.Product{laptop, mouse}, nil)

	assert.Equal(t, customer.ID, order.CustomerID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")))

	// 总额是创建时快照，商品后续调价不回写
	laptop.Price = decimal.RequireFromString("999.99")
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestNewOrderDateDefaultsToNow(t *testing.T) {
	customer := domain.NewCustomer("Alice", "alice@example.com")
	laptop := product(t, "Laptop", "10.00")

	order := domain.NewOrder(customer, []*domain.Product{laptop}, nil)
	assert.WithinDuration(t, time.Now(), order.OrderDate, 5*time.Second)

	explicit := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	order = domain.NewOrder(customer, []*domain.Product{laptop}, &explicit)
	assert.True(t, order.OrderDate.Equal(explicit))
}

func TestNewProductValidationOrder(t *testing.T) {
	_, err := domain.NewProduct("Bad", "", decimal.Zero, 1)
	require.ErrorIs(t, err, domain.ErrPriceNotPositive)

	_, err = domain.NewProduct("Bad", "", decimal.RequireFromString("9.99"), -1)
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	// 价格与库存同时非法时价格先报
	_, err = domain.NewProduct("Bad", "", decimal.RequireFromString("-5"), -1)
	require.ErrorIs(t, err, domain.ErrPriceNotPositive)
}

func TestCustomerApplyUpdate(t *testing.T) {
	customer := domain.NewCustomer("Alice", "alice@example.com")

	name := "Alice Cooper"
	customer.ApplyUpdate(&name, nil)
	assert.Equal(t, "Alice Cooper", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)

	customer.ApplyUpdate(nil, nil)
	assert.Equal(t, "Alice Cooper", customer.Name)
	assert.Equal(t, "alice@example.com", customer.Email)
}

func TestIsValidation(t *testing.T) {
	for _, err := range []error{
		domain.ErrEmailExists,
		domain.ErrCustomerNotFound,
		domain.ErrPriceNotPositive,
		domain.ErrNegativeStock,
		domain.ErrNoProductsSelected,
		domain.ErrInvalidCustomerID,
		domain.ErrInvalidProductIDs,
	} {
		assert.True(t, domain.IsValidation(err), err.Error())
	}

	assert.False(t, domain.IsValidation(domain.ErrProductNotFound))
	assert.False(t, domain.IsValidation(domain.ErrOrderNotFound))
	assert.False(t, domain.IsValidation(assert.AnError))
}
