package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/crm/internal/crm/domain"
)

// QueryService 处理读查询。单条查询未命中时返回 nil 而非错误。
type QueryService struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
}

// NewQueryService 创建 QueryService 实例
func NewQueryService(customers domain.CustomerRepository, products domain.ProductRepository, orders domain.OrderRepository) *QueryService {
	return &QueryService{customers: customers, products: products, orders: orders}
}

func (s *QueryService) CustomerByID(ctx context.Context, id uint) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, nil
	}
	return customer, err
}

func (s *QueryService) ProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, nil
	}
	return product, err
}

func (s *QueryService) OrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, nil
	}
	return order, err
}

func (s *QueryService) ListCustomers(ctx context.Context, filter domain.CustomerFilter, page domain.Page) ([]*domain.Customer, int64, error) {
	return s.customers.List(ctx, filter, page)
}

func (s *QueryService) ListProducts(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	return s.products.List(ctx, filter, page)
}

func (s *QueryService) ListOrders(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]*domain.Order, int64, error) {
	return s.orders.List(ctx, filter, page)
}
