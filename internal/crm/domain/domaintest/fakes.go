// Package domaintest 提供仓储与事件发布接口的内存实现，供各层测试复用。
package domaintest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/crm/internal/crm/domain"
)

// ErrStorageDown 模拟底层存储故障的意外错误
var ErrStorageDown = errors.New("storage unavailable")

// Store 三张表的内存镜像
type Store struct {
	mu        sync.Mutex
	customers map[uint]domain.Customer
	products  map[uint]domain.Product
	orders    map[uint]domain.Order

	nextCustomerID uint
	nextProductID  uint
	nextOrderID    uint

	// FailEmail 命中该邮箱的客户创建返回 ErrStorageDown
	FailEmail string
}

// NewStore 创建空 Store
func NewStore() *Store {
	return &Store{
		customers: make(map[uint]domain.Customer),
		products:  make(map[uint]domain.Product),
		orders:    make(map[uint]domain.Order),
	}
}

// Customers 返回客户仓储视图
func (s *Store) Customers() domain.CustomerRepository { return &customerRepo{s} }

// Products 返回商品仓储视图
func (s *Store) Products() domain.ProductRepository { return &productRepo{s} }

// Orders 返回订单仓储视图
func (s *Store) Orders() domain.OrderRepository { return &orderRepo{s} }

// CustomerCount 当前客户数
func (s *Store) CustomerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

// ProductCount 当前商品数
func (s *Store) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// OrderCount 当前订单数
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.FailEmail != "" && customer.Email == r.s.FailEmail {
		return ErrStorageDown
	}
	for _, existing := range r.s.customers {
		if existing.Email == customer.Email {
			return domain.ErrEmailExists
		}
	}

	r.s.nextCustomerID++
	customer.ID = r.s.nextCustomerID
	customer.CreatedAt = time.Now()
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uint) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	customer, ok := r.s.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &customer, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	for id, existing := range r.s.customers {
		if id != customer.ID && existing.Email == customer.Email {
			return domain.ErrEmailExists
		}
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.s.customers, id)
	for orderID, order := range r.s.orders {
		if order.CustomerID == id {
			delete(r.s.orders, orderID)
		}
	}
	return nil
}

func (r *customerRepo) List(ctx context.Context, filter domain.CustomerFilter, page domain.Page) ([]*domain.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]domain.Customer, 0, len(r.s.customers))
	for _, customer := range r.s.customers {
		if filter.NameContains != "" && !strings.Contains(customer.Name, filter.NameContains) {
			continue
		}
		if filter.EmailContains != "" && !strings.Contains(customer.Email, filter.EmailContains) {
			continue
		}
		if filter.PhonePrefix != "" && !strings.HasPrefix(customer.Phone, filter.PhonePrefix) {
			continue
		}
		if filter.HasOrders != nil && *filter.HasOrders != r.hasOrders(customer.ID) {
			continue
		}
		matched = append(matched, customer)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return paginate(matched, page)
}

func (r *customerRepo) hasOrders(customerID uint) bool {
	for _, order := range r.s.orders {
		if order.CustomerID == customerID {
			return true
		}
	}
	return false
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextProductID++
	product.ID = r.s.nextProductID
	product.CreatedAt = time.Now()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []uint) ([]*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[uint]bool, len(ids))
	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.s.products[id]; ok {
			p := product
			products = append(products, &p)
		}
	}
	return products, nil
}

func (r *productRepo) List(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]domain.Product, 0, len(r.s.products))
	for _, product := range r.s.products {
		if filter.NameContains != "" && !strings.Contains(product.Name, filter.NameContains) {
			continue
		}
		if filter.Price.Min != nil && product.Price.LessThan(*filter.Price.Min) {
			continue
		}
		if filter.Price.Max != nil && product.Price.GreaterThan(*filter.Price.Max) {
			continue
		}
		if filter.Stock.Min != nil && product.Stock < *filter.Stock.Min {
			continue
		}
		if filter.Stock.Max != nil && product.Stock > *filter.Stock.Max {
			continue
		}
		if filter.LowStock != nil && *filter.LowStock != (product.Stock < 10) {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return paginate(matched, page)
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextOrderID++
	order.ID = r.s.nextOrderID
	order.CreatedAt = time.Now()
	r.s.orders[order.ID] = *order
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]*domain.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]domain.Order, 0, len(r.s.orders))
	for _, order := range r.s.orders {
		if filter.TotalAmount.Min != nil && order.TotalAmount.LessThan(*filter.TotalAmount.Min) {
			continue
		}
		if filter.TotalAmount.Max != nil && order.TotalAmount.GreaterThan(*filter.TotalAmount.Max) {
			continue
		}
		if filter.OrderDate.From != nil && order.OrderDate.Before(*filter.OrderDate.From) {
			continue
		}
		if filter.OrderDate.To != nil && order.OrderDate.After(*filter.OrderDate.To) {
			continue
		}
		if filter.CustomerID != nil && order.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.ProductID != nil && !containsProduct(order, *filter.ProductID) {
			continue
		}
		if filter.ProductNameContains != "" && !containsProductName(order, filter.ProductNameContains) {
			continue
		}
		matched = append(matched, order)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return paginate(matched, page)
}

func containsProduct(order domain.Order, productID uint) bool {
	for _, p := range order.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func containsProductName(order domain.Order, name string) bool {
	for _, p := range order.Products {
		if strings.Contains(p.Name, name) {
			return true
		}
	}
	return false
}

func paginate[T any](matched []T, page domain.Page) ([]*T, int64, error) {
	total := int64(len(matched))
	offset := page.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]*T, 0, end-offset)
	for i := offset; i < end; i++ {
		item := matched[i]
		items = append(items, &item)
	}
	return items, total, nil
}

// PublishedEvent 记录一次事件发布
type PublishedEvent struct {
	Topic string
	Key   string
	Event any
}

// RecordingPublisher 记录所有发布事件的 EventPublisher 实现
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
	// Err 非 nil 时 Publish 返回该错误
	Err error
}

// Publish 实现 domain.EventPublisher
func (p *RecordingPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, PublishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}
