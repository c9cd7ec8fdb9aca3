package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Page 分页参数
type Page struct {
	Page     int
	PageSize int
}

// Offset 计算偏移量
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit 返回单页大小，缺省 20，上限 100
func (p Page) Limit() int {
	switch {
	case p.PageSize <= 0:
		return 20
	case p.PageSize > 100:
		return 100
	default:
		return p.PageSize
	}
}

// TimeRange 时间区间，nil 端点表示不限制
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// DecimalRange 金额区间
type DecimalRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// IntRange 整数区间
type IntRange struct {
	Min *int
	Max *int
}

// CustomerFilter 客户查询条件
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	PhonePrefix   string
	CreatedAt     TimeRange
	// HasOrders 为 true 时仅返回有订单的客户，false 仅返回无订单的客户
	HasOrders *bool
	OrderBy   string
}

// ProductFilter 商品查询条件
type ProductFilter struct {
	NameContains string
	Price        DecimalRange
	Stock        IntRange
	// LowStock 为 true 时仅返回库存低于 10 的商品
	LowStock *bool
	OrderBy  string
}

// OrderFilter 订单查询条件
type OrderFilter struct {
	TotalAmount         DecimalRange
	OrderDate           TimeRange
	CustomerID          *uint
	ProductID           *uint
	ProductNameContains string
	OrderBy             string
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	// Delete 删除客户并级联删除其全部订单
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter CustomerFilter, page Page) ([]*Customer, int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	// GetByIDs 按 ID 集合解析商品，重复 ID 只返回一条记录
	GetByIDs(ctx context.Context, ids []uint) ([]*Product, error)
	List(ctx context.Context, filter ProductFilter, page Page) ([]*Product, int64, error)
}

type OrderRepository interface {
	// Create 持久化订单并写入商品关联
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, filter OrderFilter, page Page) ([]*Order, int64, error)
}
