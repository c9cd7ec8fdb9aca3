package application

import (
	"time"

	"github.com/shopspring/decimal"
)

// 领域事件主题
const (
	TopicCustomers = "crm.customers"
	TopicProducts  = "crm.products"
	TopicOrders    = "crm.orders"
)

// CreateCustomerCommand 创建客户命令
type CreateCustomerCommand struct {
	Name  string
	Email string
}

// CustomerInput 批量创建客户的单条输入
type CustomerInput struct {
	Name  string
	Email string
}

// UpdateCustomerCommand 更新客户命令，nil 字段表示未提供、保持原值
type UpdateCustomerCommand struct {
	ID    uint
	Name  *string
	Email *string
}

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// CreateOrderCommand 创建订单命令，OrderDate 为 nil 时取当前时间
type CreateOrderCommand struct {
	CustomerID uint
	ProductIDs []uint
	OrderDate  *time.Time
}
