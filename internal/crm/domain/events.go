package domain

import "time"

// CustomerCreatedEvent 客户创建事件
type CustomerCreatedEvent struct {
	CustomerID uint      `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

// CustomerUpdatedEvent 客户更新事件
type CustomerUpdatedEvent struct {
	CustomerID uint      `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

// CustomerDeletedEvent 客户删除事件（订单一并级联删除）
type CustomerDeletedEvent struct {
	CustomerID uint      `json:"customer_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID     uint      `json:"order_id"`
	CustomerID  uint      `json:"customer_id"`
	ProductIDs  []uint    `json:"product_ids"`
	TotalAmount string    `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}
