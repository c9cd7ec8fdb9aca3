package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order 订单，归属唯一客户并关联一个以上商品
type Order struct {
	gorm.Model
	CustomerID  uint            `gorm:"column:customer_id;index;not null" json:"customer_id"`
	Customer    Customer        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer"`
	Products    []Product       `gorm:"many2many:order_products;constraint:OnDelete:CASCADE" json:"products"`
	OrderDate   time.Time       `gorm:"column:order_date;not null" json:"order_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
}

func (Order) TableName() string { return "orders" }

// NewOrder 创建订单。总额取商品当前价格之和（创建时快照，之后不随价格变动），
// 订单日期缺省为当前时间。
func NewOrder(customer *Customer, products []*Product, orderDate *time.Time) *Order {
	total := decimal.Zero
	items := make([]Product, 0, len(products))
	for _, p := range products {
		total = total.Add(p.Price)
		items = append(items, *p)
	}

	date := time.Now()
	if orderDate != nil {
		date = *orderDate
	}

	return &Order{
		CustomerID:  customer.ID,
		Customer:    *customer,
		Products:    items,
		OrderDate:   date,
		TotalAmount: total,
	}
}
