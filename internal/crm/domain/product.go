package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品，创建后只读（无更新/删除操作）
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }

// NewProduct 构造商品，先校验价格为正，再校验库存非负
func NewProduct(name, description string, price decimal.Decimal, stock int) (*Product, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPriceNotPositive
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	return &Product{Name: name, Description: description, Price: price, Stock: stock}, nil
}
