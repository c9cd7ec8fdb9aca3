package domain

import "gorm.io/gorm"

// Customer 客户档案
type Customer struct {
	gorm.Model
	Name  string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone string `gorm:"column:phone;type:varchar(20)" json:"phone"`
}

func (Customer) TableName() string { return "customers" }

// NewCustomer 创建客户档案
func NewCustomer(name, email string) *Customer {
	return &Customer{Name: name, Email: email}
}

// ApplyUpdate 仅覆盖显式提供的字段，nil 表示保持原值
func (c *Customer) ApplyUpdate(name, email *string) {
	if name != nil {
		c.Name = *name
	}
	if email != nil {
		c.Email = *email
	}
}
