package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/crm/internal/crm/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderSortColumns = map[string]string{
	"id":          "id",
	"orderDate":   "order_date",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
}

type orderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create 在同一事务中写入订单行与商品关联
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := order.Products
		order.Products = nil
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if err := tx.Model(order).Association("Products").Append(&products); err != nil {
			return err
		}
		order.Products = products
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Products").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]*domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})

	if filter.TotalAmount.Min != nil {
		q = q.Where("total_amount >= ?", *filter.TotalAmount.Min)
	}
	if filter.TotalAmount.Max != nil {
		q = q.Where("total_amount <= ?", *filter.TotalAmount.Max)
	}
	if filter.OrderDate.From != nil {
		q = q.Where("order_date >= ?", *filter.OrderDate.From)
	}
	if filter.OrderDate.To != nil {
		q = q.Where("order_date <= ?", *filter.OrderDate.To)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = orders.id AND op.product_id = ?)", *filter.ProductID)
	}
	if filter.ProductNameContains != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = orders.id AND p.name LIKE ?)",
			"%"+filter.ProductNameContains+"%",
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	err := q.Preload("Customer").Preload("Products").
		Order(sortClause(orderSortColumns, filter.OrderBy, "id")).
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&orders).Error
	return orders, total, err
}
