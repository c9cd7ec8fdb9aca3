package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/crm/internal/crm/domain"
	"gorm.io/gorm"
)

var customerSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
}

type customerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) domain.CustomerRepository {
	return &customerRepository{db: db}
}

// Create 在独立事务中插入客户，批量创建时单条失败互不影响
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(customer).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailExists
	}
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	err := r.db.WithContext(ctx).Save(customer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailExists
	}
	return err
}

// Delete 在同一事务中删除客户及其全部订单（含订单商品关联）
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer domain.Customer
		if err := tx.First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return err
		}

		var orderIDs []uint
		if err := tx.Model(&domain.Order{}).Where("customer_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Exec("DELETE FROM order_products WHERE order_id IN ?", orderIDs).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", orderIDs).Delete(&domain.Order{}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&customer).Error
	})
}

func (r *customerRepository) List(ctx context.Context, filter domain.CustomerFilter, page domain.Page) ([]*domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{})

	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.EmailContains != "" {
		q = q.Where("email LIKE ?", "%"+filter.EmailContains+"%")
	}
	if filter.PhonePrefix != "" {
		q = q.Where("phone LIKE ?", filter.PhonePrefix+"%")
	}
	if filter.CreatedAt.From != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAt.From)
	}
	if filter.CreatedAt.To != nil {
		q = q.Where("created_at <= ?", *filter.CreatedAt.To)
	}
	if filter.HasOrders != nil {
		exists := "EXISTS (SELECT 1 FROM orders WHERE orders.customer_id = customers.id)"
		if *filter.HasOrders {
			q = q.Where(exists)
		} else {
			q = q.Where("NOT " + exists)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*domain.Customer
	err := q.Order(sortClause(customerSortColumns, filter.OrderBy, "id")).
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&customers).Error
	return customers, total, err
}
