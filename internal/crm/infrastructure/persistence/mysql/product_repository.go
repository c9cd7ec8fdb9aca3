package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/crm/internal/crm/domain"
	"gorm.io/gorm"
)

// lowStockThreshold 低库存判定阈值
const lowStockThreshold = 10

var productSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs 解析 ID 集合，重复 ID 自然去重为单条记录
func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.Price.Min != nil {
		q = q.Where("price >= ?", *filter.Price.Min)
	}
	if filter.Price.Max != nil {
		q = q.Where("price <= ?", *filter.Price.Max)
	}
	if filter.Stock.Min != nil {
		q = q.Where("stock >= ?", *filter.Stock.Min)
	}
	if filter.Stock.Max != nil {
		q = q.Where("stock <= ?", *filter.Stock.Max)
	}
	if filter.LowStock != nil {
		if *filter.LowStock {
			q = q.Where("stock < ?", lowStockThreshold)
		} else {
			q = q.Where("stock >= ?", lowStockThreshold)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	err := q.Order(sortClause(productSortColumns, filter.OrderBy, "id")).
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&products).Error
	return products, total, err
}
