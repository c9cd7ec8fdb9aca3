package application

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/wyfcoding/crm/internal/crm/domain"
)

// ProductCommandService 处理商品相关的写操作。
// 商品创建后只读，因此只有创建命令。
type ProductCommandService struct {
	products  domain.ProductRepository
	publisher domain.EventPublisher
	logger    *slog.Logger
}

// NewProductCommandService 创建 ProductCommandService 实例
func NewProductCommandService(products domain.ProductRepository, publisher domain.EventPublisher, logger *slog.Logger) *ProductCommandService {
	return &ProductCommandService{
		products:  products,
		publisher: publisher,
		logger:    logger.With("module", "product_command"),
	}
}

// CreateProduct 创建商品，价格与库存校验在持久化之前完成
func (s *ProductCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product, err := domain.NewProduct(cmd.Name, cmd.Description, cmd.Price, cmd.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := domain.ProductCreatedEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price.String(),
			Stock:     product.Stock,
			Timestamp: time.Now(),
		}
		key := strconv.FormatUint(uint64(product.ID), 10)
		if err := s.publisher.Publish(ctx, TopicProducts, key, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish product event", "product_id", product.ID, "error", err)
		}
	}

	return product, nil
}
