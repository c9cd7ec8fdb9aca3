package application

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/wyfcoding/crm/internal/crm/domain"
)

// OrderCommandService 处理订单相关的写操作
type OrderCommandService struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	publisher domain.EventPublisher
	logger    *slog.Logger
}

// NewOrderCommandService 创建 OrderCommandService 实例
func NewOrderCommandService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	publisher domain.EventPublisher,
	logger *slog.Logger,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		customers: customers,
		products:  products,
		publisher: publisher,
		logger:    logger.With("module", "order_command"),
	}
}

// CreateOrder 创建订单。校验顺序：商品列表非空、客户存在、商品 ID 全部可解析；
// 输入中的重复商品 ID 解析后去重，由数量比对一并拦截。
func (s *OrderCommandService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if len(cmd.ProductIDs) == 0 {
		return nil, domain.ErrNoProductsSelected
	}

	customer, err := s.customers.GetByID(ctx, cmd.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, domain.ErrInvalidCustomerID
		}
		return nil, err
	}

	products, err := s.products.GetByIDs(ctx, cmd.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(cmd.ProductIDs) {
		return nil, domain.ErrInvalidProductIDs
	}

	order := domain.NewOrder(customer, products, cmd.OrderDate)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		ids := make([]uint, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		event := domain.OrderCreatedEvent{
			OrderID:     order.ID,
			CustomerID:  customer.ID,
			ProductIDs:  ids,
			TotalAmount: order.TotalAmount.String(),
			Timestamp:   time.Now(),
		}
		key := strconv.FormatUint(uint64(order.ID), 10)
		if err := s.publisher.Publish(ctx, TopicOrders, key, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish order event", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}
