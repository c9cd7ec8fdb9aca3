package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/wyfcoding/crm/internal/crm/domain"
)

// CustomerCommandService 处理客户相关的写操作
type CustomerCommandService struct {
	customers domain.CustomerRepository
	publisher domain.EventPublisher
	logger    *slog.Logger
}

// NewCustomerCommandService 创建 CustomerCommandService 实例
func NewCustomerCommandService(customers domain.CustomerRepository, publisher domain.EventPublisher, logger *slog.Logger) *CustomerCommandService {
	return &CustomerCommandService{
		customers: customers,
		publisher: publisher,
		logger:    logger.With("module", "customer_command"),
	}
}

// CreateCustomer 创建客户，邮箱冲突返回 domain.ErrEmailExists
func (s *CustomerCommandService) CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (*domain.Customer, error) {
	customer := domain.NewCustomer(cmd.Name, cmd.Email)
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.publish(ctx, customer.ID, domain.CustomerCreatedEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
		Timestamp:  time.Now(),
	})
	return customer, nil
}

// BulkCreateCustomers 逐条独立创建客户。单条失败只记录错误，不影响批次中
// 其余条目；返回成功创建的客户（按输入顺序）与按条目收集的错误文案。
func (s *CustomerCommandService) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) ([]*domain.Customer, []string) {
	created := make([]*domain.Customer, 0, len(inputs))
	errs := make([]string, 0)

	for i, in := range inputs {
		customer := domain.NewCustomer(in.Name, in.Email)
		if err := s.customers.Create(ctx, customer); err != nil {
			if errors.Is(err, domain.ErrEmailExists) {
				errs = append(errs, fmt.Sprintf("Error at index %d: Email '%s' already exists.", i, in.Email))
			} else {
				errs = append(errs, fmt.Sprintf("Error at index %d: %v", i, err))
			}
			continue
		}

		created = append(created, customer)
		s.publish(ctx, customer.ID, domain.CustomerCreatedEvent{
			CustomerID: customer.ID,
			Name:       customer.Name,
			Email:      customer.Email,
			Timestamp:  time.Now(),
		})
	}

	return created, errs
}

// UpdateCustomer 更新客户，仅覆盖命令中显式提供的字段
func (s *CustomerCommandService) UpdateCustomer(ctx context.Context, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	customer.ApplyUpdate(cmd.Name, cmd.Email)
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.publish(ctx, customer.ID, domain.CustomerUpdatedEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
		Timestamp:  time.Now(),
	})
	return customer, nil
}

// DeleteCustomer 删除客户并级联删除其全部订单
func (s *CustomerCommandService) DeleteCustomer(ctx context.Context, id uint) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, domain.CustomerDeletedEvent{CustomerID: id, Timestamp: time.Now()})
	return nil
}

// publish 发布事件，失败只告警，不阻断写操作
func (s *CustomerCommandService) publish(ctx context.Context, id uint, event any) {
	if s.publisher == nil {
		return
	}
	key := strconv.FormatUint(uint64(id), 10)
	if err := s.publisher.Publish(ctx, TopicCustomers, key, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish customer event", "customer_id", id, "error", err)
	}
}
