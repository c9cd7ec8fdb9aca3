// 命令 seed 向数据库写入用于验证过滤查询的样例数据，可重复执行。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/crm/internal/crm/application"
	"github.com/wyfcoding/crm/internal/crm/domain"
	"github.com/wyfcoding/crm/internal/crm/infrastructure/persistence/mysql"
	"github.com/wyfcoding/crm/pkg/config"
	"github.com/wyfcoding/crm/pkg/db"
	"github.com/wyfcoding/crm/pkg/logger"
)

var configPath = flag.String("config", "configs/crm/config.toml", "config file path")

type seedCustomer struct {
	name  string
	email string
	phone string
}

type seedProduct struct {
	name        string
	description string
	price       string
	stock       int
}

type seedOrder struct {
	customerIdx int
	productIdxs []int
}

var (
	customersData = []seedCustomer{
		{"John Doe", "john.doe@example.com", "+1234567890"},
		{"Jane Smith", "jane.smith@example.com", "+1987654321"},
		{"Bob Johnson", "bob.johnson@example.com", "+1555123456"},
		{"Alice Brown", "alice.brown@example.com", "+1444333222"},
		{"Charlie Wilson", "charlie.wilson@example.com", "+1777888999"},
	}

	productsData = []seedProduct{
		{"Laptop", "High-performance laptop", "999.99", 15},
		{"Mouse", "Wireless mouse", "29.99", 50},
		{"Keyboard", "Mechanical keyboard", "79.99", 25},
		{"Monitor", "4K monitor", "299.99", 8},
		{"Headphones", "Noise-cancelling headphones", "199.99", 5},
		{"Webcam", "HD webcam", "89.99", 3},
	}

	ordersData = []seedOrder{
		{0, []int{0, 1}},
		{1, []int{2, 3}},
		{2, []int{4}},
		{3, []int{5, 1}},
	}
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(logger.Config{Level: cfg.Logger.Level, Format: "text"}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.AutoMigrate(&domain.Customer{}, &domain.Product{}, &domain.Order{}); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	customerRepo := mysql.NewCustomerRepository(database.DB)
	productRepo := mysql.NewProductRepository(database.DB)
	orderRepo := mysql.NewOrderRepository(database.DB)

	log := logger.Get()
	customerCmd := application.NewCustomerCommandService(customerRepo, nil, log)
	productCmd := application.NewProductCommandService(productRepo, nil, log)
	orderCmd := application.NewOrderCommandService(orderRepo, customerRepo, productRepo, nil, log)
	queries := application.NewQueryService(customerRepo, productRepo, orderRepo)

	ctx := context.Background()

	customerIDs := make([]uint, 0, len(customersData))
	for _, data := range customersData {
		customer, err := customerCmd.CreateCustomer(ctx, application.CreateCustomerCommand{Name: data.name, Email: data.email})
		switch {
		case err == nil:
			// phone 不在创建命令内，补写一次
			customer.Phone = data.phone
			if err := customerRepo.Update(ctx, customer); err != nil {
				slog.Error("failed to set customer phone", "email", data.email, "error", err)
				os.Exit(1)
			}
			customerIDs = append(customerIDs, customer.ID)
			slog.Info("created customer", "name", customer.Name)
		case errors.Is(err, domain.ErrEmailExists):
			existing, _, err := queries.ListCustomers(ctx, domain.CustomerFilter{EmailContains: data.email}, domain.Page{PageSize: 1})
			if err != nil || len(existing) == 0 {
				slog.Error("failed to resolve existing customer", "email", data.email, "error", err)
				os.Exit(1)
			}
			customerIDs = append(customerIDs, existing[0].ID)
		default:
			slog.Error("failed to create customer", "email", data.email, "error", err)
			os.Exit(1)
		}
	}

	productIDs := make([]uint, 0, len(productsData))
	for _, data := range productsData {
		existing, total, err := queries.ListProducts(ctx, domain.ProductFilter{NameContains: data.name}, domain.Page{PageSize: 1})
		if err != nil {
			slog.Error("failed to look up product", "name", data.name, "error", err)
			os.Exit(1)
		}
		if total > 0 {
			productIDs = append(productIDs, existing[0].ID)
			continue
		}

		product, err := productCmd.CreateProduct(ctx, application.CreateProductCommand{
			Name:        data.name,
			Description: data.description,
			Price:       decimal.RequireFromString(data.price),
			Stock:       data.stock,
		})
		if err != nil {
			slog.Error("failed to create product", "name", data.name, "error", err)
			os.Exit(1)
		}
		productIDs = append(productIDs, product.ID)
		slog.Info("created product", "name", product.Name)
	}

	// 订单只在空库时灌入，避免重复执行时堆积
	_, orderTotal, err := queries.ListOrders(ctx, domain.OrderFilter{}, domain.Page{PageSize: 1})
	if err != nil {
		slog.Error("failed to count orders", "error", err)
		os.Exit(1)
	}
	if orderTotal == 0 {
		for _, data := range ordersData {
			ids := make([]uint, 0, len(data.productIdxs))
			for _, idx := range data.productIdxs {
				ids = append(ids, productIDs[idx])
			}
			order, err := orderCmd.CreateOrder(ctx, application.CreateOrderCommand{
				CustomerID: customerIDs[data.customerIdx],
				ProductIDs: ids,
			})
			if err != nil {
				slog.Error("failed to create order", "customer_id", customerIDs[data.customerIdx], "error", err)
				os.Exit(1)
			}
			slog.Info("created order", "order_id", order.ID, "total_amount", order.TotalAmount.String())
		}
	}

	slog.Info("successfully populated database with sample data")
}
