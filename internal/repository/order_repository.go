package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/webstore/checkout-orchestrator/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) InitDB() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id VARCHAR(36) PRIMARY KEY,
			payment_id VARCHAR(255) NOT NULL,
			payment_gateway VARCHAR(50) NOT NULL,
			payment_message TEXT,
			total NUMERIC(12,2) NOT NULL,
			shipping NUMERIC(12,2) NOT NULL,
			item_count INT NOT NULL,
			product_count INT NOT NULL,
			customer JSONB NOT NULL,
			order_comment TEXT,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			products JSONB NOT NULL,
			order_type VARCHAR(20) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_id ON orders(payment_id)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// Insert writes one immutable order row and returns its generated id.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) (string, error) {
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return "", fmt.Errorf("marshaling customer snapshot: %w", err)
	}
	products, err := json.Marshal(order.Products)
	if err != nil {
		return "", fmt.Errorf("marshaling products: %w", err)
	}

	orderID := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (
			order_id, payment_id, payment_gateway, payment_message,
			total, shipping, item_count, product_count,
			customer, order_comment, status, created_at, products, order_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, orderID, order.PaymentID, order.PaymentGateway, order.PaymentMessage,
		order.Total, order.Shipping, order.ItemCount, order.ProductCount,
		customer, order.Comment, order.Status, order.CreatedAt, products, order.Type)
	if err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	return orderID, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT order_id, payment_id, payment_gateway, payment_message,
			total, shipping, item_count, product_count,
			customer, order_comment, status, created_at, products, order_type
		FROM orders WHERE order_id = $1
	`, orderID)

	return scanOrder(row)
}

// List returns all recorded orders, newest first. Feeds the index rebuild.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, payment_id, payment_gateway, payment_message,
			total, shipping, item_count, product_count,
			customer, order_comment, status, created_at, products, order_type
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order    models.Order
		customer []byte
		products []byte
	)
	err := row.Scan(
		&order.ID, &order.PaymentID, &order.PaymentGateway, &order.PaymentMessage,
		&order.Total, &order.Shipping, &order.ItemCount, &order.ProductCount,
		&customer, &order.Comment, &order.Status, &order.CreatedAt, &products, &order.Type,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &order.Customer); err != nil {
		return nil, fmt.Errorf("unmarshaling customer snapshot: %w", err)
	}
	if err := json.Unmarshal(products, &order.Products); err != nil {
		return nil, fmt.Errorf("unmarshaling products: %w", err)
	}
	return &order, nil
}
