package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

const (
	idSetKey      = "orderindex:ids"
	docKeyPrefix  = "orderindex:doc:"
	termKeyPrefix = "orderindex:term:"
)

// OrderIndexer maintains the searchable order index in Redis. The index is
// rebuilt from the order store, so losing it is never fatal.
type OrderIndexer struct {
	client *redis.Client
	repo   interfaces.OrderRepository
}

func NewOrderIndexer(client *redis.Client, repo interfaces.OrderRepository) *OrderIndexer {
	return &OrderIndexer{client: client, repo: repo}
}

// ReindexOrders drops and rebuilds the whole index. Orders are searchable by
// email, last name, postcode and payment id.
func (i *OrderIndexer) ReindexOrders(ctx context.Context) error {
	orders, err := i.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing orders for reindex: %w", err)
	}

	existing, err := i.client.SMembers(ctx, idSetKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("reading index ids: %w", err)
	}

	pipe := i.client.TxPipeline()
	for _, id := range existing {
		pipe.Del(ctx, docKeyPrefix+id)
	}
	pipe.Del(ctx, idSetKey)

	for _, order := range orders {
		pipe.SAdd(ctx, idSetKey, order.ID)
		pipe.HSet(ctx, docKeyPrefix+order.ID,
			"payment_id", order.PaymentID,
			"email", order.Customer.Email,
			"lastname", order.Customer.LastName,
			"postcode", order.Customer.Postcode,
			"status", string(order.Status),
			"total", order.Total,
			"created_at", order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		)
		for _, term := range searchTerms(order.Customer.Email, order.Customer.LastName, order.Customer.Postcode, order.PaymentID) {
			pipe.SAdd(ctx, termKeyPrefix+term, order.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuilding order index: %w", err)
	}

	telemetry.Logger.Info("Order index rebuilt", zap.Int("orders", len(orders)))
	return nil
}

// Search returns ids of orders matching the given term.
func (i *OrderIndexer) Search(ctx context.Context, term string) ([]string, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	ids, err := i.client.SMembers(ctx, termKeyPrefix+term).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return ids, err
}

func searchTerms(values ...string) []string {
	var terms []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			terms = append(terms, v)
		}
	}
	return terms
}
