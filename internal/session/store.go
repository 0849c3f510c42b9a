package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webstore/checkout-orchestrator/internal/models"
)

// ErrNoCart is returned when a session has no cart to check out.
var ErrNoCart = errors.New("no cart for session")

// Store keeps per-session cart state and the last checkout outcome in Redis.
// Outcomes are read-once: TakeOutcome clears the value it returns.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

func outcomeKey(sessionID string) string {
	return fmt.Sprintf("session:%s:outcome", sessionID)
}

func (s *Store) Cart(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoCart
	}
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	var cart models.CartSnapshot
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("unmarshaling cart: %w", err)
	}
	return &cart, nil
}

func (s *Store) PutCart(ctx context.Context, sessionID string, cart *models.CartSnapshot) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshaling cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err()
}

func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

func (s *Store) SetOutcome(ctx context.Context, sessionID string, outcome *models.SessionOutcome) error {
	raw, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	return s.client.Set(ctx, outcomeKey(sessionID), raw, s.ttl).Err()
}

func (s *Store) TakeOutcome(ctx context.Context, sessionID string) (*models.SessionOutcome, error) {
	raw, err := s.client.GetDel(ctx, outcomeKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading outcome: %w", err)
	}

	var outcome models.SessionOutcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return nil, fmt.Errorf("unmarshaling outcome: %w", err)
	}
	return &outcome, nil
}
