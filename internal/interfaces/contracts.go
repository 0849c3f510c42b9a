package interfaces

import (
	"context"

	"github.com/webstore/checkout-orchestrator/internal/models"
)

// OrderRepository defines the contract for durable order storage.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) (string, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
}

// Gateway performs a single synchronous charge against the payment processor.
// A declined charge is returned as a non-approved outcome, not an error.
type Gateway interface {
	Charge(ctx context.Context, singleUseTokenID string, amount float64) (*models.ChargeOutcome, error)
}

// SessionStore holds per-session cart state and the last checkout outcome.
type SessionStore interface {
	Cart(ctx context.Context, sessionID string) (*models.CartSnapshot, error)
	ClearCart(ctx context.Context, sessionID string) error
	SetOutcome(ctx context.Context, sessionID string, outcome *models.SessionOutcome) error
	TakeOutcome(ctx context.Context, sessionID string) (*models.SessionOutcome, error)
}

// OrderIndexer rebuilds the searchable order index. Best-effort.
type OrderIndexer interface {
	ReindexOrders(ctx context.Context) error
}

// Mailer sends a customer notification. Best-effort.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EventPublisher announces recorded orders to downstream consumers. Best-effort.
type EventPublisher interface {
	PublishOrderRecorded(ctx context.Context, order *models.Order) error
}
