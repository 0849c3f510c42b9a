package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/models"
)

type RepositoryMock struct {
	mock.Mock
	interfaces.OrderRepository
}

func (m *RepositoryMock) Insert(ctx context.Context, order *models.Order) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *RepositoryMock) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

type GatewayMock struct {
	mock.Mock
	interfaces.Gateway
}

func (m *GatewayMock) Charge(ctx context.Context, singleUseTokenID string, amount float64) (*models.ChargeOutcome, error) {
	args := m.Called(ctx, singleUseTokenID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChargeOutcome), args.Error(1)
}

type SessionStoreMock struct {
	mock.Mock
	interfaces.SessionStore
}

func (m *SessionStoreMock) Cart(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartSnapshot), args.Error(1)
}

func (m *SessionStoreMock) ClearCart(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *SessionStoreMock) SetOutcome(ctx context.Context, sessionID string, outcome *models.SessionOutcome) error {
	args := m.Called(ctx, sessionID, outcome)
	return args.Error(0)
}

func (m *SessionStoreMock) TakeOutcome(ctx context.Context, sessionID string) (*models.SessionOutcome, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionOutcome), args.Error(1)
}

type IndexerMock struct {
	mock.Mock
	interfaces.OrderIndexer
}

func (m *IndexerMock) ReindexOrders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MailerMock struct {
	mock.Mock
	interfaces.Mailer
}

func (m *MailerMock) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
	interfaces.EventPublisher
}

func (m *PublisherMock) PublishOrderRecorded(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
