package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/mailer"
	"github.com/webstore/checkout-orchestrator/internal/models"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

// ErrMissingToken rejects checkout attempts without a usable single-use token.
var ErrMissingToken = errors.New("missing single use token")

const (
	redirectPaymentForm  = "/checkout/payment"
	redirectOrderPrefix  = "/payment/"
	msgPaymentFailed     = "Your payment has failed. Please try again"
	msgPaymentDeclined   = "Your payment has declined. Please try again"
	msgPaymentSuccessful = "Your payment was successfully completed"
	orderTypeSingle      = "Single"
)

// Orchestrator runs the checkout pipeline: token validation, gateway charge,
// order persistence, post-commit effects and outcome resolution. Each stage
// only runs if the previous one produced a usable result. There are no
// automatic retries anywhere; a repeated charge risks double-billing, so a
// failed attempt is left to the customer to re-submit with a fresh token.
type Orchestrator struct {
	repo        interfaces.OrderRepository
	gateway     interfaces.Gateway
	sessions    interfaces.SessionStore
	indexer     interfaces.OrderIndexer
	mailer      interfaces.Mailer
	events      interfaces.EventPublisher
	gatewayName string
	cartTitle   string
}

func NewOrchestrator(
	repo interfaces.OrderRepository,
	gateway interfaces.Gateway,
	sessions interfaces.SessionStore,
	indexer interfaces.OrderIndexer,
	mailer interfaces.Mailer,
	events interfaces.EventPublisher,
	gatewayName string,
	cartTitle string,
) *Orchestrator {
	return &Orchestrator{
		repo:        repo,
		gateway:     gateway,
		sessions:    sessions,
		indexer:     indexer,
		mailer:      mailer,
		events:      events,
		gatewayName: gatewayName,
		cartTitle:   cartTitle,
	}
}

// SubmitCheckout turns one submitted checkout into a terminal, user-visible
// outcome. Every path yields a result; pipeline failures surface as decline
// outcomes, never as errors to the routing layer.
func (o *Orchestrator) SubmitCheckout(ctx context.Context, req models.CheckoutRequest) *models.CheckoutResult {
	if strings.TrimSpace(req.SingleUseTokenID) == "" {
		telemetry.Logger.Info("Either null or no single use token",
			zap.String("session_id", req.SessionID),
			zap.Error(ErrMissingToken),
		)
		telemetry.CheckoutAttempts.WithLabelValues("missing_token").Inc()
		return o.finish(ctx, req.SessionID, &models.CheckoutResult{
			RedirectTarget: redirectPaymentForm,
			Outcome: models.SessionOutcome{
				Message:  msgPaymentFailed,
				Severity: models.SeverityDanger,
			},
		})
	}

	charge, err := o.gateway.Charge(ctx, req.SingleUseTokenID, req.Cart.TotalAmount)
	if err != nil {
		telemetry.Logger.Error("Exception processing payment",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		telemetry.CheckoutAttempts.WithLabelValues("gateway_unavailable").Inc()
		return o.finish(ctx, req.SessionID, &models.CheckoutResult{
			RedirectTarget: redirectPaymentForm,
			Outcome: models.SessionOutcome{
				Message:  msgPaymentDeclined,
				Severity: models.SeverityDanger,
			},
		})
	}

	order := buildOrder(&req.Cart, charge, o.gatewayName)

	orderID, err := o.repo.Insert(ctx, order)
	if err != nil {
		// The charge already happened; money may have moved with no local
		// record. Surfaced to the user as a decline, escalated here for
		// reconciliation. No automatic compensation.
		telemetry.Logger.Error("Order write failed after gateway charge",
			zap.String("session_id", req.SessionID),
			zap.String("transaction_id", charge.TransactionID),
			zap.String("status", string(order.Status)),
			zap.Error(err),
		)
		telemetry.IntegrityFailures.Inc()
		telemetry.CheckoutAttempts.WithLabelValues("persistence_failure").Inc()
		return o.finish(ctx, req.SessionID, &models.CheckoutResult{
			RedirectTarget: redirectPaymentForm,
			Outcome: models.SessionOutcome{
				Message:  msgPaymentDeclined,
				Severity: models.SeverityDanger,
			},
		})
	}
	order.ID = orderID

	outcome := resolveOutcome(order)
	telemetry.CheckoutAttempts.WithLabelValues(strings.ToLower(string(order.Status))).Inc()

	result := o.finish(ctx, req.SessionID, &models.CheckoutResult{
		RedirectTarget: redirectOrderPrefix + orderID,
		OrderID:        orderID,
		Outcome:        outcome,
	})

	o.runPostCommitEffects(ctx, req.SessionID, order, &outcome)

	return result
}

// finish stores the outcome for the next rendered response and returns the
// result. A session write failure cannot change the already-decided outcome.
func (o *Orchestrator) finish(ctx context.Context, sessionID string, result *models.CheckoutResult) *models.CheckoutResult {
	if err := o.sessions.SetOutcome(ctx, sessionID, &result.Outcome); err != nil {
		telemetry.Logger.Error("Failed to store session outcome",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		telemetry.EffectFailures.WithLabelValues("session").Inc()
	}
	return result
}

// runPostCommitEffects triggers everything downstream of a durable order
// write. Each effect is fault-isolated: a failure is logged and counted, never
// propagated, and never undoes the committed order. The index refresh
// completes before the notification is dispatched.
func (o *Orchestrator) runPostCommitEffects(ctx context.Context, sessionID string, order *models.Order, outcome *models.SessionOutcome) {
	if err := o.indexer.ReindexOrders(ctx); err != nil {
		telemetry.Logger.Error("Order index refresh failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		telemetry.EffectFailures.WithLabelValues("index").Inc()
	}

	if order.Status == models.OrderStatusPaid {
		if err := o.sessions.ClearCart(ctx, sessionID); err != nil {
			telemetry.Logger.Error("Cart reset failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			telemetry.EffectFailures.WithLabelValues("cart").Inc()
		}

		o.sendNotification(order, outcome)
	}

	if err := o.events.PublishOrderRecorded(ctx, order); err != nil {
		telemetry.Logger.Error("Order event publish failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		telemetry.EffectFailures.WithLabelValues("events").Inc()
	}
}

func (o *Orchestrator) sendNotification(order *models.Order, outcome *models.SessionOutcome) {
	body, err := mailer.PaymentEmail(mailer.PaymentResults{
		Message:  outcome.Message,
		Severity: string(outcome.Severity),
		Approved: outcome.Approved,
		Details:  template.HTML(outcome.Details),
	})
	if err != nil {
		telemetry.Logger.Error("Payment email render failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		telemetry.EffectFailures.WithLabelValues("email").Inc()
		return
	}

	subject := fmt.Sprintf("Your payment with %s", o.cartTitle)
	if err := o.mailer.Send(outcome.NotifyEmail, subject, body); err != nil {
		telemetry.Logger.Error("Payment email send failed",
			zap.String("order_id", order.ID),
			zap.String("to", outcome.NotifyEmail),
			zap.Error(err),
		)
		telemetry.EffectFailures.WithLabelValues("email").Inc()
	}
}

// buildOrder assembles the immutable order document from the cart snapshot
// and the gateway outcome. A declined charge still becomes an order.
func buildOrder(cart *models.CartSnapshot, charge *models.ChargeOutcome, gatewayName string) *models.Order {
	status := models.OrderStatusPaid
	if !charge.Approved {
		status = models.OrderStatusDeclined
	}

	return &models.Order{
		PaymentID:      charge.TransactionID,
		PaymentGateway: gatewayName,
		PaymentMessage: fmt.Sprintf("%s - %s", charge.ResponseCode, charge.ResponseText),
		Total:          cart.TotalAmount,
		Shipping:       cart.TotalShipping,
		ItemCount:      cart.ItemCount,
		ProductCount:   cart.ProductCount,
		Customer:       cart.Customer,
		Comment:        cart.OrderComment,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
		Products:       cart.Products,
		Type:           orderTypeSingle,
	}
}

// resolveOutcome maps a persisted order to the caller-visible outcome. Pure.
func resolveOutcome(order *models.Order) models.SessionOutcome {
	details := fmt.Sprintf(
		"<p><strong>Order ID: </strong>%s</p><p><strong>Transaction ID: </strong>%s</p>",
		order.ID, order.PaymentID,
	)

	if order.Status == models.OrderStatusPaid {
		return models.SessionOutcome{
			Message:     msgPaymentSuccessful,
			Severity:    models.SeveritySuccess,
			Approved:    true,
			Details:     details,
			NotifyEmail: order.Customer.Email,
		}
	}

	return models.SessionOutcome{
		Message:  msgPaymentDeclined,
		Severity: models.SeverityDanger,
		Details:  details,
	}
}
