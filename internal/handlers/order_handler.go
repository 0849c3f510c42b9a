package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/models"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

type OrderHandler struct {
	repo     interfaces.OrderRepository
	sessions interfaces.SessionStore
}

func NewOrderHandler(repo interfaces.OrderRepository, sessions interfaces.SessionStore) *OrderHandler {
	return &OrderHandler{repo: repo, sessions: sessions}
}

// GetPaymentComplete serves the order confirmation page data. When a session
// id is supplied the stored outcome is returned alongside and cleared, so it
// renders at most once.
func (h *OrderHandler) GetPaymentComplete(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.repo.GetByID(c.Request.Context(), orderID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		telemetry.Logger.Error("Failed to fetch order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	var outcome *models.SessionOutcome
	if sessionID := c.Query("sessionId"); sessionID != "" {
		outcome, err = h.sessions.TakeOutcome(c.Request.Context(), sessionID)
		if err != nil {
			telemetry.Logger.Error("Failed to read session outcome",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"outcome": outcome,
	})
}
