package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webstore/checkout-orchestrator/internal/interfaces"
	"github.com/webstore/checkout-orchestrator/internal/models"
	"github.com/webstore/checkout-orchestrator/internal/service"
	"github.com/webstore/checkout-orchestrator/internal/telemetry"
)

type CheckoutHandler struct {
	orchestrator *service.Orchestrator
	sessions     interfaces.SessionStore
}

func NewCheckoutHandler(orchestrator *service.Orchestrator, sessions interfaces.SessionStore) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		sessions:     sessions,
	}
}

type checkoutForm struct {
	SessionID        string `form:"sessionId" binding:"required"`
	SingleUseTokenID string `form:"singleUseTokenId"`
}

// CheckoutAction accepts a submitted checkout and redirects to wherever the
// pipeline resolved: the order confirmation page for any persisted order, or
// back to the payment form on failure.
func (h *CheckoutHandler) CheckoutAction(c *gin.Context) {
	var form checkoutForm
	if err := c.ShouldBind(&form); err != nil {
		telemetry.Logger.Error("Error decoding checkout form", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.sessions.Cart(c.Request.Context(), form.SessionID)
	if err != nil {
		telemetry.Logger.Error("Error reading session cart",
			zap.String("session_id", form.SessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "no cart for session"})
		return
	}

	result := h.orchestrator.SubmitCheckout(c.Request.Context(), models.CheckoutRequest{
		SessionID:        form.SessionID,
		SingleUseTokenID: form.SingleUseTokenID,
		Cart:             *cart,
	})

	c.Redirect(http.StatusFound, result.RedirectTarget)
}
