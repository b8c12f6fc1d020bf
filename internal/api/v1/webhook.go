package v1

import (
	"io"
	"net/http"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	service service.StripeWebhookService
	log     *logger.Logger
}

func NewWebhookHandler(service service.StripeWebhookService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log,
	}
}

// @Summary Receive a billing provider webhook
// @Description Accept a provider event, acknowledge immediately, and reconcile asynchronously
// @Tags Webhooks
// @Accept plain
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ProcessEvent(payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.log.Errorw("rejected provider webhook", "error", err)
		c.Error(err)
		return
	}

	// Reconciliation continues in the background; acknowledge the delivery.
	c.Status(http.StatusNoContent)
}
