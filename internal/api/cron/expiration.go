package cron

import (
	"net/http"
	"time"

	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

// ExpirationCronHandler handles expiration related cron jobs
type ExpirationCronHandler struct {
	expirationService service.SubscriptionExpirationService
	logger            *logger.Logger
}

// NewExpirationCronHandler creates a new expiration cron handler
func NewExpirationCronHandler(
	expirationService service.SubscriptionExpirationService,
	logger *logger.Logger,
) *ExpirationCronHandler {
	return &ExpirationCronHandler{
		expirationService: expirationService,
		logger:            logger,
	}
}

// CheckExpirations sweeps expired subscriptions and publishes deactivation events
func (h *ExpirationCronHandler) CheckExpirations(c *gin.Context) {
	h.logger.Infow("starting expiration check cron job", "time", time.Now().UTC().Format(time.RFC3339))

	if err := h.expirationService.CheckExpirationOfSubscriptions(c.Request.Context()); err != nil {
		h.logger.Errorw("failed to check expirations", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed expiration check cron job")
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
