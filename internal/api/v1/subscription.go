package v1

import (
	"net/http"

	"github.com/apnmt/payment/internal/api/dto"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a subscription
// @Description Checkout: create a subscription for a customer with the given price line items
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription configuration"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSubscription(c.Request.Context(), &req)
	if err != nil {
		h.log.Errorw("failed to create subscription", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	resp, err := h.service.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List subscriptions
// @Tags Subscriptions
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Success 200 {array} dto.SubscriptionResponse
// @Router /subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	var (
		resp []*dto.SubscriptionResponse
		err  error
	)
	if customerID := c.Query("customer_id"); customerID != "" {
		resp, err = h.service.ListSubscriptionsByCustomer(c.Request.Context(), customerID)
	} else {
		resp, err = h.service.ListSubscriptions(c.Request.Context())
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a subscription
// @Description Cancel a subscription at the billing provider and delete the local record
// @Tags Subscriptions
// @Param id path string true "Subscription ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	if err := h.service.CancelSubscription(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Errorw("failed to cancel subscription", "error", err, "subscription_id", c.Param("id"))
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
