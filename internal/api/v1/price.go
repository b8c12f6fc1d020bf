package v1

import (
	"net/http"

	"github.com/apnmt/payment/internal/api/dto"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	service service.PriceService
	log     *logger.Logger
}

func NewPriceHandler(service service.PriceService, log *logger.Logger) *PriceHandler {
	return &PriceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a price
// @Tags Prices
// @Accept json
// @Produce json
// @Param price body dto.CreatePriceRequest true "Price configuration"
// @Success 201 {object} dto.PriceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /prices [post]
func (h *PriceHandler) CreatePrice(c *gin.Context) {
	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePrice(c.Request.Context(), &req)
	if err != nil {
		h.log.Errorw("failed to create price", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a price
// @Tags Prices
// @Produce json
// @Param id path string true "Price ID"
// @Success 200 {object} dto.PriceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /prices/{id} [get]
func (h *PriceHandler) GetPrice(c *gin.Context) {
	resp, err := h.service.GetPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List prices
// @Tags Prices
// @Produce json
// @Success 200 {array} dto.PriceResponse
// @Router /prices [get]
func (h *PriceHandler) ListPrices(c *gin.Context) {
	resp, err := h.service.ListPrices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a price
// @Tags Prices
// @Param id path string true "Price ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /prices/{id} [delete]
func (h *PriceHandler) DeletePrice(c *gin.Context) {
	if err := h.service.DeletePrice(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Errorw("failed to delete price", "error", err, "price_id", c.Param("id"))
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
