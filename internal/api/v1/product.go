package v1

import (
	"net/http"

	"github.com/apnmt/payment/internal/api/dto"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service      service.ProductService
	priceService service.PriceService
	log          *logger.Logger
}

func NewProductHandler(service service.ProductService, priceService service.PriceService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:      service,
		priceService: priceService,
		log:          log,
	}
}

// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product configuration"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.log.Errorw("failed to create product", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	resp, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List products
// @Tags Products
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	resp, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List prices of a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} dto.PriceResponse
// @Router /products/{id}/prices [get]
func (h *ProductHandler) ListProductPrices(c *gin.Context) {
	resp, err := h.priceService.ListPricesByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Errorw("failed to delete product", "error", err, "product_id", c.Param("id"))
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
