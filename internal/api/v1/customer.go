package v1

import (
	"net/http"
	"strconv"

	"github.com/apnmt/payment/internal/api/dto"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a customer
// @Description Create a billing customer for an organization
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer configuration"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		h.log.Errorw("failed to create customer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	resp, err := h.service.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a customer by organization
// @Tags Customers
// @Produce json
// @Param organization_id path int true "Organization ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/organization/{organization_id} [get]
func (h *CustomerHandler) GetCustomerByOrganization(c *gin.Context) {
	organizationID, err := strconv.ParseInt(c.Param("organization_id"), 10, 64)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Organization ID must be an integer").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCustomerByOrganization(c.Request.Context(), organizationID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List customers
// @Tags Customers
// @Produce json
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	resp, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a customer
// @Description Delete a customer and all of its subscriptions
// @Tags Customers
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.service.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Errorw("failed to delete customer", "error", err, "customer_id", c.Param("id"))
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
