package handlers

import (
	"net/http"

	"rentnest/middleware"
	"rentnest/models"
	"rentnest/services/enquiry"
	"rentnest/utils"

	"github.com/gin-gonic/gin"
)

// EnquiryHandler exposes enquiry endpoints.
type EnquiryHandler struct {
	Service enquiry.EnquiryService
}

// NewEnquiryHandler creates an EnquiryHandler.
func NewEnquiryHandler(service enquiry.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{Service: service}
}

// Create records an enquiry from the authenticated tenant.
func (h *EnquiryHandler) Create(c *gin.Context) {
	var input models.EnquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	enq, err := h.Service.Create(middleware.UserID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create enquiry", err.Error())
		return
	}
	c.JSON(http.StatusCreated, enq)
}

// ListMine returns enquiries addressed to the authenticated landlord.
func (h *EnquiryHandler) ListMine(c *gin.Context) {
	enquiries, err := h.Service.GetByLandlord(middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load enquiries", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

// ListForProperty returns enquiries about one of the landlord's listings.
func (h *EnquiryHandler) ListForProperty(c *gin.Context) {
	enquiries, err := h.Service.GetByProperty(middleware.UserID(c), c.Param("propertyID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to load enquiries", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

// MarkAnswered flags an enquiry as handled.
func (h *EnquiryHandler) MarkAnswered(c *gin.Context) {
	if err := h.Service.MarkAnswered(middleware.UserID(c), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to mark enquiry answered", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "answered"})
}
