package handlers

import (
	"net/http"

	"rentnest/middleware"
	"rentnest/models"
	"rentnest/services/property"
	"rentnest/utils"

	"github.com/gin-gonic/gin"
)

// PropertyHandler exposes listing endpoints.
type PropertyHandler struct {
	Service property.PropertyService
}

// NewPropertyHandler creates a PropertyHandler.
func NewPropertyHandler(service property.PropertyService) *PropertyHandler {
	return &PropertyHandler{Service: service}
}

// Search returns a filtered page of active listings.
func (h *PropertyHandler) Search(c *gin.Context) {
	var filter models.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter", "details": err.Error()})
		return
	}

	result, err := h.Service.Search(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "search failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID returns a single listing.
func (h *PropertyHandler) GetByID(c *gin.Context) {
	p, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "property not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create stores a new listing for the authenticated landlord.
func (h *PropertyHandler) Create(c *gin.Context) {
	var input models.Property
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.Create(middleware.UserID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create listing", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update modifies a listing the landlord owns.
func (h *PropertyHandler) Update(c *gin.Context) {
	var input models.Property
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = c.Param("id")

	updated, err := h.Service.Update(middleware.UserID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update listing", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a listing the landlord owns.
func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(middleware.UserID(c), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to delete listing", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Mine lists the landlord's own properties.
func (h *PropertyHandler) Mine(c *gin.Context) {
	properties, err := h.Service.GetByLandlord(middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load listings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// UploadPhoto attaches a photo to a listing.
func (h *PropertyHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required", "details": err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to read photo", err.Error())
		return
	}
	defer file.Close()

	updated, err := h.Service.AddPhoto(c.Request.Context(), middleware.UserID(c), c.Param("id"), file)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to upload photo", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePhoto removes a photo from a listing.
func (h *PropertyHandler) DeletePhoto(c *gin.Context) {
	updated, err := h.Service.RemovePhoto(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("photoID"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to delete photo", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}
