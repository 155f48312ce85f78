package handlers

import (
	"net/http"

	"rentnest/middleware"
	"rentnest/utils"

	"github.com/gin-gonic/gin"
)

// AddToWishlist saves a listing to the authenticated user's wishlist.
func (h *UserHandler) AddToWishlist(c *gin.Context) {
	propertyID := c.Param("propertyID")
	if err := h.Service.AddToWishlist(middleware.UserID(c), propertyID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to add to wishlist", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// RemoveFromWishlist drops a listing from the wishlist.
func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	propertyID := c.Param("propertyID")
	if err := h.Service.RemoveFromWishlist(middleware.UserID(c), propertyID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to remove from wishlist", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetWishlist returns the user's saved listings.
func (h *UserHandler) GetWishlist(c *gin.Context) {
	properties, err := h.Service.GetWishlist(middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load wishlist", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": properties})
}
