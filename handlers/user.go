package handlers

import (
	"net/http"

	"rentnest/middleware"
	"rentnest/models"
	"rentnest/services/user"
	"rentnest/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes account and profile endpoints.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// Register creates an account.
func (h *UserHandler) Register(c *gin.Context) {
	var reg models.UserRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(reg)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Authenticate signs a user in.
func (h *UserHandler) Authenticate(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "authentication failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Service.GetUserByID(middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// Update writes profile fields for the authenticated user.
func (h *UserHandler) Update(c *gin.Context) {
	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = middleware.UserID(c)

	updated, err := h.Service.UpdateUser(input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdatePassword changes the password (revokes outstanding tokens).
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.UpdatePassword(middleware.UserID(c), input.CurrentPassword, input.NewPassword); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "password update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// UpdateFCMToken stores the device push token.
func (h *UserHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.UpdateFCMToken(middleware.UserID(c), input.Token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update device token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Delete removes the authenticated user's account.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Service.DeleteUser(middleware.UserID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "delete failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SignOut revokes the authenticated user's tokens.
func (h *UserHandler) SignOut(c *gin.Context) {
	if err := h.Service.RevokeToken(middleware.UserID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "sign out failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
