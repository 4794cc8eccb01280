package handler

import (
	"net/http"

	"telechat/internal/services"
	"telechat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns public profiles for the member picker, excluding the caller.
func (h *UserHandler) List(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpdto.ListUsersResponse{Users: httpdto.FromUserInfoSlice(users)})
}

// SetAvatar persists an uploaded avatar URL on the caller's profile.
func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req httpdto.SetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.service.SetAvatar(c.Request.Context(), userID, req.AvatarURL); err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
