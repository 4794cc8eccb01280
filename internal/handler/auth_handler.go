// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"telechat/internal/services"
	"telechat/internal/transport/httpdto"
	telechat_errors "telechat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the action-dispatch auth endpoint.
type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Handle dispatches POST /auth on the request body's action field.
// Unknown actions answer HTTP 200 with an error object, matching what the
// legacy client expects.
func (h *AuthHandler) Handle(c *gin.Context) {
	var req httpdto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	switch req.Action {
	case "send_code":
		h.sendCode(c, req)
	case "verify_code":
		h.verifyCode(c, req)
	default:
		c.JSON(http.StatusOK, httpdto.ErrorResponse{Error: "Unknown action"})
	}
}

func (h *AuthHandler) sendCode(c *gin.Context, req httpdto.AuthRequest) {
	res, err := h.service.SendCode(c.Request.Context(), req.Phone)
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpdto.SendCodeResponse{
		Success: true,
		Message: res.Message,
		Phone:   req.Phone,
	})
}

func (h *AuthHandler) verifyCode(c *gin.Context, req httpdto.AuthRequest) {
	res, err := h.service.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		// Wrong or expired code is a soft failure with HTTP 200.
		if errors.Is(err, telechat_errors.ErrUnauthorized) {
			c.JSON(http.StatusOK, httpdto.VerifyCodeResponse{
				Success:  true,
				Verified: false,
				Message:  "Неверный код",
			})
			return
		}
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpdto.VerifyCodeResponse{
		Success:     true,
		Verified:    true,
		UserID:      res.UserID.String(),
		Phone:       req.Phone,
		AccessToken: res.AccessToken,
	})
}
