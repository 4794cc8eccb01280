package handler

import (
	"net/http"

	"telechat/internal/services"
	"telechat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// PresignAvatar hands out a presigned S3 PUT URL for an avatar image.
func (h *UploadHandler) PresignAvatar(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req httpdto.PresignAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request"})
		return
	}

	res, err := h.service.PresignAvatar(c.Request.Context(), services.PresignAvatarInput{
		UploaderID:  userID,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		c.JSON(services.HTTPStatus(err), httpdto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, httpdto.PresignAvatarResponse{
		Success:   true,
		UploadURL: res.UploadURL,
		FileURL:   res.FileURL,
		Headers:   res.Headers,
	})
}
