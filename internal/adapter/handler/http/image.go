package http

import (
	"net/http"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/MikeRez0/shoptrack/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ImageHandler struct {
	Handler
	service port.Service
}

func NewImageHandler(service port.Service, logger *zap.Logger) (*ImageHandler, error) {
	return &ImageHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// UploadImage expects the picture in the multipart field "image".
func (ih *ImageHandler) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("image")
	if err != nil {
		ih.handleError(ctx, domain.NewValidationError("image", "file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		ih.handleError(ctx, err)
		return
	}
	defer file.Close()

	img, err := ih.service.UploadImage(ctx, header.Filename, file)
	if err != nil {
		ih.handleError(ctx, err)
		return
	}
	ih.handleSuccessWithStatus(ctx, imageResponse{PublicID: img.PublicID, URL: img.URL}, http.StatusCreated)
}

func (ih *ImageHandler) DeleteImage(ctx *gin.Context) {
	if err := ih.service.DeleteImage(ctx, ctx.Param("public_id")); err != nil {
		ih.handleError(ctx, err)
		return
	}
	ih.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
