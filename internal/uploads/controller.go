package uploads

import (
	"errors"
	"net/http"

	"etik/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	maxSize int64
}

func NewController(service Service, maxSize int64) *Controller {
	return &Controller{service: service, maxSize: maxSize}
}

// UploadImage handles POST /api/v1/uploads/images (multipart field "file")
func (c *Controller) UploadImage(ctx *gin.Context) {
	// Leave room for the multipart envelope around the file itself
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxSize+1<<20)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Image file is required", nil, err.Error())
		return
	}
	if fileHeader.Size > c.maxSize {
		response.RespondJSON(ctx, "error", http.StatusRequestEntityTooLarge, ErrFileTooLarge.Error(), nil, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to read image", nil, err.Error())
		return
	}
	defer file.Close()

	image, err := c.service.UploadImage(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case errors.Is(err, ErrFileTooLarge):
			response.RespondJSON(ctx, "error", http.StatusRequestEntityTooLarge, err.Error(), nil, nil)
		case errors.Is(err, ErrUnsupportedType):
			response.RespondJSON(ctx, "error", http.StatusUnsupportedMediaType, err.Error(), nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusBadGateway, "Image upload failed", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Image uploaded successfully", image, nil)
}
