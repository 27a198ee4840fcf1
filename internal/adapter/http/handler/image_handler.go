package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
)

const multipartMemory = 32 << 20

type ImageHandler struct {
	images   ImageService
	maxBytes int64
	logger   *logger.Logger
}

// NewImageHandler caps request bodies slightly above maxBytes so the usecase
// can report oversize files with a proper error.
func NewImageHandler(images ImageService, maxBytes int64, log *logger.Logger) *ImageHandler {
	return &ImageHandler{images: images, maxBytes: maxBytes, logger: log.Named("ImageHandler")}
}

func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(1<<20))
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrInvalidInput, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: field \"file\" is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: read upload: %v", domain.ErrInvalidInput, err))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.images.UploadImage(r.Context(), middleware.ViewerFrom(r.Context()), header.Filename, contentType, data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, imageResponse{URL: url})
}
