package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shivangi00/e-business-card-generator/internal/middleware"
	"github.com/shivangi00/e-business-card-generator/internal/models"
	"github.com/shivangi00/e-business-card-generator/internal/services"
)

type ImageHandler struct {
	imageService *services.ImageService
	maxSizeMB    int64
}

func NewImageHandler(imageService *services.ImageService, maxSizeMB int64) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		maxSizeMB:    maxSizeMB,
	}
}

// Upload accepts a photo or logo image. With ?inline=true the bounded image
// comes back as a data URI instead of being written to the upload directory,
// so it can be embedded straight into the profile document.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	// Limit request body size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxSizeMB * 1024 * 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("File too large or invalid form data"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No image file provided"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image type. Allowed: JPEG, PNG, GIF"))
		return
	}

	if r.URL.Query().Get("inline") == "true" {
		dataURI, err := services.EncodeBounded(file, services.DefaultMaxImageWidth, services.DefaultMaxImageHeight)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image data"))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.InlineImageResponse{DataURI: dataURI}))
		return
	}

	response, err := h.imageService.Upload(userID, header.Filename, file)
	if err != nil {
		if err == services.ErrInvalidImage {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid image data"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upload image"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(response))
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewUnauthorizedResponse())
		return
	}

	imageID := chi.URLParam(r, "imageId")

	err := h.imageService.Delete(userID, imageID)
	if err != nil {
		if err == services.ErrImageNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Image not found"))
			return
		}
		if err == services.ErrUnauthorized {
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this image"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete image"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Image deleted successfully"}))
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
	}
	return validTypes[contentType]
}
