package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"gatherly/internal/delivery/http/helpers"
	"gatherly/internal/domain"
)

// maxUploadBytes caps a single gallery image upload at 10 MiB.
const maxUploadBytes = 10 << 20

type GalleryController struct {
	Logger  *slog.Logger
	Gallery domain.GalleryService
	Guests  domain.GuestService
}

func NewGalleryController(logger *slog.Logger, gallery domain.GalleryService, guests domain.GuestService) *GalleryController {
	return &GalleryController{
		Logger:  logger,
		Gallery: gallery,
		Guests:  guests,
	}
}

// GalleryImageSuccessResponse is the success response envelope for the upload endpoint.
type GalleryImageSuccessResponse struct {
	Data  *domain.GalleryImage `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GalleryListSuccessResponse is the success response envelope for the gallery listing.
type GalleryListSuccessResponse struct {
	Data  []*domain.GalleryImageWithURL `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// Upload godoc
// @Summary Upload an image to an event's gallery
// @Description Accepts a multipart form with a "file" part. Only the event's host or a guest with an RSVP for the event may upload.
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param file formData file true "Image file"
// @Success 201 {object} controllers.GalleryImageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/images [post]
func (c *GalleryController) Upload(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	guest, ok := requireGuest(w, r, c.Guests)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "failed to read file")
		return
	}

	image, err := c.Gallery.Upload(r.Context(), eventID, guest.ID, data, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, image)
}

// List godoc
// @Summary List an event's gallery images with signed URLs
// @Description Each image carries a fresh time-bounded signed URL. Images whose grant could not be issued are omitted from the result.
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GalleryListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/images [get]
func (c *GalleryController) List(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	images, err := c.Gallery.ListImages(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, images)
}

// Delete godoc
// @Summary Delete a gallery image
// @Description Removes the blob first, then the metadata record. Only the uploader or the event's host may delete.
// @Tags gallery
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param imageID path string true "Image ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/images/{imageID} [delete]
func (c *GalleryController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	imageID, ok := pathUUID(w, r, "imageID")
	if !ok {
		return
	}

	guest, ok := requireGuest(w, r, c.Guests)
	if !ok {
		return
	}

	if err := c.Gallery.DeleteImage(r.Context(), eventID, guest.ID, imageID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "image not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
