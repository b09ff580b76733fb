package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lmalina/shape-rank/internal/maskimg"
	"github.com/lmalina/shape-rank/internal/session"
	"github.com/lmalina/shape-rank/internal/shapeapi"
)

// maxUploadSize bounds uploaded image payloads (32 MiB).
const maxUploadSize = 32 << 20

// maskThumbnailDim is the longest side of served mask previews.
const maskThumbnailDim = 256

// ImagesHandler handles image upload and mask preview endpoints.
type ImagesHandler struct {
	client  *shapeapi.Client
	session *session.Session
}

// NewImagesHandler creates a new images handler.
func NewImagesHandler(client *shapeapi.Client, sess *session.Session) *ImagesHandler {
	return &ImagesHandler{client: client, session: sess}
}

// Upload accepts a multipart image, forwards it to the backend's detection
// endpoint, and installs the detection result as the new session image.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	result, err := h.client.ProcessImageReader(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("image processing failed: %v", err))
		return
	}

	h.session.SetImage(result)
	respondJSON(w, http.StatusOK, result)
}

// MaskThumb serves a PNG preview of a detected object's mask bitmap.
func (h *ImagesHandler) MaskThumb(w http.ResponseWriter, r *http.Request) {
	objectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid object id")
		return
	}

	object := h.session.Object(objectID)
	if object == nil {
		respondError(w, http.StatusNotFound, "unknown object")
		return
	}

	data, err := maskimg.ThumbnailPNG(object.MaskCoords, maskThumbnailDim)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render mask: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
