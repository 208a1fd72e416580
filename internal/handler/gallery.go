package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dukerupert/familytree/internal/gallery"
	"github.com/dukerupert/familytree/internal/metrics"
	"github.com/dukerupert/familytree/internal/model"
	"github.com/dukerupert/familytree/internal/store"
)

const maxUploadSize = 10 << 20

// GalleryNotifier is told about newly uploaded images.
type GalleryNotifier interface {
	GalleryImageAdded(img *model.GalleryImage)
}

// PhotoStorage holds uploaded photo blobs.
type PhotoStorage interface {
	Enabled() bool
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Open(ctx context.Context, key string) (*gallery.Photo, error)
	Delete(ctx context.Context, key string) error
}

type GalleryHandler struct {
	store    *store.GalleryStore
	photos   PhotoStorage
	notifier GalleryNotifier
	logger   *slog.Logger
}

func NewGalleryHandler(s *store.GalleryStore, photos PhotoStorage, notifier GalleryNotifier, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		store:    s,
		photos:   photos,
		notifier: notifier,
		logger:   logger.With("component", "gallery"),
	}
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.List()
	if err != nil {
		h.logger.Error("list gallery", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list gallery")
		return
	}
	if images == nil {
		images = []model.GalleryImage{}
	}
	writeJSON(w, http.StatusOK, images)
}

// View returns the lightbox view for the image at {index}.
func (h *GalleryHandler) View(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	images, err := h.store.List()
	if err != nil {
		h.logger.Error("list gallery", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list gallery")
		return
	}

	view, err := gallery.ViewAt(images, index)
	if errors.Is(err, gallery.ErrOutOfRange) {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open image")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Upload stores a multipart "photo" file in object storage and appends it to
// the gallery.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.photos.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "photo uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	description := strings.TrimSpace(r.FormValue("description"))

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo is required")
		return
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	contentType := http.DetectContentType(sniff[:n])
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "photo must be an image")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	key := gallery.NewKey(header.Filename)
	if err := h.photos.Put(r.Context(), key, contentType, file); err != nil {
		metrics.PhotoUploads.WithLabelValues("storage_error").Inc()
		h.logger.Error("upload photo", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "failed to store photo")
		return
	}

	img, err := h.store.Create("/photos/"+key, title, description, key)
	if err != nil {
		metrics.PhotoUploads.WithLabelValues("db_error").Inc()
		h.logger.Error("create gallery image", "key", key, "error", err)
		if derr := h.photos.Delete(r.Context(), key); derr != nil {
			h.logger.Error("delete orphaned photo", "key", key, "error", derr)
		}
		writeError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	metrics.PhotoUploads.WithLabelValues("ok").Inc()
	if h.notifier != nil {
		h.notifier.GalleryImageAdded(img)
	}
	writeJSON(w, http.StatusCreated, img)
}

// Photo streams an uploaded gallery photo. Only keys recorded in the
// gallery are served.
func (h *GalleryHandler) Photo(w http.ResponseWriter, r *http.Request) {
	if !h.photos.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}

	key := r.PathValue("key")
	if !gallery.ValidKey(key) {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	img, err := h.store.GetByObjectKey(key)
	if err != nil {
		h.logger.Error("get gallery image", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load photo")
		return
	}
	if img == nil {
		writeError(w, http.StatusNotFound, "photo not found")
		return
	}

	photo, err := h.photos.Open(r.Context(), key)
	switch {
	case errors.Is(err, gallery.ErrPhotoNotFound):
		writeError(w, http.StatusNotFound, "photo not found")
		return
	case err != nil:
		h.logger.Error("open photo", "error", err)
		writeError(w, http.StatusBadGateway, "failed to load photo")
		return
	}
	defer photo.Body.Close()

	if photo.ContentType != "" {
		w.Header().Set("Content-Type", photo.ContentType)
	}
	if photo.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(photo.ContentLength, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=86400")
	io.Copy(w, photo.Body)
}
