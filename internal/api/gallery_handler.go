package api

import (
	"net/http"

	"github.com/digidesa/desa-cms/internal/content"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type galleryPayload struct {
	Judul     string `form:"judul" json:"judul"`
	Deskripsi string `form:"deskripsi" json:"deskripsi"`
	Kategori  string `form:"kategori" json:"kategori"`
}

func (s *APIService) listGalleries(c echo.Context) error {
	items, err := s.galleryRepo.List(c.Request().Context(), c.QueryParam("kategori"))
	if err != nil {
		s.log.Error("fetching galleries failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch galleries")
	}

	base := requestBase(c)
	s.gallery.ResolveAll(base, items)

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"data":          items,
		"count":         len(items),
		"imageBasePath": s.gallery.BasePath(base),
	})
}

func (s *APIService) getGallery(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}
	item, err := s.gallery.Get(c.Request().Context(), requestBase(c), id)
	if err != nil {
		return respondDomainError(c, err, "Gallery item not found", "Failed to fetch gallery item")
	}
	return respondOK(c, item)
}

func (s *APIService) createGallery(c echo.Context) error {
	var payload galleryPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	// Gallery entries are nothing without their image.
	if payload.Judul == "" || payload.Kategori == "" || upload == nil {
		return respondError(c, http.StatusBadRequest, "Judul, kategori, and image file are required")
	}

	rec := &content.GalleryItem{
		Judul:     payload.Judul,
		Deskripsi: payload.Deskripsi,
		Kategori:  payload.Kategori,
	}

	created, err := s.gallery.Create(c.Request().Context(), requestBase(c), rec, upload)
	if err != nil {
		s.log.Error("creating gallery item failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create gallery item")
	}
	return respondMessage(c, http.StatusCreated, created, "Gallery item created successfully")
}

func (s *APIService) updateGallery(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	existing, err := s.galleryRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Gallery item not found", "Failed to update gallery item")
	}

	var payload galleryPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Judul != "" {
		existing.Judul = payload.Judul
	}
	if payload.Deskripsi != "" {
		existing.Deskripsi = payload.Deskripsi
	}
	if payload.Kategori != "" {
		existing.Kategori = payload.Kategori
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.gallery.Update(c.Request().Context(), requestBase(c), existing, upload)
	if err != nil {
		s.log.Error("updating gallery item failed", zap.Int64("id", id), zap.Error(err))
		return respondDomainError(c, err, "Gallery item not found", "Failed to update gallery item")
	}
	return respondMessage(c, http.StatusOK, updated, "Gallery item updated successfully")
}

func (s *APIService) deleteGallery(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	deletedID, err := s.gallery.Delete(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Gallery item not found", "Failed to delete gallery item")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Gallery item deleted successfully",
		"deletedId": deletedID,
	})
}
