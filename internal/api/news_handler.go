package api

import (
	"net/http"

	"github.com/digidesa/desa-cms/internal/content"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type newsPayload struct {
	Judul   string `form:"judul" json:"judul" validate:"required"`
	Konten  string `form:"konten" json:"konten" validate:"required"`
	Excerpt string `form:"excerpt" json:"excerpt"`
	Penulis string `form:"penulis" json:"penulis"`
	Status  string `form:"status" json:"status" validate:"omitempty,oneof=draft published"`
}

func (s *APIService) listNews(c echo.Context) error {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	status := c.QueryParam("status")
	if status == "" {
		status = "published"
	}

	result, err := s.newsRepo.List(c.Request().Context(), page, limit, status)
	if err != nil {
		s.log.Error("fetching news failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch news")
	}

	base := requestBase(c)
	s.news.ResolveAll(base, result.Items)

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"data":          result.Items,
		"total":         result.Total,
		"page":          result.Page,
		"limit":         result.Limit,
		"totalPages":    result.TotalPages,
		"imageBasePath": s.news.BasePath(base),
	})
}

func (s *APIService) getNewsBySlug(c echo.Context) error {
	item, err := s.newsRepo.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return respondDomainError(c, err, "News not found", "Failed to fetch news")
	}
	s.news.Resolve(requestBase(c), item)
	return respondOK(c, item)
}

func (s *APIService) createNews(c echo.Context) error {
	var payload newsPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	rec := &content.News{
		Judul:   payload.Judul,
		Slug:    content.Slugify(payload.Judul),
		Konten:  payload.Konten,
		Excerpt: payload.Excerpt,
		Penulis: payload.Penulis,
		Status:  payload.Status,
	}

	created, err := s.news.Create(c.Request().Context(), requestBase(c), rec, upload)
	if err != nil {
		s.log.Error("creating news failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create news")
	}
	return respondMessage(c, http.StatusCreated, created, "News created successfully")
}

func (s *APIService) updateNews(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	existing, err := s.newsRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "News item not found", "Failed to update news")
	}

	// Empty payload fields keep their current values.
	var payload newsPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Judul != "" {
		existing.Judul = payload.Judul
	}
	if payload.Konten != "" {
		existing.Konten = payload.Konten
	}
	if payload.Excerpt != "" {
		existing.Excerpt = payload.Excerpt
	}
	if payload.Penulis != "" {
		existing.Penulis = payload.Penulis
	}
	if payload.Status != "" {
		existing.Status = payload.Status
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.news.Update(c.Request().Context(), requestBase(c), existing, upload)
	if err != nil {
		s.log.Error("updating news failed", zap.Int64("id", id), zap.Error(err))
		return respondDomainError(c, err, "News item not found", "Failed to update news")
	}
	return respondMessage(c, http.StatusOK, updated, "News updated successfully")
}

func (s *APIService) deleteNews(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	deletedID, err := s.news.Delete(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "News item not found", "Failed to delete news")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "News deleted successfully",
		"deletedId": deletedID,
	})
}
