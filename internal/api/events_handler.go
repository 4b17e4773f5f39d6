package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/digidesa/desa-cms/internal/content"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type eventPayload struct {
	Judul          string `form:"judul" json:"judul"`
	Deskripsi      string `form:"deskripsi" json:"deskripsi"`
	TanggalMulai   string `form:"tanggal_mulai" json:"tanggal_mulai"`
	TanggalSelesai string `form:"tanggal_selesai" json:"tanggal_selesai"`
	Lokasi         string `form:"lokasi" json:"lokasi"`
}

// parseEventDate accepts the date formats the admin frontend sends.
func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func (s *APIService) listEvents(c echo.Context) error {
	items, err := s.eventRepo.List(c.Request().Context())
	if err != nil {
		s.log.Error("fetching events failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch events")
	}

	base := requestBase(c)
	s.events.ResolveAll(base, items)

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"data":          items,
		"imageBasePath": s.events.BasePath(base),
	})
}

func (s *APIService) getEvent(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}
	item, err := s.events.Get(c.Request().Context(), requestBase(c), id)
	if err != nil {
		return respondDomainError(c, err, "Event not found", "Failed to fetch event")
	}
	return respondOK(c, item)
}

func (s *APIService) createEvent(c echo.Context) error {
	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Judul == "" || payload.TanggalMulai == "" {
		return respondError(c, http.StatusBadRequest, "Judul and tanggal_mulai are required")
	}

	mulai, err := parseEventDate(payload.TanggalMulai)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	var selesai *time.Time
	if payload.TanggalSelesai != "" {
		t, err := parseEventDate(payload.TanggalSelesai)
		if err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		selesai = &t
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	rec := &content.Event{
		Judul:          payload.Judul,
		Deskripsi:      payload.Deskripsi,
		TanggalMulai:   mulai,
		TanggalSelesai: selesai,
		Lokasi:         payload.Lokasi,
	}

	created, err := s.events.Create(c.Request().Context(), requestBase(c), rec, upload)
	if err != nil {
		s.log.Error("creating event failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create event")
	}
	return respondMessage(c, http.StatusCreated, created, "Event created successfully")
}

func (s *APIService) updateEvent(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	existing, err := s.eventRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Event not found", "Failed to update event")
	}

	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Judul != "" {
		existing.Judul = payload.Judul
	}
	if payload.Deskripsi != "" {
		existing.Deskripsi = payload.Deskripsi
	}
	if payload.Lokasi != "" {
		existing.Lokasi = payload.Lokasi
	}
	if payload.TanggalMulai != "" {
		t, err := parseEventDate(payload.TanggalMulai)
		if err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		existing.TanggalMulai = t
	}
	if payload.TanggalSelesai != "" {
		t, err := parseEventDate(payload.TanggalSelesai)
		if err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		existing.TanggalSelesai = &t
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.events.Update(c.Request().Context(), requestBase(c), existing, upload)
	if err != nil {
		s.log.Error("updating event failed", zap.Int64("id", id), zap.Error(err))
		return respondDomainError(c, err, "Event not found", "Failed to update event")
	}
	return respondMessage(c, http.StatusOK, updated, "Event updated successfully")
}

func (s *APIService) deleteEvent(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	deletedID, err := s.events.Delete(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Event not found", "Failed to delete event")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Event deleted successfully",
		"deletedId": deletedID,
	})
}
