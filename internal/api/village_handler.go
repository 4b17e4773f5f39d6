package api

import (
	"net/http"

	"github.com/digidesa/desa-cms/internal/village"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (s *APIService) getSettings(c echo.Context) error {
	settings, err := s.settings.Get(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err, "Settings not found", "Failed to fetch settings")
	}
	return respondOK(c, settings)
}

func (s *APIService) updateSettings(c echo.Context) error {
	existing, err := s.settings.Get(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err, "Settings not found", "Failed to update settings")
	}

	var payload village.Settings
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}

	payload.ID = existing.ID
	if payload.NamaDesa == "" {
		payload.NamaDesa = existing.NamaDesa
	}

	if err := s.settings.Update(c.Request().Context(), &payload); err != nil {
		s.log.Error("updating settings failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to update settings")
	}

	updated, err := s.settings.Get(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to update settings")
	}
	return respondMessage(c, http.StatusOK, updated, "Settings updated successfully")
}

type servicePayload struct {
	Nama        string `form:"nama" json:"nama"`
	Deskripsi   string `form:"deskripsi" json:"deskripsi"`
	Persyaratan string `form:"persyaratan" json:"persyaratan"`
	Biaya       string `form:"biaya" json:"biaya"`
	WaktuProses string `form:"waktu_proses" json:"waktu_proses"`
}

func (s *APIService) listServices(c echo.Context) error {
	items, err := s.services.List(c.Request().Context())
	if err != nil {
		s.log.Error("fetching services failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch services")
	}
	return respondOK(c, items)
}

func (s *APIService) getService(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}
	item, err := s.services.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Service not found", "Failed to fetch service")
	}
	return respondOK(c, item)
}

func (s *APIService) createService(c echo.Context) error {
	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Nama == "" {
		return respondError(c, http.StatusBadRequest, "Nama is required")
	}

	svc := &village.Service{
		Nama:        payload.Nama,
		Deskripsi:   payload.Deskripsi,
		Persyaratan: payload.Persyaratan,
		Biaya:       payload.Biaya,
		WaktuProses: payload.WaktuProses,
	}
	id, err := s.services.Create(c.Request().Context(), svc)
	if err != nil {
		s.log.Error("creating service failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create service")
	}

	created, err := s.services.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create service")
	}
	return respondMessage(c, http.StatusCreated, created, "Service created successfully")
}

func (s *APIService) updateService(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	existing, err := s.services.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Service not found", "Failed to update service")
	}

	var payload servicePayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Nama != "" {
		existing.Nama = payload.Nama
	}
	if payload.Deskripsi != "" {
		existing.Deskripsi = payload.Deskripsi
	}
	if payload.Persyaratan != "" {
		existing.Persyaratan = payload.Persyaratan
	}
	if payload.Biaya != "" {
		existing.Biaya = payload.Biaya
	}
	if payload.WaktuProses != "" {
		existing.WaktuProses = payload.WaktuProses
	}

	if err := s.services.Update(c.Request().Context(), existing); err != nil {
		s.log.Error("updating service failed", zap.Int64("id", id), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to update service")
	}
	return respondMessage(c, http.StatusOK, existing, "Service updated successfully")
}

func (s *APIService) deleteService(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	if _, err := s.services.GetByID(c.Request().Context(), id); err != nil {
		return respondDomainError(c, err, "Service not found", "Failed to delete service")
	}
	if err := s.services.Delete(c.Request().Context(), id); err != nil {
		s.log.Error("deleting service failed", zap.Int64("id", id), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to delete service")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Service deleted successfully",
		"deletedId": id,
	})
}

type submissionPayload struct {
	NamaPemohon     string `form:"nama_pemohon" json:"nama_pemohon" validate:"required"`
	NIK             string `form:"nik" json:"nik" validate:"required"`
	Alamat          string `form:"alamat" json:"alamat" validate:"required"`
	Telepon         string `form:"telepon" json:"telepon" validate:"required"`
	Email           string `form:"email" json:"email" validate:"omitempty,email"`
	Keperluan       string `form:"keperluan" json:"keperluan" validate:"required"`
	BerkasPendukung string `form:"berkas_pendukung" json:"berkas_pendukung"`
}

func (s *APIService) createSubmission(c echo.Context) error {
	serviceID, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid service id")
	}
	if _, err := s.services.GetByID(c.Request().Context(), serviceID); err != nil {
		return respondDomainError(c, err, "Service not found", "Failed to create submission")
	}

	var payload submissionPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	sub := &village.Submission{
		ServiceID:       serviceID,
		NamaPemohon:     payload.NamaPemohon,
		NIK:             payload.NIK,
		Alamat:          payload.Alamat,
		Telepon:         payload.Telepon,
		Email:           payload.Email,
		Keperluan:       payload.Keperluan,
		BerkasPendukung: payload.BerkasPendukung,
	}
	id, err := s.submissions.Create(c.Request().Context(), sub)
	if err != nil {
		s.log.Error("creating submission failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create submission")
	}

	created, err := s.submissions.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create submission")
	}
	return respondMessage(c, http.StatusCreated, created, "Submission created successfully")
}

func (s *APIService) listSubmissions(c echo.Context) error {
	items, err := s.submissions.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return respondDomainError(c, err, "Submissions not found", "Failed to fetch submissions")
	}
	return respondOK(c, items)
}

type submissionStatusPayload struct {
	Status  string `form:"status" json:"status" validate:"required"`
	Catatan string `form:"catatan" json:"catatan"`
}

func (s *APIService) updateSubmissionStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	var payload submissionStatusPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	if err := s.submissions.UpdateStatus(c.Request().Context(), id, payload.Status, payload.Catatan); err != nil {
		return respondDomainError(c, err, "Submission not found", "Failed to update submission")
	}

	updated, err := s.submissions.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to update submission")
	}
	return respondMessage(c, http.StatusOK, updated, "Submission updated successfully")
}
