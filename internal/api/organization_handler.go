package api

import (
	"net/http"
	"strconv"

	"github.com/digidesa/desa-cms/internal/content"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type memberPayload struct {
	Nama    string `form:"nama" json:"nama"`
	Jabatan string `form:"jabatan" json:"jabatan"`
	Urutan  string `form:"urutan" json:"urutan"`
}

func (s *APIService) listOrganization(c echo.Context) error {
	items, err := s.memberRepo.List(c.Request().Context())
	if err != nil {
		s.log.Error("fetching organization failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to fetch organization")
	}

	base := requestBase(c)
	s.members.ResolveAll(base, items)

	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"data":          items,
		"imageBasePath": s.members.BasePath(base),
	})
}

func (s *APIService) getOrganizationMember(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}
	item, err := s.members.Get(c.Request().Context(), requestBase(c), id)
	if err != nil {
		return respondDomainError(c, err, "Organization member not found", "Failed to fetch organization member")
	}
	return respondOK(c, item)
}

func (s *APIService) createOrganizationMember(c echo.Context) error {
	var payload memberPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Nama == "" || payload.Jabatan == "" {
		return respondError(c, http.StatusBadRequest, "Nama and jabatan are required")
	}

	urutan := 0
	if payload.Urutan != "" {
		v, err := strconv.Atoi(payload.Urutan)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid urutan")
		}
		urutan = v
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	rec := &content.OrganizationMember{
		Nama:    payload.Nama,
		Jabatan: payload.Jabatan,
		Urutan:  urutan,
	}

	created, err := s.members.Create(c.Request().Context(), requestBase(c), rec, upload)
	if err != nil {
		s.log.Error("creating organization member failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create organization member")
	}
	return respondMessage(c, http.StatusCreated, created, "Organization member created successfully")
}

func (s *APIService) updateOrganizationMember(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	existing, err := s.memberRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Organization member not found", "Failed to update organization member")
	}

	var payload memberPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if payload.Nama != "" {
		existing.Nama = payload.Nama
	}
	if payload.Jabatan != "" {
		existing.Jabatan = payload.Jabatan
	}
	if payload.Urutan != "" {
		v, err := strconv.Atoi(payload.Urutan)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "Invalid urutan")
		}
		existing.Urutan = v
	}

	upload, err := stagedUpload(c, "gambar")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	updated, err := s.members.Update(c.Request().Context(), requestBase(c), existing, upload)
	if err != nil {
		s.log.Error("updating organization member failed", zap.Int64("id", id), zap.Error(err))
		return respondDomainError(c, err, "Organization member not found", "Failed to update organization member")
	}
	return respondMessage(c, http.StatusOK, updated, "Organization member updated successfully")
}

func (s *APIService) deleteOrganizationMember(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid id")
	}

	deletedID, err := s.members.Delete(c.Request().Context(), id)
	if err != nil {
		return respondDomainError(c, err, "Organization member not found", "Failed to delete organization member")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Organization member deleted successfully",
		"deletedId": deletedID,
	})
}
