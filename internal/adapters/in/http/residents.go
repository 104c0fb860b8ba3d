package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/application/usecases/queries"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UpdateResident handles PUT /api/v1/residents/:id. An empty status keeps
// the stored one; every other field is replaced as sent.
func (s *Server) UpdateResident(c echo.Context) error {
	residentID, err := s.uuidParam(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req UpdateResidentRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewUpdateResidentCommand(residentID, req.FlatNumber, req.FullName, req.Mobile, req.Email, req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.h.UpdateResident.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(newResidentResponse(updated)))
}

// DeactivateResident handles DELETE /api/v1/residents/:id. Residents are
// never removed; they go inactive and keep their delivery history.
func (s *Server) DeactivateResident(c echo.Context) error {
	residentID, err := s.uuidParam(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeactivateResidentCommand(residentID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.h.DeactivateResident.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListResidents handles GET /api/v1/residents.
//
// Query parameters: location_id, flat, q, status, page, per_page. All are
// optional.
func (s *Server) ListResidents(c echo.Context) error {
	filter := queries.ResidentFilter{
		FlatNumber: c.QueryParam("flat"),
		Search:     c.QueryParam("q"),
		Status:     resident.Status(c.QueryParam("status")),
	}
	if raw := c.QueryParam("location_id"); raw != "" {
		locationID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("location_id", err))
		}
		filter.LocationID = locationID
	}

	page, err := intQueryParam(c, "page")
	if err != nil {
		return s.fail(c, err)
	}
	perPage, err := intQueryParam(c, "per_page")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetResidentsQuery(filter, page, perPage)
	if err != nil {
		return s.fail(c, err)
	}

	list, err := s.h.Residents.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(list))
}

// GetResidentByFlat handles GET /api/v1/locations/:id/residents/:flat.
func (s *Server) GetResidentByFlat(c echo.Context) error {
	locationID, err := s.locationParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetResidentByFlatQuery(locationID, c.Param("flat"))
	if err != nil {
		return s.fail(c, err)
	}

	found, err := s.h.ResidentByFlat.Handle(c.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return s.fail(c, fmt.Errorf("%w: %w", commands.ErrResidentNotFound, err))
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(found))
}

// GetTowers handles GET /api/v1/locations.
func (s *Server) GetTowers(c echo.Context) error {
	towers, err := s.h.Towers.Handle(c.Request().Context(), queries.NewGetTowersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, success(towers))
}

// GetFlats handles GET /api/v1/locations/:id/flats.
func (s *Server) GetFlats(c echo.Context) error {
	locationID, err := s.locationParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetFlatsQuery(locationID)
	if err != nil {
		return s.fail(c, err)
	}

	flats, err := s.h.Flats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(flats))
}

func intQueryParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
