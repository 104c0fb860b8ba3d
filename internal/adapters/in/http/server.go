package http

import (
	"context"
	"log/slog"
	"net/http"

	"parcellocker/internal/core/application/usecases/commands"
	"parcellocker/internal/core/application/usecases/queries"
	"parcellocker/internal/core/domain/model/kernel"
	"parcellocker/internal/core/domain/model/resident"
	"parcellocker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/patrickmn/go-cache"
)

// The server depends on these rather than on concrete handlers so tests can
// stub them.
type (
	DepositHandler interface {
		Handle(ctx context.Context, cmd commands.DepositPackageCommand) (commands.DepositResult, error)
	}

	CollectHandler interface {
		Handle(ctx context.Context, cmd commands.CollectPackageCommand) (commands.CollectResult, error)
	}

	RegisterResidentHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterResidentCommand) (kernel.UUID, error)
	}

	UpdateResidentHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateResidentCommand) (*resident.Resident, error)
	}

	DeactivateResidentHandler interface {
		Handle(ctx context.Context, cmd commands.DeactivateResidentCommand) error
	}

	ResidentsHandler interface {
		Handle(ctx context.Context, q queries.GetResidentsQuery) (queries.GetResidentsQueryResponse, error)
	}

	ResidentByFlatHandler interface {
		Handle(ctx context.Context, q queries.GetResidentByFlatQuery) (queries.GetResidentByFlatQueryResponse, error)
	}

	TowersHandler interface {
		Handle(ctx context.Context, q queries.GetTowersQuery) ([]queries.GetTowersQueryResponse, error)
	}

	FlatsHandler interface {
		Handle(ctx context.Context, q queries.GetFlatsQuery) ([]string, error)
	}

	AvailabilityHandler interface {
		Handle(ctx context.Context, q queries.GetLockerAvailabilityQuery) (queries.GetLockerAvailabilityQueryResponse, error)
	}

	ActiveFlatsHandler interface {
		Handle(ctx context.Context, q queries.GetActiveFlatsQuery) ([]queries.GetActiveFlatsQueryResponse, error)
	}

	HardwareCommandsHandler interface {
		Handle(ctx context.Context, q queries.GetPendingHardwareCommandsQuery) ([]queries.GetPendingHardwareCommandsQueryResponse, error)
	}

	HealthChecker interface {
		Ping(ctx context.Context) error
	}
)

// Handlers groups the use cases the HTTP surface exposes.
type Handlers struct {
	Deposit            DepositHandler
	Collect            CollectHandler
	RegisterResident   RegisterResidentHandler
	UpdateResident     UpdateResidentHandler
	DeactivateResident DeactivateResidentHandler
	Residents          ResidentsHandler
	ResidentByFlat     ResidentByFlatHandler
	Towers             TowersHandler
	Flats              FlatsHandler
	Availability       AvailabilityHandler
	ActiveFlats        ActiveFlatsHandler
	HardwareCommands   HardwareCommandsHandler
	Health             HealthChecker
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	cache  *cache.Cache
	logger *slog.Logger
}

// NewServer wires the handlers. availability may be nil, which disables
// invalidation of cached availability responses.
func NewServer(h Handlers, availability *cache.Cache, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, cache: availability, logger: logger.With("component", "http")}
}

// Deposit handles POST /api/v1/deliveries.
func (s *Server) Deposit(c echo.Context) error {
	var req DepositRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "invalid request body")
	}

	locationID, err := kernel.UUIDFromString(req.LocationID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewDepositPackageCommand(locationID, req.FlatNumber, req.PackageSize, req.TrackingNumber, req.Company)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.Deposit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.invalidateAvailability(locationID)
	return c.JSON(http.StatusCreated, success(newDepositResponse(result)))
}

// Collect handles POST /api/v1/collections.
func (s *Server) Collect(c echo.Context) error {
	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "invalid request body")
	}

	locationID, err := kernel.UUIDFromString(req.LocationID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewCollectPackageCommand(locationID, req.Mobile, req.FlatNumber, req.ResidentName, req.OTP)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.Collect.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.invalidateAvailability(locationID)
	return c.JSON(http.StatusOK, success(newCollectResponse(result)))
}

// RegisterResident handles POST /api/v1/residents.
func (s *Server) RegisterResident(c echo.Context) error {
	var req RegisterResidentRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, "invalid request body")
	}

	locationID, err := kernel.UUIDFromString(req.LocationID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("location_id", err))
	}

	cmd, err := commands.NewRegisterResidentCommand(locationID, req.FlatNumber, req.FullName, req.Mobile, req.Email)
	if err != nil {
		return s.fail(c, err)
	}

	id, err := s.h.RegisterResident.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, success(RegisterResidentResponse{ID: id.String()}))
}

// GetAvailability handles GET /api/v1/locations/:id/availability.
func (s *Server) GetAvailability(c echo.Context) error {
	locationID, err := s.locationParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetLockerAvailabilityQuery(locationID)
	if err != nil {
		return s.fail(c, err)
	}

	sizes, err := s.h.Availability.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(sizes))
}

// GetActiveFlats handles GET /api/v1/locations/:id/active-flats.
func (s *Server) GetActiveFlats(c echo.Context) error {
	locationID, err := s.locationParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetActiveFlatsQuery(locationID)
	if err != nil {
		return s.fail(c, err)
	}

	flats, err := s.h.ActiveFlats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(flats))
}

// GetHardwareCommands handles GET /api/v1/locations/:id/hardware-commands.
func (s *Server) GetHardwareCommands(c echo.Context) error {
	locationID, err := s.locationParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetPendingHardwareCommandsQuery(locationID)
	if err != nil {
		return s.fail(c, err)
	}

	pending, err := s.h.HardwareCommands.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, success(pending))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if err := s.h.Health.Ping(c.Request().Context()); err != nil {
		s.logger.WarnContext(c.Request().Context(), "health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

func (s *Server) locationParam(c echo.Context) (kernel.UUID, error) {
	id, err := s.uuidParam(c, "id")
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("location id", err)
	}
	return id, nil
}

// uuidParam binds a simple-style path parameter the way generated OpenAPI
// servers do, so "/locations/%7Bid%7D" and friends fail the same way.
func (s *Server) uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	var id kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// availabilityKey is the cache key for an availability request. It is the
// canonical path, so "/locations/ABC.../availability" and its lowercase
// twin share one entry and one eviction.
func (s *Server) availabilityKey(c echo.Context) (string, bool) {
	id, err := s.uuidParam(c, "id")
	if err != nil {
		return "", false
	}
	return availabilityPath(id), true
}

func (s *Server) invalidateAvailability(locationID kernel.UUID) {
	if s.cache != nil {
		s.cache.Delete(availabilityPath(locationID))
	}
}

func availabilityPath(locationID kernel.UUID) string {
	return apiPrefix + "/locations/" + locationID.String() + "/availability"
}
