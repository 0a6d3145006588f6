package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-registry/lib/config"
	"fleet-registry/services/fleet/fuel"
	"fleet-registry/services/fleet/models"
	"fleet-registry/services/fleet/repository"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// FleetService orchestrates the vehicle resource: it validates input,
// derives the fuel cost, talks to the repository and shapes responses.
// It never persists anything the repository has not acknowledged.
type FleetService struct {
	repo         repository.VehicleRepository
	estimator    *fuel.Estimator
	eventsWriter *kafka.Writer
	log          *logrus.Logger
}

// ListParams are the caller-facing list knobs before defaulting.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	SortBy    string
	SortOrder string
}

func NewFleetService(repo repository.VehicleRepository, estimator *fuel.Estimator, eventsWriter *kafka.Writer, log *logrus.Logger) *FleetService {
	return &FleetService{
		repo:         repo,
		estimator:    estimator,
		eventsWriter: eventsWriter,
		log:          log,
	}
}

// Register validates the input, computes the estimated fuel cost and inserts
// the record. Validation runs before the store is touched.
func (s *FleetService) Register(ctx context.Context, input models.VehicleInput) (*models.Vehicle, error) {
	input.Normalize()
	if err := input.Validate(config.VehicleTypes(), config.VehicleStatuses()); err != nil {
		return nil, err
	}

	vehicle := s.buildVehicle(input)
	saved, err := s.repo.Insert(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	go s.produceVehicleEvent("registered", saved)
	return saved, nil
}

func (s *FleetService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

// List applies the defaults (page 1, limit 10, createdAt desc) and delegates
// to the repository query.
func (s *FleetService) List(ctx context.Context, params ListParams) (*models.VehicleList, error) {
	if params.Page < 1 {
		params.Page = DefaultPage
	}
	if params.Limit < 1 {
		params.Limit = DefaultLimit
	}
	if params.SortBy == "" {
		params.SortBy = "createdAt"
	}
	if params.SortOrder == "" {
		params.SortOrder = "desc"
	}

	vehicles, total, err := s.repo.Query(ctx, repository.ListQuery{
		Search:    params.Search,
		Status:    params.Status,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
		Skip:      int64(params.Page-1) * int64(params.Limit),
		Limit:     int64(params.Limit),
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &models.VehicleList{
		Vehicles:   vehicles,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update is a full-record replace: the input is re-validated exactly as in
// Register and the fuel cost recomputed. The stored record is untouched when
// validation fails.
func (s *FleetService) Update(ctx context.Context, id string, input models.VehicleInput) (*models.Vehicle, error) {
	input.Normalize()
	if err := input.Validate(config.VehicleTypes(), config.VehicleStatuses()); err != nil {
		return nil, err
	}

	vehicle := s.buildVehicle(input)
	updated, err := s.repo.Update(ctx, id, vehicle)
	if err != nil {
		return nil, err
	}

	go s.produceVehicleEvent("updated", updated)
	return updated, nil
}

// Delete removes the record for good. There is no tombstone; repeating the
// call reports not-found.
func (s *FleetService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	go s.produceVehicleEvent("deleted", vehicle)
	return nil
}

// Stats issues independent count queries; there is no cross-query snapshot,
// so the numbers are only consistent in the absence of concurrent writers.
func (s *FleetService) Stats(ctx context.Context) (*models.FleetStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	inTransit, err := s.repo.CountByStatus(ctx, "in-transit")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.repo.CountCreatedBetween(ctx, midnight, midnight.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	breakdown, err := s.repo.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	return &models.FleetStats{
		TotalVehicles:      total,
		ActiveVehicles:     active,
		InTransitVehicles:  inTransit,
		TodayRegistrations: today,
		StatusBreakdown:    breakdown,
		CurrentDate:        now.Format("1/2/2006"),
	}, nil
}

func (s *FleetService) buildVehicle(input models.VehicleInput) *models.Vehicle {
	return &models.Vehicle{
		VehicleName:       input.VehicleName,
		DriverName:        input.DriverName,
		ConductorName:     input.ConductorName,
		VehicleType:       input.VehicleType,
		Source:            input.Source,
		Destination:       input.Destination,
		Status:            input.Status,
		IsActive:          input.Active(),
		FuelEfficiency:    input.FuelEfficiency,
		EstimatedFuelCost: s.estimator.Estimate(input.Source, input.Destination, input.FuelEfficiency),
	}
}

// GracefulShutdown blocks until SIGINT/SIGTERM, drains the HTTP server and
// closes the audit writer.
func (s *FleetService) GracefulShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		s.log.WithError(err).Error("Server forced to shutdown")
	}

	if s.eventsWriter != nil {
		if err := s.eventsWriter.Close(); err != nil {
			s.log.WithError(err).Error("Error closing events writer")
		}
	}

	s.log.Info("Server exiting")
}
