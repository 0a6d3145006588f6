package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"fleet-registry/lib/apperrors"
	"fleet-registry/lib/config"
	"fleet-registry/services/fleet/fuel"
	"fleet-registry/services/fleet/models"
	"fleet-registry/services/fleet/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	// Installs the allow-list and pricing defaults; a missing .env is fine.
	_ = config.LoadConfig()
}

// fakeRepo is an in-memory VehicleRepository with the same query semantics
// as the Mongo implementation.
type fakeRepo struct {
	vehicles []models.Vehicle
}

func (f *fakeRepo) Insert(_ context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	now := time.Now()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = now
	v.UpdatedAt = now
	f.vehicles = append(f.vehicles, *v)
	return v, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*models.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID.Hex() == id {
			v := f.vehicles[i]
			return &v, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepo) Update(_ context.Context, id string, v *models.Vehicle) (*models.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID.Hex() == id {
			v.ID = f.vehicles[i].ID
			v.CreatedAt = f.vehicles[i].CreatedAt
			v.UpdatedAt = time.Now()
			f.vehicles[i] = *v
			updated := f.vehicles[i]
			return &updated, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeRepo) DeleteByID(_ context.Context, id string) error {
	for i := range f.vehicles {
		if f.vehicles[i].ID.Hex() == id {
			f.vehicles = append(f.vehicles[:i], f.vehicles[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeRepo) Query(_ context.Context, q repository.ListQuery) ([]models.Vehicle, int64, error) {
	matched := []models.Vehicle{}
	for _, v := range f.vehicles {
		if q.Search != "" && !matchesSearch(v, q.Search) {
			continue
		}
		if q.Status != "" && v.Status != q.Status {
			continue
		}
		matched = append(matched, v)
	}

	asc := q.SortOrder == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch q.SortBy {
		case "vehicleName":
			less = matched[i].VehicleName < matched[j].VehicleName
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesSearch(v models.Vehicle, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{v.VehicleName, v.DriverName, v.Source, v.Destination} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.vehicles)), nil
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, v := range f.vehicles {
		if v.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, v := range f.vehicles {
		if v.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, v := range f.vehicles {
		if !v.CreatedAt.Before(from) && v.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) StatusBreakdown(_ context.Context) (map[string]int64, error) {
	breakdown := make(map[string]int64)
	for _, v := range f.vehicles {
		breakdown[v.Status]++
	}
	return breakdown, nil
}

func newTestService(repo repository.VehicleRepository) *FleetService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewFleetService(repo, fuel.NewEstimator(100), nil, log)
}

func testInput() models.VehicleInput {
	return models.VehicleInput{
		VehicleName:    "MH-12-AB-1234",
		DriverName:     "Ramesh",
		ConductorName:  "Suresh",
		VehicleType:    "truck",
		Source:         "Mumbai",
		Destination:    "Delhi",
		Status:         "active",
		FuelEfficiency: 10,
	}
}

func TestRegisterThenGetRoundtrip(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	saved, err := svc.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if saved.ID.IsZero() {
		t.Fatal("expected assigned id")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}
	if saved.EstimatedFuelCost != 14000 {
		t.Fatalf("expected derived cost 14000, got %v", saved.EstimatedFuelCost)
	}
	if !saved.IsActive {
		t.Fatal("expected isActive to default to true")
	}

	got, err := svc.Get(ctx, saved.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *saved {
		t.Fatalf("roundtrip mismatch:\nsaved %+v\ngot   %+v", saved, got)
	}
}

func TestRegisterValidationFailsBeforeStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	input := testInput()
	input.DriverName = ""
	_, err := svc.Register(context.Background(), input)
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.vehicles) != 0 {
		t.Fatal("store must not be touched on invalid input")
	}
}

func TestListPagination(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		in := testInput()
		in.VehicleName = "KA-" + string(rune('A'+i))
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
		// Spread createdAt so the sort order is unambiguous.
		repo.vehicles[i].CreatedAt = time.Date(2026, 8, 1, 0, 0, i, 0, time.UTC)
	}

	list, err := svc.List(ctx, ListParams{Page: 2, Limit: 6})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 10 {
		t.Fatalf("expected total 10, got %d", list.Total)
	}
	if list.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", list.TotalPages)
	}
	if len(list.Vehicles) != 4 {
		t.Fatalf("expected 4 records on page 2, got %d", len(list.Vehicles))
	}
	// createdAt desc: page 2 holds the 4 oldest records, newest of them first.
	if list.Vehicles[0].VehicleName != "KA-D" || list.Vehicles[3].VehicleName != "KA-A" {
		t.Fatalf("unexpected page 2 ordering: %v ... %v", list.Vehicles[0].VehicleName, list.Vehicles[3].VehicleName)
	}
}

func TestListDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	list, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Page != 1 || list.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", list.Page, list.Limit)
	}
	if list.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty store, got %d", list.TotalPages)
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	in := testInput() // source Mumbai
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register: %v", err)
	}
	other := testInput()
	other.Source = "Chennai"
	other.Destination = "Bangalore"
	if _, err := svc.Register(ctx, other); err != nil {
		t.Fatalf("Register: %v", err)
	}

	list, err := svc.List(ctx, ListParams{Search: "mumbai"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 match for %q, got %d", "mumbai", list.Total)
	}
	if list.Vehicles[0].Source != "Mumbai" {
		t.Fatalf("unexpected match: %+v", list.Vehicles[0])
	}
}

func TestListStatusFilterCombinesWithSearch(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	transit := testInput()
	transit.Status = "in-transit"
	if _, err := svc.Register(ctx, transit); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, testInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	list, err := svc.List(ctx, ListParams{Search: "mumbai", Status: "in-transit"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected 1 record matching search AND status, got %d", list.Total)
	}
}

func TestUpdateRecomputesDerivedCost(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	saved, err := svc.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	in := testInput()
	in.Source = "Pune"
	in.Destination = "Mumbai" // 150 km
	in.FuelEfficiency = 15
	updated, err := svc.Update(ctx, saved.ID.Hex(), in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.EstimatedFuelCost != 1000 {
		t.Fatalf("expected recomputed cost 1000, got %v", updated.EstimatedFuelCost)
	}
	if updated.ID != saved.ID {
		t.Fatal("id must be immutable")
	}
	if !updated.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatal("createdAt must be preserved on update")
	}
}

func TestUpdateInvalidInputDoesNotMutate(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	saved, err := svc.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	in := testInput()
	in.FuelEfficiency = 0
	_, err = svc.Update(ctx, saved.ID.Hex(), in)
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := svc.Get(ctx, saved.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *got != *saved {
		t.Fatalf("record mutated by failed update:\nbefore %+v\nafter  %+v", saved, got)
	}
}

func TestUpdateMissingID(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), testInput())
	if err != apperrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotentInEffect(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	saved, err := svc.Register(ctx, testInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Delete(ctx, saved.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID.Hex()); err != apperrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
	if len(repo.vehicles) != 0 {
		t.Fatal("store state changed by repeated delete")
	}
}

func TestStatsTotalsMatchBreakdown(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)
	ctx := context.Background()

	inactive := false
	seed := []struct {
		status string
		active *bool
	}{
		{"active", nil},
		{"active", nil},
		{"maintenance", &inactive},
		{"in-transit", nil},
		{"in-transit", nil},
		{"inactive", &inactive},
	}
	for _, s := range seed {
		in := testInput()
		in.Status = s.status
		in.IsActive = s.active
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalVehicles != 6 {
		t.Fatalf("expected 6 vehicles, got %d", stats.TotalVehicles)
	}
	if stats.ActiveVehicles != 4 {
		t.Fatalf("expected 4 active vehicles, got %d", stats.ActiveVehicles)
	}
	if stats.InTransitVehicles != 2 {
		t.Fatalf("expected 2 in-transit vehicles, got %d", stats.InTransitVehicles)
	}
	if stats.TodayRegistrations != 6 {
		t.Fatalf("expected 6 registrations today, got %d", stats.TodayRegistrations)
	}

	var sum int64
	for _, n := range stats.StatusBreakdown {
		sum += n
	}
	if sum != stats.TotalVehicles {
		t.Fatalf("breakdown sum %d != total %d", sum, stats.TotalVehicles)
	}
}
