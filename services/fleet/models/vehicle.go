package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is the persisted document. Field names match the admin UI payloads,
// so the same tags serve both the wire format and the collection.
type Vehicle struct {
	ID                primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	VehicleName       string             `json:"vehicleName" bson:"vehicleName"`
	DriverName        string             `json:"driverName" bson:"driverName"`
	ConductorName     string             `json:"conductorName" bson:"conductorName"`
	VehicleType       string             `json:"vehicleType" bson:"vehicleType"`
	Source            string             `json:"source" bson:"source"`
	Destination       string             `json:"destination" bson:"destination"`
	Status            string             `json:"status" bson:"status"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	FuelEfficiency    float64            `json:"fuelEfficiency" bson:"fuelEfficiency"`
	EstimatedFuelCost float64            `json:"estimatedFuelCost" bson:"estimatedFuelCost"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VehicleInput is the client-supplied state for register and full-record
// update. Id, timestamps and the derived fuel cost are never taken from it.
type VehicleInput struct {
	VehicleName    string  `json:"vehicleName"`
	DriverName     string  `json:"driverName"`
	ConductorName  string  `json:"conductorName"`
	VehicleType    string  `json:"vehicleType"`
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	Status         string  `json:"status"`
	IsActive       *bool   `json:"isActive"`
	FuelEfficiency float64 `json:"fuelEfficiency"`
}

// VehicleList is the paginated list envelope.
type VehicleList struct {
	Vehicles   []Vehicle `json:"vehicles"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// FleetStats is the aggregate view. The counts come from independent queries,
// so concurrent writers can make total and the breakdown sum diverge briefly.
type FleetStats struct {
	TotalVehicles      int64            `json:"totalVehicles"`
	ActiveVehicles     int64            `json:"activeVehicles"`
	InTransitVehicles  int64            `json:"inTransitVehicles"`
	TodayRegistrations int64            `json:"todayRegistrations"`
	StatusBreakdown    map[string]int64 `json:"statusBreakdown"`
	CurrentDate        string           `json:"currentDate"`
}
