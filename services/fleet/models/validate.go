package models

import (
	"fmt"
	"strings"

	"fleet-registry/lib/apperrors"
)

const DefaultStatus = "active"

// Normalize trims every string field and applies the status default. Called
// before Validate so stored records never carry padding or an empty status.
func (in *VehicleInput) Normalize() {
	in.VehicleName = strings.TrimSpace(in.VehicleName)
	in.DriverName = strings.TrimSpace(in.DriverName)
	in.ConductorName = strings.TrimSpace(in.ConductorName)
	in.VehicleType = strings.TrimSpace(in.VehicleType)
	in.Source = strings.TrimSpace(in.Source)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = DefaultStatus
	}
}

// Validate enforces the write-time invariants against the configured
// allow-lists. conductorName stays optional.
func (in *VehicleInput) Validate(vehicleTypes, statuses []string) error {
	if in.VehicleName == "" {
		return apperrors.NewValidation("Vehicle name is required")
	}
	if in.DriverName == "" {
		return apperrors.NewValidation("Driver name is required")
	}
	if in.VehicleType == "" {
		return apperrors.NewValidation("Vehicle type is required")
	}
	if !contains(vehicleTypes, in.VehicleType) {
		return apperrors.NewValidation(fmt.Sprintf("Vehicle type must be one of %s", strings.Join(vehicleTypes, ", ")))
	}
	if in.Source == "" {
		return apperrors.NewValidation("Source is required")
	}
	if in.Destination == "" {
		return apperrors.NewValidation("Destination is required")
	}
	if !contains(statuses, in.Status) {
		return apperrors.NewValidation(fmt.Sprintf("Status must be one of %s", strings.Join(statuses, ", ")))
	}
	if in.FuelEfficiency < 1 {
		return apperrors.NewValidation("Fuel efficiency must be at least 1 km/l")
	}
	return nil
}

// Active resolves the isActive flag, defaulting to true when omitted.
func (in *VehicleInput) Active() bool {
	if in.IsActive == nil {
		return true
	}
	return *in.IsActive
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
