package service

import (
	"context"
	"encoding/json"
	"time"

	"fleet-registry/services/fleet/models"

	"github.com/segmentio/kafka-go"
)

// VehicleEvent is the audit record emitted on every successful write.
type VehicleEvent struct {
	Action      string    `json:"action"`
	VehicleID   string    `json:"vehicleId"`
	VehicleName string    `json:"vehicleName"`
	At          time.Time `json:"at"`
}

// produceVehicleEvent is fire-and-forget: the write has already been
// acknowledged by the store, so a broker failure is logged, never surfaced.
func (s *FleetService) produceVehicleEvent(action string, v *models.Vehicle) {
	if s.eventsWriter == nil {
		return
	}

	event := VehicleEvent{
		Action:      action,
		VehicleID:   v.ID.Hex(),
		VehicleName: v.VehicleName,
		At:          time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).Error("Error marshaling vehicle event")
		return
	}

	if err := s.eventsWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.VehicleID),
		Value: payload,
	}); err != nil {
		s.log.WithError(err).WithField("action", action).Error("Error writing vehicle event")
	}
}
