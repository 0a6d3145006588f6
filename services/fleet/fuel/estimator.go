package fuel

import (
	"math"
)

const DefaultDistanceKm = 500

// defaultRouteDistances maps "Source-Destination" to kilometers. Lookups are
// symmetric: the reverse key resolves to the same distance.
var defaultRouteDistances = map[string]float64{
	"Mumbai-Delhi":      1400,
	"Delhi-Kolkata":     1500,
	"Chennai-Bangalore": 350,
	"Pune-Mumbai":       150,
	"Hyderabad-Chennai": 630,
}

// Estimator computes the estimated fuel cost for a route. It is the only
// source of the estimatedFuelCost field; clients never supply it.
type Estimator struct {
	distances     map[string]float64
	pricePerLiter float64
}

func NewEstimator(pricePerLiter float64) *Estimator {
	return &Estimator{
		distances:     defaultRouteDistances,
		pricePerLiter: pricePerLiter,
	}
}

// Distance resolves the route distance, falling back to DefaultDistanceKm for
// unknown pairs.
func (e *Estimator) Distance(source, destination string) float64 {
	if d, ok := e.distances[source+"-"+destination]; ok {
		return d
	}
	if d, ok := e.distances[destination+"-"+source]; ok {
		return d
	}
	return DefaultDistanceKm
}

// Estimate returns round(distance / fuelEfficiency * pricePerLiter), or 0
// when fuelEfficiency is not positive.
func (e *Estimator) Estimate(source, destination string, fuelEfficiency float64) float64 {
	if fuelEfficiency <= 0 {
		return 0
	}

	fuelNeeded := e.Distance(source, destination) / fuelEfficiency
	return math.Round(fuelNeeded * e.pricePerLiter)
}
