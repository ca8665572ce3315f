package services

// CostConfig holds fleet economics. Injected, never hard-coded in formulas.
type CostConfig struct {
	LitersPer100Km    float64
	FuelPricePerLiter float64
}

func DefaultCostConfig() CostConfig {
	return CostConfig{
		LitersPer100Km:    25,
		FuelPricePerLiter: 1.80,
	}
}

// CostEstimator converts computed distances into fuel-cost estimates.
type CostEstimator struct {
	cfg CostConfig
}

func NewCostEstimator(cfg CostConfig) *CostEstimator {
	return &CostEstimator{cfg: cfg}
}

// FuelCost returns the estimated fuel spend for a distance in meters:
// distanceKm x consumption/100 x price.
func (e *CostEstimator) FuelCost(distanceMeters float64) float64 {
	distanceKm := distanceMeters / 1000
	return distanceKm * e.cfg.LitersPer100Km / 100 * e.cfg.FuelPricePerLiter
}
