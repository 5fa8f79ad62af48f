package scenario

import (
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// MagnitudeForValue derives the descriptive magnitude tier from a
// change's numeric value. Boundary values fall into the lower bucket.
func MagnitudeForValue(value float64) models.Magnitude {
	switch {
	case value > 5:
		return models.MagnitudeSignificant
	case value > 2:
		return models.MagnitudeModerate
	default:
		return models.MagnitudeSlight
	}
}

// ParseDirection validates a direction token.
func ParseDirection(raw string) (models.Direction, error) {
	switch models.Direction(raw) {
	case models.DirectionIncrease, models.DirectionDecrease:
		return models.Direction(raw), nil
	default:
		return "", &InvalidInputError{Field: "direction", Message: "must be 'increase' or 'decrease'"}
	}
}

// BuildBasicDescriptor constructs a descriptor without any external
// help. It is the offline path for descriptor synthesis: deterministic,
// side-effect free, and always usable as a fallback.
func BuildBasicDescriptor(scenarioType string, value float64, direction string, freeformContext string) (models.ScenarioDescriptor, error) {
	if scenarioType == "" {
		return models.ScenarioDescriptor{}, &InvalidInputError{Field: "type", Message: "scenario type is required"}
	}

	if value <= 0 {
		return models.ScenarioDescriptor{}, &InvalidInputError{Field: "value", Message: "value must be positive"}
	}

	dir, err := ParseDirection(direction)
	if err != nil {
		return models.ScenarioDescriptor{}, err
	}

	rationale := freeformContext
	if rationale == "" {
		rationale = fmt.Sprintf("Hypothetical %s in %s of %g to explore market effects.", dir, scenarioType, value)
	}

	return models.ScenarioDescriptor{
		Change: models.ScenarioChange{
			Type:      scenarioType,
			Value:     value,
			Direction: dir,
			Magnitude: MagnitudeForValue(value),
			Rationale: rationale,
		},
		Timeframe: models.TimeframeImmediate,
	}, nil
}
