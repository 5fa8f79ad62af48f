package scenario

import (
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// ValidateImpactAssessment enforces the numeric and completeness
// contract every assessment must satisfy, regardless of which path
// produced it. It is the single gate applied to both the deterministic
// generator and the generative adapter before a result reaches any
// caller.
func ValidateImpactAssessment(a models.ImpactAssessment) error {
	checks := []struct {
		field string
		value float64
	}{
		{"markets.stocks.overall", a.Markets.Stocks.Overall},
		{"markets.bonds.overall", a.Markets.Bonds.Overall},
		{"markets.commodities.gold", a.Markets.Commodities.Gold},
		{"markets.commodities.oil", a.Markets.Commodities.Oil},
		{"markets.economy.employment", a.Markets.Economy.Employment},
		{"markets.economy.inflation", a.Markets.Economy.Inflation},
		{"markets.economy.gdp", a.Markets.Economy.GDP},
	}

	for _, c := range checks {
		if err := checkRange(c.field, c.value); err != nil {
			return err
		}
	}

	for name, sector := range a.Markets.Stocks.Sectors {
		field := fmt.Sprintf("markets.stocks.sectors[%s]", name)
		if err := checkRange(field+".impact", sector.Impact); err != nil {
			return err
		}
		if sector.Reason == "" {
			return &SchemaViolationError{Field: field + ".reason", Message: "must not be empty"}
		}
	}

	for name, bondType := range a.Markets.Bonds.Types {
		field := fmt.Sprintf("markets.bonds.types[%s]", name)
		if err := checkRange(field+".impact", bondType.Impact); err != nil {
			return err
		}
		if bondType.Reason == "" {
			return &SchemaViolationError{Field: field + ".reason", Message: "must not be empty"}
		}
	}

	descriptions := []struct {
		field string
		value string
	}{
		{"markets.stocks.description", a.Markets.Stocks.Description},
		{"markets.bonds.description", a.Markets.Bonds.Description},
		{"markets.commodities.description", a.Markets.Commodities.Description},
		{"markets.economy.description", a.Markets.Economy.Description},
	}

	for _, d := range descriptions {
		if d.value == "" {
			return &SchemaViolationError{Field: d.field, Message: "must not be empty"}
		}
	}

	if a.Analysis == "" {
		return &SchemaViolationError{Field: "analysis", Message: "must not be empty"}
	}

	if len(a.LearningPoints) == 0 {
		return &SchemaViolationError{Field: "learningPoints", Message: "must contain at least one entry"}
	}

	for i, point := range a.LearningPoints {
		if point == "" {
			return &SchemaViolationError{Field: fmt.Sprintf("learningPoints[%d]", i), Message: "must not be empty"}
		}
	}

	return nil
}

func checkRange(field string, value float64) error {
	if value < models.MinImpact || value > models.MaxImpact {
		return &SchemaViolationError{
			Field:   field,
			Message: fmt.Sprintf("impact %g outside [%g, %g]", value, models.MinImpact, models.MaxImpact),
		}
	}
	return nil
}
