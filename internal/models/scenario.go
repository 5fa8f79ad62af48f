package models

import (
	"time"
)

// Direction indicates which way a scenario's underlying quantity moves.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Timeframe describes the horizon over which a scenario plays out.
type Timeframe string

const (
	TimeframeImmediate  Timeframe = "immediate"
	TimeframeShortTerm  Timeframe = "short_term"
	TimeframeMediumTerm Timeframe = "medium_term"
	TimeframeLongTerm   Timeframe = "long_term"
)

// Magnitude is the descriptive tier derived from a scenario's value.
// It is never set directly; it always comes from the value.
type Magnitude string

const (
	MagnitudeSlight      Magnitude = "slight"
	MagnitudeModerate    Magnitude = "moderate"
	MagnitudeSignificant Magnitude = "significant"

	// MagnitudeSevere belongs to the persisted vocabulary but is never
	// produced by the value derivation, which tops out at significant.
	// Stored scenarios authored elsewhere may still carry it.
	MagnitudeSevere Magnitude = "severe"
)

// Scenario type vocabulary. The set is open: unrecognized types route
// through a generic impact profile rather than failing.
const (
	ScenarioTypeInterestRate   = "interest_rate"
	ScenarioTypeInflation      = "inflation"
	ScenarioTypeTariff         = "tariff"
	ScenarioTypeTaxRate        = "tax_rate"
	ScenarioTypeCommodityPrice = "commodity_price"
	ScenarioTypeHousingPrices  = "housing_prices"
	ScenarioTypeFiscalStimulus = "fiscal_stimulus"
	ScenarioTypeCurrency       = "currency"
	ScenarioTypeOilPrice       = "oil_price"
)

// ScenarioChange describes a single economic shock.
type ScenarioChange struct {
	Type      string    `json:"type"`      // e.g. "interest_rate", open vocabulary
	Value     float64   `json:"value"`     // magnitude in the change's native unit, > 0
	Direction Direction `json:"direction"` // increase or decrease
	Magnitude Magnitude `json:"magnitude"` // derived from Value
	Rationale string    `json:"rationale"` // free text, may be empty
}

// ScenarioDescriptor is the full structured description of a
// hypothetical economic event. Treated as immutable once built; each
// analysis run operates on a fresh descriptor.
type ScenarioDescriptor struct {
	Change    ScenarioChange `json:"change"`
	Timeframe Timeframe      `json:"timeframe"`
}

// Scenario is a persisted catalog entry wrapping a descriptor and its
// impact assessment.
type Scenario struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Difficulty      int                `json:"difficulty"` // 1-3
	Descriptor      ScenarioDescriptor `json:"descriptor"`
	Impacts         ImpactAssessment   `json:"impacts"`
	Popularity      int                `json:"popularity"` // incremented on each view, never decreases
	RelatedTopicIDs []string           `json:"related_topic_ids"` // soft references, may dangle
	CreatedAt       time.Time          `json:"created_at"`
}

// UserScenario is a user's saved bookmark of a catalog scenario.
// Deleting it never deletes the underlying Scenario.
type UserScenario struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	ScenarioID string            `json:"scenario_id"`
	Notes      string            `json:"notes"`
	Favorite   bool              `json:"favorite"`
	Overrides  map[string]string `json:"overrides,omitempty"` // custom parameter overrides
	CreatedAt  time.Time         `json:"created_at"`
}

// CreateScenarioRequest is the payload for adding a catalog scenario.
type CreateScenarioRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Difficulty      int                `json:"difficulty"`
	Descriptor      ScenarioDescriptor `json:"descriptor"`
	Impacts         ImpactAssessment   `json:"impacts"`
	RelatedTopicIDs []string           `json:"related_topic_ids"`
}

// AnalyzeScenarioRequest is a user-submitted custom scenario.
type AnalyzeScenarioRequest struct {
	Type      string  `json:"type"`
	Value     float64 `json:"value"`
	Direction string  `json:"direction"`
	Context   string  `json:"context,omitempty"` // optional free-text context
}

// AnalyzeScenarioResult pairs the synthesized descriptor with its
// impact assessment.
type AnalyzeScenarioResult struct {
	Descriptor ScenarioDescriptor `json:"descriptor"`
	Impacts    ImpactAssessment   `json:"impacts"`
}
