package models

// Impact score bounds. Every impact value in an assessment, at every
// level, must lie inside [MinImpact, MaxImpact].
const (
	MinImpact = -10.0
	MaxImpact = 10.0
)

// SectorImpact scores the effect on a single equity sector.
type SectorImpact struct {
	Impact float64 `json:"impact"` // within [-10, 10]
	Reason string  `json:"reason"` // non-empty explanation of sign and rough size
}

// BondTypeImpact scores the effect on a single bond category.
type BondTypeImpact struct {
	Impact float64 `json:"impact"`
	Reason string  `json:"reason"`
}

// StockImpact covers the equity market as a whole plus a per-sector
// breakdown.
type StockImpact struct {
	Overall     float64                 `json:"overall"`
	Description string                  `json:"description"`
	Sectors     map[string]SectorImpact `json:"sectors"`
}

// BondImpact covers the bond market plus a per-type breakdown.
type BondImpact struct {
	Overall     float64                   `json:"overall"`
	Description string                    `json:"description"`
	Types       map[string]BondTypeImpact `json:"types"`
}

// CommodityImpact scores the major commodity benchmarks.
type CommodityImpact struct {
	Gold        float64 `json:"gold"`
	Oil         float64 `json:"oil"`
	Description string  `json:"description"`
}

// EconomyImpact scores the macro indicators.
type EconomyImpact struct {
	Employment  float64 `json:"employment"`
	Inflation   float64 `json:"inflation"`
	GDP         float64 `json:"gdp"`
	Description string  `json:"description"`
}

// MarketImpacts groups the per-market results.
type MarketImpacts struct {
	Stocks      StockImpact     `json:"stocks"`
	Bonds       BondImpact      `json:"bonds"`
	Commodities CommodityImpact `json:"commodities"`
	Economy     EconomyImpact   `json:"economy"`
}

// ImpactAssessment is the structured, numerically bounded estimate of
// how a scenario affects markets and the broader economy. Produced by
// either the deterministic generator or the generative adapter; both
// paths must satisfy the same validation.
type ImpactAssessment struct {
	Markets        MarketImpacts `json:"markets"`
	Analysis       string        `json:"analysis"`       // non-empty narrative summary
	LearningPoints []string      `json:"learningPoints"` // at least one non-empty entry
}
