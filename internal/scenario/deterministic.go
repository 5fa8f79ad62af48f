package scenario

import (
	"fmt"
	"math"

	"github.com/finlearn/finlearn/internal/models"
)

// profileKind selects an impact profile. Scenario types outside the
// named set dispatch to profileGeneric rather than failing.
type profileKind int

const (
	profileGeneric profileKind = iota
	profileInterestRate
	profileInflation
	profileTariff
)

// impactProfile holds the per-market scaling coefficients applied to
// the base impact for a scenario type.
type impactProfile struct {
	Stocks     float64
	Bonds      float64
	Gold       float64
	Oil        float64
	Employment float64
	Inflation  float64
	GDP        float64
}

// Named profiles. Coefficients encode the sign and relative strength
// of each market's reaction to an increase in the underlying quantity;
// a decrease flips every sign through the base impact.
var profiles = map[profileKind]impactProfile{
	// Rate hikes pressure both equities and bonds, strengthen the
	// currency against gold, and cool hiring, prices, and output.
	profileInterestRate: {
		Stocks:     -1.0,
		Bonds:      -0.8,
		Gold:       -0.5,
		Oil:        -0.3,
		Employment: -0.6,
		Inflation:  -0.7,
		GDP:        -0.6,
	},
	// Rising inflation erodes bond values hardest, lifts hard assets
	// and energy, and drags on real growth.
	profileInflation: {
		Stocks:     -0.7,
		Bonds:      -1.0,
		Gold:       1.2,
		Oil:        0.8,
		Employment: -0.4,
		Inflation:  1.2,
		GDP:        -0.5,
	},
	// New tariffs hit trade-exposed equities, push import prices up,
	// and nudge capital toward safe assets.
	profileTariff: {
		Stocks:     -0.8,
		Bonds:      0.3,
		Gold:       0.6,
		Oil:        -0.4,
		Employment: -0.5,
		Inflation:  0.7,
		GDP:        -0.7,
	},
	// Generic profile for unrecognized types: half-strength scaling
	// with a fixed sign pattern. Stocks, bonds, employment, and GDP
	// lean negative; gold, oil, and inflation lean positive.
	profileGeneric: {
		Stocks:     -0.5,
		Bonds:      -0.5,
		Gold:       0.5,
		Oil:        0.5,
		Employment: -0.5,
		Inflation:  0.5,
		GDP:        -0.5,
	},
}

// Fixed per-sector multipliers applied to the overall stock impact.
var sectorMultipliers = map[string]float64{
	"Technology":       1.3,
	"Financials":       1.1,
	"Consumer Staples": 0.4,
	"Energy":           0.8,
}

// Fixed per-type multipliers applied to the overall bond impact.
var bondTypeMultipliers = map[string]float64{
	"Government": 0.9,
	"Corporate":  1.1,
}

func profileFor(scenarioType string) profileKind {
	switch scenarioType {
	case models.ScenarioTypeInterestRate:
		return profileInterestRate
	case models.ScenarioTypeInflation:
		return profileInflation
	case models.ScenarioTypeTariff:
		return profileTariff
	default:
		return profileGeneric
	}
}

// magnitudeFactor derives the coarse 3-tier scaling seed from a
// change's value. This is intentionally a separate derivation from
// MagnitudeForValue: both bucket on the same boundaries but serve
// different purposes and are not to be unified.
func magnitudeFactor(value float64) float64 {
	switch {
	case value > 5:
		return 3
	case value > 2:
		return 2
	default:
		return 1
	}
}

func clampImpact(v float64) float64 {
	return math.Max(models.MinImpact, math.Min(models.MaxImpact, v))
}

// GenerateDeterministicImpacts computes an impact assessment from a
// descriptor using fixed per-type heuristics. It is pure and total:
// the same descriptor always yields the same assessment, with no
// external calls. This is the system's offline fallback path.
func GenerateDeterministicImpacts(d models.ScenarioDescriptor) models.ImpactAssessment {
	multiplier := 1.0
	if d.Change.Direction == models.DirectionDecrease {
		multiplier = -1.0
	}

	base := multiplier * magnitudeFactor(d.Change.Value)

	kind := profileFor(d.Change.Type)
	profile := profiles[kind]

	stocksOverall := clampImpact(base * profile.Stocks)
	bondsOverall := clampImpact(base * profile.Bonds)

	sectors := make(map[string]models.SectorImpact, len(sectorMultipliers))
	for name, mult := range sectorMultipliers {
		sectors[name] = models.SectorImpact{
			Impact: clampImpact(stocksOverall * mult),
			Reason: sectorReason(kind, name),
		}
	}

	bondTypes := make(map[string]models.BondTypeImpact, len(bondTypeMultipliers))
	for name, mult := range bondTypeMultipliers {
		bondTypes[name] = models.BondTypeImpact{
			Impact: clampImpact(bondsOverall * mult),
			Reason: bondTypeReason(kind, name),
		}
	}

	assessment := models.ImpactAssessment{
		Markets: models.MarketImpacts{
			Stocks: models.StockImpact{
				Overall:     stocksOverall,
				Description: marketDescription("Stock prices", stocksOverall),
				Sectors:     sectors,
			},
			Bonds: models.BondImpact{
				Overall:     bondsOverall,
				Description: marketDescription("Bond prices", bondsOverall),
				Types:       bondTypes,
			},
			Commodities: models.CommodityImpact{
				Gold:        clampImpact(base * profile.Gold),
				Oil:         clampImpact(base * profile.Oil),
				Description: commodityDescription(base*profile.Gold, base*profile.Oil),
			},
			Economy: models.EconomyImpact{
				Employment:  clampImpact(base * profile.Employment),
				Inflation:   clampImpact(base * profile.Inflation),
				GDP:         clampImpact(base * profile.GDP),
				Description: marketDescription("Overall economic activity", base*profile.GDP),
			},
		},
		Analysis:       buildAnalysis(d),
		LearningPoints: learningPoints(kind),
	}

	// The deterministic path has no further fallback; an invalid
	// result here is a defect in the profile tables.
	if err := ValidateImpactAssessment(assessment); err != nil {
		panic(fmt.Sprintf("deterministic generator produced invalid assessment: %v", err))
	}

	return assessment
}

func marketDescription(subject string, overall float64) string {
	if overall > 0 {
		return fmt.Sprintf("%s would likely rise in response to this change.", subject)
	}
	return fmt.Sprintf("%s would likely fall in response to this change.", subject)
}

func commodityDescription(gold, oil float64) string {
	goldWord := "fall"
	if gold > 0 {
		goldWord = "rise"
	}
	oilWord := "fall"
	if oil > 0 {
		oilWord = "rise"
	}
	return fmt.Sprintf("Gold would likely %s while oil would likely %s.", goldWord, oilWord)
}

func buildAnalysis(d models.ScenarioDescriptor) string {
	return fmt.Sprintf(
		"A %s %s in %s would ripple through equities, fixed income, commodities, and the broader economy over the %s horizon. The sizes below reflect typical historical sensitivities rather than a forecast.",
		d.Change.Magnitude, d.Change.Direction, d.Change.Type, d.Timeframe)
}

func sectorReason(kind profileKind, sector string) string {
	switch kind {
	case profileInterestRate:
		switch sector {
		case "Technology":
			return "Growth valuations are highly sensitive to discount rates."
		case "Financials":
			return "Lending margins shift with the rate environment."
		case "Consumer Staples":
			return "Defensive demand cushions staples against rate moves."
		case "Energy":
			return "Capital-intensive energy projects reprice with borrowing costs."
		}
	case profileInflation:
		switch sector {
		case "Technology":
			return "Future tech earnings are worth less when prices rise broadly."
		case "Financials":
			return "Inflation pressures credit quality and real returns on loans."
		case "Consumer Staples":
			return "Staples pass costs through but volumes hold up."
		case "Energy":
			return "Energy revenues often track the inflating price level."
		}
	case profileTariff:
		switch sector {
		case "Technology":
			return "Global hardware supply chains absorb tariff costs directly."
		case "Financials":
			return "Trade friction dampens the deal and lending pipeline."
		case "Consumer Staples":
			return "Imported inputs raise staples costs modestly."
		case "Energy":
			return "Trade slowdowns reduce industrial energy demand."
		}
	}
	return fmt.Sprintf("The %s sector moves with the broad market under this scenario.", sector)
}

func bondTypeReason(kind profileKind, bondType string) string {
	switch kind {
	case profileInterestRate:
		if bondType == "Government" {
			return "Existing government bond prices move inversely to new issue yields."
		}
		return "Corporate bonds carry the rate move plus credit spread pressure."
	case profileInflation:
		if bondType == "Government" {
			return "Fixed government coupons lose purchasing power to inflation."
		}
		return "Corporate debt suffers both inflation erosion and margin worries."
	case profileTariff:
		if bondType == "Government" {
			return "Safe-haven demand supports government debt in trade disputes."
		}
		return "Trade-exposed issuers face wider credit spreads."
	}
	if bondType == "Government" {
		return "Government bonds track the overall fixed income reaction."
	}
	return "Corporate bonds amplify the overall fixed income reaction."
}

func learningPoints(kind profileKind) []string {
	switch kind {
	case profileInterestRate:
		return []string{
			"Interest rates are the price of money: raising them cools borrowing, spending, and asset prices.",
			"Bond prices move inversely to yields, so existing bonds lose value when rates rise.",
			"Rate-sensitive sectors like technology react more sharply than defensive sectors.",
		}
	case profileInflation:
		return []string{
			"Inflation erodes the real value of fixed payments, hitting bonds hardest.",
			"Hard assets such as gold have historically been used as inflation hedges.",
			"Central banks typically respond to sustained inflation by raising interest rates.",
		}
	case profileTariff:
		return []string{
			"Tariffs raise import prices, which can feed into consumer inflation.",
			"Trade barriers disrupt supply chains and weigh on globally exposed companies.",
			"Investors often rotate toward safe assets when trade tensions escalate.",
		}
	default:
		return []string{
			"Economic shocks rarely affect a single market: equities, bonds, and commodities react together.",
			"The direction and size of a change matter as much as what changed.",
			"Diversification across asset classes softens the effect of any single scenario.",
		}
	}
}
