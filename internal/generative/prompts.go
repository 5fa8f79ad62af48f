package generative

import (
	"fmt"
	"strings"

	"github.com/finlearn/finlearn/internal/models"
)

const impactSystemPrompt = `CRITICAL: You MUST output ONLY valid JSON. Do not include any text before or after the JSON object. Do not wrap it in markdown code blocks.

You are a finance educator explaining how hypothetical economic scenarios ripple through markets. Your assessments are illustrative teaching material, not investment advice.

All impact scores are numbers between -10 and +10:
- -3 to +3: mild effect
- -7 to -4 or +4 to +7: moderate effect
- -10 to -8 or +8 to +10: severe effect

Every impact must come with a short plain-language reason. Keep descriptions accessible to a beginner.`

const descriptorSystemPrompt = `CRITICAL: You MUST output ONLY valid JSON. Do not include any text before or after the JSON object. Do not wrap it in markdown code blocks.

You are a finance educator turning a rough scenario idea into a precise, teachable scenario description. Pick the timeframe over which the effects would realistically play out and write a one-to-two sentence rationale a beginner can follow.`

// buildImpactPrompt embeds every descriptor field plus the exact JSON
// shape the response must match.
func buildImpactPrompt(d models.ScenarioDescriptor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assess the market impact of this economic scenario:\n\n")
	fmt.Fprintf(&b, "Type: %s\n", d.Change.Type)
	fmt.Fprintf(&b, "Change: %s of %g (%s)\n", d.Change.Direction, d.Change.Value, d.Change.Magnitude)
	fmt.Fprintf(&b, "Timeframe: %s\n", d.Timeframe)
	if d.Change.Rationale != "" {
		fmt.Fprintf(&b, "Context: %s\n", d.Change.Rationale)
	}

	b.WriteString(`
Respond with ONLY this JSON structure. Every "impact", "overall", "gold", "oil", "employment", "inflation", and "gdp" value must be a number between -10 and 10:
{
  "markets": {
    "stocks": {
      "overall": 0.0,
      "description": "one sentence on the equity market reaction",
      "sectors": {
        "Technology": {"impact": 0.0, "reason": "why"},
        "Financials": {"impact": 0.0, "reason": "why"},
        "Consumer Staples": {"impact": 0.0, "reason": "why"},
        "Energy": {"impact": 0.0, "reason": "why"}
      }
    },
    "bonds": {
      "overall": 0.0,
      "description": "one sentence on the bond market reaction",
      "types": {
        "Government": {"impact": 0.0, "reason": "why"},
        "Corporate": {"impact": 0.0, "reason": "why"}
      }
    },
    "commodities": {"gold": 0.0, "oil": 0.0, "description": "one sentence"},
    "economy": {"employment": 0.0, "inflation": 0.0, "gdp": 0.0, "description": "one sentence"}
  },
  "analysis": "1-2 sentence narrative summary",
  "learningPoints": ["takeaway 1", "takeaway 2", "takeaway 3"]
}`)

	return b.String()
}

// buildDescriptorPrompt asks for the enriched fields of a descriptor.
func buildDescriptorPrompt(scenarioType string, value float64, direction models.Direction, freeformContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A learner wants to explore this scenario:\n\n")
	fmt.Fprintf(&b, "Type: %s\n", scenarioType)
	fmt.Fprintf(&b, "Change: %s of %g\n", direction, value)
	if freeformContext != "" {
		fmt.Fprintf(&b, "Their context: %s\n", freeformContext)
	}

	b.WriteString(`
Respond with ONLY this JSON structure:
{
  "timeframe": "immediate|short_term|medium_term|long_term",
  "rationale": "1-2 sentence plain-language justification for the scenario"
}`)

	return b.String()
}

// extractJSON strips markdown code fences that some models wrap
// around JSON despite instructions.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Fall back to the outermost braces if the model added prose.
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}

	return s
}
