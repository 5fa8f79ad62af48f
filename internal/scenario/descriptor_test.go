package scenario

import (
	"errors"
	"testing"

	"github.com/finlearn/finlearn/internal/models"
)

func TestMagnitudeForValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  models.Magnitude
	}{
		{"small value", 0.25, models.MagnitudeSlight},
		{"boundary two stays slight", 2, models.MagnitudeSlight},
		{"just above two", 2.01, models.MagnitudeModerate},
		{"boundary five stays moderate", 5, models.MagnitudeModerate},
		{"just above five", 5.01, models.MagnitudeSignificant},
		{"large value", 50, models.MagnitudeSignificant},
		{"derivation never reaches severe", 1e9, models.MagnitudeSignificant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MagnitudeForValue(tt.value); got != tt.want {
				t.Errorf("MagnitudeForValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if _, err := ParseDirection("increase"); err != nil {
		t.Errorf("unexpected error for increase: %v", err)
	}
	if _, err := ParseDirection("decrease"); err != nil {
		t.Errorf("unexpected error for decrease: %v", err)
	}

	for _, raw := range []string{"", "up", "INCREASE", "sideways"} {
		if _, err := ParseDirection(raw); err == nil {
			t.Errorf("expected error for direction %q", raw)
		}
	}
}

func TestBuildBasicDescriptor(t *testing.T) {
	d, err := BuildBasicDescriptor("interest_rate", 0.75, "increase", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Change.Type != "interest_rate" {
		t.Errorf("type = %q, want interest_rate", d.Change.Type)
	}
	if d.Change.Magnitude != models.MagnitudeSlight {
		t.Errorf("magnitude = %q, want slight", d.Change.Magnitude)
	}
	if d.Timeframe != models.TimeframeImmediate {
		t.Errorf("timeframe = %q, want immediate", d.Timeframe)
	}
	if d.Change.Rationale == "" {
		t.Error("expected a generated rationale")
	}
}

func TestBuildBasicDescriptorUsesContextAsRationale(t *testing.T) {
	d, err := BuildBasicDescriptor("inflation", 3, "decrease", "what if prices cool off")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Change.Rationale != "what if prices cool off" {
		t.Errorf("rationale = %q, want the provided context", d.Change.Rationale)
	}
}

func TestBuildBasicDescriptorRejectsBadInput(t *testing.T) {
	tests := []struct {
		name         string
		scenarioType string
		value        float64
		direction    string
	}{
		{"empty type", "", 1, "increase"},
		{"zero value", "interest_rate", 0, "increase"},
		{"negative value", "interest_rate", -2, "increase"},
		{"bad direction", "interest_rate", 1, "up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildBasicDescriptor(tt.scenarioType, tt.value, tt.direction, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Errorf("error type = %T, want *InvalidInputError", err)
			}
		})
	}
}
