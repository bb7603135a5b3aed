package pipeline_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/credguard/verdict/core/domain"
	"github.com/credguard/verdict/pipeline"
	"github.com/credguard/verdict/stages"
)

func TestMapVerdictBands(t *testing.T) {
	tests := []struct {
		name          string
		verdict       string
		score         float64
		confidence    float64
		wantLevel     domain.RiskLevel
		wantRiskScore int
		wantConf      int
	}{
		{"safe", "Safe", 82, 0.91, domain.RiskSafe, 18, 91},
		{"risky", "Risky", 55, 0.7, domain.RiskRisky, 45, 70},
		{"dangerous", "Dangerous", 12, 0.88, domain.RiskDangerous, 88, 88},
		{"unknown value collapses to risky", "Weird", 70, 0.5, domain.RiskRisky, 30, 50},
		{"empty value collapses to risky", "", 50, 0.5, domain.RiskRisky, 50, 50},
		{"lowercase is not recognized", "safe", 82, 0.9, domain.RiskRisky, 18, 90},
		{"confidence rounds half up", "Safe", 80, 0.905, domain.RiskSafe, 20, 91},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pipeline.MapVerdict(
				&stages.StabilityResult{},
				&stages.BurdenResult{},
				&stages.SynthesisResult{Verdict: tt.verdict, Score: tt.score, Confidence: tt.confidence},
				"",
			)
			if got.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %s, want %s", got.RiskLevel, tt.wantLevel)
			}
			if got.RiskScore != tt.wantRiskScore {
				t.Errorf("RiskScore = %d, want %d", got.RiskScore, tt.wantRiskScore)
			}
			if got.ConfidenceScore != tt.wantConf {
				t.Errorf("ConfidenceScore = %d, want %d", got.ConfidenceScore, tt.wantConf)
			}
		})
	}
}

func TestMapVerdictRiskScoreStaysInRange(t *testing.T) {
	for _, score := range []float64{0, 0.4, 50, 99.6, 100} {
		got := pipeline.MapVerdict(
			&stages.StabilityResult{},
			&stages.BurdenResult{},
			&stages.SynthesisResult{Verdict: "Risky", Score: score, Confidence: 0.5},
			"",
		)
		if got.RiskScore < 0 || got.RiskScore > 100 {
			t.Errorf("score %v mapped to risk score %d outside [0,100]", score, got.RiskScore)
		}
	}
}

// Flags concatenate stability first, burden second, duplicates and order
// preserved.
func TestMapVerdictFlagConcatenation(t *testing.T) {
	got := pipeline.MapVerdict(
		&stages.StabilityResult{RiskFlags: []string{"a", "b", "a"}},
		&stages.BurdenResult{HiddenTraps: []string{"c", "a"}},
		&stages.SynthesisResult{Verdict: "Safe", Score: 80, Confidence: 0.9},
		"",
	)

	want := []string{"a", "b", "a", "c", "a"}
	if diff := cmp.Diff(want, got.RiskFlags); diff != "" {
		t.Errorf("RiskFlags mismatch (-want +got):\n%s", diff)
	}
}

func TestMapVerdictCarriesScript(t *testing.T) {
	got := pipeline.MapVerdict(
		&stages.StabilityResult{},
		&stages.BurdenResult{},
		&stages.SynthesisResult{Verdict: "Safe", Score: 80, Confidence: 0.9},
		"ask for a lower rate",
	)
	if got.NegotiationScript != "ask for a lower rate" {
		t.Errorf("NegotiationScript = %q", got.NegotiationScript)
	}
}
