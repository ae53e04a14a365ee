package config

import (
	"os"
	"path/filepath"
	"testing"

	"smartmatch/internal/domain/matching"
)

func writeCalibrationFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write calibration file: %v", err)
	}
	return path
}

func TestLoadCalibration_EmptyPathUsesDefaults(t *testing.T) {
	cal, err := LoadCalibration("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := matching.DefaultCalibration()
	if cal.WeightFloor != def.WeightFloor {
		t.Fatalf("expected default weight floor %.2f, got %.2f", def.WeightFloor, cal.WeightFloor)
	}
	if cal.BaseWeights[matching.CategorySkills] != def.BaseWeights[matching.CategorySkills] {
		t.Fatalf("expected default skills weight")
	}
}

func TestLoadCalibration_FileOverridesDefaults(t *testing.T) {
	path := writeCalibrationFile(t, `
base_weights:
  skills: 0.40
  experience: 0.15
  education: 0.10
  location: 0.10
  salary: 0.15
  contract: 0.05
  flexibility: 0.05
strength_threshold: 85
`)

	cal, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cal.BaseWeights[matching.CategorySkills] != 0.40 {
		t.Fatalf("expected overridden skills weight 0.40, got %.2f", cal.BaseWeights[matching.CategorySkills])
	}
	if cal.StrengthThreshold != 85 {
		t.Fatalf("expected overridden strength threshold 85, got %.0f", cal.StrengthThreshold)
	}
	// Untouched fields keep their defaults.
	def := matching.DefaultCalibration()
	if cal.MaxLeverAdjustment != def.MaxLeverAdjustment {
		t.Fatalf("expected default lever adjustment %.2f, got %.2f", def.MaxLeverAdjustment, cal.MaxLeverAdjustment)
	}
}

func TestLoadCalibration_RejectsBadWeightSum(t *testing.T) {
	path := writeCalibrationFile(t, `
base_weights:
  skills: 0.50
  experience: 0.50
  education: 0.10
  location: 0.10
  salary: 0.15
  contract: 0.05
  flexibility: 0.05
`)

	if _, err := LoadCalibration(path); err == nil {
		t.Fatalf("expected an error for weights summing above 1.0")
	}
}

func TestLoadCalibration_RejectsMissingCategory(t *testing.T) {
	path := writeCalibrationFile(t, `
base_weights:
  skills: 1.0
`)

	if _, err := LoadCalibration(path); err == nil {
		t.Fatalf("expected an error for missing categories")
	}
}

func TestLoadCalibration_MissingFileFails(t *testing.T) {
	if _, err := LoadCalibration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
