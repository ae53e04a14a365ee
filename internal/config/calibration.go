package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"

	"smartmatch/internal/domain/matching"
)

// LoadCalibration merges the optional calibration file over the shipped
// defaults. The tier boundaries and decay constants were hand-tuned
// against observed production behavior and remain under product review,
// so deployments adjust them here rather than in code.
func LoadCalibration(path string) (matching.Calibration, error) {
	cal := matching.DefaultCalibration()
	if path == "" {
		return cal, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return matching.Calibration{}, fmt.Errorf("read calibration file: %w", err)
	}
	if err := v.Unmarshal(&cal); err != nil {
		return matching.Calibration{}, fmt.Errorf("parse calibration file: %w", err)
	}
	if err := validateCalibration(cal); err != nil {
		return matching.Calibration{}, err
	}
	return cal, nil
}

func validateCalibration(cal matching.Calibration) error {
	sum := 0.0
	for _, cat := range matching.Categories {
		w, ok := cal.BaseWeights[cat]
		if !ok {
			return fmt.Errorf("calibration: base weight missing for category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("calibration: negative base weight for category %q", cat)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("calibration: base weights sum to %.6f, want 1.0", sum)
	}
	if cal.WeightFloor < 0 || cal.WeightFloor > 0.1 {
		return fmt.Errorf("calibration: weight floor %.4f out of range", cal.WeightFloor)
	}
	if cal.SalaryFloorRatio <= cal.SalaryNearMissRatio {
		return fmt.Errorf("calibration: salary floor ratio must exceed near-miss ratio")
	}
	if len(cal.ExperienceTiers) == 0 {
		return fmt.Errorf("calibration: experience tiers must not be empty")
	}
	return nil
}
