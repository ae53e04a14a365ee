package matching

// Category is one of the seven scoring dimensions. Each carries its own
// sub-score and weight.
type Category string

const (
	CategorySkills      Category = "skills"
	CategoryExperience  Category = "experience"
	CategoryEducation   Category = "education"
	CategoryLocation    Category = "location"
	CategorySalary      Category = "salary"
	CategoryContract    Category = "contract"
	CategoryFlexibility Category = "flexibility"
)

// Categories lists every scoring category in a fixed order, used for
// deterministic iteration over weight vectors and breakdowns.
var Categories = []Category{
	CategorySkills,
	CategoryExperience,
	CategoryEducation,
	CategoryLocation,
	CategorySalary,
	CategoryContract,
	CategoryFlexibility,
}

// ExperienceTier maps a candidate/required experience ratio onto a score.
// Tiers are evaluated top-down; the first tier whose MinRatio is reached wins.
type ExperienceTier struct {
	MinRatio float64 `mapstructure:"min_ratio"`
	Score    float64 `mapstructure:"score"`
}

// Calibration groups every tunable scoring constant. The shipped defaults
// reproduce the observed production behavior; deployments override them
// through the calibration file (config.LoadCalibration) pending product
// validation of the hand-tuned tier boundaries.
type Calibration struct {
	BaseWeights        map[Category]float64 `mapstructure:"base_weights"`
	MaxLeverAdjustment float64              `mapstructure:"max_lever_adjustment"`
	WeightFloor        float64              `mapstructure:"weight_floor"`

	ExperienceTiers      []ExperienceTier `mapstructure:"experience_tiers"`
	ExperienceFloorScore float64          `mapstructure:"experience_floor_score"`

	// Salary overshoot decay: desired within NearMissRatio above the
	// ceiling scores NearMissScore, then decays linearly down to
	// FloorScore at FloorRatio above the ceiling.
	SalaryNearMissRatio float64 `mapstructure:"salary_near_miss_ratio"`
	SalaryFloorRatio    float64 `mapstructure:"salary_floor_ratio"`
	SalaryNearMissScore float64 `mapstructure:"salary_near_miss_score"`
	SalaryFloorScore    float64 `mapstructure:"salary_floor_score"`

	NeutralScore       float64 `mapstructure:"neutral_score"`
	StrengthThreshold  float64 `mapstructure:"strength_threshold"`
	GapThreshold       float64 `mapstructure:"gap_threshold"`
	MinRTTDaysForBonus int     `mapstructure:"min_rtt_days_for_bonus"`
}

func DefaultCalibration() Calibration {
	return Calibration{
		BaseWeights: map[Category]float64{
			CategorySkills:      0.30,
			CategoryExperience:  0.20,
			CategoryEducation:   0.10,
			CategoryLocation:    0.15,
			CategorySalary:      0.15,
			CategoryContract:    0.05,
			CategoryFlexibility: 0.05,
		},
		MaxLeverAdjustment: 0.20,
		WeightFloor:        0.02,
		ExperienceTiers: []ExperienceTier{
			{MinRatio: 1.0, Score: 100},
			{MinRatio: 0.8, Score: 90},
			{MinRatio: 0.6, Score: 70},
			{MinRatio: 0.4, Score: 50},
		},
		ExperienceFloorScore: 20,
		SalaryNearMissRatio:  0.10,
		SalaryFloorRatio:     0.50,
		SalaryNearMissScore:  70,
		SalaryFloorScore:     10,
		NeutralScore:         50,
		StrengthThreshold:    80,
		GapThreshold:         40,
		MinRTTDaysForBonus:   10,
	}
}
