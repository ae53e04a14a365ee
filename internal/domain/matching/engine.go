package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

// Engine computes the seven per-category sub-scores for one
// (candidate, offer) pair, aggregates them under a weight vector and
// derives the explainable breakdown. Pure and stateless per call;
// Distance, when set, replaces the neutral location fallback with a
// distance-band estimate (geolocation variant).
type Engine struct {
	cal      Calibration
	Distance func(c candidate.Candidate, o offer.JobOffer) (km float64, ok bool)
}

func NewEngine(cal Calibration) *Engine {
	return &Engine{cal: cal}
}

type categoryScore struct {
	pct         float64
	explanation string
	matched     []string
	missing     []string
	defaulted   bool
}

// Score never fails on sanitized candidate/offer data. The only error is
// ErrInvalidWeightVector for a weight vector that does not sum to 1.0,
// which indicates a bug upstream and is fatal.
func (e *Engine) Score(c candidate.Candidate, o offer.JobOffer, w WeightVector) (MatchResult, error) {
	if err := w.Validate(); err != nil {
		return MatchResult{}, err
	}

	scores := map[Category]categoryScore{
		CategorySkills:      e.scoreSkills(c, o),
		CategoryExperience:  e.scoreExperience(c, o),
		CategoryEducation:   e.scoreEducation(c, o),
		CategoryLocation:    e.scoreLocation(c, o),
		CategorySalary:      e.scoreSalary(c, o),
		CategoryContract:    e.scoreContract(c, o),
		CategoryFlexibility: e.scoreFlexibility(c, o),
	}

	breakdown := make(map[Category]ScoreBreakdown, len(Categories))
	total := 0.0
	realDataCount := 0
	for _, cat := range Categories {
		s := scores[cat]
		contribution := s.pct / 100.0 * w[cat]
		total += contribution
		if !s.defaulted {
			realDataCount++
		}
		breakdown[cat] = ScoreBreakdown{
			RawPercentage:        s.pct,
			Weight:               w[cat],
			WeightedContribution: contribution,
			Explanation:          s.explanation,
			MatchedItems:         s.matched,
			MissingItems:         s.missing,
			Defaulted:            s.defaulted,
		}
	}

	overall := int(math.Round(total * 100))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	strengths, gaps, recs := e.insights(breakdown)

	return MatchResult{
		OfferID:         o.ID,
		CandidateID:     c.ID,
		OverallScore:    overall,
		Confidence:      confidenceFor(realDataCount),
		ScoreBreakdown:  breakdown,
		Strengths:       strengths,
		Gaps:            gaps,
		Recommendations: recs,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func confidenceFor(realDataCount int) Confidence {
	switch {
	case realDataCount >= 5:
		return ConfidenceHigh
	case realDataCount >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func (e *Engine) scoreSkills(c candidate.Candidate, o offer.JobOffer) categoryScore {
	if len(o.RequiredSkills) == 0 {
		return categoryScore{
			pct:         e.cal.NeutralScore,
			explanation: "offer lists no required skills, cannot evaluate coverage",
			defaulted:   true,
		}
	}

	have := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matched := make([]string, 0, len(o.RequiredSkills))
	missing := make([]string, 0)
	for _, req := range o.RequiredSkills {
		key := strings.ToLower(strings.TrimSpace(req))
		if _, ok := have[key]; ok {
			matched = append(matched, key)
		} else {
			missing = append(missing, key)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	pct := float64(len(matched)) / float64(len(o.RequiredSkills)) * 100
	if pct > 100 {
		pct = 100
	}
	return categoryScore{
		pct:         pct,
		explanation: fmt.Sprintf("%d of %d required skills covered", len(matched), len(o.RequiredSkills)),
		matched:     matched,
		missing:     missing,
	}
}

func (e *Engine) scoreExperience(c candidate.Candidate, o offer.JobOffer) categoryScore {
	if o.MinExperienceYears <= 0 {
		return categoryScore{
			pct:         100,
			explanation: "offer sets no minimum experience",
			defaulted:   true,
		}
	}

	ratio := float64(c.YearsExperience) / float64(o.MinExperienceYears)
	pct := e.cal.ExperienceFloorScore
	for _, tier := range e.cal.ExperienceTiers {
		if ratio >= tier.MinRatio {
			pct = tier.Score
			break
		}
	}
	return categoryScore{
		pct:         pct,
		explanation: fmt.Sprintf("%d years of experience against %d required", c.YearsExperience, o.MinExperienceYears),
	}
}

// educationLadder orders the recognized tiers. The normalizer maps FR/EN
// spellings onto these canonical names.
var educationLadder = map[string]int{
	"bac":      1,
	"bac+2":    2,
	"bac+3":    3,
	"bac+5":    4,
	"doctorat": 5,
}

func (e *Engine) scoreEducation(c candidate.Candidate, o offer.JobOffer) categoryScore {
	reqLvl, reqKnown := educationLadder[o.EducationRequired]
	if !reqKnown {
		return categoryScore{
			pct:         100,
			explanation: "offer sets no education requirement",
			defaulted:   true,
		}
	}

	candLvl := educationLadder[c.EducationLevel]
	var pct float64
	switch {
	case candLvl >= reqLvl:
		pct = 100
	case reqLvl-candLvl == 1:
		pct = 60
	default:
		pct = 20
	}
	return categoryScore{
		pct:         pct,
		explanation: fmt.Sprintf("education %q against required %q", emptyAsNone(c.EducationLevel), o.EducationRequired),
	}
}

func emptyAsNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func (e *Engine) scoreLocation(c candidate.Candidate, o offer.JobOffer) categoryScore {
	if o.RemotePolicy == offer.RemoteTotal {
		return categoryScore{pct: 100, explanation: "fully remote position, location is irrelevant"}
	}

	cLoc := strings.ToLower(strings.TrimSpace(c.Location))
	oLoc := strings.ToLower(strings.TrimSpace(o.Location))
	if cLoc != "" && oLoc != "" {
		if cLoc == oLoc || strings.Contains(cLoc, oLoc) || strings.Contains(oLoc, cLoc) {
			return categoryScore{pct: 100, explanation: "same location as the offer"}
		}
		if e.Distance != nil {
			if km, ok := e.Distance(c, o); ok {
				return categoryScore{
					pct:         distanceScore(km),
					explanation: fmt.Sprintf("estimated %.0f km from the workplace", km),
				}
			}
		}
	}

	return categoryScore{
		pct:         e.cal.NeutralScore,
		explanation: "location fit could not be established, assuming neutral",
		defaulted:   true,
	}
}

func distanceScore(km float64) float64 {
	switch {
	case km <= 10:
		return 100
	case km <= 25:
		return 85
	case km <= 50:
		return 70
	case km <= 100:
		return 50
	default:
		return 25
	}
}

func (e *Engine) scoreSalary(c candidate.Candidate, o offer.JobOffer) categoryScore {
	desired := c.DesiredSalary
	ceiling := o.SalaryCeiling()
	if desired <= 0 || ceiling <= 0 {
		return categoryScore{
			pct:         e.cal.NeutralScore,
			explanation: "salary expectation or offer range missing, cannot evaluate",
			defaulted:   true,
		}
	}

	if desired <= ceiling {
		return categoryScore{
			pct:         100,
			explanation: fmt.Sprintf("expected %d fits within the offered ceiling %d", desired, ceiling),
		}
	}

	overshoot := float64(desired)/float64(ceiling) - 1.0
	cal := e.cal
	var pct float64
	switch {
	case overshoot <= cal.SalaryNearMissRatio:
		pct = cal.SalaryNearMissScore
	case overshoot >= cal.SalaryFloorRatio:
		pct = cal.SalaryFloorScore
	default:
		span := cal.SalaryFloorRatio - cal.SalaryNearMissRatio
		pct = cal.SalaryNearMissScore - (overshoot-cal.SalaryNearMissRatio)/span*(cal.SalaryNearMissScore-cal.SalaryFloorScore)
	}
	return categoryScore{
		pct:         pct,
		explanation: fmt.Sprintf("expected %d exceeds the offered ceiling %d by %.0f%%", desired, ceiling, overshoot*100),
	}
}

func (e *Engine) scoreContract(c candidate.Candidate, o offer.JobOffer) categoryScore {
	if o.ContractType == "" || len(c.ContractTypesSought) == 0 {
		return categoryScore{
			pct:         e.cal.NeutralScore,
			explanation: "contract preference or offer contract type missing, cannot evaluate",
			defaulted:   true,
		}
	}

	// Hard constraint: a contract mismatch is binary, not a gradient.
	if c.SeeksContract(o.ContractType) {
		return categoryScore{
			pct:         100,
			explanation: fmt.Sprintf("offered contract %q is among the sought types", o.ContractType),
			matched:     []string{o.ContractType},
		}
	}
	return categoryScore{
		pct:         0,
		explanation: fmt.Sprintf("offered contract %q is not among the sought types", o.ContractType),
		missing:     []string{o.ContractType},
	}
}

func (e *Engine) scoreFlexibility(c candidate.Candidate, o offer.JobOffer) categoryScore {
	signals := 0
	hits := 0

	signals++
	if remoteCompatible(c.RemotePreference, o.RemotePolicy) {
		hits++
	}

	if c.RemotePreference != "" && c.RemotePreference != candidate.RemoteNone {
		signals++
		if o.FlexibleHours {
			hits++
		}
	}

	// An offer that says nothing about RTT is not penalized for it.
	if o.RTTDays > 0 {
		signals++
		if o.RTTDays >= e.cal.MinRTTDaysForBonus {
			hits++
		}
	}

	pct := float64(hits) / float64(signals) * 100
	return categoryScore{
		pct:         pct,
		explanation: fmt.Sprintf("%d of %d flexibility signals satisfied", hits, signals),
		defaulted:   c.RemotePreference == "",
	}
}

func remoteCompatible(pref candidate.RemotePreference, policy offer.RemotePolicy) bool {
	switch pref {
	case candidate.RemoteTotal:
		return policy == offer.RemoteTotal
	case candidate.RemotePartial:
		return policy == offer.RemoteHybrid || policy == offer.RemoteTotal
	default:
		// No remote demand, any policy works.
		return true
	}
}

var categoryLabels = map[Category]string{
	CategorySkills:      "skills coverage",
	CategoryExperience:  "experience level",
	CategoryEducation:   "education level",
	CategoryLocation:    "location fit",
	CategorySalary:      "salary fit",
	CategoryContract:    "contract fit",
	CategoryFlexibility: "work flexibility",
}

var gapRecommendations = map[Category]string{
	CategorySkills:      "Strengthen the missing skills or highlight transferable experience",
	CategoryExperience:  "Emphasize relevant projects to offset the experience gap",
	CategoryEducation:   "Highlight certifications or continued training to offset the education gap",
	CategoryLocation:    "Consider relocation or ask about remote-work arrangements",
	CategorySalary:      "Consider negotiating or adjusting salary expectations",
	CategoryContract:    "Reconsider the sought contract types, this offer uses a different one",
	CategoryFlexibility: "Clarify remote and flexible-hours policies with the recruiter",
}

func (e *Engine) insights(breakdown map[Category]ScoreBreakdown) (strengths, gaps, recs []string) {
	strengths = make([]string, 0, len(Categories))
	gaps = make([]string, 0)
	recs = make([]string, 0)
	for _, cat := range Categories {
		b := breakdown[cat]
		if b.Defaulted {
			continue
		}
		if b.RawPercentage >= e.cal.StrengthThreshold {
			strengths = append(strengths, categoryLabels[cat])
		}
		if b.RawPercentage < e.cal.GapThreshold {
			gaps = append(gaps, categoryLabels[cat])
			recs = append(recs, gapRecommendations[cat])
		}
	}
	return strengths, gaps, recs
}
