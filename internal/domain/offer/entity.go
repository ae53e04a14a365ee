package offer

type RemotePolicy string

const (
	RemoteOffice RemotePolicy = "office"
	RemoteHybrid RemotePolicy = "hybrid"
	RemoteTotal  RemotePolicy = "remote_total"
)

// JobOffer is the canonical offer record produced by the normalizer.
// ID is required and unique within a batch; offers without one are
// rejected before scoring. Read-only for the lifetime of a request.
type JobOffer struct {
	ID                 string
	Title              string
	Company            string
	RequiredSkills     []string
	MinExperienceYears int
	SalaryMin          int
	SalaryMax          int
	BudgetMax          int
	Location           string
	Latitude           *float64
	Longitude          *float64
	ContractType       string
	RemotePolicy       RemotePolicy
	FlexibleHours      bool
	RTTDays            int
	GrowthOpportunity  bool
	EducationRequired  string
	Questionnaire      map[string]any
}

func (o JobOffer) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// SalaryCeiling is the upper bound used for salary-fit scoring: the
// range max when present, otherwise the recruiter's hard budget.
func (o JobOffer) SalaryCeiling() int {
	if o.SalaryMax > 0 {
		return o.SalaryMax
	}
	return o.BudgetMax
}
