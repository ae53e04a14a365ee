package candidate

// Availability mirrors the questionnaire options exposed to candidates.
type Availability string

const (
	AvailabilityImmediate  Availability = "immediate"
	AvailabilityOneMonth   Availability = "1month"
	AvailabilityTwoMonths  Availability = "2months"
	AvailabilityNegotiable Availability = "negotiable"
)

type RemotePreference string

const (
	RemoteNone    RemotePreference = "none"
	RemotePartial RemotePreference = "partial"
	RemoteTotal   RemotePreference = "total"
)

// Priorities holds the four declared levers, each on a 0-10 scale.
// A missing lever defaults to the neutral midpoint 5 during normalization.
type Priorities struct {
	Evolution    int
	Remuneration int
	Proximity    int
	Flexibility  int
}

// Candidate is the canonical candidate record produced by the normalizer.
// Immutable once constructed; safe to share across scoring goroutines.
type Candidate struct {
	ID                  string
	YearsExperience     int
	DesiredSalary       int
	Location            string
	Latitude            *float64
	Longitude           *float64
	Skills              []string
	Languages           []string
	ContractTypesSought []string
	Availability        Availability
	EducationLevel      string
	Priorities          *Priorities
	RemotePreference    RemotePreference
	Questionnaire       map[string]any
}

func (c Candidate) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

func (c Candidate) SeeksContract(contractType string) bool {
	for _, ct := range c.ContractTypesSought {
		if ct == contractType {
			return true
		}
	}
	return false
}
