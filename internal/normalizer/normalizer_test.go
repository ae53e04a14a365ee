package normalizer

import (
	"errors"
	"testing"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

func TestLenientInt(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"plain int", 7, 7},
		{"float truncates", 7.9, 7},
		{"numeric string", "42", 42},
		{"salary with currency", "55K€", 55000},
		{"lowercase k", "45k", 45000},
		{"years with unit", "5 ans", 5},
		{"embedded digits", "environ 3 ans", 3},
		{"unparseable", "beaucoup", 0},
		{"nil", nil, 0},
		{"bool is not a number", true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LenientInt(tc.in); got != tc.want {
				t.Fatalf("LenientInt(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeCandidate_FrenchAliases(t *testing.T) {
	raw := map[string]any{
		"candidat_id":         "c-42",
		"annees_experience":   "5 ans",
		"salaire_souhaite":    "55K€",
		"localisation":        "Paris",
		"competences":         []any{"Python", "SQL"},
		"contrats_recherches": []any{"cdi", "cdd"},
		"niveau_etudes":       "Master",
		"disponibilite":       "immédiat",
	}

	c, err := NormalizeCandidate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "c-42" {
		t.Fatalf("expected id c-42, got %q", c.ID)
	}
	if c.YearsExperience != 5 {
		t.Fatalf("expected 5 years, got %d", c.YearsExperience)
	}
	if c.DesiredSalary != 55000 {
		t.Fatalf("expected 55000 salary, got %d", c.DesiredSalary)
	}
	if c.Location != "Paris" {
		t.Fatalf("expected Paris, got %q", c.Location)
	}
	if len(c.Skills) != 2 || c.Skills[0] != "python" || c.Skills[1] != "sql" {
		t.Fatalf("expected [python sql], got %v", c.Skills)
	}
	if len(c.ContractTypesSought) != 2 || c.ContractTypesSought[0] != "CDD" || c.ContractTypesSought[1] != "CDI" {
		t.Fatalf("expected [CDD CDI], got %v", c.ContractTypesSought)
	}
	if c.EducationLevel != "bac+5" {
		t.Fatalf("expected bac+5, got %q", c.EducationLevel)
	}
	if c.Availability != candidate.AvailabilityImmediate {
		t.Fatalf("expected immediate availability, got %q", c.Availability)
	}
}

func TestNormalizeCandidate_MissingIDIsGenerated(t *testing.T) {
	c, err := NormalizeCandidate(map[string]any{"skills": []any{"go"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected a generated id")
	}
}

func TestNormalizeCandidate_SkillObjects(t *testing.T) {
	raw := map[string]any{
		"skills": []any{
			map[string]any{"name": "Python", "level": "expert"},
			map[string]any{"nom": "Django"},
			"python", // duplicate of the object form
			map[string]any{"level": "junior"},
		},
	}
	c, err := NormalizeCandidate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Skills) != 2 || c.Skills[0] != "django" || c.Skills[1] != "python" {
		t.Fatalf("expected [django python], got %v", c.Skills)
	}
}

func TestNormalizeCandidate_Priorities(t *testing.T) {
	raw := map[string]any{
		"priorities": map[string]any{
			"remuneration": 15, // above the cap
			"proximite":    -3, // below the floor
			"flexibility":  7,
			// evolution omitted, defaults to 5
		},
	}
	c, err := NormalizeCandidate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := c.Priorities
	if p == nil {
		t.Fatalf("expected parsed priorities")
	}
	if p.Remuneration != 10 {
		t.Fatalf("expected remuneration clamped to 10, got %d", p.Remuneration)
	}
	if p.Proximity != 0 {
		t.Fatalf("expected proximity clamped to 0, got %d", p.Proximity)
	}
	if p.Evolution != 5 {
		t.Fatalf("expected missing evolution to default to 5, got %d", p.Evolution)
	}
	if p.Flexibility != 7 {
		t.Fatalf("expected flexibility 7, got %d", p.Flexibility)
	}
}

func TestNormalizeCandidate_NegativeExperienceClamps(t *testing.T) {
	c, err := NormalizeCandidate(map[string]any{"years_experience": -3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.YearsExperience != 0 {
		t.Fatalf("expected experience clamped to 0, got %d", c.YearsExperience)
	}
}

func TestNormalizeOffer_MissingIDFails(t *testing.T) {
	_, err := NormalizeOffer(map[string]any{"title": "Backend Engineer"})
	if err == nil {
		t.Fatalf("expected an error for an offer without id")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
	if verr.Kind != MissingRequiredField || verr.Field != "id" {
		t.Fatalf("expected missing id, got kind=%s field=%s", verr.Kind, verr.Field)
	}
}

func TestNormalizeOffer_SalaryRangeVariants(t *testing.T) {
	cases := []struct {
		name   string
		raw    map[string]any
		wantLo int
		wantHi int
	}{
		{
			name:   "list form",
			raw:    map[string]any{"id": "o1", "salary_range": []any{45000, 60000}},
			wantLo: 45000, wantHi: 60000,
		},
		{
			name:   "map form",
			raw:    map[string]any{"id": "o1", "fourchette_salaire": map[string]any{"min": 40000, "max": 52000}},
			wantLo: 40000, wantHi: 52000,
		},
		{
			name:   "string form",
			raw:    map[string]any{"id": "o1", "salary_range": "45000-60000"},
			wantLo: 45000, wantHi: 60000,
		},
		{
			name:   "string form with k suffix",
			raw:    map[string]any{"id": "o1", "salary_range": "45k-60k"},
			wantLo: 45000, wantHi: 60000,
		},
		{
			name:   "separate fields",
			raw:    map[string]any{"id": "o1", "salaire_min": 38000, "salaire_max": 48000},
			wantLo: 38000, wantHi: 48000,
		},
		{
			name:   "inverted bounds swap",
			raw:    map[string]any{"id": "o1", "salary_range": []any{60000, 45000}},
			wantLo: 45000, wantHi: 60000,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := NormalizeOffer(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if o.SalaryMin != tc.wantLo || o.SalaryMax != tc.wantHi {
				t.Fatalf("expected %d-%d, got %d-%d", tc.wantLo, tc.wantHi, o.SalaryMin, o.SalaryMax)
			}
		})
	}
}

func TestNormalizeOffer_FrenchFields(t *testing.T) {
	raw := map[string]any{
		"offer_id":              "o-9",
		"titre":                 "Développeur Go",
		"entreprise":            "Acme",
		"competences_requises":  []any{"Go", "PostgreSQL"},
		"experience_requise":    "3 ans minimum",
		"type_contrat":          "cdi",
		"politique_teletravail": "hybride",
		"horaires_flexibles":    "oui",
		"jours_rtt":             12,
		"niveau_etudes_requis":  "licence",
	}

	o, err := NormalizeOffer(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ID != "o-9" || o.Title != "Développeur Go" || o.Company != "Acme" {
		t.Fatalf("identity fields wrong: %+v", o)
	}
	if len(o.RequiredSkills) != 2 || o.RequiredSkills[0] != "go" || o.RequiredSkills[1] != "postgresql" {
		t.Fatalf("expected [go postgresql], got %v", o.RequiredSkills)
	}
	if o.MinExperienceYears != 3 {
		t.Fatalf("expected 3 years, got %d", o.MinExperienceYears)
	}
	if o.ContractType != "CDI" {
		t.Fatalf("expected CDI, got %q", o.ContractType)
	}
	if o.RemotePolicy != offer.RemoteHybrid {
		t.Fatalf("expected hybrid policy, got %q", o.RemotePolicy)
	}
	if !o.FlexibleHours {
		t.Fatalf("expected flexible hours from %q", "oui")
	}
	if o.RTTDays != 12 {
		t.Fatalf("expected 12 RTT days, got %d", o.RTTDays)
	}
	if o.EducationRequired != "bac+3" {
		t.Fatalf("expected bac+3, got %q", o.EducationRequired)
	}
}

func TestNormalizeOffer_BudgetMaxAsCeiling(t *testing.T) {
	o, err := NormalizeOffer(map[string]any{"id": "o1", "budget_max": "65K"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.BudgetMax != 65000 {
		t.Fatalf("expected budget 65000, got %d", o.BudgetMax)
	}
	if got := o.SalaryCeiling(); got != 65000 {
		t.Fatalf("expected ceiling 65000, got %d", got)
	}
}

func TestNormalizeOffer_Coordinates(t *testing.T) {
	o, err := NormalizeOffer(map[string]any{"id": "o1", "lat": 48.85, "lng": 2.35})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.HasCoordinates() {
		t.Fatalf("expected coordinates to be set")
	}
	if *o.Latitude != 48.85 || *o.Longitude != 2.35 {
		t.Fatalf("expected (48.85, 2.35), got (%v, %v)", *o.Latitude, *o.Longitude)
	}
}

func TestNormalizeOffer_NilInput(t *testing.T) {
	_, err := NormalizeOffer(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError for nil input, got %v", err)
	}
	if verr.Kind != InvalidType {
		t.Fatalf("expected invalid_type, got %s", verr.Kind)
	}
}
