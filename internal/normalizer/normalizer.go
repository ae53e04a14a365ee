package normalizer

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

// Raw inputs come from manual entry, the GPT field extractor or stored
// payloads, and mix English and French field names. Each canonical field
// carries a fixed alias list tried in order; the first present key wins.

var candidateAliases = map[string][]string{
	"id":           {"id", "candidate_id", "candidat_id"},
	"experience":   {"years_experience", "annees_experience", "experience_years", "experience"},
	"salary":       {"desired_salary", "salaire_souhaite", "salary_expectation", "salaire", "salary"},
	"location":     {"location", "localisation", "address", "adresse", "city", "ville"},
	"skills":       {"skills", "competences", "technical_skills", "competences_techniques"},
	"languages":    {"languages", "langues"},
	"contracts":    {"contract_types_sought", "contrats_recherches", "contract_types", "types_contrat"},
	"availability": {"availability", "disponibilite"},
	"education":    {"education_level", "niveau_etudes", "education", "formation"},
	"priorities":   {"priorities", "priorites"},
	"remote":       {"remote_preference", "preference_teletravail", "teletravail"},
	"latitude":     {"latitude", "lat"},
	"longitude":    {"longitude", "lng", "lon"},
	"quest":        {"questionnaire", "questionnaire_data"},
}

var offerAliases = map[string][]string{
	"id":           {"id", "offer_id", "job_id"},
	"title":        {"title", "titre", "poste", "job_title"},
	"company":      {"company", "entreprise", "societe"},
	"skills":       {"required_skills", "competences_requises", "competences", "skills"},
	"experience":   {"min_experience_years", "experience_requise", "experience_min", "experience"},
	"salary_range": {"salary_range", "fourchette_salaire"},
	"salary_min":   {"salary_min", "salaire_min"},
	"salary_max":   {"salary_max", "salaire_max"},
	"budget_max":   {"budget_max", "budget"},
	"location":     {"location", "localisation", "address", "adresse", "city", "ville"},
	"contract":     {"contract_type", "type_contrat", "contrat"},
	"remote":       {"remote_policy", "politique_teletravail", "teletravail"},
	"flex_hours":   {"flexible_hours", "horaires_flexibles"},
	"rtt":          {"rtt_days", "jours_rtt", "rtt"},
	"growth":       {"growth_opportunity", "perspectives_evolution", "evolution"},
	"education":    {"education_required", "niveau_etudes_requis", "formation_requise"},
	"latitude":     {"latitude", "lat"},
	"longitude":    {"longitude", "lng", "lon"},
	"quest":        {"questionnaire", "questionnaire_data"},
}

func lookup(raw map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(raw map[string]any, aliases []string) string {
	v, ok := lookup(raw, aliases)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func lookupInt(raw map[string]any, aliases []string) int {
	v, ok := lookup(raw, aliases)
	if !ok {
		return 0
	}
	return LenientInt(v)
}

// NormalizeCandidate converts a heterogeneous raw candidate dict into the
// canonical record. Pure; malformed numeric fields degrade to 0 and a
// missing id is replaced with a generated one.
func NormalizeCandidate(raw map[string]any) (candidate.Candidate, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	c := candidate.Candidate{
		ID:                  lookupString(raw, candidateAliases["id"]),
		YearsExperience:     lookupInt(raw, candidateAliases["experience"]),
		DesiredSalary:       lookupInt(raw, candidateAliases["salary"]),
		Location:            lookupString(raw, candidateAliases["location"]),
		Availability:        normalizeAvailability(lookupString(raw, candidateAliases["availability"])),
		EducationLevel:      normalizeEducation(lookupString(raw, candidateAliases["education"])),
		RemotePreference:    normalizeRemotePreference(lookupString(raw, candidateAliases["remote"])),
		Skills:              skillNames(raw, candidateAliases["skills"]),
		Languages:           stringSet(raw, candidateAliases["languages"]),
		ContractTypesSought: stringSet(raw, candidateAliases["contracts"]),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.YearsExperience < 0 {
		c.YearsExperience = 0
	}

	c.Latitude = coordinate(raw, candidateAliases["latitude"])
	c.Longitude = coordinate(raw, candidateAliases["longitude"])
	if v, ok := lookup(raw, candidateAliases["quest"]); ok {
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			c.Questionnaire = m
		}
	}
	if v, ok := lookup(raw, candidateAliases["priorities"]); ok {
		c.Priorities = normalizePriorities(v)
	}
	return c, nil
}

// NormalizeOffer converts a raw offer dict into the canonical record.
// An offer without an id fails with MissingRequiredField: the ranker
// requires unique identity per offer for deterministic tie-breaks.
func NormalizeOffer(raw map[string]any) (offer.JobOffer, error) {
	if raw == nil {
		return offer.JobOffer{}, NewValidationError(InvalidType, "offer")
	}

	id := lookupString(raw, offerAliases["id"])
	if id == "" {
		return offer.JobOffer{}, NewValidationError(MissingRequiredField, "id")
	}

	o := offer.JobOffer{
		ID:                 id,
		Title:              lookupString(raw, offerAliases["title"]),
		Company:            lookupString(raw, offerAliases["company"]),
		RequiredSkills:     skillNames(raw, offerAliases["skills"]),
		MinExperienceYears: lookupInt(raw, offerAliases["experience"]),
		BudgetMax:          lookupInt(raw, offerAliases["budget_max"]),
		Location:           lookupString(raw, offerAliases["location"]),
		ContractType:       strings.ToUpper(lookupString(raw, offerAliases["contract"])),
		RemotePolicy:       normalizeRemotePolicy(lookupString(raw, offerAliases["remote"])),
		RTTDays:            lookupInt(raw, offerAliases["rtt"]),
		EducationRequired:  normalizeEducation(lookupString(raw, offerAliases["education"])),
	}
	if o.MinExperienceYears < 0 {
		o.MinExperienceYears = 0
	}
	if o.RTTDays < 0 {
		o.RTTDays = 0
	}

	o.SalaryMin, o.SalaryMax = salaryRange(raw)
	if v, ok := lookup(raw, offerAliases["flex_hours"]); ok {
		o.FlexibleHours = lenientBool(v)
	}
	if v, ok := lookup(raw, offerAliases["growth"]); ok {
		o.GrowthOpportunity = lenientBool(v)
	}
	o.Latitude = coordinate(raw, offerAliases["latitude"])
	o.Longitude = coordinate(raw, offerAliases["longitude"])
	if v, ok := lookup(raw, offerAliases["quest"]); ok {
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			o.Questionnaire = m
		}
	}
	return o, nil
}

// skillNames accepts either plain strings or {name, level, description}
// objects and keeps just the name: lower-cased, trimmed, deduplicated
// case-insensitively, sorted for deterministic output.
func skillNames(raw map[string]any, aliases []string) []string {
	v, ok := lookup(raw, aliases)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		var name string
		switch s := it.(type) {
		case string:
			name = s
		case map[string]any:
			if n, ok := s["name"].(string); ok {
				name = n
			} else if n, ok := s["nom"].(string); ok {
				name = n
			}
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func stringSet(raw map[string]any, aliases []string) []string {
	v, ok := lookup(raw, aliases)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return []string{strings.ToUpper(strings.TrimSpace(s))}
		}
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// normalizePriorities clamps every lever to 0-10; a lever absent from the
// raw map defaults to the neutral midpoint 5.
func normalizePriorities(v any) *candidate.Priorities {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	lever := func(keys ...string) int {
		for _, k := range keys {
			if raw, ok := m[k]; ok {
				n := LenientInt(raw)
				if n < 0 {
					n = 0
				}
				if n > 10 {
					n = 10
				}
				return n
			}
		}
		return 5
	}
	return &candidate.Priorities{
		Evolution:    lever("evolution"),
		Remuneration: lever("remuneration"),
		Proximity:    lever("proximity", "proximite"),
		Flexibility:  lever("flexibility", "flexibilite"),
	}
}

// salaryRange accepts a [min,max] list, a {min,max} map, a "45000-60000"
// string, or separate min/max fields. Min above max is swapped rather
// than rejected.
func salaryRange(raw map[string]any) (int, int) {
	lo := lookupInt(raw, offerAliases["salary_min"])
	hi := lookupInt(raw, offerAliases["salary_max"])

	if v, ok := lookup(raw, offerAliases["salary_range"]); ok {
		switch r := v.(type) {
		case []any:
			if len(r) >= 1 {
				lo = LenientInt(r[0])
			}
			if len(r) >= 2 {
				hi = LenientInt(r[1])
			}
		case map[string]any:
			if mv, ok := lookup(r, []string{"min", "lo", "salaire_min"}); ok {
				lo = LenientInt(mv)
			}
			if mv, ok := lookup(r, []string{"max", "hi", "salaire_max"}); ok {
				hi = LenientInt(mv)
			}
		case string:
			parts := strings.SplitN(r, "-", 2)
			if len(parts) >= 1 {
				lo = LenientInt(parts[0])
			}
			if len(parts) == 2 {
				hi = LenientInt(parts[1])
			}
		}
	}

	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if hi > 0 && lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func coordinate(raw map[string]any, aliases []string) *float64 {
	v, ok := lookup(raw, aliases)
	if !ok {
		return nil
	}
	f, ok := lenientFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func normalizeAvailability(s string) candidate.Availability {
	switch strings.ToLower(s) {
	case "immediate", "immediat", "immédiat":
		return candidate.AvailabilityImmediate
	case "1month", "1 month", "1mois", "1 mois":
		return candidate.AvailabilityOneMonth
	case "2months", "2 months", "2mois", "2 mois":
		return candidate.AvailabilityTwoMonths
	case "negotiable", "negociable", "négociable":
		return candidate.AvailabilityNegotiable
	}
	return ""
}

func normalizeRemotePreference(s string) candidate.RemotePreference {
	switch strings.ToLower(s) {
	case "none", "aucun", "non":
		return candidate.RemoteNone
	case "partial", "partiel", "hybrid", "hybride":
		return candidate.RemotePartial
	case "total", "full", "complet":
		return candidate.RemoteTotal
	}
	return ""
}

func normalizeRemotePolicy(s string) offer.RemotePolicy {
	switch strings.ToLower(s) {
	case "office", "sur site", "presentiel", "présentiel", "on_site", "onsite":
		return offer.RemoteOffice
	case "hybrid", "hybride", "partial", "partiel":
		return offer.RemoteHybrid
	case "remote_total", "remote", "full_remote", "total", "teletravail complet", "télétravail complet":
		return offer.RemoteTotal
	}
	return ""
}

var educationAliases = map[string]string{
	"bac":             "bac",
	"high school":     "bac",
	"baccalaureat":    "bac",
	"bac+2":           "bac+2",
	"bts":             "bac+2",
	"dut":             "bac+2",
	"associate":       "bac+2",
	"bac+3":           "bac+3",
	"licence":         "bac+3",
	"bachelor":        "bac+3",
	"bac+5":           "bac+5",
	"master":          "bac+5",
	"msc":             "bac+5",
	"ingenieur":       "bac+5",
	"engineer degree": "bac+5",
	"doctorat":        "doctorat",
	"phd":             "doctorat",
	"doctorate":       "doctorat",
}

func normalizeEducation(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return ""
	}
	if canonical, ok := educationAliases[key]; ok {
		return canonical
	}
	return key
}
