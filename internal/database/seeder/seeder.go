package seeder

import (
	"context"

	"smartmatch/internal/database"
	"smartmatch/internal/repository"
)

const offersSchema = `
CREATE TABLE IF NOT EXISTS job_offers (
	id         TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Run creates the offers table and loads a small demo batch so a fresh
// environment can serve stored-offer ranking requests immediately.
func Run(ctx context.Context, db database.DB) error {
	if _, err := db.Exec(ctx, offersSchema); err != nil {
		return err
	}
	repo := repository.NewPostgresOfferRepository(db)
	return repo.Upsert(ctx, sampleOffers())
}

func sampleOffers() []repository.OfferRecord {
	return []repository.OfferRecord{
		{
			ID: "offer-backend-paris",
			Payload: map[string]any{
				"id":                    "offer-backend-paris",
				"title":                 "Développeur Backend",
				"entreprise":            "TechCorp",
				"competences":           []any{"python", "django", "postgresql"},
				"experience_requise":    3,
				"salary_min":            45000,
				"salary_max":            60000,
				"localisation":          "Paris",
				"type_contrat":          "CDI",
				"politique_teletravail": "hybride",
				"horaires_flexibles":    true,
				"jours_rtt":             12,
			},
		},
		{
			ID: "offer-data-remote",
			Payload: map[string]any{
				"id":                   "offer-data-remote",
				"title":                "Data Engineer",
				"company":              "DataWorks",
				"required_skills":      []any{"python", "spark", "airflow"},
				"min_experience_years": 5,
				"salary_range":         []any{55000, 70000},
				"location":             "Lyon",
				"contract_type":        "CDI",
				"remote_policy":        "remote_total",
				"education_required":   "bac+5",
			},
		},
		{
			ID: "offer-frontend-junior",
			Payload: map[string]any{
				"id":                 "offer-frontend-junior",
				"titre":              "Développeur Frontend Junior",
				"societe":            "WebStudio",
				"competences":        []any{"javascript", "react", "css"},
				"experience_min":     1,
				"fourchette_salaire": "32000-40000",
				"ville":              "Nantes",
				"contrat":            "CDD",
				"teletravail":        "sur site",
			},
		},
	}
}
