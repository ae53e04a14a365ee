package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"smartmatch/internal/database"
)

// OfferRecord is a stored job offer: the raw payload keeps whatever field
// names the source used and goes through the normalizer like inline input.
type OfferRecord struct {
	ID      string
	Payload map[string]any
}

type OfferRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]OfferRecord, error)
	Upsert(ctx context.Context, records []OfferRecord) error
}

type PostgresOfferRepository struct {
	db database.DB
}

func NewPostgresOfferRepository(db database.DB) *PostgresOfferRepository {
	return &PostgresOfferRepository{db: db}
}

func (r *PostgresOfferRepository) FindByIDs(ctx context.Context, ids []string) ([]OfferRecord, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("nil offer repository")
	}
	if len(ids) == 0 {
		return []OfferRecord{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, payload FROM job_offers WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OfferRecord, 0, len(ids))
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		rec := OfferRecord{ID: id}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &rec.Payload); err != nil {
				return nil, fmt.Errorf("offer %s: corrupt payload: %w", id, err)
			}
		}
		if rec.Payload == nil {
			rec.Payload = map[string]any{}
		}
		// The payload may predate the id column; keep them consistent.
		rec.Payload["id"] = id
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOfferRepository) Upsert(ctx context.Context, records []OfferRecord) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil offer repository")
	}
	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("offer record without id")
		}
		payload, err := json.Marshal(rec.Payload)
		if err != nil {
			return err
		}
		_, err = r.db.Exec(ctx,
			`INSERT INTO job_offers (id, payload, updated_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
			rec.ID, payload,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
