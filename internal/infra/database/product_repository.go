package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/grapl-ai/grapl-site/internal/entity"
)

// ProductRepository is the direct-Postgres counterpart of the Supabase
// client, for self-hosted deployments.
type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `
	id, slug, name, url, tagline, description, category, vertical,
	tags, status, traction_score, waitlist_count, pricing_model, created_at
`

func (r *ProductRepository) ListActive(ctx context.Context) ([]entity.Experiment, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status <> $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.StatusKilled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Experiment
	for rows.Next() {
		e, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Experiment, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE slug = $1 AND status <> $2
	`

	row := r.DB.QueryRowContext(ctx, query, slug, entity.StatusKilled)
	e, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ProductRepository) FindIDBySlug(ctx context.Context, slug string) (int64, error) {
	query := `SELECT id FROM products WHERE slug = $1 AND status <> $2`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, slug, entity.StatusKilled).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (entity.Experiment, error) {
	var (
		e             entity.Experiment
		url           sql.NullString
		pricingModel  sql.NullString
		tractionScore sql.NullInt64
		waitlistCount sql.NullInt64
		tags          pq.StringArray
	)

	err := row.Scan(
		&e.ID, &e.Slug, &e.Name, &url, &e.Tagline, &e.Description,
		&e.Category, &e.Vertical, &tags, &e.RawStatus,
		&tractionScore, &waitlistCount, &pricingModel, &e.CreatedAt,
	)
	if err != nil {
		return entity.Experiment{}, err
	}

	e.Tags = tags
	e.URL = url.String
	e.PricingModel = pricingModel.String
	if tractionScore.Valid {
		v := int(tractionScore.Int64)
		e.TractionScore = &v
	}
	if waitlistCount.Valid {
		v := int(waitlistCount.Int64)
		e.WaitlistCount = &v
	}
	return e, nil
}
