// AngelaMos | 2026
// repository.go

package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/internhub/internal/core"
)

const companyColumns = `id, name, logo_url, role, location, internship_type,
	stipend, career_url, deadline, is_active, created_at`

type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	ListActive(ctx context.Context) ([]Company, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	ToggleActive(ctx context.Context, id string) (*Company, error)
	Count(ctx context.Context) (Counts, error)
}

type Counts struct {
	Total  int `db:"total"  json:"total"`
	Active int `db:"active" json:"active"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	query := `
		INSERT INTO companies (
			id, name, logo_url, role, location, internship_type,
			stipend, career_url, deadline, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query,
		c.ID,
		c.Name,
		c.LogoURL,
		c.Role,
		c.Location,
		c.InternshipType,
		c.Stipend,
		c.CareerURL,
		c.Deadline,
		c.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	var c Company
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &c, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE is_active = TRUE
		ORDER BY created_at DESC`

	companies := []Company{}
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete company: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies`)
	if err != nil {
		return 0, fmt.Errorf("delete companies: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete companies: %w", err)
	}

	return rows, nil
}

// ToggleActive flips is_active in a single statement so concurrent toggles
// never lose an update.
func (r *repository) ToggleActive(ctx context.Context, id string) (*Company, error) {
	query := `
		UPDATE companies
		SET is_active = NOT is_active
		WHERE id = $1
		RETURNING ` + companyColumns

	var c Company
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("toggle company: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle company: %w", err)
	}

	return &c, nil
}

func (r *repository) Count(ctx context.Context) (Counts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_active) AS active
		FROM companies`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return Counts{}, fmt.Errorf("count companies: %w", err)
	}

	return counts, nil
}
