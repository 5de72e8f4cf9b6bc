// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/internhub/internal/core"
)

const joinedSelect = `
	SELECT a.id, a.user_id, a.company_id, a.status, a.applied_at,
	       c.id AS c_id, c.name AS c_name, c.logo_url AS c_logo_url,
	       c.role AS c_role, c.location AS c_location,
	       c.internship_type AS c_internship_type, c.stipend AS c_stipend,
	       c.career_url AS c_career_url, c.deadline AS c_deadline,
	       c.is_active AS c_is_active, c.created_at AS c_created_at`

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountByStatus(ctx context.Context) (StatusCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications (id, user_id, company_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING applied_at`

	err := r.db.GetContext(ctx, &a.AppliedAt, query,
		a.ID,
		a.UserID,
		a.Company.ID(),
		a.Status,
	)
	if err != nil {
		if core.IsDuplicateKey(err) {
			return fmt.Errorf("create application: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Application, error) {
	query := joinedSelect + `
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		WHERE a.id = $1`

	var rec row
	err := r.db.GetContext(ctx, &rec, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	a := rec.toApplication()
	return &a, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Application, error) {
	query := joinedSelect + `
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return toApplications(rows), nil
}

func (r *repository) ListAll(ctx context.Context) ([]Application, error) {
	query := joinedSelect + `,
	       u.email AS user_email
		FROM applications a
		LEFT JOIN companies c ON c.id = a.company_id
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.applied_at DESC`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all applications: %w", err)
	}

	return toApplications(rows), nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`,
		id,
		status,
	)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update application status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		       COUNT(*) FILTER (WHERE status = 'APPLIED') AS applied,
		       COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected
		FROM applications`

	var counts struct {
		Total    int `db:"total"`
		Pending  int `db:"pending"`
		Applied  int `db:"applied"`
		Rejected int `db:"rejected"`
	}
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return StatusCounts{}, fmt.Errorf("count applications: %w", err)
	}

	return StatusCounts(counts), nil
}

func toApplications(rows []row) []Application {
	apps := make([]Application, 0, len(rows))
	for _, rec := range rows {
		apps = append(apps, rec.toApplication())
	}
	return apps
}
