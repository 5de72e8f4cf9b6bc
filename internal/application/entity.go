// AngelaMos | 2026
// entity.go

package application

import (
	"database/sql"
	"time"

	"github.com/carterperez-dev/internhub/internal/company"
)

const (
	StatusPending  = "PENDING"
	StatusApplied  = "APPLIED"
	StatusRejected = "REJECTED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApplied, StatusRejected:
		return true
	}
	return false
}

// Application records a user's interest in a listing. Company is resolved
// when the listing still exists; User is populated only in admin views.
type Application struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	User      *UserSummary `json:"user,omitempty"`
	Company   company.Ref  `json:"companyId"`
	Status    string       `json:"status"`
	AppliedAt time.Time    `json:"appliedAt"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// row is one application LEFT JOINed with its listing and, optionally, its
// user. Listing columns are NULL when the listing was deleted.
type row struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CompanyID string    `db:"company_id"`
	Status    string    `db:"status"`
	AppliedAt time.Time `db:"applied_at"`

	UserEmail sql.NullString `db:"user_email"`

	ListingID      sql.NullString `db:"c_id"`
	Name           sql.NullString `db:"c_name"`
	LogoURL        sql.NullString `db:"c_logo_url"`
	Role           sql.NullString `db:"c_role"`
	Location       sql.NullString `db:"c_location"`
	InternshipType sql.NullString `db:"c_internship_type"`
	Stipend        sql.NullString `db:"c_stipend"`
	CareerURL      sql.NullString `db:"c_career_url"`
	Deadline       sql.NullTime   `db:"c_deadline"`
	IsActive       sql.NullBool   `db:"c_is_active"`
	CreatedAt      sql.NullTime   `db:"c_created_at"`
}

func (r row) toApplication() Application {
	a := Application{
		ID:        r.ID,
		UserID:    r.UserID,
		Company:   company.Unresolved(r.CompanyID),
		Status:    r.Status,
		AppliedAt: r.AppliedAt,
	}

	if r.UserEmail.Valid {
		a.User = &UserSummary{ID: r.UserID, Email: r.UserEmail.String}
	}

	if r.ListingID.Valid {
		a.Company = company.Resolved(company.Company{
			ID:             r.ListingID.String,
			Name:           r.Name.String,
			LogoURL:        r.LogoURL.String,
			Role:           r.Role.String,
			Location:       r.Location.String,
			InternshipType: r.InternshipType.String,
			Stipend:        r.Stipend.String,
			CareerURL:      r.CareerURL.String,
			Deadline:       r.Deadline.Time,
			IsActive:       r.IsActive.Bool,
			CreatedAt:      r.CreatedAt.Time,
		})
	}

	return a
}
