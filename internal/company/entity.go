// AngelaMos | 2026
// entity.go

package company

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TypeRemote = "Remote"
	TypeOnsite = "Onsite"
	TypeHybrid = "Hybrid"
)

// Company is a published internship listing.
type Company struct {
	ID             string    `db:"id"              json:"id"`
	Name           string    `db:"name"            json:"name"`
	LogoURL        string    `db:"logo_url"        json:"logoUrl"`
	Role           string    `db:"role"            json:"role"`
	Location       string    `db:"location"        json:"location"`
	InternshipType string    `db:"internship_type" json:"internshipType"`
	Stipend        string    `db:"stipend"         json:"stipend"`
	CareerURL      string    `db:"career_url"      json:"careerUrl"`
	Deadline       time.Time `db:"deadline"        json:"deadline"`
	IsActive       bool      `db:"is_active"       json:"isActive"`
	CreatedAt      time.Time `db:"created_at"      json:"createdAt"`
}

func ValidInternshipType(t string) bool {
	switch t {
	case TypeRemote, TypeOnsite, TypeHybrid:
		return true
	}
	return false
}

// Ref points at a listing. It is either unresolved, carrying only the id,
// or resolved to the full listing. On the wire it is an id string or a
// listing object.
type Ref struct {
	id      string
	listing *Company
}

func Unresolved(id string) Ref {
	return Ref{id: id}
}

func Resolved(c Company) Ref {
	return Ref{id: c.ID, listing: &c}
}

func (r Ref) ID() string {
	return r.id
}

func (r Ref) IsResolved() bool {
	return r.listing != nil
}

// Listing returns the resolved listing, or false when only the id is known.
func (r Ref) Listing() (Company, bool) {
	if r.listing == nil {
		return Company{}, false
	}
	return *r.listing, true
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.listing != nil {
		return json.Marshal(r.listing)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode company id: %w", err)
		}
		*r = Unresolved(id)
		return nil
	case data[0] == '{':
		var c Company
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decode company: %w", err)
		}
		*r = Resolved(c)
		return nil
	default:
		return fmt.Errorf("decode company reference: unexpected %q", data[0])
	}
}
