// AngelaMos | 2026
// service.go

package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/internhub/internal/core"
)

const dateOnly = "2006-01-02"

var (
	ErrInvalidDeadline = fmt.Errorf(
		"deadline must be RFC 3339 or YYYY-MM-DD: %w",
		core.ErrInvalidInput,
	)
	ErrInvalidInternshipType = fmt.Errorf(
		"internshipType must be one of Remote, Onsite, Hybrid: %w",
		core.ErrInvalidInput,
	)
)

type Service struct {
	repo  Repository
	cache Cache
}

// NewService wires the listing store. A nil cache disables caching.
func NewService(repo Repository, cache Cache) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache}
}

// List returns active listings, newest first. Cache errors are logged and
// the database answers instead.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	cached, found, err := s.cache.GetActive(ctx)
	if err != nil {
		slog.WarnContext(ctx, "listing cache read failed", "error", err)
	}
	if found {
		return cached, nil
	}

	companies, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetActive(ctx, companies); err != nil {
		slog.WarnContext(ctx, "listing cache write failed", "error", err)
	}

	return companies, nil
}

// Get returns an active listing. Unknown, malformed and inactive ids are
// all reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get company %q: %w", id, core.ErrNotFound)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fmt.Errorf("get company %q: inactive: %w", id, core.ErrNotFound)
	}

	return c, nil
}

func (s *Service) Create(
	ctx context.Context,
	req CreateCompanyRequest,
) (*Company, error) {
	if !ValidInternshipType(req.InternshipType) {
		return nil, fmt.Errorf(
			"create company: %q: %w",
			req.InternshipType,
			ErrInvalidInternshipType,
		)
	}

	deadline, err := ParseDeadline(req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	c := &Company{
		ID:             uuid.New().String(),
		Name:           req.Name,
		LogoURL:        req.LogoURL,
		Role:           req.Role,
		Location:       req.Location,
		InternshipType: req.InternshipType,
		Stipend:        req.Stipend,
		CareerURL:      req.CareerURL,
		Deadline:       deadline,
		IsActive:       active,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete company %q: %w", id, core.ErrNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) ToggleActive(ctx context.Context, id string) (*Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("toggle company %q: %w", id, core.ErrNotFound)
	}

	c, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return c, nil
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Count(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "listing cache invalidation failed", "error", err)
	}
}

// ParseDeadline accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date,
// the latter read as midnight UTC.
func ParseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%q: %w", raw, ErrInvalidDeadline)
}
