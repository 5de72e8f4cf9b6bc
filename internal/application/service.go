// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/core"
)

var (
	ErrCompanyRequired = errors.New("company id is required")
	ErrInvalidStatus   = errors.New("invalid status")
)

// ListingLookup resolves an active listing by id.
type ListingLookup interface {
	Get(ctx context.Context, id string) (*company.Company, error)
}

type Service struct {
	repo     Repository
	listings ListingLookup
}

func NewService(repo Repository, listings ListingLookup) *Service {
	return &Service{repo: repo, listings: listings}
}

// Apply records a PENDING application. Uniqueness per (user, listing) is
// enforced by the store, so concurrent duplicates yield one ErrDuplicateKey.
func (s *Service) Apply(
	ctx context.Context,
	userID, companyID string,
) (*Application, error) {
	ctx, span := core.StartSpan(ctx, "application.apply",
		attribute.String("user.id", userID),
		attribute.String("company.id", companyID),
	)
	defer span.End()

	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, fmt.Errorf("apply: %w: %w", ErrCompanyRequired, core.ErrInvalidInput)
	}

	listing, err := s.listings.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	a := &Application{
		ID:      uuid.New().String(),
		UserID:  userID,
		Company: company.Resolved(*listing),
		Status:  StatusPending,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.AddSpanEvent(ctx, "application.duplicate")
		} else {
			core.SetSpanError(ctx, err)
		}
		return nil, err
	}

	core.AddSpanEvent(ctx, "application.created",
		attribute.String("application.id", a.ID),
	)
	return a, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Application, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus sets any valid status on an application owned by callerID.
// Transitions are unrestricted.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id, status, callerID string,
) (*Application, error) {
	ctx, span := core.StartSpan(ctx, "application.update_status",
		attribute.String("application.id", id),
		attribute.String("application.status", status),
	)
	defer span.End()

	if !ValidStatus(status) {
		return nil, fmt.Errorf("update status %q: %w: %w", status, ErrInvalidStatus, core.ErrInvalidInput)
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("update status: application %q: %w", id, core.ErrNotFound)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.UserID != callerID {
		return nil, fmt.Errorf("update status: %w", core.ErrForbidden)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	a.Status = status
	core.AddSpanEvent(ctx, "application.status_changed")
	return a, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Application, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Counts(ctx context.Context) (StatusCounts, error) {
	return s.repo.CountByStatus(ctx)
}
