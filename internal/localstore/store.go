// AngelaMos | 2026
// store.go

package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/carterperez-dev/internhub/internal/company"
)

const (
	KeyToken        = "token"
	KeyPendingApply = "pendingApply"
	KeyDismissed    = "dismissedPopups"
)

// Store is the typed view over a Repository used by the client.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyToken, []byte(token))
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyToken)
}

// PendingApply returns the listing snapshot saved when the user left for a
// career page, or nil when there is none.
func (s *Store) PendingApply(ctx context.Context) (*company.Company, error) {
	raw, err := s.repo.Get(ctx, KeyPendingApply)
	if err != nil || raw == nil {
		return nil, err
	}

	var listing company.Company
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyPendingApply, err)
	}
	return &listing, nil
}

func (s *Store) SetPendingApply(ctx context.Context, listing company.Company) error {
	raw, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyPendingApply, err)
	}
	return s.repo.Set(ctx, KeyPendingApply, raw)
}

func (s *Store) ClearPendingApply(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyPendingApply)
}

func (s *Store) Dismissed(ctx context.Context) ([]string, error) {
	raw, err := s.repo.Get(ctx, KeyDismissed)
	if err != nil || raw == nil {
		return []string{}, err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyDismissed, err)
	}
	return ids, nil
}

func (s *Store) IsDismissed(ctx context.Context, listingID string) (bool, error) {
	ids, err := s.Dismissed(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, listingID), nil
}

// AddDismissed appends listingID to the dismissed set. Adding an id twice
// keeps a single entry.
func (s *Store) AddDismissed(ctx context.Context, listingID string) error {
	ids, err := s.Dismissed(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, listingID) {
		return nil
	}

	raw, err := json.Marshal(append(ids, listingID))
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyDismissed, err)
	}
	return s.repo.Set(ctx, KeyDismissed, raw)
}
