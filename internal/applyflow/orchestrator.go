// AngelaMos | 2026
// orchestrator.go

// Package applyflow drives the client side of applying to a listing: record
// a pending application, send the user to the career page, and on return
// ask whether they actually applied.
package applyflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/client"
	"github.com/carterperez-dev/internhub/internal/company"
)

var ErrNothingPending = errors.New("no pending application to confirm")

type API interface {
	Apply(ctx context.Context, companyID string) (*application.Application, error)
	MyApplications(ctx context.Context) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id, status string) (*application.Application, error)
}

type Store interface {
	PendingApply(ctx context.Context) (*company.Company, error)
	SetPendingApply(ctx context.Context, listing company.Company) error
	ClearPendingApply(ctx context.Context) error
	IsDismissed(ctx context.Context, listingID string) (bool, error)
	AddDismissed(ctx context.Context, listingID string) error
}

type Opener interface {
	Open(url string) error
}

type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

type Reloader interface {
	Reload(ctx context.Context) error
}

type ReloaderFunc func(ctx context.Context) error

func (f ReloaderFunc) Reload(ctx context.Context) error { return f(ctx) }

type State int

const (
	StateIdle State = iota
	StateAwaitingConfirmation
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateAwaitingConfirmation:
		return "awaiting-confirmation"
	case StateDismissed:
		return "dismissed"
	default:
		return "idle"
	}
}

type Orchestrator struct {
	api      API
	store    Store
	opener   Opener
	reloader Reloader
	logger   *slog.Logger
}

// New builds an Orchestrator. A nil reloader is a no-op and a nil logger
// uses slog.Default.
func New(api API, store Store, opener Opener, reloader Reloader, logger *slog.Logger) *Orchestrator {
	if reloader == nil {
		reloader = ReloaderFunc(func(context.Context) error { return nil })
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		api:      api,
		store:    store,
		opener:   opener,
		reloader: reloader,
		logger:   logger,
	}
}

// Apply records a PENDING application, remembers the listing locally and
// opens its career page. Failing to record the application never blocks
// the redirect; a conflict means it already exists.
func (o *Orchestrator) Apply(ctx context.Context, listing company.Company) error {
	if _, err := o.api.Apply(ctx, listing.ID); err != nil && !client.IsConflict(err) {
		o.logger.ErrorContext(ctx, "create pending application",
			"company_id", listing.ID,
			"error", err,
		)
	}

	if err := o.store.SetPendingApply(ctx, listing); err != nil {
		return fmt.Errorf("save pending apply: %w", err)
	}

	if err := o.opener.Open(listing.CareerURL); err != nil {
		return fmt.Errorf("open career page: %w", err)
	}

	return nil
}

// Check runs on page load and returns the listing to ask about, or nil.
func (o *Orchestrator) Check(ctx context.Context) (*company.Company, error) {
	pending, state, err := o.current(ctx)
	if err != nil || state != StateAwaitingConfirmation {
		return nil, err
	}
	return pending, nil
}

func (o *Orchestrator) State(ctx context.Context) (State, error) {
	_, state, err := o.current(ctx)
	return state, err
}

// Confirm marks the pending listing's application APPLIED, creating it
// first when it is missing. Local state only changes once the server
// accepted the update.
func (o *Orchestrator) Confirm(ctx context.Context) error {
	pending, err := o.Check(ctx)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNothingPending
	}

	if err := o.markApplied(ctx, pending.ID); err != nil {
		o.logger.ErrorContext(ctx, "confirm application",
			"company_id", pending.ID,
			"error", err,
		)
		return err
	}

	if err := o.finish(ctx, pending.ID); err != nil {
		return err
	}

	return o.reloader.Reload(ctx)
}

// Dismiss hides the prompt for the pending listing. The server record is
// left untouched.
func (o *Orchestrator) Dismiss(ctx context.Context) error {
	pending, err := o.Check(ctx)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNothingPending
	}

	return o.finish(ctx, pending.ID)
}

func (o *Orchestrator) markApplied(ctx context.Context, listingID string) error {
	apps, err := o.api.MyApplications(ctx)
	if err != nil {
		return fmt.Errorf("list applications: %w", err)
	}

	appID := ""
	for _, app := range apps {
		if app.Company.ID() == listingID {
			appID = app.ID
			break
		}
	}

	if appID == "" {
		created, applyErr := o.api.Apply(ctx, listingID)
		if applyErr != nil {
			return fmt.Errorf("create application: %w", applyErr)
		}
		appID = created.ID
	}

	if _, err := o.api.UpdateStatus(ctx, appID, application.StatusApplied); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	return nil
}

func (o *Orchestrator) finish(ctx context.Context, listingID string) error {
	if err := o.store.AddDismissed(ctx, listingID); err != nil {
		return fmt.Errorf("dismiss %s: %w", listingID, err)
	}
	if err := o.store.ClearPendingApply(ctx); err != nil {
		return fmt.Errorf("clear pending apply: %w", err)
	}
	return nil
}

func (o *Orchestrator) current(ctx context.Context) (*company.Company, State, error) {
	pending, err := o.store.PendingApply(ctx)
	if err != nil {
		return nil, StateIdle, fmt.Errorf("load pending apply: %w", err)
	}
	if pending == nil {
		return nil, StateIdle, nil
	}

	dismissed, err := o.store.IsDismissed(ctx, pending.ID)
	if err != nil {
		return nil, StateIdle, fmt.Errorf("load dismissed: %w", err)
	}
	if dismissed {
		return pending, StateDismissed, nil
	}

	return pending, StateAwaitingConfirmation, nil
}
