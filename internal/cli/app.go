// AngelaMos | 2026
// app.go

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/applyflow"
	"github.com/carterperez-dev/internhub/internal/auth"
	"github.com/carterperez-dev/internhub/internal/client"
	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/localstore"
	"github.com/carterperez-dev/internhub/internal/middleware"
	"github.com/carterperez-dev/internhub/internal/user"
)

// API is the part of the REST client the terminal uses.
type API interface {
	applyflow.API

	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*auth.AuthResponse, error)
	Me(ctx context.Context) (*user.UserResponse, error)
	ListCompanies(ctx context.Context) ([]company.Company, error)
	GetCompany(ctx context.Context, id string) (*company.Company, error)
	CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (*company.Company, error)
	DeleteCompany(ctx context.Context, id string) error
	ToggleCompany(ctx context.Context, id string) (*company.Company, error)
	AllApplications(ctx context.Context) ([]application.Application, error)
}

var _ API = (*client.Client)(nil)

type session struct {
	ID    string
	Email string
	Role  string
}

type App struct {
	api    API
	store  *localstore.Store
	flow   *applyflow.Orchestrator
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger

	session  *session
	listings []company.Company
	myApps   []application.Application
}

func NewApp(
	api API,
	store *localstore.Store,
	opener applyflow.Opener,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		api:    api,
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
	a.flow = applyflow.New(api, store, opener, applyflow.ReloaderFunc(a.reload), logger)

	return a
}

// Run restores a saved session and starts the REPL.
func (a *App) Run(ctx context.Context) {
	if err := a.restoreSession(ctx); err != nil {
		a.logger.WarnContext(ctx, "restore session", "error", err)
	}
	runREPL(ctx, a, a.status, a.in, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) isAdmin() bool {
	return a.session != nil && a.session.Role == middleware.RoleAdmin
}

func (a *App) status() string {
	if a.session == nil {
		return "guest"
	}
	return fmt.Sprintf("%s (%s)", a.session.Email, a.session.Role)
}

func (a *App) restoreSession(ctx context.Context) error {
	token, err := a.store.Token(ctx)
	if err != nil || token == "" {
		return err
	}

	me, err := a.api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			a.printf("Saved session expired, please log in again.\n")
			return a.store.ClearToken(ctx)
		}
		return err
	}

	a.session = &session{ID: me.ID, Email: me.Email, Role: me.Role}
	return nil
}

// checkPending asks about an application left pending by a career page
// visit. It only runs for a logged-in user.
func (a *App) checkPending(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}

	listing, err := a.flow.Check(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "check pending apply", "error", err)
		return err
	}
	if listing == nil {
		return nil
	}

	applied, err := promptYesNo(a.in, a.out,
		fmt.Sprintf("Did you apply to %s?", listing.Name), false)
	if err != nil {
		return err
	}

	if !applied {
		return a.flow.Dismiss(ctx)
	}

	if err := a.flow.Confirm(ctx); err != nil {
		if errors.Is(err, applyflow.ErrNothingPending) {
			return nil
		}
		a.printf("Could not update status: %s\n", client.Message(err, "request failed"))
		return err
	}

	a.printf("Marked %s as %s.\n", listing.Name, application.StatusApplied)
	return nil
}

// reload refreshes the cached views after the workflow changed state.
func (a *App) reload(ctx context.Context) error {
	apps, err := a.api.MyApplications(ctx)
	if err != nil {
		return fmt.Errorf("reload applications: %w", err)
	}
	a.myApps = apps
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...) //nolint:errcheck // terminal output
}

// fail reports err to the user and returns it.
func (a *App) fail(action string, err error) error {
	a.printf("%s: %s\n", action, client.Message(err, err.Error()))
	return err
}
