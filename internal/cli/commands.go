// AngelaMos | 2026
// commands.go

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/carterperez-dev/internhub/internal/auth"
	"github.com/carterperez-dev/internhub/internal/client"
	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/middleware"
)

var (
	errNotLoggedIn = errors.New("not logged in")
	errNotAdmin    = errors.New("admin only")
	errUsage       = errors.New("usage")
)

func (a *App) Register(ctx context.Context) error {
	email, err := promptText(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out)
	if err != nil {
		return err
	}
	role, err := promptDefault(a.in, a.out, "Role (USER/ADMIN)", "USER")
	if err != nil {
		return err
	}

	req := auth.RegisterRequest{
		Email:    email,
		Password: password,
		Role:     strings.ToUpper(role),
	}
	if req.Role == middleware.RoleAdmin {
		if req.AdminCode, err = promptText(a.in, a.out, "Admin code"); err != nil {
			return err
		}
	}

	resp, err := a.api.Register(ctx, req)
	if err != nil {
		return a.fail("Registration failed", err)
	}

	return a.startSession(ctx, resp)
}

func (a *App) Login(ctx context.Context) error {
	email, err := promptText(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.in, a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.fail("Login failed", err)
	}

	return a.startSession(ctx, resp)
}

func (a *App) startSession(ctx context.Context, resp *auth.AuthResponse) error {
	if err := a.store.SetToken(ctx, resp.Token); err != nil {
		return a.fail("Save session", err)
	}

	a.session = &session{
		ID:    resp.User.ID,
		Email: resp.User.Email,
		Role:  resp.User.Role,
	}
	a.printf("Welcome, %s.\n", resp.User.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.ClearToken(ctx); err != nil {
		return a.fail("Logout failed", err)
	}
	a.session = nil
	a.myApps = nil
	a.printf("Logged out.\n")
	return nil
}

func (a *App) List(ctx context.Context) error {
	listings, err := a.api.ListCompanies(ctx)
	if err != nil {
		return a.fail("Load listings", err)
	}

	a.listings = listings
	if len(listings) == 0 {
		a.printf("No open listings.\n")
		return nil
	}

	renderListings(a.out, listings)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	listing, err := a.resolveListing(ctx, args, "show <n|id>")
	if err != nil {
		return err
	}

	renderListing(a.out, *listing)
	return nil
}

// Apply starts the apply workflow: the application is recorded as pending
// and the career page opens in the browser.
func (a *App) Apply(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	listing, err := a.resolveListing(ctx, args, "apply <n|id>")
	if err != nil {
		return err
	}

	a.printf("Opening %s career page...\n", listing.Name)
	if err := a.flow.Apply(ctx, *listing); err != nil {
		a.printf("Open it manually: %s\n", listing.CareerURL)
		return a.fail("Apply", err)
	}
	return nil
}

func (a *App) My(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	apps, err := a.api.MyApplications(ctx)
	if err != nil {
		return a.fail("Load applications", err)
	}

	a.myApps = apps
	if len(apps) == 0 {
		a.printf("No applications yet.\n")
		return nil
	}

	renderApplications(a.out, apps, false)
	return nil
}

// SetStatus moves one of the caller's applications to any status.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) != 2 {
		return a.usage("status <n|id> <PENDING|APPLIED|REJECTED>")
	}

	id := args[0]
	if n, ok := index(id, len(a.myApps)); ok {
		id = a.myApps[n].ID
	}
	status := strings.ToUpper(args[1])

	app, err := a.api.UpdateStatus(ctx, id, status)
	if err != nil {
		return a.fail("Update status", err)
	}

	a.printf("Application %s is now %s.\n", app.ID, app.Status)
	return a.reload(ctx)
}

func (a *App) Create(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var req company.CreateCompanyRequest
	fields := []struct {
		label string
		dest  *string
		def   string
	}{
		{label: "Name", dest: &req.Name},
		{label: "Logo URL", dest: &req.LogoURL},
		{label: "Role", dest: &req.Role},
		{label: "Location", dest: &req.Location},
		{label: "Internship type (Remote/Onsite/Hybrid)", dest: &req.InternshipType, def: company.TypeRemote},
		{label: "Stipend", dest: &req.Stipend},
		{label: "Career URL", dest: &req.CareerURL},
		{label: "Deadline (YYYY-MM-DD)", dest: &req.Deadline},
	}

	for _, f := range fields {
		var err error
		if f.def != "" {
			*f.dest, err = promptDefault(a.in, a.out, f.label, f.def)
		} else {
			*f.dest, err = promptText(a.in, a.out, f.label)
		}
		if err != nil {
			return err
		}
	}

	active, err := promptYesNo(a.in, a.out, "Active?", true)
	if err != nil {
		return err
	}
	req.IsActive = &active

	listing, err := a.api.CreateCompany(ctx, req)
	if err != nil {
		return a.fail("Create listing", err)
	}

	a.printf("Created %s (%s).\n", listing.Name, listing.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	id, name, err := a.listingTarget(args, "delete <n|id>")
	if err != nil {
		return err
	}

	ok, err := promptYesNo(a.in, a.out, fmt.Sprintf("Delete %s?", name), false)
	if err != nil || !ok {
		return err
	}

	if err := a.api.DeleteCompany(ctx, id); err != nil {
		return a.fail("Delete listing", err)
	}

	a.listings = nil
	a.printf("Company deleted successfully.\n")
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	id, _, err := a.listingTarget(args, "toggle <n|id>")
	if err != nil {
		return err
	}

	listing, err := a.api.ToggleCompany(ctx, id)
	if err != nil {
		return a.fail("Toggle listing", err)
	}

	state := "inactive"
	if listing.IsActive {
		state = "active"
	}
	a.listings = nil
	a.printf("%s is now %s.\n", listing.Name, state)
	return nil
}

func (a *App) All(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	apps, err := a.api.AllApplications(ctx)
	if err != nil {
		return a.fail("Load applications", err)
	}
	if len(apps) == 0 {
		a.printf("No applications yet.\n")
		return nil
	}

	renderApplications(a.out, apps, true)
	return nil
}

// resolveListing accepts a row number from the last list or a listing id.
func (a *App) resolveListing(
	ctx context.Context,
	args []string,
	usage string,
) (*company.Company, error) {
	if len(args) != 1 {
		return nil, a.usage(usage)
	}

	if n, ok := index(args[0], len(a.listings)); ok {
		listing := a.listings[n]
		return &listing, nil
	}

	listing, err := a.api.GetCompany(ctx, args[0])
	if client.IsNotFound(err) {
		a.printf("No listing %q. Run \"list\" and pick a row number.\n", args[0])
		return nil, err
	}
	if err != nil {
		return nil, a.fail("Load listing", err)
	}
	return listing, nil
}

// listingTarget resolves an id without a lookup so admins can act on
// inactive listings, which the public lookup hides.
func (a *App) listingTarget(args []string, usage string) (string, string, error) {
	if len(args) != 1 {
		return "", "", a.usage(usage)
	}
	if n, ok := index(args[0], len(a.listings)); ok {
		return a.listings[n].ID, a.listings[n].Name, nil
	}
	return args[0], args[0], nil
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		a.printf("Please log in first.\n")
		return errNotLoggedIn
	}
	return nil
}

func (a *App) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.isAdmin() {
		a.printf("Access denied.\n")
		return errNotAdmin
	}
	return nil
}

func (a *App) usage(text string) error {
	a.printf("Usage: %s\n", text)
	return errUsage
}

// index maps a 1-based row number onto a slice of length n.
func index(arg string, n int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

var _ execIface = (*App)(nil)
