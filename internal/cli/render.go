// AngelaMos | 2026
// render.go

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/company"
)

const dateLayout = "2006-01-02"

func renderListings(w io.Writer, listings []company.Company) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOMPANY\tROLE\tLOCATION\tTYPE\tDEADLINE")
	for i, c := range listings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, c.Name, c.Role, c.Location, c.InternshipType, c.Deadline.Format(dateLayout))
	}
	tw.Flush() //nolint:errcheck // terminal output
}

func renderListing(w io.Writer, c company.Company) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Company\t%s\n", c.Name)
	fmt.Fprintf(tw, "Role\t%s\n", c.Role)
	fmt.Fprintf(tw, "Location\t%s\n", c.Location)
	fmt.Fprintf(tw, "Type\t%s\n", c.InternshipType)
	fmt.Fprintf(tw, "Stipend\t%s\n", c.Stipend)
	fmt.Fprintf(tw, "Deadline\t%s\n", c.Deadline.Format(dateLayout))
	fmt.Fprintf(tw, "Apply at\t%s\n", c.CareerURL)
	fmt.Fprintf(tw, "ID\t%s\n", c.ID)
	tw.Flush() //nolint:errcheck // terminal output
}

// renderApplications prints one row per application. Applications whose
// listing was deleted show the bare id.
func renderApplications(w io.Writer, apps []application.Application, withUser bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withUser {
		fmt.Fprintln(tw, "#\tUSER\tCOMPANY\tSTATUS\tAPPLIED")
	} else {
		fmt.Fprintln(tw, "#\tCOMPANY\tSTATUS\tAPPLIED")
	}

	for i, app := range apps {
		name := "deleted listing " + app.Company.ID()
		if listing, ok := app.Company.Listing(); ok {
			name = listing.Name
		}

		if withUser {
			email := app.UserID
			if app.User != nil {
				email = app.User.Email
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				i+1, email, name, app.Status, app.AppliedAt.Format(dateLayout))
			continue
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1, name, app.Status, app.AppliedAt.Format(dateLayout))
	}
	tw.Flush() //nolint:errcheck // terminal output
}
