// AngelaMos | 2026
// seed.go

package company

import (
	"context"
	"fmt"
)

func devicon(name string) string {
	return "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/" + name + "/" + name + "-original.svg"
}

func simpleIcon(name string) string {
	return "https://cdn.jsdelivr.net/gh/simple-icons/simple-icons@v9/icons/" + name + ".svg"
}

// SampleListings is the catalogue the seeder loads into an empty store.
func SampleListings() []CreateCompanyRequest {
	return []CreateCompanyRequest{
		{Name: "Google", LogoURL: devicon("google"), Role: "Software Engineering Intern", Location: "Mountain View, CA", InternshipType: TypeHybrid, Stipend: "$7,500 - $9,000/month", CareerURL: "https://careers.google.com/jobs/results/", Deadline: "2024-12-31"},
		{Name: "Amazon", LogoURL: devicon("amazonwebservices"), Role: "SDE Intern", Location: "Seattle, WA", InternshipType: TypeHybrid, Stipend: "$6,500 - $8,000/month", CareerURL: "https://www.amazon.jobs/en/jobs", Deadline: "2024-12-15"},
		{Name: "Microsoft", LogoURL: devicon("microsoft"), Role: "Software Engineer Intern", Location: "Redmond, WA", InternshipType: TypeHybrid, Stipend: "$7,000 - $8,500/month", CareerURL: "https://careers.microsoft.com/us/en", Deadline: "2024-12-20"},
		{Name: "Adobe", LogoURL: devicon("adobe"), Role: "Product Development Intern", Location: "San Jose, CA", InternshipType: TypeRemote, Stipend: "$6,000 - $7,500/month", CareerURL: "https://careers.adobe.com/us/en/search-results", Deadline: "2024-12-25"},
		{Name: "Atlassian", LogoURL: simpleIcon("atlassian"), Role: "Software Engineering Intern", Location: "San Francisco, CA", InternshipType: TypeRemote, Stipend: "$6,500 - $8,000/month", CareerURL: "https://www.atlassian.com/company/careers/all-jobs", Deadline: "2024-12-30"},
		{Name: "Meta", LogoURL: simpleIcon("meta"), Role: "Software Engineer Intern", Location: "Menlo Park, CA", InternshipType: TypeOnsite, Stipend: "$8,000 - $10,000/month", CareerURL: "https://www.metacareers.com/jobs/", Deadline: "2024-12-18"},
		{Name: "Apple", LogoURL: devicon("apple"), Role: "Software Engineering Intern", Location: "Cupertino, CA", InternshipType: TypeOnsite, Stipend: "$7,000 - $9,000/month", CareerURL: "https://jobs.apple.com/en-us/search", Deadline: "2024-12-22"},
		{Name: "Netflix", LogoURL: simpleIcon("netflix"), Role: "Software Engineering Intern", Location: "Los Gatos, CA", InternshipType: TypeHybrid, Stipend: "$8,500 - $10,500/month", CareerURL: "https://jobs.netflix.com/search", Deadline: "2024-12-28"},
		{Name: "Stripe", LogoURL: simpleIcon("stripe"), Role: "Software Engineering Intern", Location: "San Francisco, CA", InternshipType: TypeRemote, Stipend: "$7,500 - $9,500/month", CareerURL: "https://stripe.com/jobs/search", Deadline: "2024-12-24"},
		{Name: "Goldman Sachs", LogoURL: simpleIcon("goldmansachs"), Role: "Technology Summer Analyst", Location: "New York, NY", InternshipType: TypeOnsite, Stipend: "$85,000/year equivalent", CareerURL: "https://www.goldmansachs.com/careers/students/programs/americas/summer-analyst-program.html", Deadline: "2024-12-14"},
		{Name: "Nvidia", LogoURL: devicon("nvidia"), Role: "Software Engineering Intern", Location: "Santa Clara, CA", InternshipType: TypeHybrid, Stipend: "$7,200 - $8,800/month", CareerURL: "https://nvidia.wd5.myworkdayjobs.com/NVIDIAExternalCareerSite", Deadline: "2024-12-10"},
		{Name: "GitHub", LogoURL: devicon("github"), Role: "Software Engineering Intern", Location: "San Francisco, CA", InternshipType: TypeRemote, Stipend: "$7,500 - $9,000/month", CareerURL: "https://github.com/careers", Deadline: "2024-12-07"},
	}
}

type SeedResult struct {
	Deleted  int64
	Inserted int
	Skipped  bool
}

// Seed loads SampleListings. Without force it leaves a non-empty store
// alone; with force it replaces every existing listing.
func (s *Service) Seed(ctx context.Context, force bool) (SeedResult, error) {
	var result SeedResult

	counts, err := s.repo.Count(ctx)
	if err != nil {
		return result, fmt.Errorf("seed: %w", err)
	}

	if counts.Total > 0 {
		if !force {
			result.Skipped = true
			return result, nil
		}
		deleted, delErr := s.repo.DeleteAll(ctx)
		if delErr != nil {
			return result, fmt.Errorf("seed: %w", delErr)
		}
		result.Deleted = deleted
	}

	for _, listing := range SampleListings() {
		if _, err := s.Create(ctx, listing); err != nil {
			return result, fmt.Errorf("seed %s: %w", listing.Name, err)
		}
		result.Inserted++
	}

	return result, nil
}
