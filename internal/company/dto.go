// AngelaMos | 2026
// dto.go

package company

type CreateCompanyRequest struct {
	Name           string `json:"name"           validate:"required,max=200"`
	LogoURL        string `json:"logoUrl"        validate:"required,max=2048"`
	Role           string `json:"role"           validate:"required,max=200"`
	Location       string `json:"location"       validate:"required,max=200"`
	InternshipType string `json:"internshipType" validate:"required,oneof=Remote Onsite Hybrid"`
	Stipend        string `json:"stipend"        validate:"required,max=200"`
	CareerURL      string `json:"careerUrl"      validate:"required,max=2048"`
	Deadline       string `json:"deadline"       validate:"required"`
	IsActive       *bool  `json:"isActive,omitempty"`
}
