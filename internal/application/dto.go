// AngelaMos | 2026
// dto.go

package application

type ApplyRequest struct {
	CompanyID string `json:"companyId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Applied  int `json:"applied"`
	Rejected int `json:"rejected"`
}
