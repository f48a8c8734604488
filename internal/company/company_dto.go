package company

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}
