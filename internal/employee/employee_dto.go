package employee

type CreateEmployeeRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	StartDate    string `json:"start_date" binding:"required"`
	Admin        bool   `json:"admin"`
	AutoApprove  bool   `json:"auto_approve"`
}

type SetEndDateRequest struct {
	EndDate string `json:"end_date" binding:"required"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	DepartmentID string  `json:"department_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Admin        bool    `json:"admin"`
	AutoApprove  bool    `json:"auto_approve"`
}
