package department

type CreateDepartmentRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	ManagerID string `json:"manager_id" binding:"omitempty,uuid"`
}

type SetManagerRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
}

type AddSupervisorRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CompanyID string  `json:"company_id"`
	ManagerID *string `json:"manager_id"`
}
