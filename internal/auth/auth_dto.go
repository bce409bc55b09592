package auth

type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=1,max=255"`
	Timezone    string `json:"timezone" binding:"omitempty,max=64"`
	FirstName   string `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string `json:"last_name" binding:"required,min=1,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"company_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}
