package schedule

import "github.com/google/uuid"

type UpsertScheduleRequest struct {
	// EmployeeID is empty when editing the company-wide schedule.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	Date string `json:"date" binding:"required"`
}

type ScheduleResponse struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  *uuid.UUID `json:"company_id,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	Monday     bool       `json:"monday"`
	Tuesday    bool       `json:"tuesday"`
	Wednesday  bool       `json:"wednesday"`
	Thursday   bool       `json:"thursday"`
	Friday     bool       `json:"friday"`
	Saturday   bool       `json:"saturday"`
	Sunday     bool       `json:"sunday"`
}

type HolidayResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Date string    `json:"date"`
}

func toScheduleResponse(s *Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		CompanyID:  s.CompanyID,
		EmployeeID: s.EmployeeID,
		Monday:     s.Monday,
		Tuesday:    s.Tuesday,
		Wednesday:  s.Wednesday,
		Thursday:   s.Thursday,
		Friday:     s.Friday,
		Saturday:   s.Saturday,
		Sunday:     s.Sunday,
	}
}

func toHolidayResponse(h *BankHoliday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}
