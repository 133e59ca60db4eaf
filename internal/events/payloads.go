package events

// UserPayload is the data carried by user.* events.
type UserPayload struct {
	ID       string  `json:"id"`
	SchoolID *string `json:"school_id,omitempty"`
	Role     string  `json:"role"`
	IsRoot   bool    `json:"is_root"`
}

// SchoolPayload is the data carried by school.* events.
type SchoolPayload struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// DepartmentPayload is the data carried by department.* events.
type DepartmentPayload struct {
	ID             uint   `json:"id"`
	SchoolID       string `json:"school_id"`
	AcademicYearID uint   `json:"academic_year_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
}

// YearPayload is the data carried by academic_year.* events.
type YearPayload struct {
	ID       uint   `json:"id"`
	SchoolID string `json:"school_id"`
	FromYear int    `json:"from_year"`
	ToYear   int    `json:"to_year"`
	Status   string `json:"status"`
}
