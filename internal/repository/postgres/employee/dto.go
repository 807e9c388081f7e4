package employee

type CreateRequest struct {
	EmpID         string `json:"emp_id"        form:"emp_id"`
	Name          string `json:"name"          form:"name"`
	Email         string `json:"email"         form:"email"`
	Department    string `json:"department"    form:"department"`
	Salary        string `json:"salary"        form:"salary"`
	JoinDate      string `json:"join_date"     form:"join_date"`
	Qualification string `json:"qualification" form:"qualification"`
	// Password, when set, also creates an EMPLOYEE login named after EmpID.
	Password string `json:"password" form:"password"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name"          form:"name"`
	Email         string `json:"email"         form:"email"`
	Department    string `json:"department"    form:"department"`
	Qualification string `json:"qualification" form:"qualification"`
}

type ImportResponse struct {
	Created int   `json:"created"`
	Skipped []int `json:"skipped_rows"`
}
