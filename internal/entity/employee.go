package entity

import (
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	ID            int     `json:"id"            bun:"id,pk,autoincrement"`
	EmpID         string  `json:"emp_id"        bun:"emp_id"`
	Name          string  `json:"name"          bun:"name"`
	Email         string  `json:"email"         bun:"email"`
	Department    string  `json:"department"    bun:"department"`
	Salary        string  `json:"salary"        bun:"salary,nullzero"`
	JoinDate      string  `json:"join_date"     bun:"join_date,nullzero"`
	Username      *string `json:"username"      bun:"username"`
	ProfileImage  *string `json:"profile_image" bun:"profile_image"`
	Qualification string  `json:"qualification" bun:"qualification,nullzero"`
}
